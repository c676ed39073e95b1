package faq

// Entry is a single question/answer pair from the FAQ catalogue.
type Entry struct {
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Request is the chat payload accepted from clients.
type Request struct {
	Question string `json:"question"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Answer string `json:"answer"`
}

// TrendingQuery represents a frequently asked question.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}
