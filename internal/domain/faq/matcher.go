package faq

import (
	"errors"
	"strings"

	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

// ErrNoFAQData is returned when matching against an empty collection.
var ErrNoFAQData = errors.New("no faq data loaded")

// Match is the winning entry together with its overlap score.
type Match struct {
	Entry Entry
	Score int
}

// FindBestMatch returns the entry with the highest keyword overlap. Ties keep the
// earliest entry, and a question that overlaps nothing still gets the first entry.
func FindBestMatch(question string, collection *Collection) (Entry, error) {
	match, err := bestMatch(question, collection)
	if err != nil {
		return Entry{}, err
	}
	return match.Entry, nil
}

// Score counts the question tokens found as substrings of the entry question.
func Score(question string, entry Entry) int {
	return overlap(tokenize(question), strings.ToLower(entry.Question))
}

func bestMatch(question string, collection *Collection) (Match, error) {
	entries := collection.all()
	if len(entries) == 0 {
		return Match{}, apperrors.Wrap(apperrors.CodeNoFAQData, "cannot match question", ErrNoFAQData)
	}

	tokens := tokenize(question)
	best := Match{Entry: entries[0]}
	for _, entry := range entries {
		score := overlap(tokens, strings.ToLower(entry.Question))
		if score > best.Score {
			best = Match{Entry: entry, Score: score}
		}
	}
	best.Entry = best.Entry.clone()
	return best, nil
}

func tokenize(question string) []string {
	fields := strings.Fields(question)
	for i, field := range fields {
		fields[i] = strings.ToLower(field)
	}
	return fields
}

func overlap(tokens []string, loweredQuestion string) int {
	score := 0
	for _, token := range tokens {
		if strings.Contains(loweredQuestion, token) {
			score++
		}
	}
	return score
}
