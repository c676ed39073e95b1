package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

const maxChatBodyBytes = 64 << 10

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// Chat answers a free-text question by matching it against the catalogue.
func (h *Handler) Chat(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxChatBodyBytes)

	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "request_too_large", "request body exceeds 64KiB", err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", bindMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Home describes the service and its routes.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "faq-assistant",
		"status":  "running",
		"endpoints": []string{
			"POST /api/chat",
			"GET /api/faqs",
			"GET /api/faqs/search?keyword=",
			"GET /api/faqs/categories",
			"GET /api/faqs/trending",
			"GET /api/faqs/:id",
			"GET /healthz",
		},
	})
}

// Health reports liveness and the size of the loaded catalogue.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "faqs": h.faqSvc.Size()})
}

// ListFAQs returns the catalogue, optionally narrowed to one category.
func (h *Handler) ListFAQs(c *gin.Context) {
	entries := h.faqSvc.List(c.Request.Context(), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"faqs": entries})
}

// SearchFAQs returns entries containing the keyword.
func (h *Handler) SearchFAQs(c *gin.Context) {
	entries, err := h.faqSvc.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": entries})
}

// Categories lists the distinct categories.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.faqSvc.Categories(c.Request.Context())})
}

// GetFAQ returns one entry by id.
func (h *Handler) GetFAQ(c *gin.Context) {
	entry, err := h.faqSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Trending returns the most frequently asked questions.
func (h *Handler) Trending(c *gin.Context) {
	recs, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func bindMessage(err error) string {
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}
	return err.Error()
}
