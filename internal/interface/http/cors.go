package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

const mcpSessionHeader = "Mcp-Session-Id"

// corsMiddleware lets browser frontends call the API. An empty allow list means any
// origin. Preflight requests are answered here and never reach a route.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	origins := allowed
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	policy := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader, mcpSessionHeader},
		ExposedHeaders: []string{requestIDHeader, mcpSessionHeader},
	})

	return func(c *gin.Context) {
		policy.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
