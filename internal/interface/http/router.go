package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-assistant/internal/infra/config"
	mcpiface "github.com/yanqian/faq-assistant/internal/interface/mcp"
)

// NewRouter wires up the HTTP handlers and returns a configured server. The MCP
// tools are mounted when tools is non-nil and the endpoint is enabled.
func NewRouter(cfg *config.Config, handler *Handler, tools *mcpiface.Server) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		requestLogger(handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Home)
	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	{
		api.POST("/chat", handler.Chat)

		faqs := api.Group("/faqs")
		faqs.GET("", handler.ListFAQs)
		faqs.GET("/search", handler.SearchFAQs)
		faqs.GET("/categories", handler.Categories)
		faqs.GET("/trending", handler.Trending)
		faqs.GET("/:id", handler.GetFAQ)
	}

	if tools != nil && cfg.MCP.Enabled {
		mcpHandler := gin.WrapH(tools.Handler())
		router.POST(cfg.MCP.Path, mcpHandler)
		router.GET(cfg.MCP.Path, mcpHandler)
		router.DELETE(cfg.MCP.Path, mcpHandler)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
