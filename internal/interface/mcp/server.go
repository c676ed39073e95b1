package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

const (
	serverName    = "faq-assistant"
	serverVersion = "1.0.0"
)

// Tool names exposed to MCP clients.
const (
	ToolSearchFAQs     = "search_faqs"
	ToolFAQsByCategory = "get_faqs_by_category"
	ToolCategories     = "get_categories"
	ToolFAQByID        = "get_faq_by_id"
)

// Server exposes the FAQ catalogue as MCP tools.
type Server struct {
	faqSvc faq.Service
	mcp    *server.MCPServer
	logger *slog.Logger
}

// NewServer registers the catalogue tools on a fresh MCP server.
func NewServer(faqSvc faq.Service, logger *slog.Logger) *Server {
	s := &Server{
		faqSvc: faqSvc,
		mcp:    server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(false)),
		logger: logger.With("component", "mcp.server"),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Handler serves the tools over the streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcpgo.NewTool(ToolSearchFAQs,
		mcpgo.WithDescription("Search FAQs by keyword in questions, answers or tags."),
		mcpgo.WithString("keyword", mcpgo.Required(), mcpgo.Description("Keyword to search for")),
	), s.searchFAQs)

	s.mcp.AddTool(mcpgo.NewTool(ToolFAQsByCategory,
		mcpgo.WithDescription("List the FAQs of one category, e.g. general, shipping, billing, account, products."),
		mcpgo.WithString("category", mcpgo.Required(), mcpgo.Description("Category name, case-insensitive")),
	), s.faqsByCategory)

	s.mcp.AddTool(mcpgo.NewTool(ToolCategories,
		mcpgo.WithDescription("List every FAQ category."),
	), s.categories)

	s.mcp.AddTool(mcpgo.NewTool(ToolFAQByID,
		mcpgo.WithDescription("Get a single FAQ by its id."),
		mcpgo.WithString("id", mcpgo.Required(), mcpgo.Description("FAQ id")),
	), s.faqByID)
}

func (s *Server) searchFAQs(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	keyword, err := req.RequireString("keyword")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	entries, err := s.faqSvc.Search(ctx, keyword)
	if err != nil {
		return s.toolError(ToolSearchFAQs, err), nil
	}
	return jsonResult(entries)
}

func (s *Server) faqsByCategory(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(category) == "" {
		return mcpgo.NewToolResultError("category cannot be empty"), nil
	}
	return jsonResult(s.faqSvc.List(ctx, category))
}

func (s *Server) categories(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return jsonResult(s.faqSvc.Categories(ctx))
}

func (s *Server) faqByID(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	entry, err := s.faqSvc.Get(ctx, id)
	if err != nil {
		return s.toolError(ToolFAQByID, err), nil
	}
	return jsonResult(entry)
}

// toolError turns a domain failure into an error result. Protocol errors are kept
// for transport problems.
func (s *Server) toolError(tool string, err error) *mcpgo.CallToolResult {
	s.logger.Warn("mcp tool failed", "tool", tool, "code", apperrors.CodeOf(err), "error", err)
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	return mcpgo.NewToolResultError(message)
}

func jsonResult(v any) (*mcpgo.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcpgo.NewToolResultText(string(payload)), nil
}
