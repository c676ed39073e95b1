package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

var catalogue = []faq.Entry{
	{ID: "account-password", Question: "How do I reset my password?", Answer: "Use the forgot password link.", Category: "account", Tags: []string{"login"}},
	{ID: "shipping-time", Question: "How long does shipping take?", Answer: "3-5 business days.", Category: "shipping"},
	{ID: "billing-refund", Question: "Can I get a refund?", Answer: "Within 14 days.", Category: "Billing", Tags: []string{"money"}},
}

func TestToolsList(t *testing.T) {
	srv := newServerUnderTest(t)

	raw := handle(t, srv, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	var resp struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))

	names := make([]string, 0, len(resp.Result.Tools))
	for _, tool := range resp.Result.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{ToolSearchFAQs, ToolFAQsByCategory, ToolCategories, ToolFAQByID}, names)
}

func TestSearchFAQsTool(t *testing.T) {
	srv := newServerUnderTest(t)

	result := callTool(t, srv, ToolSearchFAQs, map[string]any{"keyword": "LOGIN"})
	require.False(t, result.IsError)
	var entries []faq.Entry
	require.NoError(t, json.Unmarshal([]byte(result.text(t)), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "account-password", entries[0].ID)

	result = callTool(t, srv, ToolSearchFAQs, map[string]any{"keyword": "   "})
	require.True(t, result.IsError)
	require.Contains(t, result.text(t), "keyword cannot be empty")

	result = callTool(t, srv, ToolSearchFAQs, map[string]any{})
	require.True(t, result.IsError)
}

func TestFAQsByCategoryTool(t *testing.T) {
	srv := newServerUnderTest(t)

	result := callTool(t, srv, ToolFAQsByCategory, map[string]any{"category": "billing"})
	require.False(t, result.IsError)
	var entries []faq.Entry
	require.NoError(t, json.Unmarshal([]byte(result.text(t)), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "billing-refund", entries[0].ID)

	result = callTool(t, srv, ToolFAQsByCategory, map[string]any{"category": "unknown"})
	require.False(t, result.IsError)
	require.JSONEq(t, `[]`, result.text(t))

	result = callTool(t, srv, ToolFAQsByCategory, map[string]any{"category": ""})
	require.True(t, result.IsError)
}

func TestCategoriesTool(t *testing.T) {
	srv := newServerUnderTest(t)

	result := callTool(t, srv, ToolCategories, nil)
	require.False(t, result.IsError)
	var categories []string
	require.NoError(t, json.Unmarshal([]byte(result.text(t)), &categories))
	require.Equal(t, []string{"account", "shipping", "Billing"}, categories)
}

func TestFAQByIDTool(t *testing.T) {
	srv := newServerUnderTest(t)

	result := callTool(t, srv, ToolFAQByID, map[string]any{"id": "shipping-time"})
	require.False(t, result.IsError)
	var entry faq.Entry
	require.NoError(t, json.Unmarshal([]byte(result.text(t)), &entry))
	require.Equal(t, catalogue[1], entry)

	result = callTool(t, srv, ToolFAQByID, map[string]any{"id": "missing"})
	require.True(t, result.IsError)
	require.Contains(t, result.text(t), "faq missing not found")

	result = callTool(t, srv, ToolFAQByID, map[string]any{"id": 7})
	require.True(t, result.IsError)
}

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func (r toolResult) text(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.Content)
	require.Equal(t, "text", r.Content[0].Type)
	return r.Content[0].Text
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) toolResult {
	t.Helper()
	params := map[string]any{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  params,
	})
	require.NoError(t, err)

	var resp struct {
		Result *toolResult      `json:"result"`
		Error  *json.RawMessage `json:"error"`
	}
	require.NoError(t, json.Unmarshal(handle(t, srv, string(msg)), &resp))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
	return *resp.Result
}

func handle(t *testing.T, srv *Server, msg string) []byte {
	t.Helper()
	reply := srv.MCPServer().HandleMessage(context.Background(), json.RawMessage(msg))
	raw, err := json.Marshal(reply)
	require.NoError(t, err)
	return raw
}

func newServerUnderTest(t *testing.T) *Server {
	t.Helper()
	collection, err := faq.NewCollection(catalogue)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(faq.NewService(faq.Config{}, collection, nil, nil, logger), logger)
}
