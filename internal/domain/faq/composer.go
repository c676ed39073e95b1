package faq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/faq-assistant/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/faq-assistant/pkg/errors"
)

// Composer rewrites a suggested FAQ answer into a reply for the asked question.
type Composer interface {
	Compose(ctx context.Context, question, suggestedAnswer string) (string, error)
}

// ChatClient is the chat-completion capability the composer needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type llmComposer struct {
	cfg    Config
	client ChatClient
	logger *slog.Logger
}

// NewComposer builds a Composer backed by a hosted chat model. Calls are never
// retried or cached.
func NewComposer(cfg Config, client ChatClient, logger *slog.Logger) Composer {
	return &llmComposer{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "faq.composer"),
	}
}

func (c *llmComposer) Compose(ctx context.Context, question, suggestedAnswer string) (string, error) {
	if c.cfg.ComposeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ComposeTimeout)
		defer cancel()
	}

	prompt := strings.TrimSpace(c.cfg.Prompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}
	resp, err := c.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatgpt.Message{
			{Role: chatgpt.RoleSystem, Content: prompt},
			{Role: chatgpt.RoleUser, Content: buildUserPrompt(question, suggestedAnswer)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.Wrap(apperrors.CodeComposer, "composer timed out", err)
		}
		return "", apperrors.Wrap(apperrors.CodeComposer, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.Wrap(apperrors.CodeComposer, "chat completion returned no choices", nil)
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", apperrors.Wrap(apperrors.CodeComposer, "chat completion response empty", nil)
	}
	if !resp.Usage.IsZero() {
		c.logger.Debug("faq answer composed", "prompt_tokens", resp.Usage.PromptTokens, "completion_tokens", resp.Usage.CompletionTokens, "total_tokens", resp.Usage.TotalTokens)
	}
	return answer, nil
}

func buildUserPrompt(question, suggestedAnswer string) string {
	return fmt.Sprintf("Q: %s\nSuggested answer: %s", question, suggestedAnswer)
}
