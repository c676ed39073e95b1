package faq

import "time"

// DefaultPrompt is the system instruction used when none is configured.
const DefaultPrompt = "You are a professional FAQ assistant. Use the provided answer, but make it clear and helpful."

// Config holds runtime knobs for the FAQ service.
type Config struct {
	Model              string
	Temperature        float32
	MaxTokens          int
	Prompt             string
	ComposeTimeout     time.Duration
	TopRecommendations int
}
