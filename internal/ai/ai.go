// Package ai defines the completion-service boundary used by plan
// generation, with an OpenRouter-backed client and a mock for
// development and tests.
package ai

import (
	"context"
	"errors"
)

// Message is a single message in a chat-completion conversation.
type Message struct {
	Role    string `json:"role"` // "system" or "user".
	Content string `json:"content"`
}

// Prompt is a complete request for one completion.
type Prompt struct {
	Messages    []Message
	Model       string
	MaxTokens   int     // 0 means backend default.
	Temperature float64 // Ignored unless HasTemperature.

	HasTemperature bool
}

// Usage reports token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the result of one completion request.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// CompletionService generates text completions from prompts.
type CompletionService interface {
	GenerateCompletion(ctx context.Context, prompt Prompt) (Completion, error)
}

// Failure taxonomy of the completion boundary. Callers distinguish the
// three cases with errors.Is; everything else is wrapped in ErrModel.
var (
	ErrServiceTimeout     = errors.New("ai service request timed out")
	ErrServiceUnavailable = errors.New("ai service is currently unavailable")
	ErrModel              = errors.New("ai model request failed")
)
