package ai

import (
	"context"
	"fmt"
	"time"
)

// MockService returns a canned travel plan after a short delay. It backs
// development setups without an OpenRouter API key.
type MockService struct {
	Delay time.Duration
}

// NewMockService constructs a MockService with a one-second delay.
func NewMockService() *MockService {
	return &MockService{Delay: time.Second}
}

// GenerateCompletion returns a fixed plan derived from the last user message.
func (m *MockService) GenerateCompletion(ctx context.Context, prompt Prompt) (Completion, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return Completion{}, fmt.Errorf("%w: %v", ErrServiceTimeout, ctx.Err())
		}
	}

	userMsg := ""
	for i := len(prompt.Messages) - 1; i >= 0; i-- {
		if prompt.Messages[i].Role == "user" {
			userMsg = prompt.Messages[i].Content
			break
		}
	}

	text := fmt.Sprintf(`# Travel Plan
Based on: %s

## Day 1
* Morning: Visit the main attractions
* Afternoon: Cultural exploration
* Evening: Local dining experience

## Day 2
* Morning: Guided tour
* Afternoon: Free time for shopping
* Evening: Entertainment

## Day 3
* Morning: Relaxation
* Afternoon: Museum visit
* Evening: Farewell dinner

Travel Tips:
- Best time to visit: Spring/Fall
- Local transportation available`, userMsg)

	return Completion{
		Text:  text,
		Model: "mock",
		Usage: Usage{PromptTokens: len(userMsg) / 4, CompletionTokens: len(text) / 4, TotalTokens: (len(userMsg) + len(text)) / 4},
	}, nil
}
