package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vibetravel/vibetravel/internal/config"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *OpenRouterService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewOpenRouterService(config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testPrompt() Prompt {
	return Prompt{
		Messages: []Message{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "plan a trip"},
		},
		Model: "test-model",
	}
}

func TestNewOpenRouterServiceRequiresKey(t *testing.T) {
	if _, err := NewOpenRouterService(config.OpenRouterConfig{}); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestGenerateCompletion(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"model": "test-model",
			"choices": [{"finish_reason": "stop", "message": {"content": "Day 1: explore"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
		}`))
	})

	completion, err := svc.GenerateCompletion(context.Background(), testPrompt())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if completion.Text != "Day 1: explore" {
		t.Fatalf("unexpected text %q", completion.Text)
	}
	if completion.Model != "test-model" {
		t.Fatalf("unexpected model %q", completion.Model)
	}
	if completion.Usage.TotalTokens != 30 {
		t.Fatalf("unexpected usage %+v", completion.Usage)
	}
}

func TestGenerateCompletionRateLimited(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{}`))
	})

	if _, err := svc.GenerateCompletion(context.Background(), testPrompt()); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestGenerateCompletionServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{}`))
	})

	if _, err := svc.GenerateCompletion(context.Background(), testPrompt()); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestGenerateCompletionBackendError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "bad model", "code": 400}}`))
	})

	if _, err := svc.GenerateCompletion(context.Background(), testPrompt()); !errors.Is(err, ErrModel) {
		t.Fatalf("expected ErrModel, got %v", err)
	}
}

func TestGenerateCompletionEmptyChoices(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model": "test-model", "choices": []}`))
	})

	if _, err := svc.GenerateCompletion(context.Background(), testPrompt()); !errors.Is(err, ErrModel) {
		t.Fatalf("expected ErrModel, got %v", err)
	}
}

func TestGenerateCompletionTimeout(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := svc.GenerateCompletion(ctx, testPrompt()); !errors.Is(err, ErrServiceTimeout) {
		t.Fatalf("expected ErrServiceTimeout, got %v", err)
	}
}

func TestGenerateCompletionUnreachable(t *testing.T) {
	svc, err := NewOpenRouterService(config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, errGen := svc.GenerateCompletion(context.Background(), testPrompt()); !errors.Is(errGen, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", errGen)
	}
}

func TestMockServiceEchoesUserMessage(t *testing.T) {
	mock := &MockService{}
	completion, err := mock.GenerateCompletion(context.Background(), testPrompt())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if completion.Model != "mock" {
		t.Fatalf("unexpected model %q", completion.Model)
	}
	if want := "Based on: plan a trip"; !strings.Contains(completion.Text, want) {
		t.Fatalf("expected text to contain %q", want)
	}
}

func TestMockServiceHonoursContext(t *testing.T) {
	mock := &MockService{Delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := mock.GenerateCompletion(ctx, testPrompt()); !errors.Is(err, ErrServiceTimeout) {
		t.Fatalf("expected ErrServiceTimeout, got %v", err)
	}
}
