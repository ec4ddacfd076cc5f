package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vibetravel/vibetravel/internal/config"

	log "github.com/sirupsen/logrus"
)

// OpenRouterService calls the OpenRouter chat-completions API.
type OpenRouterService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewOpenRouterService constructs an OpenRouterService from config.
func NewOpenRouterService(cfg config.OpenRouterConfig) (*OpenRouterService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openrouter: api key is required")
	}
	return &OpenRouterService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		timeout: cfg.Timeout,
	}, nil
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// chatResponse is the subset of the chat-completions response we read.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// GenerateCompletion requests one completion, translating transport and
// backend failures into the package error taxonomy.
func (s *OpenRouterService) GenerateCompletion(ctx context.Context, prompt Prompt) (Completion, error) {
	body := chatRequest{
		Model:    prompt.Model,
		Messages: prompt.Messages,
	}
	if prompt.MaxTokens > 0 {
		body.MaxTokens = prompt.MaxTokens
	}
	if prompt.HasTemperature {
		temp := prompt.Temperature
		body.Temperature = &temp
	}

	payload, errMarshal := json.Marshal(body)
	if errMarshal != nil {
		return Completion{}, fmt.Errorf("openrouter: marshal request: %w", errMarshal)
	}

	req, errReq := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if errReq != nil {
		return Completion{}, fmt.Errorf("openrouter: build request: %w", errReq)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	log.Infof("openrouter: requesting completion model=%s messages=%d", prompt.Model, len(prompt.Messages))

	resp, errDo := s.client.Do(req)
	if errDo != nil {
		return Completion{}, s.translateTransportError(errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	var parsed chatResponse
	if errDecode := json.NewDecoder(resp.Body).Decode(&parsed); errDecode != nil {
		return Completion{}, fmt.Errorf("%w: decode response: %v", ErrModel, errDecode)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= http.StatusInternalServerError:
		return Completion{}, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		msg := ""
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return Completion{}, fmt.Errorf("%w: status %d: %s", ErrModel, resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return Completion{}, fmt.Errorf("%w: empty response", ErrModel)
	}

	log.Infof("openrouter: completion done model=%s tokens=%d finish=%s",
		parsed.Model, parsed.Usage.TotalTokens, parsed.Choices[0].FinishReason)

	return Completion{
		Text:  parsed.Choices[0].Message.Content,
		Model: parsed.Model,
		Usage: parsed.Usage,
	}, nil
}

// translateTransportError maps HTTP client failures onto the package
// error taxonomy: timeouts stay timeouts, everything reachable-related
// becomes unavailable.
func (s *OpenRouterService) translateTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %v", ErrServiceTimeout, s.timeout, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("%w after %s: %v", ErrServiceTimeout, s.timeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w after %s: %v", ErrServiceTimeout, s.timeout, err)
	}
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}
