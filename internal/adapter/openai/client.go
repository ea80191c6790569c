// Package openai implements domain.ChatCompleter against an OpenAI-compatible
// chat-completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/observability"
)

// Client calls the chat-completions API. Each report action issues exactly
// one request: no retries, no streaming. The API key is supplied per call by
// the end user and is neither stored on the client nor logged.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates a chat-completion client for the given endpoint and
// model. temperature is the sampling temperature sent with every request.
func NewClient(baseURL, model string, temperature float64, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends one synchronous chat-completion request and returns the
// generated text. Failures come back as *AuthError, *NetworkError, or
// *ServiceError.
func (c *Client) Complete(ctx context.Context, apiKey string, messages []domain.ChatMessage) (string, error) {
	if apiKey == "" {
		c.metrics.ReportRequests.WithLabelValues("auth_error").Inc()
		return "", &AuthError{Detail: "no API key provided"}
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ReportRequests.WithLabelValues("network_error").Inc()
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ReportRequests.WithLabelValues("network_error").Inc()
		return "", &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.metrics.ReportRequests.WithLabelValues("auth_error").Inc()
		return "", &AuthError{Status: resp.StatusCode, Detail: errorDetail(respBody)}
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.ReportRequests.WithLabelValues("service_error").Inc()
		return "", &ServiceError{Status: resp.StatusCode, Detail: errorDetail(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		c.metrics.ReportRequests.WithLabelValues("service_error").Inc()
		return "", &ServiceError{Detail: fmt.Sprintf("decode response: %v", err)}
	}
	if len(chatResp.Choices) == 0 {
		c.metrics.ReportRequests.WithLabelValues("service_error").Inc()
		return "", &ServiceError{Detail: "response contained no choices"}
	}

	c.metrics.ReportRequests.WithLabelValues("success").Inc()
	c.metrics.ReportDuration.Observe(time.Since(start).Seconds())
	c.logger.Info("chat completion succeeded",
		"model", c.model,
		"duration", time.Since(start),
		"finish_reason", chatResp.Choices[0].FinishReason,
	)
	return chatResp.Choices[0].Message.Content, nil
}

// errorDetail pulls the human-readable message out of an API error envelope,
// falling back to the raw body.
func errorDetail(body []byte) string {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}
