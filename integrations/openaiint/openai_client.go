// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package openaiint

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/monitoring"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o"

	maxRetries = 3
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient replaces the default instrumented client, mainly for tests.
	HTTPClient *http.Client
}

type Client struct {
	apiKey      string
	baseURL     string
	model       string
	timeout     time.Duration
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
}

func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
		backoff:     exponentialBackoff,
	}
}

func (c *Client) Name() string {
	return "openai/" + c.model
}

func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}

func errorMessage(body []byte) string {
	var errBody apiErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != nil {
		return errBody.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// do sends a json request and decodes the json response into out.
// Rate limits and server errors are retried with exponential backoff.
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, in, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("openai api key not configured")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			monitoring.ModelRequestRetries.WithLabelValues("openai").Inc()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("could not create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		resBody, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("could not read response: %w", err)
			continue
		}

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			apiErr := &APIError{StatusCode: res.StatusCode, Message: errorMessage(resBody)}
			if retryable(res.StatusCode) {
				slog.Warn("openai request failed, retrying", "status", res.StatusCode, "attempt", attempt+1)
				lastErr = apiErr
				continue
			}
			return apiErr
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("could not parse response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func dataURL(img dtos.ImageInput) string {
	mime := img.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(img.Data))
}

func toWireMessage(m dtos.ChatMessage) chatMessage {
	msg := chatMessage{
		Role:       string(m.Role),
		ToolCallID: m.ToolCallID,
	}

	switch {
	case len(m.Images) > 0:
		parts := []contentPart{{Type: "text", Text: m.Content}}
		for _, img := range m.Images {
			parts = append(parts, contentPart{
				Type:     "image_url",
				ImageURL: &imageURL{URL: dataURL(img), Detail: img.Detail},
			})
		}
		msg.Content = parts
	case m.Role == dtos.ChatRoleAssistant && len(m.ToolCalls) > 0 && m.Content == "":
		msg.Content = nil
	default:
		msg.Content = m.Content
	}

	for _, call := range m.ToolCalls {
		args := string(call.Arguments)
		if args == "" {
			args = "{}"
		}
		msg.ToolCalls = append(msg.ToolCalls, toolCall{
			ID:       call.ID,
			Type:     "function",
			Function: functionCall{Name: call.Name, Arguments: args},
		})
	}
	return msg
}

func toWireTools(defs []dtos.ToolDefinition) []tool {
	if len(defs) == 0 {
		return nil
	}
	res := make([]tool, len(defs))
	for i, d := range defs {
		res[i] = tool{
			Type: "function",
			Function: functionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		}
	}
	return res
}

func (c *Client) buildRequest(req dtos.ChatRequest) chatCompletionRequest {
	temperature := req.Temperature
	body := chatCompletionRequest{
		Model:       c.model,
		Tools:       toWireTools(req.Tools),
		Temperature: &temperature,
	}
	if req.JSONResponse {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, toWireMessage(m))
	}
	return body
}

// Complete runs a single chat completion.
func (c *Client) Complete(ctx context.Context, req dtos.ChatRequest) (dtos.ChatResponse, error) {
	start := time.Now()

	var res chatCompletionResponse
	err := c.do(ctx, http.MethodPost, "/chat/completions", nil, c.buildRequest(req), &res)
	monitoring.ObserveModelRequest("openai", start, err)
	if err != nil {
		return dtos.ChatResponse{}, err
	}

	if len(res.Choices) == 0 {
		return dtos.ChatResponse{}, fmt.Errorf("no completion returned")
	}

	msg := res.Choices[0].Message
	out := dtos.ChatResponse{}
	if msg.Content != nil {
		out.Content = *msg.Content
	}
	for _, call := range msg.ToolCalls {
		if call.Type != "" && call.Type != "function" {
			continue
		}
		out.ToolCalls = append(out.ToolCalls, dtos.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}

	slog.Debug("openai completion finished", "model", c.model, "toolCalls", len(out.ToolCalls), "totalTokens", res.Usage.TotalTokens, "duration", time.Since(start))
	return out, nil
}
