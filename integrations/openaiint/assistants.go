// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package openaiint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
)

var assistantsHeaders = map[string]string{"OpenAI-Beta": "assistants=v2"}

// AssistantsClient talks to the threads and runs endpoints of the assistants api.
type AssistantsClient struct {
	*Client
}

func NewAssistantsClient(client *Client) *AssistantsClient {
	return &AssistantsClient{Client: client}
}

func (c *AssistantsClient) CreateThread(ctx context.Context) (string, error) {
	var t thread
	if err := c.do(ctx, http.MethodPost, "/threads", assistantsHeaders, map[string]any{}, &t); err != nil {
		return "", fmt.Errorf("could not create thread: %w", err)
	}
	return t.ID, nil
}

func (c *AssistantsClient) AddUserMessage(ctx context.Context, threadID, content string) error {
	path := fmt.Sprintf("/threads/%s/messages", url.PathEscape(threadID))
	if err := c.do(ctx, http.MethodPost, path, assistantsHeaders, createMessageRequest{Role: "user", Content: content}, nil); err != nil {
		return fmt.Errorf("could not add message to thread: %w", err)
	}
	return nil
}

func (c *AssistantsClient) CreateRun(ctx context.Context, threadID string, req dtos.RunRequest) (dtos.Run, error) {
	body := createRunRequest{
		AssistantID:  req.AssistantID,
		Instructions: req.Instructions,
	}
	if req.JSONResponse {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var run dtos.Run
	path := fmt.Sprintf("/threads/%s/runs", url.PathEscape(threadID))
	if err := c.do(ctx, http.MethodPost, path, assistantsHeaders, body, &run); err != nil {
		return dtos.Run{}, fmt.Errorf("could not create run: %w", err)
	}
	return run, nil
}

func (c *AssistantsClient) GetRun(ctx context.Context, threadID, runID string) (dtos.Run, error) {
	var run dtos.Run
	path := fmt.Sprintf("/threads/%s/runs/%s", url.PathEscape(threadID), url.PathEscape(runID))
	if err := c.do(ctx, http.MethodGet, path, assistantsHeaders, nil, &run); err != nil {
		return dtos.Run{}, fmt.Errorf("could not get run: %w", err)
	}
	return run, nil
}

func (c *AssistantsClient) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	var list threadMessageList
	path := fmt.Sprintf("/threads/%s/messages?order=desc&limit=5", url.PathEscape(threadID))
	if err := c.do(ctx, http.MethodGet, path, assistantsHeaders, nil, &list); err != nil {
		return "", fmt.Errorf("could not list thread messages: %w", err)
	}

	for _, msg := range list.Data {
		if msg.Role != "assistant" || len(msg.Content) == 0 {
			continue
		}
		// only the first content block is considered, images and files are ignored
		first := msg.Content[0]
		if first.Type == "text" && first.Text != nil {
			return first.Text.Value, nil
		}
		return "", nil
	}
	return "", nil
}
