// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package geminiint

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/monitoring"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Name() string {
	return "gemini/" + c.model
}

func (c *Client) Complete(ctx context.Context, req dtos.ChatRequest) (dtos.ChatResponse, error) {
	start := time.Now()

	contents, system, err := toContents(req.Messages)
	if err != nil {
		return dtos.ChatResponse{}, err
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, buildConfig(req, system))
	monitoring.ObserveModelRequest("gemini", start, err)
	if err != nil {
		return dtos.ChatResponse{}, fmt.Errorf("gemini request failed: %w", err)
	}

	out, err := fromResponse(resp)
	if err != nil {
		return dtos.ChatResponse{}, err
	}
	slog.Debug("gemini completion finished", "model", c.model, "toolCalls", len(out.ToolCalls), "duration", time.Since(start))
	return out, nil
}

func buildConfig(req dtos.ChatRequest, system *genai.Content) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr(float32(req.Temperature)),
	}

	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:                 t.Name,
				Description:          t.Description,
				ParametersJsonSchema: t.Parameters,
			})
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	} else if req.JSONResponse {
		// the api rejects a json mime type together with function calling,
		// with tools the prompt alone asks for json
		config.ResponseMIMEType = "application/json"
	}
	return config
}

// toolResponse turns a tool result into the object the function response part expects.
func toolResponse(content string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil && obj != nil {
		return obj
	}
	var value any
	if err := json.Unmarshal([]byte(content), &value); err == nil {
		return map[string]any{"output": value}
	}
	return map[string]any{"output": content}
}

// toContents converts the conversation. System messages become the system instruction,
// consecutive tool results are merged into one user turn.
func toContents(messages []dtos.ChatMessage) ([]*genai.Content, *genai.Content, error) {
	var system *genai.Content
	contents := []*genai.Content{}

	for _, m := range messages {
		switch m.Role {
		case dtos.ChatRoleSystem:
			if system == nil {
				system = genai.NewContentFromText(m.Content, genai.RoleUser)
			} else {
				system.Parts = append(system.Parts, genai.NewPartFromText(m.Content))
			}
		case dtos.ChatRoleUser:
			parts := []*genai.Part{}
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, img := range m.Images {
				parts = append(parts, genai.NewPartFromBytes(img.Data, img.MimeType))
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
		case dtos.ChatRoleAssistant:
			parts := []*genai.Part{}
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, call := range m.ToolCalls {
				args := map[string]any{}
				if len(call.Arguments) > 0 {
					if err := json.Unmarshal(call.Arguments, &args); err != nil {
						return nil, nil, fmt.Errorf("could not parse arguments of tool call %s: %w", call.ID, err)
					}
				}
				part := genai.NewPartFromFunctionCall(call.Name, args)
				part.FunctionCall.ID = call.ID
				parts = append(parts, part)
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
		case dtos.ChatRoleTool:
			part := genai.NewPartFromFunctionResponse(m.Name, toolResponse(m.Content))
			part.FunctionResponse.ID = m.ToolCallID

			last := len(contents) - 1
			if last >= 0 && contents[last].Role == string(genai.RoleUser) && isFunctionResponseTurn(contents[last]) {
				contents[last].Parts = append(contents[last].Parts, part)
				continue
			}
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))
		default:
			return nil, nil, fmt.Errorf("unsupported chat role %q", m.Role)
		}
	}
	return contents, system, nil
}

func isFunctionResponseTurn(content *genai.Content) bool {
	for _, p := range content.Parts {
		if p.FunctionResponse == nil {
			return false
		}
	}
	return len(content.Parts) > 0
}

func fromResponse(resp *genai.GenerateContentResponse) (dtos.ChatResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return dtos.ChatResponse{}, fmt.Errorf("no completion returned")
	}

	out := dtos.ChatResponse{Content: resp.Text()}
	for _, call := range resp.FunctionCalls() {
		args := []byte("{}")
		if call.Args != nil {
			var err error
			if args, err = json.Marshal(call.Args); err != nil {
				return dtos.ChatResponse{}, fmt.Errorf("could not encode arguments of %s: %w", call.Name, err)
			}
		}
		id := call.ID
		if id == "" {
			// the tool loop pairs results by id
			id = "call_" + uuid.NewString()
		}
		out.ToolCalls = append(out.ToolCalls, dtos.ToolCall{ID: id, Name: call.Name, Arguments: args})
	}
	return out, nil
}
