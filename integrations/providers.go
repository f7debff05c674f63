// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package integrations

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/boxer32/waykeeper-brand-hub/integrations/geminiint"
	"github.com/boxer32/waykeeper-brand-hub/integrations/openaiint"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"go.uber.org/fx"
)

func NewOpenAIClient() *openaiint.Client {
	return openaiint.NewClient(openaiint.Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:   os.Getenv("OPENAI_MODEL"),
	})
}

// NewChatModel picks the vision model named by AI_PROVIDER, openai is the default.
func NewChatModel(openai *openaiint.Client) (shared.ChatModel, error) {
	switch strings.ToLower(os.Getenv("AI_PROVIDER")) {
	case "gemini":
		client, err := geminiint.NewClient(context.Background(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			return nil, err
		}
		slog.Info("using chat model", "model", client.Name())
		return client, nil
	}
	slog.Info("using chat model", "model", openai.Name())
	return openai, nil
}

func NewAssistantClient(openai *openaiint.Client) shared.AssistantClient {
	return openaiint.NewAssistantsClient(openai)
}

// Module provides all integration constructors
var Module = fx.Options(
	fx.Provide(NewOpenAIClient),
	fx.Provide(NewChatModel),
	fx.Provide(NewAssistantClient),
)
