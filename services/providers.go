// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/common"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/boxer32/waykeeper-brand-hub/storage"
	"go.uber.org/fx"
)

const (
	imageCacheSize       = 16
	imageCacheEntryBytes = maxVisionBytes
	imageCacheTotalBytes = 64 * 1024 * 1024
	imageCacheTTL        = 10 * time.Minute
	imageFetchTTL        = 30 * time.Second
)

func NewBrandConfig() (brand.Config, error) {
	return brand.Load(os.Getenv("BRAND_CONFIG_FILE"))
}

func NewBlobStore() (shared.BlobStore, error) {
	return storage.NewFromEnv(context.Background())
}

// NewURLImageFetcher fetches design images through a cached, instrumented client.
func NewURLImageFetcher() shared.ImageFetcher {
	cache := common.NewCacheTransport(imageCacheSize, imageCacheTTL, imageCacheEntryBytes, imageCacheTotalBytes)
	return NewImageFetcher(common.NewCachedHTTPClient(cache, imageFetchTTL), shared.MaxUploadBytes())
}

// NewVoiceToneRunner uses the hosted assistant when ASSISTANT_ID is set and
// falls back to a plain completion of the chat model otherwise.
func NewVoiceToneRunner(assistants shared.AssistantClient, model shared.ChatModel) shared.VoiceToneRunner {
	if assistantID := os.Getenv("ASSISTANT_ID"); assistantID != "" {
		slog.Info("voice tone analysis uses assistant", "assistant", assistantID)
		return NewAssistantRunner(assistants, assistantID)
	}
	slog.Info("ASSISTANT_ID not set, voice tone analysis uses chat model", "model", model.Name())
	return NewChatRunner(model)
}

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(NewBrandConfig),
	fx.Provide(NewBlobStore),
	fx.Provide(NewURLImageFetcher),
	fx.Provide(fx.Annotate(NewImageInspector, fx.As(new(shared.ImageInspector)))),
	fx.Provide(fx.Annotate(NewComplianceService, fx.As(new(shared.ComplianceService)))),
	fx.Provide(NewVoiceToneRunner),
	fx.Provide(fx.Annotate(NewVoiceToneService, fx.As(new(shared.VoiceToneService)))),
)
