// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package shared

import (
	"context"
	"errors"
	"io"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
)

var (
	// ErrToolLoopExceeded is returned when the model keeps requesting tools past the iteration cap.
	ErrToolLoopExceeded = errors.New("tool loop exceeded")
	// ErrInvalidAIResponse is returned when the model output is not the requested JSON.
	ErrInvalidAIResponse = errors.New("could not parse model response")
	ErrMissingInput      = errors.New("missing input")
	ErrUnsupportedImage  = errors.New("unsupported image")
	ErrImageTooLarge     = errors.New("image exceeds the upload limit")
)

// ChatModel is a vision capable language model with function calling.
type ChatModel interface {
	Complete(ctx context.Context, req dtos.ChatRequest) (dtos.ChatResponse, error)
	Name() string
}

// BlobStore persists uploaded images and returns a url they can be retrieved from.
// An empty url with a nil error means the store does not publish objects.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (dtos.ImageFile, error)
}

type ImageInspector interface {
	Inspect(data []byte) (dtos.ImageMeta, error)
	PrepareForVision(data []byte, mime string) ([]byte, string, error)
}

// AssistantClient is the thread/run api of a hosted assistant.
type AssistantClient interface {
	CreateThread(ctx context.Context) (string, error)
	AddUserMessage(ctx context.Context, threadID, content string) error
	CreateRun(ctx context.Context, threadID string, req dtos.RunRequest) (dtos.Run, error)
	GetRun(ctx context.Context, threadID, runID string) (dtos.Run, error)
	// LatestAssistantMessage returns the text of the newest assistant message or an empty string.
	LatestAssistantMessage(ctx context.Context, threadID string) (string, error)
}

type VoiceToneRunner interface {
	Run(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResult, error)
}

type ComplianceService interface {
	Check(ctx context.Context, input dtos.CheckInput) (dtos.BrandImageReport, error)
}

type VoiceToneService interface {
	Analyze(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResponse, error)
}
