// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	BackendS3   = "s3"
	BackendFile = "file"
	BackendNone = "none"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/avif": ".avif",
	"image/gif":  ".gif",
	"image/tiff": ".tiff",
	"image/bmp":  ".bmp",
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// ObjectKey builds the blob key of an uploaded design: uploads/YYYY/MM/<uuid>-<slug><ext>.
func ObjectKey(fileName, contentType string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	if ext == "" {
		ext = extensionFor(contentType)
	}

	name := slug.Make(base)
	if name == "" {
		name = "upload"
	}
	return fmt.Sprintf("uploads/%04d/%02d/%s-%s%s", now.Year(), int(now.Month()), uuid.NewString(), name, ext)
}

// NewFromEnv creates the blob store selected by BLOB_BACKEND.
func NewFromEnv(ctx context.Context) (shared.BlobStore, error) {
	switch strings.ToLower(shared.GetEnvOrDefault("BLOB_BACKEND", BackendNone)) {
	case BackendS3:
		return NewS3Store(ctx, S3Config{
			Bucket:        os.Getenv("S3_BUCKET"),
			Region:        os.Getenv("S3_REGION"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			PublicBaseURL: os.Getenv("BLOB_PUBLIC_URL"),
		})
	case BackendFile:
		return NewFileStore(shared.GetEnvOrDefault("BLOB_DIR", "./uploads"), os.Getenv("BLOB_PUBLIC_URL"))
	case BackendNone:
		return NoopStore{}, nil
	}
	return nil, fmt.Errorf("unknown blob backend %q", os.Getenv("BLOB_BACKEND"))
}

// NoopStore drops uploads. Checks still run, the report just has no stored url.
type NoopStore struct{}

func (NoopStore) Put(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", nil
}

func publicURL(baseURL, key string) string {
	if baseURL == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + "/" + key
}
