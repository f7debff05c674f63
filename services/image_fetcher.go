// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/shared"
)

const (
	defaultFileName = "upload.png"
	defaultMime     = "image/png"
)

type ImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewImageFetcher(client *http.Client, maxBytes int64) *ImageFetcher {
	return &ImageFetcher{client: client, maxBytes: maxBytes}
}

func fileNameFromURL(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return defaultFileName
	}
	return name
}

func mediaType(contentType string) string {
	if contentType == "" {
		return defaultMime
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return defaultMime
	}
	return mt
}

func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) (dtos.ImageFile, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return dtos.ImageFile{}, fmt.Errorf("%w: imageUrl must be an http or https url", shared.ErrMissingInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return dtos.ImageFile{}, fmt.Errorf("could not create image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return dtos.ImageFile{}, fmt.Errorf("could not fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return dtos.ImageFile{}, fmt.Errorf("could not fetch image: unexpected status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return dtos.ImageFile{}, fmt.Errorf("could not read image body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return dtos.ImageFile{}, shared.ErrImageTooLarge
	}

	file := dtos.ImageFile{
		Name: fileNameFromURL(u),
		Mime: mediaType(resp.Header.Get("Content-Type")),
		Data: data,
	}
	if resp.ContentLength > 0 {
		file.SizeBytes = shared.Ptr(resp.ContentLength)
	}
	return file, nil
}
