// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// APIError is a non 2xx answer of the brand hub api.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("brand hub returned %d: %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("brand hub returned %d: %s", e.Status, e.Message)
}

type BrandHubClient struct {
	httpClient *http.Client

	apiURL string
}

func NewBrandHubClient(apiURL string, timeout time.Duration) BrandHubClient {
	return BrandHubClient{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(&http.Transport{
				MaxIdleConnsPerHost: 10,
			}),
		},
	}
}

func (c BrandHubClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return errors.Wrap(err, "could not create request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody dtos.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Details = errBody.Details
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "could not decode response")
	}
	return nil
}

func (c BrandHubClient) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(b), out)
}

// CheckDesignImage uploads an image as multipart form. meta is optional.
func (c BrandHubClient) CheckDesignImage(ctx context.Context, fileName, contentType string, data []byte, meta *dtos.ClientMetadata) (dtos.BrandImageReport, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return dtos.BrandImageReport{}, err
	}
	if _, err := part.Write(data); err != nil {
		return dtos.BrandImageReport{}, err
	}

	if meta != nil {
		b, err := json.Marshal(meta)
		if err != nil {
			return dtos.BrandImageReport{}, err
		}
		if err := w.WriteField("metadata", string(b)); err != nil {
			return dtos.BrandImageReport{}, err
		}
	}
	if err := w.Close(); err != nil {
		return dtos.BrandImageReport{}, err
	}

	var report dtos.BrandImageReport
	err = c.do(ctx, http.MethodPost, "/api/check/design-image/", w.FormDataContentType(), &body, &report)
	return report, err
}

func (c BrandHubClient) CheckImageURL(ctx context.Context, imageURL, name string) (dtos.BrandImageReport, error) {
	var report dtos.BrandImageReport
	err := c.postJSON(ctx, "/api/check/design-image/", dtos.CheckImageURLRequest{ImageURL: imageURL, Name: name}, &report)
	return report, err
}

func (c BrandHubClient) AnalyzeVoiceTone(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResponse, error) {
	var res dtos.VoiceToneResponse
	err := c.postJSON(ctx, "/api/voice-tone/", req, &res)
	return res, err
}

func (c BrandHubClient) BrandRules(ctx context.Context) (brand.Config, error) {
	var cfg brand.Config
	err := c.do(ctx, http.MethodGet, "/api/brand/", "", nil, &cfg)
	return cfg, err
}
