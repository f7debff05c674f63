package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) BrandHubClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBrandHubClient(srv.URL+"/", 5*time.Second)
}

func TestBrandHubClient(t *testing.T) {
	t.Run("should upload the file with its metadata", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/check/design-image/", r.URL.Path)

			f, fh, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				return
			}
			data, _ := io.ReadAll(f)
			assert.Equal(t, "banner.png", fh.Filename)
			assert.Equal(t, "image/png", fh.Header.Get("Content-Type"))
			assert.Equal(t, "png bytes", string(data))
			assert.JSONEq(t, `{"width":1920}`, r.FormValue("metadata"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"sections":[],"summary":{"overall_score":90,"pass":true,"severity":"low"},"score":{"overall":90,"weights":{}},"input":{"source":"upload","fileName":"banner.png","mime":"image/png"}}`)) // nolint: errcheck
		})

		report, err := c.CheckDesignImage(context.Background(), "banner.png", "image/png", []byte("png bytes"), &dtos.ClientMetadata{Width: 1920})
		require.NoError(t, err)
		assert.Equal(t, 90, report.Score.Overall)
		assert.True(t, report.Summary.Pass)
	})

	t.Run("should send image urls as json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req dtos.CheckImageURLRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "https://images.test/a.jpg", req.ImageURL)
			assert.Equal(t, "Hero.jpg", req.Name)
			w.Write([]byte(`{"sections":[],"summary":{},"score":{"overall":40},"input":{}}`)) // nolint: errcheck
		})

		report, err := c.CheckImageURL(context.Background(), "https://images.test/a.jpg", "Hero.jpg")
		require.NoError(t, err)
		assert.Equal(t, 40, report.Score.Overall)
	})

	t.Run("should return api errors with their details", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(500)
			w.Write([]byte(`{"error":"Failed to process voice tone request","details":"timeout"}`)) // nolint: errcheck
		})

		_, err := c.AnalyzeVoiceTone(context.Background(), dtos.VoiceToneRequest{Scenario: "a", Audience: "b", UserText: "c"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 500, apiErr.Status)
		assert.Equal(t, "Failed to process voice tone request", apiErr.Message)
		assert.Equal(t, "timeout", apiErr.Details)
	})

	t.Run("should fall back to the status text for bodies without an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(502)
		})

		_, err := c.BrandRules(context.Background())
		assert.EqualError(t, err, "brand hub returned 502: Bad Gateway")
	})
}
