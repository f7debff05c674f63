package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/mocks"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestVoiceToneAnalyze(t *testing.T) {
	req := dtos.VoiceToneRequest{Scenario: "FAQ Answer", Audience: "Family", UserText: "hello"}
	body := `{"scenario": "FAQ Answer", "audience": "Family", "userText": "hello"}`

	t.Run("should return the analysis", func(t *testing.T) {
		svc := mocks.NewVoiceToneService(t)
		svc.On("Analyze", mock.Anything, req).Return(dtos.VoiceToneResponse{
			Success:  true,
			Analysis: json.RawMessage(`{"score":88}`),
			ThreadID: "thread_1",
		}, nil)

		ctx, rec := newJSONContext(body)
		require.NoError(t, NewVoiceToneController(svc).Analyze(ctx))

		assert.Equal(t, 200, rec.Code)
		assert.JSONEq(t, `{"success":true,"analysis":{"score":88},"threadId":"thread_1"}`, rec.Body.String())
	})

	t.Run("should annotate the request span", func(t *testing.T) {
		svc := mocks.NewVoiceToneService(t)
		svc.On("Analyze", mock.Anything, req).Return(dtos.VoiceToneResponse{
			Success:  true,
			Analysis: json.RawMessage(`{}`),
			ThreadID: "thread_1",
		}, nil)

		ctx, _ := newJSONContext(body)
		recorder, end := withRecordedSpan(t, ctx)
		require.NoError(t, NewVoiceToneController(svc).Analyze(ctx))
		end()

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		attrs := spans[0].Attributes()
		assert.Contains(t, attrs, attribute.String("brandhub.voice_tone.scenario", "FAQ Answer"))
		assert.Contains(t, attrs, attribute.String("brandhub.voice_tone.thread", "thread_1"))
	})

	t.Run("should return 400 if a field is missing", func(t *testing.T) {
		svc := mocks.NewVoiceToneService(t)

		ctx, _ := newJSONContext(`{"scenario": "FAQ Answer", "userText": "hello"}`)
		he := requireHTTPError(t, NewVoiceToneController(svc).Analyze(ctx), 400)
		assert.Equal(t, "Missing required fields: scenario, audience, userText", he.Message)
	})

	t.Run("should return 400 if the body is not json", func(t *testing.T) {
		svc := mocks.NewVoiceToneService(t)

		ctx, _ := newJSONContext(`scenario=x`)
		requireHTTPError(t, NewVoiceToneController(svc).Analyze(ctx), 400)
	})

	t.Run("should return 400 for blank fields rejected by the service", func(t *testing.T) {
		svc := mocks.NewVoiceToneService(t)
		blank := dtos.VoiceToneRequest{Scenario: "FAQ Answer", Audience: " ", UserText: "hello"}
		svc.On("Analyze", mock.Anything, blank).Return(dtos.VoiceToneResponse{}, fmt.Errorf("%w: audience", shared.ErrMissingInput))

		ctx, _ := newJSONContext(`{"scenario": "FAQ Answer", "audience": " ", "userText": "hello"}`)
		requireHTTPError(t, NewVoiceToneController(svc).Analyze(ctx), 400)
	})

	t.Run("should return 500 if the answer cannot be parsed", func(t *testing.T) {
		svc := mocks.NewVoiceToneService(t)
		svc.On("Analyze", mock.Anything, req).Return(dtos.VoiceToneResponse{}, shared.ErrInvalidAIResponse)

		ctx, _ := newJSONContext(body)
		he := requireHTTPError(t, NewVoiceToneController(svc).Analyze(ctx), 500)
		assert.Equal(t, "Failed to parse AI response", he.Message)
	})

	t.Run("should return 500 with details on other errors", func(t *testing.T) {
		svc := mocks.NewVoiceToneService(t)
		svc.On("Analyze", mock.Anything, req).Return(dtos.VoiceToneResponse{}, errors.New("assistant run run_1 ended with status failed"))

		ctx, _ := newJSONContext(body)
		he := requireHTTPError(t, NewVoiceToneController(svc).Analyze(ctx), 500)
		assert.Equal(t, dtos.ErrorResponse{
			Error:   "Failed to process voice tone request",
			Details: "assistant run run_1 ended with status failed",
		}, he.Message)
	})
}
