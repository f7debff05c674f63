// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"errors"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const missingVoiceToneFields = "Missing required fields: scenario, audience, userText"

type VoiceToneController struct {
	voiceToneService shared.VoiceToneService
}

func NewVoiceToneController(voiceToneService shared.VoiceToneService) *VoiceToneController {
	return &VoiceToneController{voiceToneService: voiceToneService}
}

// @Summary Analyze copy text for the brand voice and tone
// @Tags Voice Tone
// @Accept json
// @Produce json
// @Param body body dtos.VoiceToneRequest true "Scenario, audience and the text to analyze"
// @Success 200 {object} dtos.VoiceToneResponse
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 500 {object} dtos.ErrorResponse
// @Router /voice-tone/ [post]
func (c VoiceToneController) Analyze(ctx shared.Context) error {
	var req dtos.VoiceToneRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, missingVoiceToneFields).WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, missingVoiceToneFields).WithInternal(err)
	}

	span := trace.SpanFromContext(ctx.Request().Context())
	span.SetAttributes(
		attribute.String("brandhub.voice_tone.scenario", req.Scenario),
		attribute.String("brandhub.voice_tone.audience", req.Audience),
	)

	res, err := c.voiceToneService.Analyze(ctx.Request().Context(), req)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, shared.ErrMissingInput):
			return echo.NewHTTPError(400, missingVoiceToneFields).WithInternal(err)
		case errors.Is(err, shared.ErrInvalidAIResponse):
			return echo.NewHTTPError(500, "Failed to parse AI response").WithInternal(err)
		}
		return echo.NewHTTPError(500, dtos.ErrorResponse{
			Error:   "Failed to process voice tone request",
			Details: err.Error(),
		}).WithInternal(err)
	}

	span.SetAttributes(attribute.String("brandhub.voice_tone.thread", res.ThreadID))
	return ctx.JSON(200, res)
}
