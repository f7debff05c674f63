// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type ComplianceController struct {
	complianceService shared.ComplianceService
	maxUploadBytes    int64
}

func NewComplianceController(complianceService shared.ComplianceService) *ComplianceController {
	return &ComplianceController{
		complianceService: complianceService,
		maxUploadBytes:    shared.MaxUploadBytes(),
	}
}

func isMultipart(ctx shared.Context) bool {
	return strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func (c ComplianceController) readUpload(ctx shared.Context) (dtos.CheckInput, error) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return dtos.CheckInput{}, echo.NewHTTPError(400, "Missing file").WithInternal(err)
	}
	if c.maxUploadBytes > 0 && fh.Size > c.maxUploadBytes {
		return dtos.CheckInput{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large")
	}

	f, err := fh.Open()
	if err != nil {
		return dtos.CheckInput{}, echo.NewHTTPError(400, "could not read file").WithInternal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return dtos.CheckInput{}, echo.NewHTTPError(400, "could not read file").WithInternal(err)
	}

	input := dtos.CheckInput{
		Source: dtos.InputSourceUpload,
		File: dtos.ImageFile{
			Name:      fh.Filename,
			Mime:      fh.Header.Get(echo.HeaderContentType),
			Data:      data,
			SizeBytes: shared.Ptr(fh.Size),
		},
	}

	// the browser measured metadata is optional, a broken value is ignored
	if raw := ctx.FormValue("metadata"); raw != "" {
		var meta dtos.ClientMetadata
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			slog.Warn("ignoring malformed client metadata", "err", err)
		} else {
			input.ClientMetadata = &meta
		}
	}
	return input, nil
}

func (c ComplianceController) readImageURL(ctx shared.Context) (dtos.CheckInput, error) {
	var req dtos.CheckImageURLRequest
	if err := ctx.Bind(&req); err != nil {
		return dtos.CheckInput{}, echo.NewHTTPError(400, "Invalid request body").WithInternal(err)
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return dtos.CheckInput{}, echo.NewHTTPError(400, "Missing imageUrl")
	}
	if err := shared.V.Struct(req); err != nil {
		return dtos.CheckInput{}, echo.NewHTTPError(400, "Invalid imageUrl").WithInternal(err)
	}

	return dtos.CheckInput{
		Source:   dtos.InputSourceURL,
		ImageURL: strings.TrimSpace(req.ImageURL),
		File:     dtos.ImageFile{Name: req.Name},
	}, nil
}

func complianceHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, shared.ErrMissingInput):
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	case errors.Is(err, shared.ErrImageTooLarge):
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Image too large").WithInternal(err)
	case errors.Is(err, shared.ErrUnsupportedImage):
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported image").WithInternal(err)
	case errors.Is(err, shared.ErrToolLoopExceeded):
		return echo.NewHTTPError(500, "Tool loop exceeded").WithInternal(err)
	case errors.Is(err, shared.ErrInvalidAIResponse):
		return echo.NewHTTPError(500, "Failed to parse AI response").WithInternal(err)
	}
	return echo.NewHTTPError(500, dtos.ErrorResponse{
		Error:   "Failed to check design image",
		Details: err.Error(),
	}).WithInternal(err)
}

// @Summary Check a design image against the brand guidelines
// @Description Accepts either a multipart upload (file, optional metadata json) or a json body with an image url.
// @Description The image is stored, inspected and sent to the vision model, the section scores are weighted server side.
// @Tags Compliance
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param file formData file false "Design image"
// @Param metadata formData string false "Client measured metadata as json"
// @Param body body dtos.CheckImageURLRequest false "Image url request"
// @Success 200 {object} dtos.BrandImageReport
// @Failure 400 {object} dtos.ErrorResponse
// @Failure 413 {object} dtos.ErrorResponse
// @Failure 415 {object} dtos.ErrorResponse
// @Failure 500 {object} dtos.ErrorResponse
// @Router /check/design-image/ [post]
func (c ComplianceController) CheckDesignImage(ctx shared.Context) error {
	var (
		input dtos.CheckInput
		err   error
	)
	if isMultipart(ctx) {
		input, err = c.readUpload(ctx)
	} else {
		input, err = c.readImageURL(ctx)
	}
	if err != nil {
		return err
	}

	span := trace.SpanFromContext(ctx.Request().Context())
	span.SetAttributes(attribute.String("brandhub.check.source", string(input.Source)))

	report, err := c.complianceService.Check(ctx.Request().Context(), input)
	if err != nil {
		span.RecordError(err)
		return complianceHTTPError(err)
	}
	span.SetAttributes(
		attribute.Int("brandhub.check.score", report.Score.Overall),
		attribute.Bool("brandhub.check.pass", report.Summary.Pass),
	)
	return ctx.JSON(200, report)
}
