// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package controllers

import (
	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/compliance"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/labstack/echo/v4"
)

type BrandController struct {
	brand brand.Config
}

func NewBrandController(cfg brand.Config) *BrandController {
	return &BrandController{brand: cfg}
}

// @Summary Get the brand rules
// @Tags Brand
// @Produce json
// @Success 200 {object} brand.Config
// @Router /brand/ [get]
func (c BrandController) Rules(ctx shared.Context) error {
	return ctx.JSON(200, c.brand)
}

// @Summary Compute the WCAG contrast ratio of two colors
// @Tags Brand
// @Accept json
// @Produce json
// @Param body body dtos.ContrastRequest true "Foreground and background hex colors"
// @Success 200 {object} dtos.ContrastResult
// @Failure 400 {object} dtos.ErrorResponse
// @Router /brand/contrast/ [post]
func (c BrandController) Contrast(ctx shared.Context) error {
	var req dtos.ContrastRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "Invalid request body").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, "Missing required fields: fg, bg").WithInternal(err)
	}

	res, err := compliance.CheckContrast(req.FG, req.BG, c.brand.WCAG)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	return ctx.JSON(200, res)
}

// @Summary Find the brand palette color closest to a hex color
// @Tags Brand
// @Accept json
// @Produce json
// @Param body body dtos.NearestColorRequest true "Hex color"
// @Success 200 {object} dtos.NearestColorResult
// @Failure 400 {object} dtos.ErrorResponse
// @Router /brand/nearest-color/ [post]
func (c BrandController) NearestColor(ctx shared.Context) error {
	var req dtos.NearestColorRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "Invalid request body").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, "Missing required field: hex").WithInternal(err)
	}

	res, err := compliance.NearestBrandColor(req.Hex, c.brand.Palette)
	if err != nil {
		return echo.NewHTTPError(400, err.Error()).WithInternal(err)
	}
	return ctx.JSON(200, res)
}
