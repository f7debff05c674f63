// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/go-viper/mapstructure/v2"
)

const (
	ToolContrastRatio     = "calc_contrast_ratio"
	ToolNearestBrandColor = "nearest_brand_color"
	ToolMeasureLogoHeight = "measure_logo_height"
	ToolAnalyzeLayout     = "analyze_layout"
)

// ToolDefinitions lists the functions the vision model may call while auditing.
func ToolDefinitions() []dtos.ToolDefinition {
	return []dtos.ToolDefinition{
		{
			Name:        ToolContrastRatio,
			Description: "Return WCAG contrast ratio between two hex colors.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"fg": map[string]any{"type": "string"},
					"bg": map[string]any{"type": "string"},
				},
				"required": []string{"fg", "bg"},
			},
		},
		{
			Name:        ToolNearestBrandColor,
			Description: "Given a hex color, return nearest brand color (by simple distance).",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"hex": map[string]any{"type": "string"},
				},
				"required": []string{"hex"},
			},
		},
		{
			Name:        ToolMeasureLogoHeight,
			Description: "Given [x,y,w,h] bbox of detected logo, return height (px) and pass/fail vs minHeight.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"bbox": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "number"},
						"description": "[x,y,w,h]",
					},
					"minHeightPx": map[string]any{"type": "number"},
				},
				"required": []string{"bbox", "minHeightPx"},
			},
		},
		{
			Name:        ToolAnalyzeLayout,
			Description: "Return approximate layout heuristics (margins, balance, clutter, eye flow) for the design.",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// ToolRouter executes tool calls requested by the model.
type ToolRouter struct {
	brand brand.Config
}

func NewToolRouter(cfg brand.Config) *ToolRouter {
	return &ToolRouter{brand: cfg}
}

func decodeArguments(raw json.RawMessage, out any) error {
	args := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return fmt.Errorf("could not parse tool arguments: %w", err)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

// Call runs a single tool. Unknown tools yield an empty object so the model can carry on.
func (r *ToolRouter) Call(ctx context.Context, call dtos.ToolCall) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch call.Name {
	case ToolContrastRatio:
		var req dtos.ContrastRequest
		if err := decodeArguments(call.Arguments, &req); err != nil {
			return nil, err
		}
		return CheckContrast(req.FG, req.BG, r.brand.WCAG)
	case ToolNearestBrandColor:
		var req dtos.NearestColorRequest
		if err := decodeArguments(call.Arguments, &req); err != nil {
			return nil, err
		}
		return NearestBrandColor(req.Hex, r.brand.Palette)
	case ToolMeasureLogoHeight:
		var req dtos.LogoHeightRequest
		if err := decodeArguments(call.Arguments, &req); err != nil {
			return nil, err
		}
		if req.MinHeightPx <= 0 {
			req.MinHeightPx = float64(r.brand.Logo.MinHeightPx)
		}
		return MeasureLogoHeight(req.BBox, req.MinHeightPx)
	case ToolAnalyzeLayout:
		return AnalyzeLayout(), nil
	}

	return map[string]any{}, nil
}

func MeasureLogoHeight(bbox []float64, minHeightPx float64) (dtos.LogoHeightResult, error) {
	if len(bbox) != 4 {
		return dtos.LogoHeightResult{}, fmt.Errorf("bbox must be [x,y,w,h], got %d values", len(bbox))
	}
	h := int(math.Round(bbox[3]))
	return dtos.LogoHeightResult{
		HeightPx: h,
		Pass:     float64(h) >= minHeightPx,
	}, nil
}

// AnalyzeLayout returns fixed layout heuristics. There is no pixel level layout
// detection, the numbers describe a typical well balanced 16:9 banner.
func AnalyzeLayout() dtos.LayoutAnalysis {
	balance, issues := LayoutBalance(48, 52, 72, 80, 1200, 675)
	return dtos.LayoutAnalysis{
		MarginBalance:          82,
		LeftRightBalance:       88,
		ClutterRatio:           35,
		EyeFlowPath:            []string{"logo", "headline", "hero image", "call to action"},
		FocalPointClarity:      75,
		RuleOfThirdsCompliance: true,
		GridAlignment:          80,
		BalanceScore:           balance,
		Issues:                 issues,
	}
}

// ToolResultContent serializes a tool result for the conversation.
// Failed calls are reported back to the model instead of aborting the check.
func ToolResultContent(result any, err error) string {
	if err != nil {
		b, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(b)
	}
	b, err := json.Marshal(result)
	if err != nil {
		return `{"error":"could not serialize tool result"}`
	}
	return string(b)
}
