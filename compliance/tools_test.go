package compliance

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(name, args string) dtos.ToolCall {
	return dtos.ToolCall{ID: "call_1", Name: name, Arguments: json.RawMessage(args)}
}

func TestToolRouter(t *testing.T) {
	router := NewToolRouter(brand.Default())
	ctx := context.Background()

	t.Run("calc_contrast_ratio", func(t *testing.T) {
		res, err := router.Call(ctx, call(ToolContrastRatio, `{"fg":"#000000","bg":"#FFFFFF"}`))
		require.NoError(t, err)

		contrast := res.(dtos.ContrastResult)
		assert.InDelta(t, 21, contrast.Ratio, 0.001)
		assert.True(t, contrast.PassNormal)
		assert.True(t, contrast.PassLarge)
	})

	t.Run("nearest_brand_color", func(t *testing.T) {
		res, err := router.Call(ctx, call(ToolNearestBrandColor, `{"hex":"#FF6B5A"}`))
		require.NoError(t, err)
		assert.Equal(t, dtos.NearestColorResult{Nearest: "Journey Coral", Hex: "#FF6B5A", Distance: 0}, res)
	})

	t.Run("measure_logo_height", func(t *testing.T) {
		res, err := router.Call(ctx, call(ToolMeasureLogoHeight, `{"bbox":[10,10,120,32.4],"minHeightPx":40}`))
		require.NoError(t, err)
		assert.Equal(t, dtos.LogoHeightResult{HeightPx: 32, Pass: false}, res)
	})

	t.Run("measure_logo_height should fall back to the brand minimum", func(t *testing.T) {
		res, err := router.Call(ctx, call(ToolMeasureLogoHeight, `{"bbox":[0,0,100,41]}`))
		require.NoError(t, err)
		assert.Equal(t, dtos.LogoHeightResult{HeightPx: 41, Pass: true}, res)
	})

	t.Run("measure_logo_height should accept numbers sent as strings", func(t *testing.T) {
		res, err := router.Call(ctx, call(ToolMeasureLogoHeight, `{"bbox":[0,0,100,50],"minHeightPx":"60"}`))
		require.NoError(t, err)
		assert.Equal(t, dtos.LogoHeightResult{HeightPx: 50, Pass: false}, res)
	})

	t.Run("measure_logo_height should reject incomplete boxes", func(t *testing.T) {
		_, err := router.Call(ctx, call(ToolMeasureLogoHeight, `{"bbox":[0,0,100],"minHeightPx":40}`))
		assert.Error(t, err)
	})

	t.Run("analyze_layout", func(t *testing.T) {
		res, err := router.Call(ctx, call(ToolAnalyzeLayout, ``))
		require.NoError(t, err)
		layout := res.(dtos.LayoutAnalysis)
		assert.Equal(t, 100, layout.BalanceScore)
		assert.NotEmpty(t, layout.EyeFlowPath)
	})

	t.Run("unknown tools should return an empty object", func(t *testing.T) {
		res, err := router.Call(ctx, call("delete_everything", `{}`))
		require.NoError(t, err)
		assert.Equal(t, "{}", ToolResultContent(res, err))
	})

	t.Run("invalid arguments should be an error", func(t *testing.T) {
		_, err := router.Call(ctx, call(ToolContrastRatio, `not json`))
		assert.Error(t, err)
	})

	t.Run("should stop on a cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := router.Call(cancelled, call(ToolAnalyzeLayout, `{}`))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestToolDefinitions(t *testing.T) {
	names := []string{}
	for _, def := range ToolDefinitions() {
		names = append(names, def.Name)
		assert.Equal(t, "object", def.Parameters["type"])
	}
	assert.Equal(t, []string{ToolContrastRatio, ToolNearestBrandColor, ToolMeasureLogoHeight, ToolAnalyzeLayout}, names)
}

func TestToolResultContent(t *testing.T) {
	assert.JSONEq(t, `{"heightPx":40,"pass":true}`, ToolResultContent(dtos.LogoHeightResult{HeightPx: 40, Pass: true}, nil))
	assert.JSONEq(t, `{"error":"`+assert.AnError.Error()+`"}`, ToolResultContent(nil, assert.AnError))
}
