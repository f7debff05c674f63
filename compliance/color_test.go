package compliance

import (
	"testing"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContrastRatio(t *testing.T) {
	t.Run("black on white should be the maximum contrast of 21:1", func(t *testing.T) {
		ratio, err := ContrastRatio("#000000", "#FFFFFF")
		require.NoError(t, err)
		assert.InDelta(t, 21.0, ratio, 0.001)
	})

	t.Run("should not depend on the argument order", func(t *testing.T) {
		a, err := ContrastRatio("#2E6CF6", "#E9DCC7")
		require.NoError(t, err)
		b, err := ContrastRatio("#E9DCC7", "#2E6CF6")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("a color against itself should be 1:1", func(t *testing.T) {
		for _, c := range []string{"#000000", "#FFFFFF", "#2E6CF6", "#FF6B5A", "#5D4633", "#777"} {
			ratio, err := ContrastRatio(c, c)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, ratio, 1e-9, c)
		}
	})

	t.Run("should match known WCAG values", func(t *testing.T) {
		// #767676 on white is the classic 4.54:1 AA boundary
		ratio, err := ContrastRatio("#767676", "#FFFFFF")
		require.NoError(t, err)
		assert.InDelta(t, 4.54, ratio, 0.01)
	})

	t.Run("should fail on malformed input", func(t *testing.T) {
		_, err := ContrastRatio("not-a-color", "#FFFFFF")
		assert.Error(t, err)
		_, err = ContrastRatio("#FFFFFF", "#12345")
		assert.Error(t, err)
	})
}

func TestCheckContrast(t *testing.T) {
	rules := brand.WCAGRules{NormalRatio: 4.5, LargeRatio: 3.0}

	res, err := CheckContrast("#000000", "#FFFFFF", rules)
	require.NoError(t, err)
	assert.True(t, res.PassNormal)
	assert.True(t, res.PassLarge)

	// ~3.5:1 passes for large text only
	res, err = CheckContrast("#888888", "#FFFFFF", rules)
	require.NoError(t, err)
	assert.False(t, res.PassNormal)
	assert.True(t, res.PassLarge)
}

func TestRelativeLuminance(t *testing.T) {
	assert.Equal(t, 0.0, RelativeLuminance(brand.RGB{}))
	assert.InDelta(t, 1.0, RelativeLuminance(brand.RGB{R: 255, G: 255, B: 255}), 1e-9)
	// low channel values use the linear branch
	assert.InDelta(t, lumaRed*(5.0/255/12.92), RelativeLuminance(brand.RGB{R: 5}), 1e-12)
}

func TestNearestBrandColor(t *testing.T) {
	palette := brand.Default().Palette

	t.Run("should return the exact entry for every palette color", func(t *testing.T) {
		for _, p := range palette {
			res, err := NearestBrandColor(p.Hex, palette)
			require.NoError(t, err)
			assert.Equal(t, p.Name, res.Nearest)
			assert.Equal(t, p.Hex, res.Hex)
			assert.Equal(t, 0.0, res.Distance)
		}
	})

	t.Run("should find the closest color", func(t *testing.T) {
		res, err := NearestBrandColor("#3070F0", palette)
		require.NoError(t, err)
		assert.Equal(t, "Skypath Blue", res.Nearest)
		assert.Greater(t, res.Distance, 0.0)
	})

	t.Run("should prefer the first entry on equal distance", func(t *testing.T) {
		tied := []brand.PaletteColor{
			{Name: "Darker", Hex: "#000000"},
			{Name: "Lighter", Hex: "#020202"},
		}
		res, err := NearestBrandColor("#010101", tied)
		require.NoError(t, err)
		assert.Equal(t, "Darker", res.Nearest)
	})

	t.Run("should fail for an invalid query or empty palette", func(t *testing.T) {
		_, err := NearestBrandColor("#zzz", palette)
		assert.Error(t, err)
		_, err = NearestBrandColor("#000000", nil)
		assert.Error(t, err)
	})
}
