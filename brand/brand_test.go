package brand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Waykeeper", cfg.Name)
	assert.Len(t, cfg.Palette, 5)
	assert.Equal(t, "Skypath Blue", cfg.Palette[0].Name)
	assert.Equal(t, 40, cfg.Logo.MinHeightPx)
	assert.Equal(t, 4.5, cfg.WCAG.NormalRatio)
	assert.Equal(t, 3.0, cfg.WCAG.LargeRatio)
	assert.Equal(t, Dimensions{Width: 1200, Height: 675}, cfg.MinDimensions)
}

func TestLoad(t *testing.T) {
	t.Run("should return the defaults for an empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("should override only the values present in the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "brand.yaml")
		err := os.WriteFile(path, []byte("logo:\n  minHeightPx: 64\n  minClearSpaceRatio: 0.25\n"), 0o600)
		require.NoError(t, err)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 64, cfg.Logo.MinHeightPx)
		assert.Len(t, cfg.Palette, 5)
	})

	t.Run("should reject palettes with invalid colors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "brand.yaml")
		err := os.WriteFile(path, []byte("palette:\n  - name: Broken\n    hex: \"#XYZ123\"\n"), 0o600)
		require.NoError(t, err)

		_, err = Load(path)
		assert.ErrorContains(t, err, "Broken")
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestParseHex(t *testing.T) {
	testCases := []struct {
		in       string
		expected RGB
	}{
		{"#2E6CF6", RGB{0x2E, 0x6C, 0xF6}},
		{"2e6cf6", RGB{0x2E, 0x6C, 0xF6}},
		{"#FFF", RGB{0xFF, 0xFF, 0xFF}},
		{" #000000 ", RGB{}},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			c, err := ParseHex(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}

	for _, in := range []string{"", "#12", "#1234567", "#GGGGGG"} {
		_, err := ParseHex(in)
		assert.Error(t, err, in)
	}

	assert.Equal(t, "#2E6CF6", RGB{0x2E, 0x6C, 0xF6}.Hex())
}
