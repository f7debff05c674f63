package services

import (
	"testing"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/stretchr/testify/assert"
)

func TestAuditorUserPrompt(t *testing.T) {
	cfg := brand.Default()
	file := dtos.ImageFile{Name: "hero.png", Data: make([]byte, 2048)}
	meta := dtos.ImageMeta{Width: 1200, Height: 675, ColorSpace: "srgb", Format: "png"}

	t.Run("should describe brand rules and file metadata", func(t *testing.T) {
		prompt := auditorUserPrompt(cfg, file, meta, nil)

		assert.Contains(t, prompt, "logo min height 40px")
		assert.Contains(t, prompt, "WCAG AA 4.5:1 normal")
		assert.Contains(t, prompt, "Skypath Blue #2E6CF6, Journey Coral #FF6B5A")
		assert.Contains(t, prompt, "- File: hero.png")
		assert.Contains(t, prompt, "- Size: 2 KB")
		assert.Contains(t, prompt, "- Dimensions: 1200 x 675 px")
		assert.Contains(t, prompt, "- DPI: unknown")
		assert.Contains(t, prompt, "- ICC Profile: none")
		assert.NotContains(t, prompt, "CLIENT-SIDE METADATA")
		assert.NotContains(t, prompt, "EXIF DATA")
	})

	t.Run("should add client metadata and exif lines", func(t *testing.T) {
		meta := meta
		meta.Exif = &dtos.ExifData{
			CameraMake:   "FUJIFILM",
			CameraModel:  "X-T4",
			FNumber:      shared.Ptr(2.8),
			ExposureTime: shared.Ptr(0.004),
			WhiteBalance: shared.Ptr(0),
			Flash:        shared.Ptr(1),
			Software:     "Adobe Photoshop",
		}
		client := &dtos.ClientMetadata{Width: 1920, Height: 1080, AspectRatio: 1.78, ColorSpace: "srgb"}

		prompt := auditorUserPrompt(cfg, file, meta, client)

		assert.Contains(t, prompt, "CLIENT-SIDE METADATA")
		assert.Contains(t, prompt, "- Dimensions: 1920 x 1080 px")
		assert.Contains(t, prompt, "- Aspect Ratio: 1.78:1")
		assert.Contains(t, prompt, "- Megapixels: unknown")
		assert.Contains(t, prompt, "- Camera: FUJIFILM X-T4")
		assert.Contains(t, prompt, "- Aperture: f/2.8")
		assert.Contains(t, prompt, "- Shutter Speed: 1/250s")
		assert.Contains(t, prompt, "- White Balance: Auto")
		assert.Contains(t, prompt, "- Flash: Used")
		assert.Contains(t, prompt, "- Software: Adobe Photoshop")
		assert.NotContains(t, prompt, "- Lens:")
	})
}

func TestAuditorSystemPrompt(t *testing.T) {
	prompt := auditorSystemPrompt("Waykeeper")
	assert.Contains(t, prompt, "Brand Compliance Auditor for Waykeeper")
	assert.Contains(t, prompt, `"sections"`)
}
