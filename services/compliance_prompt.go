// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
)

func auditorSystemPrompt(brandName string) string {
	return `You are a Brand Compliance Auditor for ` + brandName + `. Analyze the IMAGE VISUALLY and return ONLY a JSON BrandImageReport according to the provided schema, after calling tools when numeric evidence is needed.

Focus on VISUAL ANALYSIS:
- Logo placement, size, and clear space
- Color usage and brand palette compliance
- Typography and text contrast
- Layout composition and spacing
- Overall design quality

Return a JSON object with this structure:
{
  "sections": [
    {
      "key": "logoUsage",
      "label": "Logo Usage",
      "score": 75,
      "summary": "brief summary",
      "items": [
        {"id": "logo_placement", "label": "Logo placement correct", "pass": true, "evidence": "..."},
        {"id": "logo_min_height", "label": "Logo >= 40px", "pass": false, "value": "32px", "suggestion": "increase to >= 40px"}
      ]
    },
    {"key": "colors", "label": "Colors", "score": 88, "summary": "brief summary", "items": []},
    {"key": "accessibility", "label": "Accessibility", "score": 80, "summary": "brief summary", "items": []},
    {"key": "fileQuality", "label": "File Quality", "score": 70, "summary": "brief summary", "items": []},
    {"key": "layoutComposition", "label": "Layout & Composition", "score": 85, "summary": "brief summary", "items": []}
  ],
  "suggestions": {
    "visualFix": ["fix 1", "fix 2"],
    "formatFix": ["format fix 1", "format fix 2"],
    "seo": {
      "recommendedFileName": "waykeeper-xxx.webp",
      "altText": "description",
      "title": "Title",
      "urlSlugHint": "slug"
    }
  },
  "summary": {"conclusion": "one sentence verdict"}
}`
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

func formatOptionalFloat(v *float64) string {
	if v == nil || *v == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%g", *v)
}

func formatNonZero(v float64, suffix string) string {
	if v == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%g%s", v, suffix)
}

func line(b *strings.Builder, format string, args ...any) {
	fmt.Fprintf(b, "- "+format+"\n", args...)
}

func writeExif(b *strings.Builder, exif *dtos.ExifData) {
	b.WriteString("\nEXIF DATA (from image file):\n")
	if exif.CameraMake != "" || exif.CameraModel != "" {
		line(b, "Camera: %s", strings.TrimSpace(exif.CameraMake+" "+exif.CameraModel))
	}
	if exif.LensMake != "" || exif.LensModel != "" {
		line(b, "Lens: %s", strings.TrimSpace(exif.LensMake+" "+exif.LensModel))
	}
	if exif.FNumber != nil {
		line(b, "Aperture: f/%g", *exif.FNumber)
	}
	if exif.ExposureTime != nil && *exif.ExposureTime > 0 {
		line(b, "Shutter Speed: 1/%.0fs", math.Round(1 / *exif.ExposureTime))
	}
	if exif.ISO != nil {
		line(b, "ISO: %d", *exif.ISO)
	}
	if exif.FocalLength != nil {
		if exif.FocalLengthIn35mm != nil {
			line(b, "Focal Length: %gmm (%dmm equiv.)", *exif.FocalLength, *exif.FocalLengthIn35mm)
		} else {
			line(b, "Focal Length: %gmm", *exif.FocalLength)
		}
	}
	if exif.DateTimeOriginal != "" {
		line(b, "Date Taken: %s", exif.DateTimeOriginal)
	}
	if exif.WhiteBalance != nil {
		switch *exif.WhiteBalance {
		case 0:
			line(b, "White Balance: Auto")
		case 1:
			line(b, "White Balance: Manual")
		default:
			line(b, "White Balance: %d", *exif.WhiteBalance)
		}
	}
	if exif.Flash != nil {
		switch *exif.Flash {
		case 0:
			line(b, "Flash: Not used")
		case 1:
			line(b, "Flash: Used")
		default:
			line(b, "Flash: Unknown")
		}
	}
	if exif.ExposureProgram != nil {
		line(b, "Exposure Program: %d", *exif.ExposureProgram)
	}
	if exif.MeteringMode != nil {
		line(b, "Metering Mode: %d", *exif.MeteringMode)
	}
	if gps := exif.GPS; gps != nil && gps.Lat != nil && gps.Lng != nil {
		if gps.Altitude != nil {
			line(b, "GPS Location: %.6f, %.6f (Altitude: %gm)", *gps.Lat, *gps.Lng, *gps.Altitude)
		} else {
			line(b, "GPS Location: %.6f, %.6f", *gps.Lat, *gps.Lng)
		}
	}
	if exif.Software != "" {
		line(b, "Software: %s", exif.Software)
	}
	if exif.Artist != "" {
		line(b, "Artist: %s", exif.Artist)
	}
	if exif.Copyright != "" {
		line(b, "Copyright: %s", exif.Copyright)
	}
	if exif.ImageDescription != "" {
		line(b, "Description: %s", exif.ImageDescription)
	}
	if exif.Compression != nil {
		line(b, "Compression: %d", *exif.Compression)
	}
	if exif.BitsPerSample != nil {
		line(b, "Bits per Sample: %d", *exif.BitsPerSample)
	}
	if exif.SamplesPerPixel != nil {
		line(b, "Samples per Pixel: %d", *exif.SamplesPerPixel)
	}
}

// auditorUserPrompt describes the brand rules and everything known about the file.
func auditorUserPrompt(cfg brand.Config, file dtos.ImageFile, meta dtos.ImageMeta, client *dtos.ClientMetadata) string {
	var b strings.Builder

	palette := make([]string, 0, len(cfg.Palette))
	for _, p := range cfg.Palette {
		palette = append(palette, p.Name+" "+p.Hex)
	}
	fmt.Fprintf(&b, "Analyze this design for brand compliance. Brand rules: logo min height %dpx; logo clear space %g of logo height; WCAG AA %g:1 normal, %g:1 large text; palette: %s; minimum size %dx%d px; preferred formats: %s.\n",
		cfg.Logo.MinHeightPx, cfg.Logo.MinClearSpaceRatio, cfg.WCAG.NormalRatio, cfg.WCAG.LargeRatio,
		strings.Join(palette, ", "), cfg.MinDimensions.Width, cfg.MinDimensions.Height, strings.Join(cfg.PreferredFormats, "/"))

	b.WriteString("\nFILE METADATA (read on the server):\n")
	line(&b, "File: %s", file.Name)
	if file.SizeBytes != nil {
		line(&b, "Size: %d KB", int(math.Round(float64(*file.SizeBytes)/1024)))
	} else {
		line(&b, "Size: %d KB", int(math.Round(float64(len(file.Data))/1024)))
	}
	line(&b, "Format: %s", orUnknown(meta.Format))
	line(&b, "Dimensions: %d x %d px", meta.Width, meta.Height)
	line(&b, "DPI: %s", formatOptionalFloat(meta.DPI))
	line(&b, "Color Space: %s", orUnknown(meta.ColorSpace))
	if meta.ICCProfile != "" {
		line(&b, "ICC Profile: %s", meta.ICCProfile)
	} else {
		line(&b, "ICC Profile: none")
	}

	if client != nil {
		b.WriteString("\nCLIENT-SIDE METADATA:\n")
		line(&b, "Dimensions: %d x %d px", client.Width, client.Height)
		line(&b, "DPI (estimated): %s", formatNonZero(client.DPI, ""))
		line(&b, "Aspect Ratio: %s", formatNonZero(client.AspectRatio, ":1"))
		line(&b, "Megapixels: %s", formatNonZero(client.Megapixels, " MP"))
		line(&b, "Color Space: %s", orUnknown(client.ColorSpace))
	}

	if meta.Exif != nil {
		writeExif(&b, meta.Exif)
	}

	b.WriteString(`
Use this metadata (including EXIF data) to make more accurate assessments about file quality, resolution, technical compliance, and image authenticity. EXIF data can help identify:
- Image source and authenticity
- Professional vs consumer camera usage
- Image editing history (software used)
- Location and time context
- Technical quality indicators`)

	return b.String()
}
