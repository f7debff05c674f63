// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compliance

import (
	"fmt"
	"math"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
)

// WCAG 2.x relative luminance coefficients.
const (
	lumaRed   = 0.2126
	lumaGreen = 0.7152
	lumaBlue  = 0.0722

	srgbThreshold = 0.03928
)

func linearize(channel uint8) float64 {
	v := float64(channel) / 255
	if v <= srgbThreshold {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func RelativeLuminance(c brand.RGB) float64 {
	return lumaRed*linearize(c.R) + lumaGreen*linearize(c.G) + lumaBlue*linearize(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between two hex colors.
// The order of fg and bg does not matter, the lighter color is always the numerator.
func ContrastRatio(fg, bg string) (float64, error) {
	a, err := brand.ParseHex(fg)
	if err != nil {
		return 0, err
	}
	b, err := brand.ParseHex(bg)
	if err != nil {
		return 0, err
	}

	l1 := RelativeLuminance(a)
	l2 := RelativeLuminance(b)
	if l2 > l1 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05), nil
}

func CheckContrast(fg, bg string, rules brand.WCAGRules) (dtos.ContrastResult, error) {
	ratio, err := ContrastRatio(fg, bg)
	if err != nil {
		return dtos.ContrastResult{}, err
	}
	return dtos.ContrastResult{
		Ratio:      ratio,
		PassNormal: ratio >= rules.NormalRatio,
		PassLarge:  ratio >= rules.LargeRatio,
	}, nil
}

func squaredDistance(a, b brand.RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// NearestBrandColor returns the palette entry closest to hex in RGB space.
// On equal distances the entry listed first in the palette wins.
func NearestBrandColor(hex string, palette []brand.PaletteColor) (dtos.NearestColorResult, error) {
	target, err := brand.ParseHex(hex)
	if err != nil {
		return dtos.NearestColorResult{}, err
	}

	best := -1
	bestDist := math.MaxInt
	for i, p := range palette {
		c, err := brand.ParseHex(p.Hex)
		if err != nil {
			continue
		}
		if d := squaredDistance(target, c); d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best == -1 {
		return dtos.NearestColorResult{}, fmt.Errorf("palette does not contain any valid color")
	}

	return dtos.NearestColorResult{
		Nearest:  palette[best].Name,
		Hex:      palette[best].Hex,
		Distance: math.Sqrt(float64(bestDist)),
	}, nil
}
