// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compliance

import (
	"math"
	"strings"
	"unicode"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
)

// SectionWeights is the fixed weight table for the overall score.
var SectionWeights = map[string]float64{
	"logo_usage":        0.15,
	"colors":            0.12,
	"typography":        0.10,
	"voice_tone":        0.08,
	"accessibility":     0.15,
	"file_quality":      0.10,
	"visual_hierarchy":  0.12,
	"whitespace":        0.08,
	"content_density":   0.05,
	"focal_point":       0.05,
	"brand_familiarity": 0.10,
	"layout_structure":  0.10,
}

const (
	SeverityCritical   = "critical"
	SeverityHigh       = "high"
	SeverityMedium     = "medium"
	SeverityLow        = "low"
	SeveritySuggestion = "suggestion"
)

var SeverityWeights = map[string]float64{
	SeverityCritical:   1.0,
	SeverityHigh:       0.8,
	SeverityMedium:     0.6,
	SeverityLow:        0.4,
	SeveritySuggestion: 0.2,
}

// PassThreshold is the lowest overall score a design can have and still pass.
const PassThreshold = 70

var BrandFamiliarityThresholds = struct {
	Excellent, Good, Fair, Poor, Critical float64
}{85, 70, 55, 40, 0}

var AccessibilityThresholds = struct {
	WCAGAANormal, WCAGAALarge, WCAGAAANormal, WCAGAAALarge float64
}{4.5, 3.0, 7.0, 4.5}

var FileQualityThresholds = struct {
	MinDPIWeb, MinDPIPrint           float64
	MaxFileSizeWebKB, MaxFileSizePrintKB int
	MinWidth, MinHeight              int
}{72, 300, 500, 2000, 800, 600}

var LayoutThresholds = struct {
	MinMarginRatio, MaxClutterRatio, MinFocalPointClarity, MinBalanceScore float64
}{0.1, 0.7, 60, 60}

// keys the model tends to use for sections that exist in the weight table under another name
var sectionKeyAliases = map[string]string{
	"logo":               "logo_usage",
	"color":              "colors",
	"color_usage":        "colors",
	"layout":             "layout_structure",
	"layout_composition": "layout_structure",
	"hierarchy":          "visual_hierarchy",
	"voice_and_tone":     "voice_tone",
}

// NormalizeSectionKey maps "logoUsage", "logo-usage" and "Logo Usage" to "logo_usage".
func NormalizeSectionKey(key string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range strings.TrimSpace(key) {
		switch {
		case r == '-' || r == ' ' || r == '_':
			b.WriteRune('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}

	normalized := b.String()
	for strings.Contains(normalized, "__") {
		normalized = strings.ReplaceAll(normalized, "__", "_")
	}
	normalized = strings.Trim(normalized, "_")

	if alias, ok := sectionKeyAliases[normalized]; ok {
		return alias
	}
	return normalized
}

func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

// WeightedScore computes sum(score*weight)/sum(weight) over the scores that have a
// positive weight. Without any usable weight the result is 0.
func WeightedScore(scores map[string]float64, weights map[string]float64) float64 {
	var weightedSum, totalWeight float64
	for key, score := range scores {
		w := weights[key]
		if w <= 0 {
			continue
		}
		weightedSum += score * w
		totalWeight += w
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// OverallScore rounds the weighted score of all sections. Sections are matched to
// the weight table by their normalized key, the first section wins on duplicate keys.
func OverallScore(sections []dtos.SectionResult, weights map[string]float64) int {
	scores := make(map[string]float64, len(sections))
	for _, s := range sections {
		if s.Score == nil {
			continue
		}
		key := NormalizeSectionKey(s.Key)
		if _, exists := scores[key]; exists {
			continue
		}
		scores[key] = ClampScore(*s.Score)
	}
	return int(math.Round(WeightedScore(scores, weights)))
}

// ScoreFromItems derives a section score from its check items: a pass counts fully,
// a fail not at all and an undetermined item half. Items default to weight 1.
func ScoreFromItems(items []dtos.CheckItem) int {
	var total, value float64
	for _, it := range items {
		w := 1.0
		if it.Weight != nil {
			w = *it.Weight
		}

		v := 0.5
		if it.Pass != nil {
			if *it.Pass {
				v = 1
			} else {
				v = 0
			}
		}

		total += w
		value += w * v
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(ClampScore(value / total * 100)))
}

func DetermineSeverity(overallScore float64) string {
	switch {
	case overallScore >= 90:
		return SeveritySuggestion
	case overallScore >= 75:
		return SeverityLow
	case overallScore >= 60:
		return SeverityMedium
	case overallScore >= 40:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

func BrandFamiliarityIndex(brandConsistency, brandVoiceAlignment, familiarityScore float64) int {
	return int(math.Round(brandConsistency*0.4 + brandVoiceAlignment*0.3 + familiarityScore*0.3))
}

func CognitiveLoad(visualComplexity, informationDensity, clutterRatio float64) (int, string) {
	score := visualComplexity*0.4 + informationDensity*0.3 + clutterRatio*0.3

	level := "high"
	if score <= 30 {
		level = "low"
	} else if score <= 60 {
		level = "medium"
	}
	return int(math.Round(score)), level
}

func AssessAccessibility(contrastRatio, fontSizePx float64, colorBlindFriendly bool) (int, []string) {
	issues := []string{}
	score := 100

	if contrastRatio < AccessibilityThresholds.WCAGAANormal {
		issues = append(issues, "contrast ratio does not meet WCAG AA for normal text")
		score -= 30
	}
	if fontSizePx < 14 {
		issues = append(issues, "font size is below 14px")
		score -= 20
	}
	if !colorBlindFriendly {
		issues = append(issues, "color combination is not color blind friendly")
		score -= 15
	}

	return max(0, score), issues
}

func imbalance(a, b float64) float64 {
	m := math.Max(a, b)
	if m == 0 {
		return 0
	}
	return math.Abs(a-b) / m
}

// LayoutBalance scores left/right content balance and vertical margins of a canvas.
func LayoutBalance(leftContent, rightContent, topMargin, bottomMargin, canvasWidth, canvasHeight float64) (int, []string) {
	issues := []string{}
	score := 100

	if imbalance(leftContent, rightContent) > 0.3 {
		issues = append(issues, "left and right content are not balanced")
		score -= 20
	}

	if imbalance(topMargin, bottomMargin) > 0.2 {
		issues = append(issues, "top and bottom margins are not balanced")
		score -= 15
	}

	if canvasHeight > 0 && math.Min(topMargin, bottomMargin)/canvasHeight < LayoutThresholds.MinMarginRatio {
		issues = append(issues, "margins are too small")
		score -= 25
	}

	return max(0, score), issues
}
