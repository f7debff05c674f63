package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReport(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	report := dtos.BrandImageReport{
		Sections: []dtos.SectionResult{
			{Key: "colors", Label: "Colors", Score: shared.Ptr(92.0), Severity: "low", Items: []dtos.CheckItem{
				{Label: "Palette match", Pass: shared.Ptr(true)},
				{Label: "Accent overuse", Pass: nil, Suggestion: "Reduce coral"},
			}},
			{Key: "fileQuality", Label: "File Quality", Score: shared.Ptr(40.0), Severity: "high"},
		},
		Score:       dtos.ScoreSummary{Overall: 71},
		Summary:     dtos.ReportSummary{OverallScore: 71, Pass: true, Severity: "medium", Conclusion: "Good enough"},
		Suggestions: &dtos.ReportSuggestions{FormatFix: []string{"Export as webp"}, SEO: &dtos.SEOAdvice{RecommendedFileName: "waykeeper-banner.webp"}},
	}

	out := renderReport(report)

	assert.Contains(t, out, "Palette match")
	assert.Contains(t, out, "Reduce coral")
	assert.Contains(t, out, "File Quality")
	assert.Contains(t, out, "Overall: 71 (PASS, severity medium)")
	assert.Contains(t, out, "  - Export as webp")
	assert.Contains(t, out, "Recommended file name: waykeeper-banner.webp")
	assert.NotContains(t, out, "Stored at")
}

func TestRenderVoiceTone(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	t.Run("should print the analysis", func(t *testing.T) {
		out, err := renderVoiceTone(dtos.VoiceToneResponse{
			Success:  true,
			Analysis: json.RawMessage(`{"scenario":"FAQ answers","audience":"Families","score":64,"flags":{"corporateSpeak":true,"prohibitedWords":["synergy"]},"reasoning":{"good":["friendly"],"bad":["jargon"]}}`),
			ThreadID: "thread_1",
		})
		require.NoError(t, err)
		assert.Contains(t, out, "FAQ answers")
		assert.Contains(t, out, "synergy")
		assert.Contains(t, out, "jargon")
		assert.Contains(t, out, "thread_1")
	})

	t.Run("should fail on analyses that are not an object", func(t *testing.T) {
		_, err := renderVoiceTone(dtos.VoiceToneResponse{Analysis: json.RawMessage(`[1,2]`)})
		assert.Error(t, err)
	})
}

func TestRenderContrast(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	out := renderContrast("#000", "#FFF", dtos.ContrastResult{Ratio: 21, PassNormal: true, PassLarge: true}, brand.WCAGRules{NormalRatio: 4.5, LargeRatio: 3})
	assert.Contains(t, out, "21.00:1")
	assert.Contains(t, out, "NORMAL TEXT (4.5:1)")
	assert.Equal(t, 2, strings.Count(out, "✓"))
}

func TestReadText(t *testing.T) {
	s, err := readText([]string{"Your", "trip", "is", "booked"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Your trip is booked", s)

	s, err = readText([]string{"-"}, strings.NewReader("  from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", s)
}
