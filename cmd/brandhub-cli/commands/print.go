// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
)

func scoreColor(score float64) text.Color {
	switch {
	case score >= 80:
		return text.FgGreen
	case score >= 60:
		return text.FgYellow
	}
	return text.FgRed
}

func passMark(pass *bool) string {
	switch {
	case pass == nil:
		return "?"
	case *pass:
		return text.FgGreen.Sprint("✓")
	}
	return text.FgRed.Sprint("✗")
}

func renderReport(report dtos.BrandImageReport) string {
	tw := table.NewWriter()
	tw.SetAllowedRowLength(130)
	tw.AppendHeader(table.Row{"Section", "Score", "Severity", "Check", "Pass", "Suggestion"})

	for _, sec := range report.Sections {
		score := "-"
		if sec.Score != nil {
			score = scoreColor(*sec.Score).Sprintf("%.0f", *sec.Score)
		}
		if len(sec.Items) == 0 {
			tw.AppendRow(table.Row{sec.Label, score, sec.Severity, "", "", ""})
			continue
		}
		for i, item := range sec.Items {
			label, s, severity := "", "", ""
			if i == 0 {
				label, s, severity = sec.Label, score, sec.Severity
			}
			tw.AppendRow(table.Row{label, s, severity, item.Label, passMark(item.Pass), text.WrapText(item.Suggestion, 50)})
		}
		tw.AppendSeparator()
	}

	var sb strings.Builder
	sb.WriteString(tw.Render())
	sb.WriteString("\n\n")

	verdict := text.FgRed.Sprint("FAIL")
	if report.Summary.Pass {
		verdict = text.FgGreen.Sprint("PASS")
	}
	fmt.Fprintf(&sb, "Overall: %s (%s, severity %s)\n", scoreColor(float64(report.Score.Overall)).Sprintf("%d", report.Score.Overall), verdict, report.Summary.Severity)
	if report.Summary.Conclusion != "" {
		fmt.Fprintf(&sb, "%s\n", text.WrapText(report.Summary.Conclusion, 100))
	}
	if s := report.Suggestions; s != nil {
		for _, fix := range append(append([]string{}, s.VisualFix...), s.FormatFix...) {
			fmt.Fprintf(&sb, "  - %s\n", fix)
		}
		if s.SEO != nil && s.SEO.RecommendedFileName != "" {
			fmt.Fprintf(&sb, "Recommended file name: %s\n", s.SEO.RecommendedFileName)
		}
	}
	if report.Input.StoredURL != "" {
		fmt.Fprintf(&sb, "Stored at: %s\n", text.FgBlue.Sprint(report.Input.StoredURL))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderVoiceTone(res dtos.VoiceToneResponse) (string, error) {
	var analysis dtos.VoiceToneAnalysis
	if err := json.Unmarshal(res.Analysis, &analysis); err != nil {
		return "", errors.Wrap(err, "could not read the analysis")
	}

	tw := table.NewWriter()
	tw.SetAllowedRowLength(130)
	tw.AppendRows([]table.Row{
		{"Scenario:", analysis.Scenario},
		{"Audience:", analysis.Audience},
		{"Score:", scoreColor(analysis.Score).Sprintf("%.0f", analysis.Score)},
		{"Corporate speak:", analysis.Flags.CorporateSpeak},
	})
	if len(analysis.Flags.ProhibitedWords) > 0 {
		tw.AppendRow(table.Row{"Prohibited words:", text.FgRed.Sprint(strings.Join(analysis.Flags.ProhibitedWords, ", "))})
	}
	for _, good := range analysis.Reasoning.Good {
		tw.AppendRow(table.Row{text.FgGreen.Sprint("Good:"), text.WrapText(good, 90)})
	}
	for _, bad := range analysis.Reasoning.Bad {
		tw.AppendRow(table.Row{text.FgRed.Sprint("Bad:"), text.WrapText(bad, 90)})
	}
	if analysis.GoodExample != "" {
		tw.AppendRow(table.Row{"Better:", text.WrapText(analysis.GoodExample, 90)})
	}
	if analysis.NextStep != "" {
		tw.AppendRow(table.Row{"Next step:", text.WrapText(analysis.NextStep, 90)})
	}
	tw.AppendRow(table.Row{"Thread:", res.ThreadID})
	return tw.Render(), nil
}

func renderContrast(fg, bg string, res dtos.ContrastResult, rules brand.WCAGRules) string {
	mark := func(pass bool) string {
		return passMark(&pass)
	}

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Foreground", "Background", "Ratio", fmt.Sprintf("Normal text (%g:1)", rules.NormalRatio), fmt.Sprintf("Large text (%g:1)", rules.LargeRatio)})
	tw.AppendRow(table.Row{fg, bg, fmt.Sprintf("%.2f:1", res.Ratio), mark(res.PassNormal), mark(res.PassLarge)})
	return tw.Render()
}
