// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/compliance"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/monitoring"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/boxer32/waykeeper-brand-hub/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// maxToolIterations caps the number of model calls for a single check.
const maxToolIterations = 4

var tracer = otel.Tracer("github.com/boxer32/waykeeper-brand-hub/services")

type ComplianceService struct {
	model     shared.ChatModel
	blobs     shared.BlobStore
	fetcher   shared.ImageFetcher
	inspector shared.ImageInspector
	brand     brand.Config
	tools     *compliance.ToolRouter

	maxToolIterations int
	now               func() time.Time
}

func NewComplianceService(model shared.ChatModel, blobs shared.BlobStore, fetcher shared.ImageFetcher, inspector shared.ImageInspector, cfg brand.Config) *ComplianceService {
	return &ComplianceService{
		model:             model,
		blobs:             blobs,
		fetcher:           fetcher,
		inspector:         inspector,
		brand:             cfg,
		tools:             compliance.NewToolRouter(cfg),
		maxToolIterations: maxToolIterations,
		now:               time.Now,
	}
}

func (s *ComplianceService) Check(ctx context.Context, input dtos.CheckInput) (dtos.BrandImageReport, error) {
	ctx, span := tracer.Start(ctx, "compliance.check")
	defer span.End()

	start := time.Now()
	report, err := s.check(ctx, input)
	monitoring.ComplianceCheckDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		monitoring.ComplianceCheckTotal.WithLabelValues("error").Inc()
		return dtos.BrandImageReport{}, err
	}

	span.SetAttributes(attribute.Int("brandhub.overall_score", report.Score.Overall))
	monitoring.ComplianceCheckTotal.WithLabelValues(outcomeLabel(report.Summary.Pass)).Inc()
	monitoring.ComplianceOverallScore.Observe(float64(report.Score.Overall))
	return report, nil
}

func outcomeLabel(pass bool) string {
	if pass {
		return "pass"
	}
	return "fail"
}

func (s *ComplianceService) resolveFile(ctx context.Context, input dtos.CheckInput) (dtos.ImageFile, error) {
	if input.Source != dtos.InputSourceURL {
		if len(input.File.Data) == 0 {
			return dtos.ImageFile{}, fmt.Errorf("%w: file", shared.ErrMissingInput)
		}
		file := input.File
		if file.Name == "" {
			file.Name = defaultFileName
		}
		if file.Mime == "" {
			file.Mime = defaultMime
		}
		return file, nil
	}

	if input.ImageURL == "" {
		return dtos.ImageFile{}, fmt.Errorf("%w: imageUrl", shared.ErrMissingInput)
	}
	file, err := s.fetcher.Fetch(ctx, input.ImageURL)
	if err != nil {
		return dtos.ImageFile{}, err
	}
	// a name sent along with the url wins over the last path segment
	if input.File.Name != "" {
		file.Name = input.File.Name
	}
	return file, nil
}

// inspectAndStore reads the image metadata and uploads the original at the same time.
// A failed upload is reported but does not fail the check.
func (s *ComplianceService) inspectAndStore(ctx context.Context, file dtos.ImageFile) (dtos.ImageMeta, string, error) {
	var (
		meta      dtos.ImageMeta
		storedURL string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meta, err = s.inspector.Inspect(file.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrUnsupportedImage, err)
		}
		return nil
	})
	g.Go(func() error {
		key := storage.ObjectKey(file.Name, file.Mime, s.now())
		url, err := s.blobs.Put(gctx, key, bytes.NewReader(file.Data), int64(len(file.Data)), file.Mime)
		if err != nil {
			slog.Warn("could not store design image, continuing without it", "key", key, "err", err)
			monitoring.BlobUploadTotal.WithLabelValues("error").Inc()
			monitoring.Alert("could not store design image", err)
			return nil
		}
		monitoring.BlobUploadTotal.WithLabelValues("success").Inc()
		storedURL = url
		return nil
	})

	if err := g.Wait(); err != nil {
		return dtos.ImageMeta{}, "", err
	}
	return meta, storedURL, nil
}

func (s *ComplianceService) check(ctx context.Context, input dtos.CheckInput) (dtos.BrandImageReport, error) {
	file, err := s.resolveFile(ctx, input)
	if err != nil {
		return dtos.BrandImageReport{}, err
	}

	meta, storedURL, err := s.inspectAndStore(ctx, file)
	if err != nil {
		return dtos.BrandImageReport{}, err
	}

	visionData, visionMime, err := s.inspector.PrepareForVision(file.Data, file.Mime)
	if err != nil {
		return dtos.BrandImageReport{}, fmt.Errorf("%w: %v", shared.ErrUnsupportedImage, err)
	}

	messages := []dtos.ChatMessage{
		{Role: dtos.ChatRoleSystem, Content: auditorSystemPrompt(s.brand.Name)},
		{
			Role:    dtos.ChatRoleUser,
			Content: auditorUserPrompt(s.brand, file, meta, input.ClientMetadata),
			Images:  []dtos.ImageInput{{MimeType: visionMime, Data: visionData, Detail: "high"}},
		},
	}

	draft, err := s.runToolLoop(ctx, messages)
	if err != nil {
		return dtos.BrandImageReport{}, err
	}

	report, err := parseDraft(draft)
	if err != nil {
		return dtos.BrandImageReport{}, err
	}

	report.Input = buildInputMeta(input, file, meta, storedURL)
	s.finalize(&report, file)
	return report, nil
}

// runToolLoop calls the model until it answers without tool calls and returns that answer.
func (s *ComplianceService) runToolLoop(ctx context.Context, messages []dtos.ChatMessage) (string, error) {
	tools := compliance.ToolDefinitions()

	for i := 0; i < s.maxToolIterations; i++ {
		resp, err := s.model.Complete(ctx, dtos.ChatRequest{
			Messages:     messages,
			Tools:        tools,
			JSONResponse: true,
			Temperature:  0,
		})
		if err != nil {
			return "", fmt.Errorf("%s completion failed: %w", s.model.Name(), err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, dtos.ChatMessage{
			Role:      dtos.ChatRoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			result, err := s.tools.Call(ctx, call)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			if err != nil {
				slog.Debug("tool call failed", "tool", call.Name, "err", err)
			}
			monitoring.ComplianceToolCalls.WithLabelValues(call.Name).Inc()
			messages = append(messages, dtos.ChatMessage{
				Role:       dtos.ChatRoleTool,
				ToolCallID: call.ID,
				Name:       call.Name,
				Content:    compliance.ToolResultContent(result, err),
			})
		}
	}

	return "", shared.ErrToolLoopExceeded
}

// stripCodeFence removes a markdown code fence some models wrap json answers in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func parseDraft(content string) (dtos.BrandImageReport, error) {
	raw := []byte(stripCodeFence(content))
	if err := compliance.ValidateDraft(raw); err != nil {
		return dtos.BrandImageReport{}, fmt.Errorf("%w: %v", shared.ErrInvalidAIResponse, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return dtos.BrandImageReport{}, fmt.Errorf("%w: %v", shared.ErrInvalidAIResponse, err)
	}
	// score and input are always computed by the server, the summary only keeps
	// what the model is asked to write
	summary := fields["summary"]
	delete(fields, "score")
	delete(fields, "input")
	delete(fields, "summary")

	rest, err := json.Marshal(fields)
	if err != nil {
		return dtos.BrandImageReport{}, fmt.Errorf("%w: %v", shared.ErrInvalidAIResponse, err)
	}
	var report dtos.BrandImageReport
	if err := json.Unmarshal(rest, &report); err != nil {
		return dtos.BrandImageReport{}, fmt.Errorf("%w: %v", shared.ErrInvalidAIResponse, err)
	}
	report.Summary = draftSummary(summary)
	return report, nil
}

// draftSummary keeps the conclusion and familiarity index of the model's summary.
// Anything that is not an object, or a field of the wrong type, is dropped.
func draftSummary(raw json.RawMessage) dtos.ReportSummary {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return dtos.ReportSummary{}
	}

	var summary dtos.ReportSummary
	var conclusion string
	if json.Unmarshal(fields["conclusion"], &conclusion) == nil {
		summary.Conclusion = conclusion
	}
	var bfi *float64
	if json.Unmarshal(fields["brand_familiarity_index"], &bfi) == nil {
		summary.BrandFamiliarityIndex = bfi
	}
	return summary
}

// buildInputMeta is the server's view of the input. Client measured values are
// preferred for dimensions, density and colour space.
func buildInputMeta(input dtos.CheckInput, file dtos.ImageFile, meta dtos.ImageMeta, storedURL string) dtos.InputMeta {
	source := input.Source
	if source == "" {
		source = dtos.InputSourceUpload
	}

	res := dtos.InputMeta{
		Source:     source,
		FileName:   file.Name,
		Mime:       file.Mime,
		SizeBytes:  file.SizeBytes,
		Width:      shared.Ptr(meta.Width),
		Height:     shared.Ptr(meta.Height),
		DPI:        meta.DPI,
		ColorSpace: meta.ColorSpace,
		ICCProfile: meta.ICCProfile,
		StoredURL:  storedURL,
		Exif:       meta.Exif,
	}
	if source == dtos.InputSourceURL {
		res.ImageURL = input.ImageURL
	}
	if res.SizeBytes == nil {
		res.SizeBytes = shared.Ptr(int64(len(file.Data)))
	}

	if c := input.ClientMetadata; c != nil {
		if c.Width > 0 {
			res.Width = shared.Ptr(c.Width)
		}
		if c.Height > 0 {
			res.Height = shared.Ptr(c.Height)
		}
		if c.DPI > 0 {
			res.DPI = shared.Ptr(c.DPI)
		}
		if c.ColorSpace != "" {
			res.ColorSpace = c.ColorSpace
		}
	}
	return res
}

// finalize fills in everything the server computes itself.
func (s *ComplianceService) finalize(report *dtos.BrandImageReport, file dtos.ImageFile) {
	for i := range report.Sections {
		sec := &report.Sections[i]
		score := float64(compliance.ScoreFromItems(sec.Items))
		if sec.Score != nil {
			score = *sec.Score
		}
		sec.Score = shared.Ptr(compliance.ClampScore(score))
		if sec.Severity == "" {
			sec.Severity = compliance.DetermineSeverity(*sec.Score)
		}
	}

	overall := compliance.OverallScore(report.Sections, compliance.SectionWeights)
	report.Score = dtos.ScoreSummary{
		Overall: overall,
		Weights: maps.Clone(compliance.SectionWeights),
	}

	report.Summary.OverallScore = overall
	report.Summary.Pass = overall >= compliance.PassThreshold
	report.Summary.Severity = compliance.DetermineSeverity(float64(overall))
	if bfi := report.Summary.BrandFamiliarityIndex; bfi != nil {
		report.Summary.BrandFamiliarityIndex = shared.Ptr(compliance.ClampScore(*bfi))
	}

	if report.Suggestions == nil {
		report.Suggestions = &dtos.ReportSuggestions{}
	}
	if report.Suggestions.SEO == nil {
		report.Suggestions.SEO = &dtos.SEOAdvice{}
	}
	seo := report.Suggestions.SEO
	if seo.RecommendedFileName == "" {
		purpose := seo.Purpose
		if purpose == "" {
			purpose = "design"
		}
		seo.RecommendedFileName = compliance.SEOFileName(s.brand.Name, purpose, compliance.TopicFromFileName(file.Name), seo.Locale, seo.Size)
	}
}
