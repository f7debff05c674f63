package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/brand"
	"github.com/boxer32/waykeeper-brand-hub/compliance"
	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/mocks"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type complianceFixture struct {
	service   *ComplianceService
	model     *mocks.ChatModel
	blobs     *mocks.BlobStore
	fetcher   *mocks.ImageFetcher
	inspector *mocks.ImageInspector
}

func newComplianceFixture(t *testing.T) complianceFixture {
	f := complianceFixture{
		model:     mocks.NewChatModel(t),
		blobs:     mocks.NewBlobStore(t),
		fetcher:   mocks.NewImageFetcher(t),
		inspector: mocks.NewImageInspector(t),
	}
	f.service = NewComplianceService(f.model, f.blobs, f.fetcher, f.inspector, brand.Default())
	f.service.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

var uploadKey = mock.MatchedBy(func(key string) bool {
	return strings.HasPrefix(key, "uploads/2025/03/")
})

const validDraft = `{
  "sections": [
    {"key": "logoUsage", "label": "Logo Usage", "score": 100, "items": []},
    {"key": "colors", "label": "Colors", "score": 140, "items": []},
    {"key": "accessibility", "label": "Accessibility", "items": [
      {"id": "contrast", "label": "Text contrast", "pass": true},
      {"id": "font_size", "label": "Font size", "pass": false}
    ]}
  ],
  "summary": {"conclusion": "mostly on brand"},
  "issues": [{"title": "small logo"}]
}`

func TestComplianceCheck(t *testing.T) {
	data := []byte("png bytes")
	meta := dtos.ImageMeta{Width: 1200, Height: 675, DPI: shared.Ptr(72.0), ColorSpace: "srgb", Format: "png"}

	t.Run("should run requested tools and compute the overall score", func(t *testing.T) {
		f := newComplianceFixture(t)
		f.inspector.On("Inspect", data).Return(meta, nil)
		f.inspector.On("PrepareForVision", data, "image/png").Return(data, "image/png", nil)
		f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(len(data)), "image/png").Return("https://cdn.test/x.png", nil)

		var requests []dtos.ChatRequest
		capture := func(args mock.Arguments) {
			requests = append(requests, args.Get(1).(dtos.ChatRequest))
		}
		f.model.On("Complete", mock.Anything, mock.Anything).Run(capture).Return(dtos.ChatResponse{
			ToolCalls: []dtos.ToolCall{{ID: "call_1", Name: compliance.ToolContrastRatio, Arguments: json.RawMessage(`{"fg":"#000000","bg":"#FFFFFF"}`)}},
		}, nil).Once()
		f.model.On("Complete", mock.Anything, mock.Anything).Run(capture).Return(dtos.ChatResponse{Content: validDraft}, nil).Once()

		report, err := f.service.Check(context.Background(), dtos.CheckInput{
			Source:         dtos.InputSourceUpload,
			File:           dtos.ImageFile{Name: "Summer Banner.png", Mime: "image/png", Data: data},
			ClientMetadata: &dtos.ClientMetadata{Width: 1920, Height: 1080},
		})
		require.NoError(t, err)

		require.Len(t, requests, 2)
		first := requests[0]
		assert.True(t, first.JSONResponse)
		assert.Len(t, first.Tools, 4)
		require.Len(t, first.Messages, 2)
		assert.Equal(t, "high", first.Messages[1].Images[0].Detail)

		second := requests[1].Messages
		require.Len(t, second, 4)
		assert.Equal(t, dtos.ChatRoleAssistant, second[2].Role)
		assert.Equal(t, "call_1", second[2].ToolCalls[0].ID)
		assert.Equal(t, dtos.ChatRoleTool, second[3].Role)
		assert.Equal(t, "call_1", second[3].ToolCallID)
		assert.Contains(t, second[3].Content, `"passNormal":true`)

		require.Len(t, report.Sections, 3)
		assert.Equal(t, 100.0, *report.Sections[1].Score, "scores are clamped")
		assert.Equal(t, 50.0, *report.Sections[2].Score, "missing scores come from the items")

		// (100*0.15 + 100*0.12 + 50*0.15) / 0.42
		assert.Equal(t, 82, report.Score.Overall)
		assert.Equal(t, compliance.SectionWeights, report.Score.Weights)
		assert.Equal(t, 82, report.Summary.OverallScore)
		assert.True(t, report.Summary.Pass)
		assert.Equal(t, compliance.SeverityLow, report.Summary.Severity)
		assert.Equal(t, "mostly on brand", report.Summary.Conclusion)

		assert.Equal(t, "waykeeper-summer-banner-design-th-standard.webp", report.Suggestions.SEO.RecommendedFileName)
		assert.JSONEq(t, `[{"title": "small logo"}]`, string(report.Extras["issues"]))

		assert.Equal(t, dtos.InputSourceUpload, report.Input.Source)
		assert.Equal(t, "Summer Banner.png", report.Input.FileName)
		assert.Equal(t, 1920, *report.Input.Width)
		assert.Equal(t, 1080, *report.Input.Height)
		assert.Equal(t, 72.0, *report.Input.DPI)
		assert.Equal(t, int64(len(data)), *report.Input.SizeBytes)
		assert.Equal(t, "https://cdn.test/x.png", report.Input.StoredURL)
	})

	t.Run("should give up when the model keeps calling tools", func(t *testing.T) {
		f := newComplianceFixture(t)
		f.inspector.On("Inspect", data).Return(meta, nil)
		f.inspector.On("PrepareForVision", data, "image/png").Return(data, "image/png", nil)
		f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(len(data)), "image/png").Return("", nil)
		f.model.On("Complete", mock.Anything, mock.Anything).Return(dtos.ChatResponse{
			ToolCalls: []dtos.ToolCall{{ID: "call_1", Name: compliance.ToolAnalyzeLayout}},
		}, nil).Times(maxToolIterations)

		_, err := f.service.Check(context.Background(), dtos.CheckInput{
			File: dtos.ImageFile{Name: "a.png", Mime: "image/png", Data: data},
		})
		assert.ErrorIs(t, err, shared.ErrToolLoopExceeded)
	})

	t.Run("should keep checking when the upload fails", func(t *testing.T) {
		f := newComplianceFixture(t)
		f.inspector.On("Inspect", data).Return(meta, nil)
		f.inspector.On("PrepareForVision", data, "image/png").Return(data, "image/png", nil)
		f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(len(data)), "image/png").Return("", errors.New("bucket gone"))
		f.model.On("Complete", mock.Anything, mock.Anything).Return(dtos.ChatResponse{Content: validDraft}, nil).Once()

		report, err := f.service.Check(context.Background(), dtos.CheckInput{
			File: dtos.ImageFile{Name: "a.png", Mime: "image/png", Data: data},
		})
		require.NoError(t, err)
		assert.Empty(t, report.Input.StoredURL)
		assert.Equal(t, 1200, *report.Input.Width)
	})

	t.Run("should reject images that cannot be read", func(t *testing.T) {
		f := newComplianceFixture(t)
		f.inspector.On("Inspect", data).Return(dtos.ImageMeta{}, errors.New("unknown format"))
		f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(len(data)), "image/png").Return("", nil).Maybe()

		_, err := f.service.Check(context.Background(), dtos.CheckInput{
			File: dtos.ImageFile{Name: "a.png", Mime: "image/png", Data: data},
		})
		assert.ErrorIs(t, err, shared.ErrUnsupportedImage)
	})

	t.Run("should fetch url inputs and keep the given name", func(t *testing.T) {
		f := newComplianceFixture(t)
		f.fetcher.On("Fetch", mock.Anything, "https://images.test/banner.jpg").Return(dtos.ImageFile{
			Name: "banner.jpg", Mime: "image/jpeg", Data: data, SizeBytes: shared.Ptr(int64(2048)),
		}, nil)
		f.inspector.On("Inspect", data).Return(meta, nil)
		f.inspector.On("PrepareForVision", data, "image/jpeg").Return(data, "image/jpeg", nil)
		f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(len(data)), "image/jpeg").Return("", nil)
		f.model.On("Complete", mock.Anything, mock.Anything).Return(dtos.ChatResponse{Content: "```json\n" + validDraft + "\n```"}, nil).Once()

		report, err := f.service.Check(context.Background(), dtos.CheckInput{
			Source:   dtos.InputSourceURL,
			ImageURL: "https://images.test/banner.jpg",
			File:     dtos.ImageFile{Name: "Campaign Hero.jpg"},
		})
		require.NoError(t, err)
		assert.Equal(t, dtos.InputSourceURL, report.Input.Source)
		assert.Equal(t, "https://images.test/banner.jpg", report.Input.ImageURL)
		assert.Equal(t, "Campaign Hero.jpg", report.Input.FileName)
		assert.Equal(t, int64(2048), *report.Input.SizeBytes)
	})

	t.Run("should report drafts that are not a report", func(t *testing.T) {
		f := newComplianceFixture(t)
		f.inspector.On("Inspect", data).Return(meta, nil)
		f.inspector.On("PrepareForVision", data, "image/png").Return(data, "image/png", nil)
		f.blobs.On("Put", mock.Anything, uploadKey, mock.Anything, int64(len(data)), "image/png").Return("", nil)
		f.model.On("Complete", mock.Anything, mock.Anything).Return(dtos.ChatResponse{Content: "I cannot help with that"}, nil).Once()

		_, err := f.service.Check(context.Background(), dtos.CheckInput{
			File: dtos.ImageFile{Name: "a.png", Mime: "image/png", Data: data},
		})
		assert.ErrorIs(t, err, shared.ErrInvalidAIResponse)
	})

	t.Run("should require a file or an image url", func(t *testing.T) {
		f := newComplianceFixture(t)

		_, err := f.service.Check(context.Background(), dtos.CheckInput{Source: dtos.InputSourceUpload})
		assert.ErrorIs(t, err, shared.ErrMissingInput)

		_, err = f.service.Check(context.Background(), dtos.CheckInput{Source: dtos.InputSourceURL})
		assert.ErrorIs(t, err, shared.ErrMissingInput)
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1}  "))
}

func TestBuildInputMeta(t *testing.T) {
	file := dtos.ImageFile{Name: "hero.jpg", Mime: "image/jpeg", Data: []byte("jpeg")}
	meta := dtos.ImageMeta{Width: 800, Height: 600, DPI: shared.Ptr(300.0), ColorSpace: "cmyk", ICCProfile: "present"}

	t.Run("should prefer client measured values", func(t *testing.T) {
		got := buildInputMeta(dtos.CheckInput{
			ClientMetadata: &dtos.ClientMetadata{Width: 1600, DPI: 72, ColorSpace: "srgb"},
		}, file, meta, "https://cdn.test/hero.jpg")

		want := dtos.InputMeta{
			Source:     dtos.InputSourceUpload,
			FileName:   "hero.jpg",
			Mime:       "image/jpeg",
			SizeBytes:  shared.Ptr(int64(4)),
			Width:      shared.Ptr(1600),
			Height:     shared.Ptr(600),
			DPI:        shared.Ptr(72.0),
			ColorSpace: "srgb",
			ICCProfile: "present",
			StoredURL:  "https://cdn.test/hero.jpg",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("input meta mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should only report the image url for url inputs", func(t *testing.T) {
		got := buildInputMeta(dtos.CheckInput{Source: dtos.InputSourceUpload, ImageURL: "https://images.test/x.jpg"}, file, meta, "")
		assert.Empty(t, got.ImageURL)

		got = buildInputMeta(dtos.CheckInput{Source: dtos.InputSourceURL, ImageURL: "https://images.test/x.jpg"}, file, meta, "")
		assert.Equal(t, "https://images.test/x.jpg", got.ImageURL)
		assert.Equal(t, 300.0, *got.DPI)
	})
}

func TestParseDraft(t *testing.T) {
	const sections = `"sections":[{"key":"color_usage","label":"Color","score":80,"items":[]}]`

	t.Run("should ignore a score the server computes itself", func(t *testing.T) {
		report, err := parseDraft(`{` + sections + `,"score":{"overall":82.5}}`)
		require.NoError(t, err)
		require.Len(t, report.Sections, 1)
		assert.Equal(t, 80.0, *report.Sections[0].Score)
		assert.Zero(t, report.Score.Overall)
		assert.Nil(t, report.Extras)
	})

	t.Run("should ignore input metadata of the wrong type", func(t *testing.T) {
		report, err := parseDraft(`{` + sections + `,"input":{"width":"1200"}}`)
		require.NoError(t, err)
		assert.Nil(t, report.Input.Width)
	})

	t.Run("should drop a summary that is not an object", func(t *testing.T) {
		report, err := parseDraft(`{` + sections + `,"summary":"looks on brand"}`)
		require.NoError(t, err)
		assert.Equal(t, dtos.ReportSummary{}, report.Summary)
	})

	t.Run("should keep conclusion and familiarity index of the summary", func(t *testing.T) {
		report, err := parseDraft(`{` + sections + `,"summary":{"overall_score":"high","pass":"yes","conclusion":"on brand","brand_familiarity_index":72.5}}`)
		require.NoError(t, err)
		assert.Equal(t, "on brand", report.Summary.Conclusion)
		require.NotNil(t, report.Summary.BrandFamiliarityIndex)
		assert.Equal(t, 72.5, *report.Summary.BrandFamiliarityIndex)
		assert.False(t, report.Summary.Pass)
	})

	t.Run("should keep unknown fields", func(t *testing.T) {
		report, err := parseDraft("```json\n{" + sections + `,"notes":["check the logo"]}` + "\n```")
		require.NoError(t, err)
		assert.JSONEq(t, `["check the logo"]`, string(report.Extras["notes"]))
	})

	t.Run("should reject drafts without sections", func(t *testing.T) {
		_, err := parseDraft(`{"summary":{"conclusion":"fine"}}`)
		assert.ErrorIs(t, err, shared.ErrInvalidAIResponse)
	})
}
