// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boxer32/waykeeper-brand-hub/dtos"
	"github.com/boxer32/waykeeper-brand-hub/monitoring"
	"github.com/boxer32/waykeeper-brand-hub/shared"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ScenarioMap translates the playground labels into the wording of the assistant instructions.
var ScenarioMap = map[string]string{
	"Booking Confirmation": "Booking confirmations",
	"Social Media Post":    "Social media posts (Instagram, Facebook)",
	"Customer Support":     "Customer support responses",
	"Newsletter Content":   "Newsletter content",
	"Tour Description":     "Tour descriptions",
	"Error Message":        "Error messages",
	"Thank You Message":    "Thank you messages",
	"Reminder Email":       "Reminder emails",
	"FAQ Answer":           "FAQ answers",
	"Referral Invitation":  "Referral invitations",
	"Cancellation Email":   "Cancellation/refund emails",
	"Website Homepage":     "Website homepage copy",
}

var AudienceMap = map[string]string{
	"Backpacker":      "Backpackers",
	"Family":          "Families",
	"Nomad":           "Digital Nomads",
	"Wellness Seeker": "Wellness Seekers",
}

// normalizeLabel maps a known label and title-cases lower case input like "family".
// Anything else is passed through unchanged.
func normalizeLabel(m map[string]string, v string) string {
	v = strings.TrimSpace(v)
	if mapped, ok := m[v]; ok {
		return mapped
	}
	if v == strings.ToLower(v) {
		// casers keep state and are not shared
		if mapped, ok := m[cases.Title(language.English).String(v)]; ok {
			return mapped
		}
	}
	return v
}

func NormalizeScenario(s string) string {
	return normalizeLabel(ScenarioMap, s)
}

func NormalizeAudience(a string) string {
	return normalizeLabel(AudienceMap, a)
}

func quoteJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func buildRunInstructions(scenario, audience string) string {
	scenario = NormalizeScenario(scenario)
	audience = NormalizeAudience(audience)

	return `SCENARIO: ` + scenario + `
AUDIENCE: ` + audience + `

Analyze the user's text for the above scenario and audience. Return a JSON response with this exact structure:
{
  "scenario": ` + quoteJSON(scenario) + `,
  "audience": ` + quoteJSON(audience) + `,
  "language": "th",
  "reasoning": {
    "good": ["list specific good points about the text"],
    "bad": ["list specific bad points about the text"]
  },
  "score": 85,
  "flags": {
    "corporateSpeak": false,
    "prohibitedWords": []
  },
  "goodExample": "improved version of the user's text",
  "badExample": "what not to do example",
  "nextStep": "specific next step for the user",
  "suggestions": ["specific suggestions for improvement"]
}

IMPORTANT:
- Use the EXACT scenario and audience provided above
- Analyze the actual user text, not generic examples
- Provide specific reasoning based on the actual text
- Generate examples relevant to the actual scenario and audience
- Use the assistant's existing brand voice guidelines. Match input language.`
}

const (
	defaultPollInterval = time.Second
	defaultMaxAttempts  = 30
)

// AssistantRunner runs the analysis on a hosted assistant and polls the run until it finishes.
type AssistantRunner struct {
	client       shared.AssistantClient
	assistantID  string
	pollInterval time.Duration
	maxAttempts  int
}

func NewAssistantRunner(client shared.AssistantClient, assistantID string) *AssistantRunner {
	return &AssistantRunner{
		client:       client,
		assistantID:  assistantID,
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
	}
}

func (r *AssistantRunner) Run(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResult, error) {
	threadID, err := r.client.CreateThread(ctx)
	if err != nil {
		return dtos.VoiceToneResult{}, err
	}

	if err := r.client.AddUserMessage(ctx, threadID, req.UserText); err != nil {
		return dtos.VoiceToneResult{}, err
	}

	run, err := r.client.CreateRun(ctx, threadID, dtos.RunRequest{
		AssistantID:  r.assistantID,
		Instructions: buildRunInstructions(req.Scenario, req.Audience),
		JSONResponse: true,
	})
	if err != nil {
		return dtos.VoiceToneResult{}, err
	}

	run, err = r.waitForRun(ctx, threadID, run)
	if err != nil {
		return dtos.VoiceToneResult{}, err
	}
	if run.Status != dtos.RunStatusCompleted {
		if run.LastError != nil {
			return dtos.VoiceToneResult{}, fmt.Errorf("assistant run %s ended with status %s: %s", run.ID, run.Status, run.LastError.Message)
		}
		return dtos.VoiceToneResult{}, fmt.Errorf("assistant run %s ended with status %s", run.ID, run.Status)
	}

	text, err := r.client.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		return dtos.VoiceToneResult{}, err
	}
	return dtos.VoiceToneResult{Text: text, ThreadID: threadID}, nil
}

// waitForRun polls the run status until it is terminal or the attempts are used up.
func (r *AssistantRunner) waitForRun(ctx context.Context, threadID string, run dtos.Run) (dtos.Run, error) {
	if run.Status.Terminal() {
		return run, nil
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return dtos.Run{}, ctx.Err()
		case <-ticker.C:
		}

		current, err := r.client.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return dtos.Run{}, err
		}
		slog.Debug("polled assistant run", "run", run.ID, "status", current.Status, "attempt", attempt)
		if current.Status.Terminal() {
			monitoring.VoiceTonePollAttempts.Observe(float64(attempt))
			return current, nil
		}
	}

	monitoring.VoiceTonePollAttempts.Observe(float64(r.maxAttempts))
	return dtos.Run{}, fmt.Errorf("assistant run %s did not finish after %d attempts", run.ID, r.maxAttempts)
}

// ChatRunner sends the analysis as a single completion to a chat model.
// There is no server side thread, the returned thread id is generated.
type ChatRunner struct {
	model shared.ChatModel
}

func NewChatRunner(model shared.ChatModel) *ChatRunner {
	return &ChatRunner{model: model}
}

func (r *ChatRunner) Run(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResult, error) {
	resp, err := r.model.Complete(ctx, dtos.ChatRequest{
		Messages: []dtos.ChatMessage{
			{Role: dtos.ChatRoleSystem, Content: buildRunInstructions(req.Scenario, req.Audience)},
			{Role: dtos.ChatRoleUser, Content: req.UserText},
		},
		JSONResponse: true,
	})
	if err != nil {
		return dtos.VoiceToneResult{}, fmt.Errorf("%s completion failed: %w", r.model.Name(), err)
	}
	return dtos.VoiceToneResult{Text: resp.Content, ThreadID: uuid.NewString()}, nil
}

type VoiceToneService struct {
	runner shared.VoiceToneRunner
}

func NewVoiceToneService(runner shared.VoiceToneRunner) *VoiceToneService {
	return &VoiceToneService{runner: runner}
}

func (s *VoiceToneService) Analyze(ctx context.Context, req dtos.VoiceToneRequest) (dtos.VoiceToneResponse, error) {
	start := time.Now()
	defer func() {
		monitoring.VoiceToneDuration.Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(req.Scenario) == "" || strings.TrimSpace(req.Audience) == "" || strings.TrimSpace(req.UserText) == "" {
		monitoring.VoiceToneTotal.WithLabelValues("invalid").Inc()
		return dtos.VoiceToneResponse{}, fmt.Errorf("%w: scenario, audience, userText", shared.ErrMissingInput)
	}

	result, err := s.runner.Run(ctx, req)
	if err != nil {
		monitoring.VoiceToneTotal.WithLabelValues("error").Inc()
		return dtos.VoiceToneResponse{}, err
	}

	text := stripCodeFence(result.Text)
	if !json.Valid([]byte(text)) {
		monitoring.VoiceToneTotal.WithLabelValues("invalid_response").Inc()
		return dtos.VoiceToneResponse{}, fmt.Errorf("%w: thread %s", shared.ErrInvalidAIResponse, result.ThreadID)
	}

	monitoring.VoiceToneTotal.WithLabelValues("success").Inc()
	return dtos.VoiceToneResponse{
		Success:  true,
		Analysis: json.RawMessage(text),
		ThreadID: result.ThreadID,
	}, nil
}
