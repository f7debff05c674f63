package dtos

import "encoding/json"

type VoiceToneRequest struct {
	Scenario string `json:"scenario" validate:"required"`
	Audience string `json:"audience" validate:"required"`
	UserText string `json:"userText" validate:"required"`
}

type VoiceToneReasoning struct {
	Good []string `json:"good"`
	Bad  []string `json:"bad"`
}

type VoiceToneFlags struct {
	CorporateSpeak  bool     `json:"corporateSpeak"`
	ProhibitedWords []string `json:"prohibitedWords"`
}

// VoiceToneAnalysis is the shape the model is asked to return.
// The API passes the model output through as-is, this type is used by consumers.
type VoiceToneAnalysis struct {
	Scenario    string             `json:"scenario"`
	Audience    string             `json:"audience"`
	Language    string             `json:"language"`
	Reasoning   VoiceToneReasoning `json:"reasoning"`
	Score       float64            `json:"score"`
	Flags       VoiceToneFlags     `json:"flags"`
	GoodExample string             `json:"goodExample"`
	BadExample  string             `json:"badExample"`
	NextStep    string             `json:"nextStep"`
	Suggestions []string           `json:"suggestions"`
}

type VoiceToneResponse struct {
	Success  bool            `json:"success"`
	Analysis json.RawMessage `json:"analysis"`
	ThreadID string          `json:"threadId"`
}
