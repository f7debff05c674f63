package dtos

import "encoding/json"

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleTool      ChatRole = "tool"
)

type ImageInput struct {
	MimeType string
	Data     []byte
	// Detail is a provider hint, "high" asks for full resolution analysis.
	Detail string
}

type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatMessage is a provider neutral conversation entry.
// Tool results carry ToolCallID and Name of the call they answer.
type ChatMessage struct {
	Role       ChatRole
	Content    string
	Images     []ImageInput
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

type ChatRequest struct {
	Messages     []ChatMessage
	Tools        []ToolDefinition
	JSONResponse bool
	Temperature  float64
}

type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
}
