// In file: internal/llm/client.go

// Package llm contains the conversation model, the prompt classifier, the
// Together completion client, and the orchestrator that drives the
// two-phase tool-calling protocol.
package llm

import (
	"context"
	"fmt"

	"chat-gateway/internal/tools"
)

// Role represents the originator of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	// RoleFunction is the legacy tool-result role paired with the legacy
	// "function_call" request shape.
	RoleFunction Role = "function"
)

// Message is a single message in a conversation history.
//
// Content is a pointer because the wire contract distinguishes empty from
// null: an assistant message that carries a tool call has null content.
type Message struct {
	Role         Role                    `json:"role"`
	Content      *string                 `json:"content"`
	Name         string                  `json:"name,omitempty"`
	ToolCallID   string                  `json:"tool_call_id,omitempty"`
	ToolCalls    []tools.ToolCall        `json:"tool_calls,omitempty"`
	FunctionCall *tools.ToolCallFunction `json:"function_call,omitempty"`
}

// Text is a convenience for building message content in place.
func Text(s string) *string { return &s }

// TextContent returns the message content, treating null as empty.
func (m Message) TextContent() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// HasSystemMessage reports whether the sequence already carries a system
// instruction; classification and insertion never happen twice.
func HasSystemMessage(messages []Message) bool {
	for _, m := range messages {
		if m.Role == RoleSystem {
			return true
		}
	}
	return false
}

// CompletionRequest is the payload sent to the chat-completion provider.
type CompletionRequest struct {
	Model       string       `json:"model"`
	Messages    []Message    `json:"messages"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature float64      `json:"temperature"`
	TopP        float64      `json:"top_p,omitempty"`
	Tools       []tools.Tool `json:"tools,omitempty"`
}

// Choice is one completion alternative; only the first is ever consumed.
type Choice struct {
	Message Message `json:"message"`
}

// Usage reports the provider's token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResponse is a successful reply from the completion provider.
type CompletionResponse struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// APIError carries a provider failure with enough structure for the HTTP
// layer to propagate the upstream status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion API error (status %d): %s", e.StatusCode, e.Message)
}

// CompletionClient is the boundary to the hosted completion endpoint.
type CompletionClient interface {
	CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}
