// In file: internal/tools/types.go

// Package tools implements the gateway's function-calling surface: the
// catalog of tool definitions exposed to the model, the dispatcher that
// resolves a model-emitted name to a concrete operation, and the external
// data clients those operations run against.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool is the schema for one callable function as described to the LLM.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function carries the name, description, and parameter schema of a tool.
// The description matters: the model uses it to decide when to call.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is a type-safe subset of JSON Schema sufficient for tool
// parameter specs. Using a struct instead of map[string]interface{} keeps
// the definitions readable and catches shape mistakes at compile time.
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Default     any                    `json:"default,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// ToolCall is a request from the model to execute a tool, in the modern
// "tool_calls" wire shape.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction holds the requested function name and its arguments as
// a JSON string. This is also the legacy "function_call" wire shape.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// NewFunctionTool wraps a function definition in the standard tool envelope.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
