// In file: internal/llm/orchestrator.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"chat-gateway/internal/tools"
)

const (
	// Completion-call timeouts by mode; data-source lookups have their own
	// shorter timeout inside the tools package.
	quickModeTimeout  = 8 * time.Second
	normalModeTimeout = 15 * time.Second

	secondCallMaxRetries = 3
	secondCallRetryDelay = 2 * time.Second
)

// ToolDispatcher is the orchestrator's view of the function dispatcher.
type ToolDispatcher interface {
	Dispatch(rawName string, args map[string]any) tools.Result
}

// ChatTurn is one user turn entering the orchestrator. Temperature is
// kept loosely typed because callers may send a JSON number or a string;
// non-numeric values fall back to the model default.
type ChatTurn struct {
	Prompt      string
	ModelID     string
	Temperature any
	Quick       bool
	Messages    []Message
}

// ExecutedFunction records which tool ran and what it returned; it rides
// along on the response envelope.
type ExecutedFunction struct {
	Name   string       `json:"name"`
	Result tools.Result `json:"result"`
}

// ChatResult is the orchestrator's terminal output for one turn.
type ChatResult struct {
	Choices          []Choice          `json:"choices"`
	Usage            Usage             `json:"usage,omitempty"`
	FunctionExecuted *ExecutedFunction `json:"function_executed,omitempty"`
}

// FunctionCallError reports a tool call whose JSON arguments could not be
// parsed; the offending call is echoed back to the caller.
type FunctionCallError struct {
	Call tools.ToolCallFunction
	Err  error
}

func (e *FunctionCallError) Error() string {
	return fmt.Sprintf("function execution failed: %v", e.Err)
}

func (e *FunctionCallError) Unwrap() error { return e.Err }

// Orchestrator drives the two-phase conversation protocol: completion,
// optional tool dispatch, second completion with bounded retry, finalize.
type Orchestrator struct {
	client     CompletionClient
	dispatcher ToolDispatcher
	registry   *tools.Registry
	render     func(string) string

	// retryDelay and sleep are configurable so tests do not block.
	retryDelay time.Duration
	sleep      func(time.Duration)
}

// NewOrchestrator wires the orchestrator. render converts the model's
// final markdown to sanitized output.
func NewOrchestrator(client CompletionClient, dispatcher ToolDispatcher, registry *tools.Registry, render func(string) string) *Orchestrator {
	return &Orchestrator{
		client:     client,
		dispatcher: dispatcher,
		registry:   registry,
		render:     render,
		retryDelay: secondCallRetryDelay,
		sleep:      time.Sleep,
	}
}

// ClampTemperature resolves the effective temperature: numeric input is
// clamped to [0.0, 1.0]; absent or non-numeric input yields the model
// default.
func ClampTemperature(value any, modelDefault float64) float64 {
	var t float64
	switch v := value.(type) {
	case nil:
		return modelDefault
	case float64:
		t = v
	case int:
		t = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return modelDefault
		}
		t = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return modelDefault
		}
		t = f
	default:
		return modelDefault
	}
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Complete runs one full turn. First-phase provider failures propagate as
// *APIError so the HTTP layer can forward the upstream status; a failed
// second phase never surfaces an error - the raw tool result is rendered
// into a synthesized answer instead.
func (o *Orchestrator) Complete(ctx context.Context, turn *ChatTurn) (*ChatResult, error) {
	settings := ResolveModel(turn.ModelID)
	if turn.ModelID != "" && turn.ModelID != settings.ID {
		log.Warn().Str("requested", turn.ModelID).Str("using", settings.ID).Msg("unknown model requested, falling back to default")
	}

	req := &CompletionRequest{
		Model:       settings.ID,
		Messages:    turn.Messages,
		MaxTokens:   settings.MaxTokens,
		Temperature: ClampTemperature(turn.Temperature, settings.Temperature),
		TopP:        settings.TopP,
	}
	timeout := normalModeTimeout
	if turn.Quick {
		req.MaxTokens = settings.MaxTokensQuick
		timeout = quickModeTimeout
	}
	if settings.SupportsFunctions {
		req.Tools = o.registry.Definitions()
	}

	// INITIAL: first completion call; non-2xx is terminal.
	resp, err := o.callOnce(ctx, req, timeout)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion returned no choices")
	}
	message := resp.Choices[0].Message

	// TOOL_CHECK: recognize either call shape; without one, finalize the
	// content as-is.
	call, legacy, hasCall := extractToolCall(message)
	if !hasCall {
		return o.finalize(message, resp.Usage, nil), nil
	}
	log.Info().Str("function", call.Name).Bool("legacy_shape", legacy).Msg("detected tool call")

	// DISPATCH: malformed argument JSON is terminal for this turn.
	var args map[string]any
	if raw := call.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, &FunctionCallError{Call: call, Err: fmt.Errorf("invalid tool arguments: %w", err)}
		}
	}
	toolResult := o.dispatcher.Dispatch(call.Name, args)

	messages := appendToolExchange(turn.Messages, message, call, legacy, toolResult)
	req.Messages = messages

	// SECOND_CALL: bounded retry with linear backoff; exhaustion degrades
	// to a synthesized answer carrying the raw tool result.
	executed := &ExecutedFunction{Name: call.Name, Result: toolResult}
	for attempt := 1; attempt <= secondCallMaxRetries; attempt++ {
		resp2, err := o.callOnce(ctx, req, timeout)
		if err == nil && len(resp2.Choices) > 0 {
			log.Info().Int("attempt", attempt).Msg("second completion call succeeded")
			return o.finalize(resp2.Choices[0].Message, resp2.Usage, executed), nil
		}
		if attempt < secondCallMaxRetries {
			wait := o.retryDelay * time.Duration(attempt)
			log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("second completion call failed, retrying")
			o.sleep(wait)
		} else {
			log.Error().Err(err).Msg("second completion call failed after final retry, synthesizing answer from tool result")
		}
	}

	return synthesizedResult(call.Name, toolResult), nil
}

// callOnce performs a single completion call under a mode-dependent
// timeout.
func (o *Orchestrator) callOnce(ctx context.Context, req *CompletionRequest, timeout time.Duration) (*CompletionResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return o.client.CreateCompletion(callCtx, req)
}

// extractToolCall recognizes both call shapes: the legacy single
// "function_call" field and the modern "tool_calls" list, of which only
// the first entry is honored.
func extractToolCall(m Message) (call tools.ToolCallFunction, legacy bool, ok bool) {
	if m.FunctionCall != nil && m.FunctionCall.Name != "" {
		return *m.FunctionCall, true, true
	}
	if len(m.ToolCalls) > 0 && m.ToolCalls[0].Function.Name != "" {
		return m.ToolCalls[0].Function, false, true
	}
	return tools.ToolCallFunction{}, false, false
}

// appendToolExchange extends the conversation with the assistant's
// tool-call message (null content by contract) and the tool-result
// message, in the same wire shape the call arrived in. The input slice is
// not mutated.
func appendToolExchange(messages []Message, assistant Message, call tools.ToolCallFunction, legacy bool, result tools.Result) []Message {
	serialized, err := json.Marshal(result)
	if err != nil {
		// A Result is always a JSON-safe map; treat failure as an empty
		// payload rather than dropping the exchange.
		serialized = []byte("{}")
	}

	out := make([]Message, 0, len(messages)+2)
	out = append(out, messages...)

	if legacy {
		out = append(out,
			Message{Role: RoleAssistant, Content: nil, FunctionCall: &call},
			Message{Role: RoleFunction, Name: call.Name, Content: Text(string(serialized))},
		)
		return out
	}

	toolCallID := ""
	if len(assistant.ToolCalls) > 0 {
		toolCallID = assistant.ToolCalls[0].ID
	}
	out = append(out,
		Message{Role: RoleAssistant, Content: nil, ToolCalls: assistant.ToolCalls},
		Message{Role: RoleTool, ToolCallID: toolCallID, Name: call.Name, Content: Text(string(serialized))},
	)
	return out
}

// finalize renders non-empty content to sanitized output and attaches the
// tool-execution metadata. Both steps apply only when the message carries
// content; an empty reply passes through untouched, with no metadata.
func (o *Orchestrator) finalize(message Message, usage Usage, executed *ExecutedFunction) *ChatResult {
	result := &ChatResult{
		Choices: []Choice{{Message: message}},
		Usage:   usage,
	}
	if content := message.TextContent(); content != "" {
		result.Choices[0].Message = Message{Role: RoleAssistant, Content: Text(o.render(content))}
		result.FunctionExecuted = executed
	}
	return result
}

// synthesizedResult builds the best-effort terminal answer used when the
// summarizing model call never succeeds: the user still receives the data
// the tool fetched.
func synthesizedResult(toolName string, result tools.Result) *ChatResult {
	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		pretty = []byte(fmt.Sprint(result))
	}
	content := fmt.Sprintf("I found the information you requested about %s:\n\n%s", toolName, pretty)
	return &ChatResult{
		Choices: []Choice{{
			Message: Message{Role: RoleAssistant, Content: Text(content)},
		}},
	}
}
