// In file: internal/llm/orchestrator_test.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-gateway/internal/tools"
)

// scriptedClient replays a fixed sequence of responses and records every
// request, deep-copying the message list so later mutations don't leak in.
type scriptedClient struct {
	responses []*CompletionResponse
	errs      []error
	requests  []CompletionRequest
}

func (c *scriptedClient) CreateCompletion(_ context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	recorded := *req
	recorded.Messages = append([]Message(nil), req.Messages...)
	c.requests = append(c.requests, recorded)

	i := len(c.requests) - 1
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return nil, errors.New("no scripted response left")
}

type recordingDispatcher struct {
	name   string
	args   map[string]any
	result tools.Result
}

func (d *recordingDispatcher) Dispatch(name string, args map[string]any) tools.Result {
	d.name = name
	d.args = args
	return d.result
}

func assistantText(content string) *CompletionResponse {
	return &CompletionResponse{
		Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: Text(content)}}},
		Usage:   Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func newTestOrchestrator(client CompletionClient, dispatcher ToolDispatcher) (*Orchestrator, *[]time.Duration) {
	waits := &[]time.Duration{}
	o := NewOrchestrator(client, dispatcher, tools.NewRegistry(), strings.ToUpper)
	o.sleep = func(d time.Duration) { *waits = append(*waits, d) }
	return o, waits
}

func TestClampTemperature(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"nil uses default", nil, 0.7},
		{"in range", 0.3, 0.3},
		{"above range clamps", 5.0, 1.0},
		{"int above range clamps", 5, 1.0},
		{"below range clamps", -1.0, 0.0},
		{"numeric string", "0.3", 0.3},
		{"json number", json.Number("0.8"), 0.8},
		{"non-numeric string uses default", "abc", 0.7},
		{"unsupported type uses default", []int{1}, 0.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampTemperature(tt.value, 0.7))
		})
	}
}

func TestComplete_NoToolCall(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{assistantText("hello there")}}
	o, _ := newTestOrchestrator(client, &recordingDispatcher{})

	result, err := o.Complete(context.Background(), &ChatTurn{
		Prompt:   "hi",
		Quick:    true,
		Messages: []Message{{Role: RoleUser, Content: Text("hi")}},
	})
	require.NoError(t, err)

	require.Len(t, result.Choices, 1)
	assert.Equal(t, "HELLO THERE", result.Choices[0].Message.TextContent())
	assert.Equal(t, 15, result.Usage.TotalTokens)
	assert.Nil(t, result.FunctionExecuted)
	require.Len(t, client.requests, 1)
}

func TestComplete_RequestShapeByMode(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{assistantText("ok"), assistantText("ok")}}
	o, _ := newTestOrchestrator(client, &recordingDispatcher{})

	_, err := o.Complete(context.Background(), &ChatTurn{Quick: true, Messages: []Message{{Role: RoleUser, Content: Text("x")}}})
	require.NoError(t, err)
	_, err = o.Complete(context.Background(), &ChatTurn{Quick: false, Messages: []Message{{Role: RoleUser, Content: Text("x")}}})
	require.NoError(t, err)

	require.Len(t, client.requests, 2)
	assert.Equal(t, 256, client.requests[0].MaxTokens)
	assert.Equal(t, 2048, client.requests[1].MaxTokens)
	assert.Equal(t, DefaultModelID, client.requests[0].Model)
	assert.Len(t, client.requests[0].Tools, 6)
	assert.Equal(t, 0.9, client.requests[0].TopP)
}

func TestComplete_ReasoningModelGetsNoTools(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{assistantText("ok")}}
	o, _ := newTestOrchestrator(client, &recordingDispatcher{})

	reasoningID := ModelCatalog()[1].ID
	_, err := o.Complete(context.Background(), &ChatTurn{
		ModelID:  reasoningID,
		Messages: []Message{{Role: RoleUser, Content: Text("x")}},
	})
	require.NoError(t, err)

	assert.Equal(t, reasoningID, client.requests[0].Model)
	assert.Empty(t, client.requests[0].Tools)
}

func TestComplete_UnknownModelFallsBackToDefault(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{assistantText("ok")}}
	o, _ := newTestOrchestrator(client, &recordingDispatcher{})

	_, err := o.Complete(context.Background(), &ChatTurn{
		ModelID:  "made-up-model",
		Messages: []Message{{Role: RoleUser, Content: Text("x")}},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultModelID, client.requests[0].Model)
}

func TestComplete_LegacyFunctionCall(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{
		{Choices: []Choice{{Message: Message{
			Role:         RoleAssistant,
			FunctionCall: &tools.ToolCallFunction{Name: "get_real_weather", Arguments: `{"location":"Paris"}`},
		}}}},
		assistantText("It is 20 degrees in Paris."),
	}}
	dispatcher := &recordingDispatcher{result: tools.Result{"temperature": "20°C"}}
	o, _ := newTestOrchestrator(client, dispatcher)

	result, err := o.Complete(context.Background(), &ChatTurn{
		Messages: []Message{{Role: RoleUser, Content: Text("weather in Paris?")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "get_real_weather", dispatcher.name)
	assert.Equal(t, map[string]any{"location": "Paris"}, dispatcher.args)

	require.NotNil(t, result.FunctionExecuted)
	assert.Equal(t, "get_real_weather", result.FunctionExecuted.Name)
	assert.Equal(t, tools.Result{"temperature": "20°C"}, result.FunctionExecuted.Result)

	// The second request extends the conversation with the tool exchange
	// in the legacy wire shape.
	require.Len(t, client.requests, 2)
	messages := client.requests[1].Messages
	require.Len(t, messages, 3)

	assistant := messages[1]
	assert.Equal(t, RoleAssistant, assistant.Role)
	assert.Nil(t, assistant.Content)
	require.NotNil(t, assistant.FunctionCall)
	assert.Equal(t, "get_real_weather", assistant.FunctionCall.Name)

	toolMsg := messages[2]
	assert.Equal(t, RoleFunction, toolMsg.Role)
	assert.Equal(t, "get_real_weather", toolMsg.Name)
	assert.JSONEq(t, `{"temperature":"20°C"}`, toolMsg.TextContent())
}

func TestComplete_ModernToolCall(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{
		{Choices: []Choice{{Message: Message{
			Role: RoleAssistant,
			ToolCalls: []tools.ToolCall{{
				ID:       "call_123",
				Type:     "function",
				Function: tools.ToolCallFunction{Name: "search_products", Arguments: `{"query":"headphones"}`},
			}},
		}}}},
		assistantText("Found one match."),
	}}
	dispatcher := &recordingDispatcher{result: tools.Result{"count": 1}}
	o, _ := newTestOrchestrator(client, dispatcher)

	result, err := o.Complete(context.Background(), &ChatTurn{
		Messages: []Message{{Role: RoleUser, Content: Text("find headphones")}},
	})
	require.NoError(t, err)
	require.NotNil(t, result.FunctionExecuted)

	messages := client.requests[1].Messages
	require.Len(t, messages, 3)

	assistant := messages[1]
	assert.Nil(t, assistant.Content)
	require.Len(t, assistant.ToolCalls, 1)

	toolMsg := messages[2]
	assert.Equal(t, RoleTool, toolMsg.Role)
	assert.Equal(t, "call_123", toolMsg.ToolCallID)
	assert.Equal(t, "search_products", toolMsg.Name)
}

func TestComplete_MalformedArgumentsFailTheTurn(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{
		{Choices: []Choice{{Message: Message{
			Role:         RoleAssistant,
			FunctionCall: &tools.ToolCallFunction{Name: "get_real_weather", Arguments: `{"location":`},
		}}}},
	}}
	o, _ := newTestOrchestrator(client, &recordingDispatcher{})

	_, err := o.Complete(context.Background(), &ChatTurn{
		Messages: []Message{{Role: RoleUser, Content: Text("weather?")}},
	})

	var callErr *FunctionCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "get_real_weather", callErr.Call.Name)
}

func TestComplete_FirstCallErrorPropagates(t *testing.T) {
	client := &scriptedClient{errs: []error{&APIError{StatusCode: 429, Message: "rate limited"}}}
	o, _ := newTestOrchestrator(client, &recordingDispatcher{})

	_, err := o.Complete(context.Background(), &ChatTurn{
		Messages: []Message{{Role: RoleUser, Content: Text("x")}},
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 429, apiErr.StatusCode)
	require.Len(t, client.requests, 1)
}

func TestComplete_SecondCallRetriesThenSynthesizes(t *testing.T) {
	rateLimited := &APIError{StatusCode: 429, Message: "rate limited"}
	client := &scriptedClient{
		responses: []*CompletionResponse{
			{Choices: []Choice{{Message: Message{
				Role:         RoleAssistant,
				FunctionCall: &tools.ToolCallFunction{Name: "get_real_weather", Arguments: `{"location":"Paris"}`},
			}}}},
		},
		errs: []error{nil, rateLimited, rateLimited, rateLimited},
	}
	dispatcher := &recordingDispatcher{result: tools.Result{"temperature": "20°C", "condition": "Cloudy"}}
	o, waits := newTestOrchestrator(client, dispatcher)

	result, err := o.Complete(context.Background(), &ChatTurn{
		Messages: []Message{{Role: RoleUser, Content: Text("weather in Paris?")}},
	})
	require.NoError(t, err)

	// One initial call plus three second-call attempts.
	assert.Len(t, client.requests, 4)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *waits)

	content := result.Choices[0].Message.TextContent()
	assert.Contains(t, content, "I found the information you requested about get_real_weather")
	assert.Contains(t, content, `"temperature": "20°C"`)
	// The synthesized answer is raw text, not rendered markup.
	assert.False(t, strings.HasPrefix(content, "I FOUND"))
	assert.Nil(t, result.FunctionExecuted)
}

func TestComplete_EmptySecondReplySkipsRenderAndMetadata(t *testing.T) {
	client := &scriptedClient{responses: []*CompletionResponse{
		{Choices: []Choice{{Message: Message{
			Role:         RoleAssistant,
			FunctionCall: &tools.ToolCallFunction{Name: "get_real_weather", Arguments: `{"location":"Paris"}`},
		}}}},
		{Choices: []Choice{{Message: Message{Role: RoleAssistant, Content: Text("")}}}},
	}}
	dispatcher := &recordingDispatcher{result: tools.Result{"temperature": "20°C"}}
	o, _ := newTestOrchestrator(client, dispatcher)

	result, err := o.Complete(context.Background(), &ChatTurn{
		Messages: []Message{{Role: RoleUser, Content: Text("weather in Paris?")}},
	})
	require.NoError(t, err)

	require.Len(t, result.Choices, 1)
	assert.Equal(t, "", result.Choices[0].Message.TextContent())
	assert.Nil(t, result.FunctionExecuted)
}

func TestComplete_SecondCallSucceedsAfterRetry(t *testing.T) {
	rateLimited := &APIError{StatusCode: 429, Message: "rate limited"}
	client := &scriptedClient{
		responses: []*CompletionResponse{
			{Choices: []Choice{{Message: Message{
				Role:         RoleAssistant,
				FunctionCall: &tools.ToolCallFunction{Name: "get_real_weather", Arguments: `{"location":"Paris"}`},
			}}}},
			nil,
			assistantText("It is 20 degrees in Paris."),
		},
		errs: []error{nil, rateLimited, nil},
	}
	dispatcher := &recordingDispatcher{result: tools.Result{"temperature": "20°C"}}
	o, waits := newTestOrchestrator(client, dispatcher)

	result, err := o.Complete(context.Background(), &ChatTurn{
		Messages: []Message{{Role: RoleUser, Content: Text("weather in Paris?")}},
	})
	require.NoError(t, err)

	assert.Len(t, client.requests, 3)
	assert.Equal(t, []time.Duration{2 * time.Second}, *waits)
	assert.Equal(t, "IT IS 20 DEGREES IN PARIS.", result.Choices[0].Message.TextContent())
	require.NotNil(t, result.FunctionExecuted)
}
