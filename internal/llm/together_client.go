// In file: internal/llm/together_client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const togetherAPIURL = "https://api.together.xyz/v1/chat/completions"

// TogetherClient talks to the Together chat-completions endpoint. Request
// deadlines come from the caller's context (quick mode uses a shorter
// one); the embedded client timeout is only a safety net.
type TogetherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ CompletionClient = (*TogetherClient)(nil)

// TogetherOption customizes the client, mainly for tests.
type TogetherOption func(*TogetherClient)

func WithBaseURL(u string) TogetherOption {
	return func(c *TogetherClient) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) TogetherOption {
	return func(c *TogetherClient) { c.httpClient = hc }
}

func NewTogetherClient(apiKey string, opts ...TogetherOption) *TogetherClient {
	c := &TogetherClient{
		apiKey:     apiKey,
		baseURL:    togetherAPIURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// togetherErrorResponse is the provider's error envelope.
type togetherErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCompletion performs one blocking completion call. A non-2xx reply
// becomes an *APIError carrying the provider's message and status code;
// transport failures are returned as-is.
func (c *TogetherClient) CreateCompletion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := "Unknown API error"
		var errResp togetherErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	var completion CompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion response: %w", err)
	}
	return &completion, nil
}
