// In file: cmd/gateway/handler.go
package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"chat-gateway/internal/llm"
)

// completer is the handler's view of the orchestrator.
type completer interface {
	Complete(ctx context.Context, turn *llm.ChatTurn) (*llm.ChatResult, error)
}

// GatewayHandler owns the HTTP surface: the chat endpoint and the model
// listing.
type GatewayHandler struct {
	orchestrator completer
}

func NewGatewayHandler(orchestrator completer) *GatewayHandler {
	return &GatewayHandler{orchestrator: orchestrator}
}

// chatRequest is the inbound /api/chat body. Temperature stays loosely
// typed: callers send numbers or strings and non-numeric values fall back
// to the model default. QuickMode defaults to true when omitted.
type chatRequest struct {
	Prompt      string        `json:"prompt"`
	Model       string        `json:"model"`
	Temperature any           `json:"temperature"`
	QuickMode   *bool         `json:"quick_mode"`
	Messages    []llm.Message `json:"messages"`
}

// HandleChat runs the full pipeline for one user turn: classify and build
// messages, orchestrate the completion protocol, return the finalized
// envelope.
func (h *GatewayHandler) HandleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Prompt == "" && len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt or messages are required"})
		return
	}

	quick := true
	if req.QuickMode != nil {
		quick = *req.QuickMode
	}

	log.Info().
		Str("request_id", c.GetString("request_id")).
		Str("model", req.Model).
		Bool("quick_mode", quick).
		Msg("received chat request")

	messages := llm.BuildMessages(req.Prompt, req.Messages, req.Model, quick)

	result, err := h.orchestrator.Complete(c.Request.Context(), &llm.ChatTurn{
		Prompt:      req.Prompt,
		ModelID:     req.Model,
		Temperature: req.Temperature,
		Quick:       quick,
		Messages:    messages,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	log.Info().Str("request_id", c.GetString("request_id")).Msg("successfully processed chat request")
	c.JSON(http.StatusOK, result)
}

// writeError maps orchestrator failures to HTTP responses: the first
// completion call's provider status is propagated; a malformed tool call
// echoes the offending call; everything else is a 500.
func (h *GatewayHandler) writeError(c *gin.Context, err error) {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		log.Error().Int("status", apiErr.StatusCode).Str("message", apiErr.Message).Msg("completion provider error")
		c.JSON(apiErr.StatusCode, gin.H{"error": "Together API error: " + apiErr.Message})
		return
	}

	var callErr *llm.FunctionCallError
	if errors.As(err, &callErr) {
		log.Error().Err(callErr.Err).Str("function", callErr.Call.Name).Msg("function execution error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":         "Function execution failed: " + callErr.Err.Error(),
			"function_call": callErr.Call,
		})
		return
	}

	log.Error().Err(err).Msg("error processing chat request")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// HandleModels lists the model-settings table, excluding internal-only
// fields.
func (h *GatewayHandler) HandleModels(c *gin.Context) {
	models := make([]gin.H, 0, 2)
	for _, m := range llm.ModelCatalog() {
		models = append(models, gin.H{
			"id":          m.ID,
			"name":        m.Name,
			"temperature": m.Temperature,
			"max_tokens":  m.MaxTokens,
			"top_p":       m.TopP,
		})
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}
