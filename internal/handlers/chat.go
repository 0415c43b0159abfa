package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kmercer13/villageforge/internal/agent"
	"github.com/kmercer13/villageforge/pkg/chat"
)

// chatTimeout bounds one synchronous dialogue turn end to end.
const chatTimeout = 60 * time.Second

// ChatHandler handles synchronous dialogue turns.
type ChatHandler struct {
	agent  *agent.Agent
	logger *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(a *agent.Agent, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		agent:  a,
		logger: logger,
	}
}

// ServeHTTP handles POST /v1/chat
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for chat endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	var request chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Invalid request body. Expected JSON with 'npc_id' and 'message' fields.",
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid turn request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: err.Error(),
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	h.logger.Info("Chat turn started",
		"npc_id", request.NPCID,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	result, err := h.agent.Converse(ctx, request.NPCID, request.Message)
	if err != nil {
		// The turn was abandoned; the client is usually already gone.
		h.logger.Info("Chat turn abandoned", "error", err, "npc_id", request.NPCID)
		w.WriteHeader(http.StatusRequestTimeout)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Turn abandoned before completion.",
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("Error encoding chat response", "error", err)
	}
}
