package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kmercer13/villageforge/internal/agent"
	"github.com/kmercer13/villageforge/pkg/chat"
)

// ChatStreamHandler streams dialogue turns over Server-Sent Events.
// Fragments arrive as "chunk" events; the final "result" event carries
// the full structured turn outcome.
type ChatStreamHandler struct {
	agent  *agent.Agent
	logger *slog.Logger
}

// NewChatStreamHandler creates a new streaming chat handler
func NewChatStreamHandler(a *agent.Agent, logger *slog.Logger) *ChatStreamHandler {
	return &ChatStreamHandler{
		agent:  a,
		logger: logger,
	}
}

// ServeHTTP handles POST /v1/chat/stream
func (h *ChatStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
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
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Invalid request body. Expected JSON with 'npc_id' and 'message' fields.",
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	if err := request.Validate(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: err.Error(),
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	h.logger.Info("Streaming chat turn started",
		"npc_id", request.NPCID,
		"remote_addr", r.RemoteAddr)

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	h.sendSSE(w, "start", map[string]interface{}{
		"npc_id": request.NPCID,
	})

	result, err := h.agent.ConverseStream(r.Context(), request.NPCID, request.Message, func(fragment string) {
		h.sendSSE(w, "chunk", map[string]interface{}{
			"content": fragment,
		})
	})
	if err != nil {
		// Abandoned mid-stream; nothing useful left to send.
		h.logger.Info("Streaming turn abandoned", "error", err, "npc_id", request.NPCID)
		return
	}

	h.sendSSE(w, "result", result)
}

// sendSSE sends a Server-Sent Event to the client
func (h *ChatStreamHandler) sendSSE(w http.ResponseWriter, eventType string, data interface{}) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("Failed to marshal SSE data", "error", err)
		return
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", eventType); err != nil {
		h.logger.Error("Failed to write event type", "error", err)
		return
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", string(dataJSON)); err != nil {
		h.logger.Error("Failed to write event data", "error", err)
		return
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
