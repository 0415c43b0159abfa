package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kmercer13/villageforge/internal/agent"
)

// ResetHandler clears all conversation memory and player progress.
type ResetHandler struct {
	agent  *agent.Agent
	logger *slog.Logger
}

// NewResetHandler creates a new reset handler
func NewResetHandler(a *agent.Agent, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{
		agent:  a,
		logger: logger,
	}
}

// ServeHTTP handles POST /v1/reset
func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for reset endpoint",
			"method", r.Method,
			"path", r.URL.Path)
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Method not allowed. Only POST is supported.",
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	h.agent.ResetWorld(r.Context())
	snap := h.agent.WorldSnapshot()

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(GameStateResponse{
		Inventory:    snap.Inventory,
		Missions:     snap.Missions,
		GameComplete: snap.GameComplete,
	}); err != nil {
		h.logger.Error("Error encoding reset response", "error", err)
	}
}
