package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kmercer13/villageforge/internal/agent"
)

// GameStateResponse is the JSON shape of the world state.
type GameStateResponse struct {
	Inventory    []string          `json:"inventory"`
	Missions     map[string]string `json:"missions"`
	GameComplete bool              `json:"game_complete"`
}

// GameStateHandler serves read-only world state snapshots.
type GameStateHandler struct {
	agent  *agent.Agent
	logger *slog.Logger
}

// NewGameStateHandler creates a new game state handler
func NewGameStateHandler(a *agent.Agent, logger *slog.Logger) *GameStateHandler {
	return &GameStateHandler{
		agent:  a,
		logger: logger,
	}
}

// ServeHTTP handles GET /v1/gamestate
func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for gamestate endpoint",
			"method", r.Method,
			"path", r.URL.Path)
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Method not allowed. Only GET is supported.",
		}); err != nil {
			h.logger.Error("Error encoding error response", "error", err)
		}
		return
	}

	snap := h.agent.WorldSnapshot()
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(GameStateResponse{
		Inventory:    snap.Inventory,
		Missions:     snap.Missions,
		GameComplete: snap.GameComplete,
	}); err != nil {
		h.logger.Error("Error encoding gamestate response", "error", err)
	}
}
