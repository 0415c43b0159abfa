package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kmercer13/villageforge/pkg/npc"
)

// NPCListResponse maps character id to display name.
type NPCListResponse struct {
	NPCs map[string]string `json:"npcs"`
}

// NPCsHandler serves the character roster.
type NPCsHandler struct {
	registry *npc.Registry
	logger   *slog.Logger
}

// NewNPCsHandler creates a new roster handler
func NewNPCsHandler(registry *npc.Registry, logger *slog.Logger) *NPCsHandler {
	return &NPCsHandler{
		registry: registry,
		logger:   logger,
	}
}

// ServeHTTP handles GET /v1/npcs
func (h *NPCsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for npcs endpoint",
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

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(NPCListResponse{
		NPCs: h.registry.List(),
	}); err != nil {
		h.logger.Error("Error encoding npcs response", "error", err)
	}
}
