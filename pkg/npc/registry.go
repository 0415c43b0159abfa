package npc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry is a read-only lookup from character id to Config. Build it
// once at startup; it is safe for concurrent readers after that.
type Registry struct {
	configs map[string]Config
}

// NewRegistry returns a registry holding the built-in village roster.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[string]Config, len(defaults))}
	for _, cfg := range defaults {
		r.configs[cfg.ID] = cfg
	}
	return r
}

// LoadDir merges character JSON files from dir into the registry. Each
// file must contain a single Config with a non-empty id; a matching id
// replaces the built-in entry. A missing directory is not an error.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read npc data dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read npc file %s: %w", entry.Name(), err)
		}

		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("failed to parse npc file %s: %w", entry.Name(), err)
		}
		if cfg.ID == "" {
			return fmt.Errorf("npc file %s has no id", entry.Name())
		}

		r.configs[cfg.ID] = cfg
	}

	return nil
}

// Get returns the config for id. The second value is false for unknown
// ids; callers are expected to degrade gracefully rather than error.
func (r *Registry) Get(id string) (Config, bool) {
	cfg, ok := r.configs[id]
	return cfg, ok
}

// List returns id -> display name for every registered character,
// for the roster endpoint.
func (r *Registry) List() map[string]string {
	out := make(map[string]string, len(r.configs))
	for id, cfg := range r.configs {
		out[id] = cfg.Name
	}
	return out
}

// MissionCatalog returns the sorted set of mission ids owned by
// registered characters. This is the fixed catalog the player state is
// initialized from; it never changes after startup.
func (r *Registry) MissionCatalog() []string {
	var missions []string
	for _, cfg := range r.configs {
		if cfg.Mission != "" {
			missions = append(missions, cfg.Mission)
		}
	}
	sort.Strings(missions)
	return missions
}
