// Package state owns the single shared world state: the player's
// inventory and the status of every mission in the fixed catalog. All
// mutation goes through PlayerState's methods, which serialize access
// internally; callers never touch the maps directly.
package state

import (
	"sort"
	"sync"

	"github.com/kmercer13/villageforge/pkg/chat"
)

// MissionStatus is the lifecycle of one mission. Status only moves
// forward: not_started -> in_progress -> completed. A completed mission
// never regresses.
type MissionStatus string

const (
	MissionNotStarted MissionStatus = "not_started"
	MissionInProgress MissionStatus = "in_progress"
	MissionCompleted  MissionStatus = "completed"
)

// PlayerState tracks inventory and mission progress for the shared
// world. There is one instance per process. Safe for concurrent use.
type PlayerState struct {
	mu        sync.Mutex
	inventory map[string]struct{}
	missions  map[string]MissionStatus
	catalog   []string
}

// Snapshot is an immutable copy of the world state, taken atomically.
// Prompt building reads from a Snapshot so a concurrent apply can never
// produce a half-updated view.
type Snapshot struct {
	Inventory    []string
	Missions     map[string]string
	GameComplete bool
}

// NewPlayerState initializes the world with an empty inventory and
// every catalog mission at not_started. The catalog is fixed for the
// process lifetime; the mission map never gains or loses keys after this.
func NewPlayerState(catalog []string) *PlayerState {
	ps := &PlayerState{
		inventory: make(map[string]struct{}),
		missions:  make(map[string]MissionStatus, len(catalog)),
		catalog:   append([]string(nil), catalog...),
	}
	for _, m := range catalog {
		ps.missions[m] = MissionNotStarted
	}
	return ps
}

// ApplyEffects applies an optional item grant and an optional mission
// completion. Both are idempotent: an item already held or a mission
// already completed is a no-op and is not reported as newly applied.
// A mission id outside the fixed catalog is ignored entirely; the
// catalog never grows. Empty strings mean "no directive of that kind".
func (ps *PlayerState) ApplyEffects(item, mission string) chat.AppliedEffects {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	var effects chat.AppliedEffects

	if item != "" {
		if _, held := ps.inventory[item]; !held {
			ps.inventory[item] = struct{}{}
			effects.ItemGranted = item
		}
	}

	if mission != "" {
		if status, known := ps.missions[mission]; known && status != MissionCompleted {
			ps.missions[mission] = MissionCompleted
			effects.MissionCompleted = mission
		}
	}

	return effects
}

// HasMission reports whether mission is part of the fixed catalog.
func (ps *PlayerState) HasMission(mission string) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	_, ok := ps.missions[mission]
	return ok
}

// Snapshot returns an atomic copy of the current world state.
func (ps *PlayerState) Snapshot() Snapshot {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.snapshotLocked()
}

func (ps *PlayerState) snapshotLocked() Snapshot {
	inv := make([]string, 0, len(ps.inventory))
	for item := range ps.inventory {
		inv = append(inv, item)
	}
	sort.Strings(inv)

	missions := make(map[string]string, len(ps.missions))
	complete := true
	for id, status := range ps.missions {
		missions[id] = string(status)
		if status != MissionCompleted {
			complete = false
		}
	}

	return Snapshot{
		Inventory:    inv,
		Missions:     missions,
		GameComplete: complete,
	}
}

// ApplyAndSnapshot applies effects and returns the resulting snapshot
// in one critical section, so the returned view always includes exactly
// this turn's effects.
func (ps *PlayerState) ApplyAndSnapshot(item, mission string) (chat.AppliedEffects, Snapshot) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	var effects chat.AppliedEffects
	if item != "" {
		if _, held := ps.inventory[item]; !held {
			ps.inventory[item] = struct{}{}
			effects.ItemGranted = item
		}
	}
	if mission != "" {
		if status, known := ps.missions[mission]; known && status != MissionCompleted {
			ps.missions[mission] = MissionCompleted
			effects.MissionCompleted = mission
		}
	}

	return effects, ps.snapshotLocked()
}

// AllMissionsComplete reports whether every catalog mission is
// completed. Re-derived on each call, never cached.
func (ps *PlayerState) AllMissionsComplete() bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, status := range ps.missions {
		if status != MissionCompleted {
			return false
		}
	}
	return true
}

// Reset reinitializes the inventory to empty and every catalog mission
// to not_started.
func (ps *PlayerState) Reset() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.inventory = make(map[string]struct{})
	for _, m := range ps.catalog {
		ps.missions[m] = MissionNotStarted
	}
}
