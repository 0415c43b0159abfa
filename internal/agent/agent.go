// Package agent orchestrates one dialogue turn: prompt assembly,
// generation, directive handling, memory recording, and world-state
// application. Generation failures are absorbed here and converted
// into a degraded-but-successful turn; only cancellation propagates.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kmercer13/villageforge/internal/services"
	"github.com/kmercer13/villageforge/internal/services/events"
	"github.com/kmercer13/villageforge/pkg/chat"
	"github.com/kmercer13/villageforge/pkg/directive"
	"github.com/kmercer13/villageforge/pkg/memory"
	"github.com/kmercer13/villageforge/pkg/npc"
	"github.com/kmercer13/villageforge/pkg/prompts"
	"github.com/kmercer13/villageforge/pkg/state"
	"github.com/kmercer13/villageforge/pkg/textfilter"
)

// FallbackMessage is the character reply substituted when generation
// fails. It is what the player sees and what gets recorded to memory,
// so the conversation log stays coherent.
const FallbackMessage = "Hmm, my mind seems clouded..."

// Agent drives dialogue turns against the shared world state.
type Agent struct {
	registry    *npc.Registry
	memory      *memory.Memory
	player      *state.PlayerState
	llm         services.LLMService
	filter      *textfilter.Filter
	broadcaster *events.Broadcaster
	logger      *slog.Logger

	// Turns are serialized per character id so concurrent requests for
	// the same NPC can never interleave histories.
	turnMu    sync.Mutex
	turnLocks map[string]*sync.Mutex
}

// New creates an Agent. filter and broadcaster may be nil to disable
// output filtering and event publishing respectively.
func New(
	registry *npc.Registry,
	mem *memory.Memory,
	player *state.PlayerState,
	llm services.LLMService,
	filter *textfilter.Filter,
	broadcaster *events.Broadcaster,
	logger *slog.Logger,
) *Agent {
	return &Agent{
		registry:    registry,
		memory:      mem,
		player:      player,
		llm:         llm,
		filter:      filter,
		broadcaster: broadcaster,
		logger:      logger,
		turnLocks:   make(map[string]*sync.Mutex),
	}
}

func (a *Agent) turnLock(npcID string) *sync.Mutex {
	a.turnMu.Lock()
	defer a.turnMu.Unlock()
	mu, ok := a.turnLocks[npcID]
	if !ok {
		mu = &sync.Mutex{}
		a.turnLocks[npcID] = mu
	}
	return mu
}

// buildMessages assembles the ordered message list for one turn from
// the current world snapshot and the character's memory.
func (a *Agent) buildMessages(npcID, playerMessage string) []chat.Message {
	return prompts.New(a.registry).
		WithNPC(npcID).
		WithWorldState(a.player.Snapshot()).
		WithSummary(a.memory.Summary(npcID)).
		WithHistory(a.memory.History(npcID)).
		WithPlayerMessage(playerMessage).
		Build()
}

// Converse runs one synchronous dialogue turn. It returns an error
// only when the turn was abandoned due to cancellation; generation
// failures degrade to the fallback message and still complete the turn.
func (a *Agent) Converse(ctx context.Context, npcID, playerMessage string) (*chat.TurnResult, error) {
	mu := a.turnLock(npcID)
	mu.Lock()
	defer mu.Unlock()

	messages := a.buildMessages(npcID, playerMessage)

	raw, err := a.llm.Chat(ctx, messages)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			// Caller went away mid-generation: abandon without
			// touching memory or state. A deadline is a generation
			// failure, not an abandonment; it falls through to the
			// fallback below.
			return nil, ctx.Err()
		}
		a.logger.Error("Generation failed, substituting fallback", "error", err, "npc_id", npcID)
		raw = FallbackMessage
	}

	return a.finishTurn(ctx, npcID, playerMessage, raw), nil
}

// ConverseStream runs one streaming dialogue turn, forwarding each
// generated fragment to onFragment in arrival order. When the stream
// fails mid-way, the fallback sentence is delivered as the final
// fragment and used as the full reply; the turn still completes.
func (a *Agent) ConverseStream(ctx context.Context, npcID, playerMessage string, onFragment func(string)) (*chat.TurnResult, error) {
	mu := a.turnLock(npcID)
	mu.Lock()
	defer mu.Unlock()

	messages := a.buildMessages(npcID, playerMessage)

	chunks, err := a.llm.ChatStream(ctx, messages)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		a.logger.Error("Stream failed to open, substituting fallback", "error", err, "npc_id", npcID)
		onFragment(FallbackMessage)
		return a.finishTurn(ctx, npcID, playerMessage, FallbackMessage), nil
	}

	var full string
	for chunk := range chunks {
		switch {
		case chunk.Err != nil:
			if errors.Is(chunk.Err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return nil, chunk.Err
			}
			a.logger.Error("Stream failed mid-turn, substituting fallback", "error", chunk.Err, "npc_id", npcID)
			onFragment(FallbackMessage)
			return a.finishTurn(ctx, npcID, playerMessage, FallbackMessage), nil
		case chunk.Done:
			// Completion wins over any racing cancellation.
			return a.finishTurn(ctx, npcID, playerMessage, full), nil
		default:
			full += chunk.Content
			onFragment(chunk.Content)
		}
	}

	// Channel closed without a terminal chunk; treat as complete.
	return a.finishTurn(ctx, npcID, playerMessage, full), nil
}

// finishTurn runs the unconditional post-processing for a turn whose
// generation (or fallback) has produced text: directive extraction,
// display cleaning, memory recording, and effect application.
func (a *Agent) finishTurn(ctx context.Context, npcID, playerMessage, raw string) *chat.TurnResult {
	item, _ := directive.Extract(raw, directive.GiveItem)
	mission, _ := directive.Extract(raw, directive.MissionComplete)

	display := directive.Clean(raw)
	if a.filter != nil {
		display = a.filter.Apply(display)
	}

	// The raw, uncleaned text is what gets recorded; summaries may
	// therefore retain directive markup.
	a.memory.Record(npcID, chat.RolePlayer, playerMessage)
	a.memory.Record(npcID, chat.RoleCharacter, raw)

	if mission != "" && !a.player.HasMission(mission) {
		a.logger.Warn("Dropping directive for unknown mission", "mission", mission, "npc_id", npcID)
		mission = ""
	}

	effects, snap := a.player.ApplyAndSnapshot(item, mission)

	turnID := uuid.New()
	if effects.ItemGranted != "" {
		a.broadcaster.PublishItemGranted(ctx, turnID, npcID, effects.ItemGranted)
	}
	if effects.MissionCompleted != "" {
		a.broadcaster.PublishMissionCompleted(ctx, turnID, npcID, effects.MissionCompleted)
	}
	if snap.GameComplete {
		a.broadcaster.PublishGameCompleted(ctx, turnID)
	}
	a.broadcaster.PublishTurnCompleted(ctx, turnID, npcID, snap.GameComplete)

	return &chat.TurnResult{
		NPCID:           npcID,
		Message:         display,
		GiveItem:        item,
		MissionComplete: mission,
		Effects:         effects,
		Inventory:       snap.Inventory,
		Missions:        snap.Missions,
		GameComplete:    snap.GameComplete,
	}
}

// WorldSnapshot returns the current world state without mutating
// anything.
func (a *Agent) WorldSnapshot() state.Snapshot {
	return a.player.Snapshot()
}

// ResetWorld clears all conversation memory and the player state
// together.
func (a *Agent) ResetWorld(ctx context.Context) {
	a.memory.ResetAll()
	a.player.Reset()
	a.broadcaster.PublishWorldReset(ctx)
	a.logger.Info("World reset")
}
