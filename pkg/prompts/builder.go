// Package prompts renders the deterministic system prompt for a
// dialogue turn and assembles the ordered message list sent to the
// generation backend. Building is pure: same inputs, same output.
package prompts

import (
	"fmt"
	"sort"

	"github.com/kmercer13/villageforge/pkg/chat"
	"github.com/kmercer13/villageforge/pkg/memory"
	"github.com/kmercer13/villageforge/pkg/npc"
	"github.com/kmercer13/villageforge/pkg/state"
)

// Builder constructs the message list for one turn using a fluent
// interface. It never fails on unknown character ids; those get the
// generic fallback persona.
type Builder struct {
	registry      *npc.Registry
	npcID         string
	snapshot      state.Snapshot
	summary       string
	history       []chat.Message
	playerMessage string
}

// New creates a builder backed by the given character registry.
func New(registry *npc.Registry) *Builder {
	return &Builder{registry: registry}
}

// WithNPC sets the character the player is talking to.
func (b *Builder) WithNPC(id string) *Builder {
	b.npcID = id
	return b
}

// WithWorldState sets the world snapshot rendered into the prompt.
// Take the snapshot before this turn's effects are applied.
func (b *Builder) WithWorldState(snap state.Snapshot) *Builder {
	b.snapshot = snap
	return b
}

// WithSummary sets the rolling conversation summary.
func (b *Builder) WithSummary(summary string) *Builder {
	b.summary = summary
	return b
}

// WithHistory sets the prior turns included after the system prompt.
func (b *Builder) WithHistory(history []chat.Message) *Builder {
	b.history = history
	return b
}

// WithPlayerMessage sets the new player message ending the list.
func (b *Builder) WithPlayerMessage(message string) *Builder {
	b.playerMessage = message
	return b
}

// SystemPrompt renders just the system prompt text.
func (b *Builder) SystemPrompt() string {
	cfg, ok := b.registry.Get(b.npcID)
	if !ok {
		return FallbackPrompt
	}

	summary := b.summary
	if summary == "" {
		summary = memory.NoConversationSummary
	}

	order := make([]string, 0, len(b.snapshot.Missions))
	for id := range b.snapshot.Missions {
		order = append(order, id)
	}
	sort.Strings(order)

	return fmt.Sprintf(CharacterCardTemplate,
		cfg.Name,
		cfg.Name,
		cfg.Perspective,
		cfg.Style,
		renderInventory(b.snapshot.Inventory),
		renderMissions(b.snapshot.Missions, order),
		summary,
		cfg.MissionInstructions,
	)
}

// Build assembles [system prompt, prior turns, player message].
func (b *Builder) Build() []chat.Message {
	messages := make([]chat.Message, 0, len(b.history)+2)
	messages = append(messages, chat.Message{
		Role:    chat.RoleSystem,
		Content: b.SystemPrompt(),
	})
	messages = append(messages, b.history...)
	if b.playerMessage != "" {
		messages = append(messages, chat.Message{
			Role:    chat.RolePlayer,
			Content: b.playerMessage,
		})
	}
	return messages
}
