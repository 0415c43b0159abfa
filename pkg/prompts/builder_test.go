package prompts

import (
	"strings"
	"testing"

	"github.com/kmercer13/villageforge/pkg/chat"
	"github.com/kmercer13/villageforge/pkg/memory"
	"github.com/kmercer13/villageforge/pkg/npc"
	"github.com/kmercer13/villageforge/pkg/state"
)

func testSnapshot() state.Snapshot {
	return state.Snapshot{
		Inventory: []string{"magic_key"},
		Missions: map[string]string{
			"riddle_quest": "completed",
			"forge_quest":  "not_started",
		},
	}
}

func TestSystemPromptEmbedsCharacterAndState(t *testing.T) {
	registry := npc.NewRegistry()

	prompt := New(registry).
		WithNPC("wizard").
		WithWorldState(testSnapshot()).
		WithSummary("Player: hello\nCharacter: Indeed, a visitor!").
		SystemPrompt()

	for _, want := range []string{
		"Zephyr the Wise",
		"ancient wizard",
		"magic_key",
		"riddle_quest=completed",
		"forge_quest=not_started",
		"Player: hello",
		"[GIVE_ITEM:item_name]",
		"[MISSION_COMPLETE:mission_id]",
		"Never mention you are an AI",
		"THE RIDDLE QUEST",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestSystemPromptDeterministic(t *testing.T) {
	registry := npc.NewRegistry()
	build := func() string {
		return New(registry).
			WithNPC("guard").
			WithWorldState(testSnapshot()).
			WithSummary("some summary").
			SystemPrompt()
	}

	if build() != build() {
		t.Error("expected identical prompts for identical inputs")
	}
}

func TestSystemPromptUnknownNPCFallsBack(t *testing.T) {
	registry := npc.NewRegistry()

	prompt := New(registry).
		WithNPC("innkeeper").
		WithWorldState(testSnapshot()).
		SystemPrompt()

	if prompt == "" {
		t.Fatal("fallback prompt must be non-empty")
	}
	if prompt != FallbackPrompt {
		t.Errorf("expected fallback prompt, got %q", prompt)
	}
}

func TestSystemPromptEmptySummaryUsesPlaceholder(t *testing.T) {
	registry := npc.NewRegistry()

	prompt := New(registry).
		WithNPC("wizard").
		WithWorldState(testSnapshot()).
		SystemPrompt()

	if !strings.Contains(prompt, memory.NoConversationSummary) {
		t.Error("expected placeholder summary in prompt")
	}
}

func TestSystemPromptEmptyInventory(t *testing.T) {
	registry := npc.NewRegistry()

	prompt := New(registry).
		WithNPC("wizard").
		WithWorldState(state.Snapshot{Missions: map[string]string{"riddle_quest": "not_started"}}).
		SystemPrompt()

	if !strings.Contains(prompt, "(empty)") {
		t.Error("expected empty inventory marker")
	}
}

func TestBuildMessageOrder(t *testing.T) {
	registry := npc.NewRegistry()
	history := []chat.Message{
		{Role: chat.RolePlayer, Content: "hello"},
		{Role: chat.RoleCharacter, Content: "Indeed, a visitor!"},
	}

	messages := New(registry).
		WithNPC("wizard").
		WithWorldState(testSnapshot()).
		WithHistory(history).
		WithPlayerMessage("I seek wisdom").
		Build()

	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != chat.RoleSystem {
		t.Errorf("messages[0].Role = %q, want system", messages[0].Role)
	}
	if messages[1].Content != "hello" || messages[2].Content != "Indeed, a visitor!" {
		t.Error("history out of order")
	}
	last := messages[len(messages)-1]
	if last.Role != chat.RolePlayer || last.Content != "I seek wisdom" {
		t.Errorf("unexpected final message: %+v", last)
	}
}
