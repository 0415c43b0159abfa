package handlers

import (
	"context"
	"log/slog"
	"os"

	"github.com/kmercer13/villageforge/internal/agent"
	"github.com/kmercer13/villageforge/internal/services"
	"github.com/kmercer13/villageforge/pkg/chat"
	"github.com/kmercer13/villageforge/pkg/memory"
	"github.com/kmercer13/villageforge/pkg/npc"
	"github.com/kmercer13/villageforge/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

// testAgent builds an agent whose replies come from reply, or the mock
// default when reply is nil.
func testAgent(reply func(ctx context.Context, messages []chat.Message) (string, error)) *agent.Agent {
	mockLLM := services.NewMockLLMService()
	mockLLM.ChatFunc = reply
	return testAgentWith(mockLLM)
}

func testAgentWith(llm services.LLMService) *agent.Agent {
	registry := npc.NewRegistry()
	return agent.New(
		registry,
		memory.New(memory.DefaultMaxMessages),
		state.NewPlayerState(registry.MissionCatalog()),
		llm,
		nil,
		nil,
		testLogger(),
	)
}
