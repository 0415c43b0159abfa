package services

import (
	"context"
	"sync"

	"github.com/kmercer13/villageforge/pkg/chat"
)

// MockLLMService is a hand-rolled LLMService for tests.
type MockLLMService struct {
	InitModelFunc  func(ctx context.Context, modelName string) error
	ChatFunc       func(ctx context.Context, messages []chat.Message) (string, error)
	ChatStreamFunc func(ctx context.Context, messages []chat.Message) (<-chan StreamChunk, error)

	// Track calls for assertions.
	InitModelCalls  []string
	ChatCalls       [][]chat.Message
	ChatStreamCalls [][]chat.Message

	mu sync.Mutex // protects the fields above
}

var _ LLMService = (*MockLLMService)(nil)

// NewMockLLMService creates a mock whose default Chat reply is a fixed
// friendly sentence.
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{}
}

func (m *MockLLMService) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	m.InitModelCalls = append(m.InitModelCalls, modelName)
	fn := m.InitModelFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, modelName)
	}
	return nil
}

func (m *MockLLMService) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, messages)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	return "Well met, traveler.", nil
}

func (m *MockLLMService) ChatStream(ctx context.Context, messages []chat.Message) (<-chan StreamChunk, error) {
	m.mu.Lock()
	m.ChatStreamCalls = append(m.ChatStreamCalls, messages)
	fn := m.ChatStreamFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}

	// Default: stream the default reply as two fragments.
	chunks := make(chan StreamChunk, 3)
	chunks <- StreamChunk{Content: "Well met, "}
	chunks <- StreamChunk{Content: "traveler."}
	chunks <- StreamChunk{Done: true}
	close(chunks)
	return chunks, nil
}

// StreamOf builds a closed chunk channel yielding the given fragments
// followed by a Done chunk. Convenient for ChatStreamFunc stubs.
func StreamOf(fragments ...string) <-chan StreamChunk {
	chunks := make(chan StreamChunk, len(fragments)+1)
	for _, f := range fragments {
		chunks <- StreamChunk{Content: f}
	}
	chunks <- StreamChunk{Done: true}
	close(chunks)
	return chunks
}

// FailingStreamOf builds a closed chunk channel that yields the given
// fragments and then fails with err.
func FailingStreamOf(err error, fragments ...string) <-chan StreamChunk {
	chunks := make(chan StreamChunk, len(fragments)+1)
	for _, f := range fragments {
		chunks <- StreamChunk{Content: f}
	}
	chunks <- StreamChunk{Err: err}
	close(chunks)
	return chunks
}
