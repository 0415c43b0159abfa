package services

import (
	"context"

	"github.com/kmercer13/villageforge/pkg/chat"
)

// StreamChunk is one fragment of an incrementally generated response.
// A terminal chunk has Done set; a failed stream delivers a chunk with
// Err set and then closes.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

// LLMService is the opaque generation capability: given role-tagged
// messages, it returns generated text, either whole or as a stream.
type LLMService interface {
	// InitModel prepares the model on startup, for providers that
	// need it. Hosted APIs typically no-op here.
	InitModel(ctx context.Context, modelName string) error

	// Chat generates a complete response for the message list.
	Chat(ctx context.Context, messages []chat.Message) (string, error)

	// ChatStream generates a response incrementally. The returned
	// channel yields fragments in order and is closed after the
	// terminal (Done or Err) chunk.
	ChatStream(ctx context.Context, messages []chat.Message) (<-chan StreamChunk, error)
}

// wireRole translates a conversation role to the role string used by
// chat-completion APIs.
func wireRole(r chat.Role) string {
	switch r {
	case chat.RolePlayer:
		return "user"
	case chat.RoleCharacter:
		return "assistant"
	case chat.RoleSystem:
		return "system"
	}
	return "user"
}
