package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kmercer13/villageforge/pkg/chat"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	DefaultGroqTemperature = 0.7
	DefaultGroqMaxTokens   = 512
)

// GroqService implements LLMService against Groq's OpenAI-compatible
// chat completion API.
type GroqService struct {
	client    *openai.Client
	modelName string
	logger    *slog.Logger
}

var _ LLMService = (*GroqService)(nil)

func NewGroqService(apiKey string, modelName string, logger *slog.Logger) *GroqService {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL

	return &GroqService{
		client:    openai.NewClientWithConfig(cfg),
		modelName: modelName,
		logger:    logger,
	}
}

func (g *GroqService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

func (g *GroqService) completionRequest(messages []chat.Message, stream bool) openai.ChatCompletionRequest {
	wireMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		wireMessages = append(wireMessages, openai.ChatCompletionMessage{
			Role:    wireRole(msg.Role),
			Content: msg.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       g.modelName,
		Messages:    wireMessages,
		Temperature: DefaultGroqTemperature,
		MaxTokens:   DefaultGroqMaxTokens,
		Stream:      stream,
	}
}

// Chat generates a complete response.
func (g *GroqService) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, g.completionRequest(messages, false))
	if err != nil {
		return "", fmt.Errorf("groq chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return resp.Choices[0].Message.Content, nil
}

// ChatStream generates a response incrementally.
func (g *GroqService) ChatStream(ctx context.Context, messages []chat.Message) (<-chan StreamChunk, error) {
	stream, err := g.client.CreateChatCompletionStream(ctx, g.completionRequest(messages, true))
	if err != nil {
		return nil, fmt.Errorf("groq stream failed to open: %w", err)
	}

	chunks := make(chan StreamChunk)
	go func() {
		defer close(chunks)
		defer func() { _ = stream.Close() }()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				chunks <- StreamChunk{Done: true}
				return
			}
			if err != nil {
				chunks <- StreamChunk{Err: fmt.Errorf("groq stream failed: %w", err)}
				return
			}

			if len(resp.Choices) == 0 {
				continue
			}
			content := resp.Choices[0].Delta.Content
			if content == "" {
				continue
			}

			select {
			case chunks <- StreamChunk{Content: content}:
			case <-ctx.Done():
				chunks <- StreamChunk{Err: ctx.Err()}
				return
			}
		}
	}()

	return chunks, nil
}
