package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmercer13/villageforge/internal/services"
	"github.com/kmercer13/villageforge/pkg/chat"
)

type sseEvent struct {
	Type string
	Data string
}

// parseSSE splits a recorded SSE body into typed events.
func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()

	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.Data = strings.TrimPrefix(line, "data: ")
			events = append(events, current)
			current = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestChatStreamHandler_StreamsFragmentsThenResult(t *testing.T) {
	mockLLM := services.NewMockLLMService()
	mockLLM.ChatStreamFunc = func(ctx context.Context, messages []chat.Message) (<-chan services.StreamChunk, error) {
		return services.StreamOf("A visitor! ", "Take this. ", "[GIVE_ITEM:magic_key]"), nil
	}
	handler := NewChatStreamHandler(testAgentWith(mockLLM), testLogger())

	body := `{"npc_id": "wizard", "message": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/stream", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))

	events := parseSSE(t, rr.Body.String())
	require.NotEmpty(t, events)

	assert.Equal(t, "start", events[0].Type)

	var fragments []string
	for _, e := range events[1 : len(events)-1] {
		require.Equal(t, "chunk", e.Type)
		var payload struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.Unmarshal([]byte(e.Data), &payload))
		fragments = append(fragments, payload.Content)
	}
	assert.Equal(t, []string{"A visitor! ", "Take this. ", "[GIVE_ITEM:magic_key]"}, fragments)

	final := events[len(events)-1]
	require.Equal(t, "result", final.Type)

	var result chat.TurnResult
	require.NoError(t, json.Unmarshal([]byte(final.Data), &result))
	assert.Equal(t, "A visitor! Take this.", result.Message)
	assert.Equal(t, "magic_key", result.Effects.ItemGranted)
}

func TestChatStreamHandler_InvalidRequest(t *testing.T) {
	handler := NewChatStreamHandler(testAgent(nil), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/chat/stream", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestChatStreamHandler_MethodNotAllowed(t *testing.T) {
	handler := NewChatStreamHandler(testAgent(nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/chat/stream", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
