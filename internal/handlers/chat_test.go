package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmercer13/villageforge/internal/agent"
	"github.com/kmercer13/villageforge/pkg/chat"
)

func TestChatHandler_MethodNotAllowed(t *testing.T) {
	handler := NewChatHandler(testAgent(nil), testLogger())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/v1/chat", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, "method %s", method)
	}
}

func TestChatHandler_InvalidRequests(t *testing.T) {
	handler := NewChatHandler(testAgent(nil), testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing npc_id", `{"message": "hello"}`},
		{"missing message", `{"npc_id": "wizard"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)

			var response ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&response))
			assert.NotEmpty(t, response.Error)
		})
	}
}

func TestChatHandler_SuccessfulTurn(t *testing.T) {
	a := testAgent(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "A visitor! Take this. [GIVE_ITEM:magic_key]", nil
	})
	handler := NewChatHandler(a, testLogger())

	body := `{"npc_id": "wizard", "message": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var result chat.TurnResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))

	assert.Equal(t, "wizard", result.NPCID)
	assert.Equal(t, "A visitor! Take this.", result.Message)
	assert.Equal(t, "magic_key", result.Effects.ItemGranted)
	assert.Equal(t, []string{"magic_key"}, result.Inventory)
	assert.False(t, result.GameComplete)
}

func TestChatHandler_GenerationFailureStillSucceeds(t *testing.T) {
	a := testAgent(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "", errors.New("backend unavailable")
	})
	handler := NewChatHandler(a, testLogger())

	body := `{"npc_id": "wizard", "message": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var result chat.TurnResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.Equal(t, agent.FallbackMessage, result.Message)
	assert.Empty(t, result.Inventory)
}

func TestChatHandler_CancelledRequest(t *testing.T) {
	a := testAgent(func(ctx context.Context, messages []chat.Message) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	handler := NewChatHandler(a, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := `{"npc_id": "wizard", "message": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body)).WithContext(ctx)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
}
