package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kmercer13/villageforge/pkg/chat"
)

func TestGameStateHandler_ServeHTTP(t *testing.T) {
	a := testAgent(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "Take this. [GIVE_ITEM:magic_key] [MISSION_COMPLETE:riddle_quest]", nil
	})
	if _, err := a.Converse(context.Background(), "wizard", "a map"); err != nil {
		t.Fatalf("Converse failed: %v", err)
	}

	handler := NewGameStateHandler(a, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/gamestate", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", rr.Header().Get("Content-Type"))
	}

	var response GameStateResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Inventory) != 1 || response.Inventory[0] != "magic_key" {
		t.Errorf("Expected inventory [magic_key], got %v", response.Inventory)
	}
	if response.Missions["riddle_quest"] != "completed" {
		t.Errorf("Expected riddle_quest completed, got %s", response.Missions["riddle_quest"])
	}
	if response.GameComplete {
		t.Error("Expected game_complete false with missions remaining")
	}
}

func TestGameStateHandler_MethodNotAllowed(t *testing.T) {
	handler := NewGameStateHandler(testAgent(nil), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/gamestate", strings.NewReader("{}"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}

func TestResetHandler_ServeHTTP(t *testing.T) {
	a := testAgent(func(ctx context.Context, messages []chat.Message) (string, error) {
		return "Here. [GIVE_ITEM:magic_key]", nil
	})
	if _, err := a.Converse(context.Background(), "wizard", "hello"); err != nil {
		t.Fatalf("Converse failed: %v", err)
	}

	handler := NewResetHandler(a, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/reset", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var response GameStateResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Inventory) != 0 {
		t.Errorf("Expected empty inventory after reset, got %v", response.Inventory)
	}
	for id, status := range response.Missions {
		if status != "not_started" {
			t.Errorf("Expected mission %s not_started after reset, got %s", id, status)
		}
	}
}

func TestResetHandler_MethodNotAllowed(t *testing.T) {
	handler := NewResetHandler(testAgent(nil), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/reset", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rr.Code)
	}
}
