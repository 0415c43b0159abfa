package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/kmercer13/villageforge/pkg/chat"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// WorldState mirrors the API's gamestate response.
type WorldState struct {
	Inventory    []string          `json:"inventory"`
	Missions     map[string]string `json:"missions"`
	GameComplete bool              `json:"game_complete"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

// listNPCs fetches the roster and returns sorted display names plus a
// name -> id map.
func listNPCs(client *http.Client, baseURL string) ([]string, map[string]string, error) {
	resp, err := client.Get(baseURL + "/v1/npcs")
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var rosterResp struct {
		NPCs map[string]string `json:"npcs"`
	}
	if err := json.Unmarshal(body, &rosterResp); err != nil {
		return nil, nil, err
	}

	npcMap := make(map[string]string, len(rosterResp.NPCs))
	var names []string
	for id, name := range rosterResp.NPCs {
		names = append(names, name)
		npcMap[name] = id
	}
	sort.Strings(names)
	return names, npcMap, nil
}

func getWorldState(client *http.Client, baseURL string) (*WorldState, error) {
	resp, err := client.Get(baseURL + "/v1/gamestate")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get world state: %s", errorResp.Error)
	}

	var world WorldState
	if err := json.Unmarshal(body, &world); err != nil {
		return nil, fmt.Errorf("failed to parse world state response: %w", err)
	}
	return &world, nil
}

func resetWorld(client *http.Client, baseURL string) (*WorldState, error) {
	resp, err := client.Post(baseURL+"/v1/reset", "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to reset world: %s", errorResp.Error)
	}

	var world WorldState
	if err := json.Unmarshal(body, &world); err != nil {
		return nil, fmt.Errorf("failed to parse reset response: %w", err)
	}
	return &world, nil
}

func sendChat(client *http.Client, baseURL, npcID, message string) (*chat.TurnResult, error) {
	jsonData, err := json.Marshal(chat.TurnRequest{
		NPCID:   npcID,
		Message: message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/chat",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("chat request failed: %s", errorResp.Error)
	}

	var result chat.TurnResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &result, nil
}
