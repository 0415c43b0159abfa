package chat

import "fmt"

// Role identifies the speaker of a conversation message. It is a closed
// set; use the constants below rather than raw strings.
type Role string

const (
	RolePlayer    Role = "player"
	RoleCharacter Role = "character"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleCharacter, RoleSystem:
		return true
	}
	return false
}

// Label returns the display name used when rendering a transcript line.
func (r Role) Label() string {
	switch r {
	case RolePlayer:
		return "Player"
	case RoleCharacter:
		return "Character"
	case RoleSystem:
		return "System"
	}
	return string(r)
}

// Message is a single role-tagged message exchanged with the
// generation backend.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// TurnRequest represents one player turn submitted to the dialogue api.
type TurnRequest struct {
	NPCID   string `json:"npc_id"`
	Message string `json:"message"`
}

func (tr *TurnRequest) Validate() error {
	if tr.NPCID == "" {
		return fmt.Errorf("npc_id cannot be empty")
	}
	if tr.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// AppliedEffects records which directive effects actually changed state
// this turn. A replayed directive (item already held, mission already
// complete) shows up here as empty, not as a duplicate effect.
type AppliedEffects struct {
	ItemGranted      string `json:"item_granted,omitempty"`
	MissionCompleted string `json:"mission_completed,omitempty"`
}

// TurnResult is the structured outcome of one dialogue turn.
type TurnResult struct {
	NPCID           string            `json:"npc_id"`
	Message         string            `json:"message"`
	GiveItem        string            `json:"give_item,omitempty"`
	MissionComplete string            `json:"mission_complete,omitempty"`
	Effects         AppliedEffects    `json:"effects"`
	Inventory       []string          `json:"inventory"`
	Missions        map[string]string `json:"missions"`
	GameComplete    bool              `json:"game_complete"`
	Error           string            `json:"error,omitempty"`
}
