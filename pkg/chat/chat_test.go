package chat

import "testing"

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role  Role
		valid bool
	}{
		{RolePlayer, true},
		{RoleCharacter, true},
		{RoleSystem, true},
		{Role("human"), false},
		{Role("assistant"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.valid {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.valid)
		}
	}
}

func TestRoleLabel(t *testing.T) {
	if got := RolePlayer.Label(); got != "Player" {
		t.Errorf("expected Player, got %q", got)
	}
	if got := RoleCharacter.Label(); got != "Character" {
		t.Errorf("expected Character, got %q", got)
	}
}

func TestTurnRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     TurnRequest
		wantErr bool
	}{
		{"valid", TurnRequest{NPCID: "wizard", Message: "hello"}, false},
		{"missing npc_id", TurnRequest{Message: "hello"}, true},
		{"missing message", TurnRequest{NPCID: "wizard"}, true},
		{"empty", TurnRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
