package prompts

import (
	"fmt"
	"strings"
)

// CharacterCardTemplate is the system prompt rendered for every turn.
// Placeholders, in order: name, name, perspective, style, inventory,
// missions, summary, mission instructions.
const CharacterCardTemplate = `Let's roleplay. You are %s - a character in a fantasy village.
You are engaging with a player (adventurer) in conversation.
Use short sentences. Keep responses under 80 words.

---

Character name: %s
Character role: %s
Talking style: %s

---

CURRENT GAME STATE:
- Player inventory: %s
- Missions: %s

CONVERSATION SUMMARY SO FAR:
%s

---

RULES:
1. Never mention you are an AI or assistant.
2. Stay in character at ALL times.
3. Keep responses under 80 words.
4. If giving an item, include EXACTLY: [GIVE_ITEM:item_name]
5. If completing a mission, include EXACTLY: [MISSION_COMPLETE:mission_id]
6. Plain text only - no markdown, no asterisks.

---

%s

The conversation starts now.
`

// FallbackPrompt is used when the character id is not in the registry.
// An unrecognized id degrades to a generic villager rather than
// failing the turn.
const FallbackPrompt = "You are a friendly villager in a fantasy village. Chat casually with the player. " +
	"Never mention you are an AI or assistant. Keep responses under 80 words."

// renderInventory renders the inventory as a bracketed list, or "(empty)".
func renderInventory(inventory []string) string {
	if len(inventory) == 0 {
		return "(empty)"
	}
	return "[" + strings.Join(inventory, ", ") + "]"
}

// renderMissions renders the mission map as sorted key=value pairs.
func renderMissions(missions map[string]string, order []string) string {
	if len(missions) == 0 {
		return "(none)"
	}
	pairs := make([]string, 0, len(missions))
	for _, id := range order {
		if status, ok := missions[id]; ok {
			pairs = append(pairs, fmt.Sprintf("%s=%s", id, status))
		}
	}
	return strings.Join(pairs, ", ")
}
