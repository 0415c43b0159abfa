package memory

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/kmercer13/villageforge/pkg/chat"
)

func TestRecordAndHistory(t *testing.T) {
	m := New(20)

	m.Record("wizard", chat.RolePlayer, "hello")
	m.Record("wizard", chat.RoleCharacter, "Indeed, a visitor!")

	h := m.History("wizard")
	if len(h) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(h))
	}
	if h[0].Role != chat.RolePlayer || h[0].Content != "hello" {
		t.Errorf("unexpected first turn: %+v", h[0])
	}
	if h[1].Role != chat.RoleCharacter {
		t.Errorf("unexpected second turn role: %q", h[1].Role)
	}
}

func TestUnknownCharacterIsEmpty(t *testing.T) {
	m := New(20)

	if h := m.History("stranger"); len(h) != 0 {
		t.Errorf("expected empty history, got %d turns", len(h))
	}
	if s := m.Summary("stranger"); s != NoConversationSummary {
		t.Errorf("expected placeholder summary, got %q", s)
	}
}

func TestHistoryNeverExceedsMax(t *testing.T) {
	const max = 20
	m := New(max)

	for i := 0; i < 100; i++ {
		role := chat.RolePlayer
		if i%2 == 1 {
			role = chat.RoleCharacter
		}
		m.Record("wizard", role, fmt.Sprintf("turn %d", i))
		if got := len(m.History("wizard")); got > max {
			t.Fatalf("history length %d exceeds max %d after turn %d", got, max, i)
		}
	}
}

func TestTrimKeepsNewerHalf(t *testing.T) {
	const max = 20
	m := New(max)

	// The 21st record triggers a trim: split 10/11, newer 11 kept.
	for i := 0; i < max+1; i++ {
		m.Record("wizard", chat.RolePlayer, fmt.Sprintf("turn %d", i))
	}

	h := m.History("wizard")
	wantLen := (max + 1) - (max+1)/2 // ceil(21/2) = 11
	if len(h) != wantLen {
		t.Fatalf("post-trim history length = %d, want %d", len(h), wantLen)
	}
	if h[0].Content != "turn 10" {
		t.Errorf("expected retained log to start at the midpoint, got %q", h[0].Content)
	}
	if h[len(h)-1].Content != "turn 20" {
		t.Errorf("expected newest turn retained, got %q", h[len(h)-1].Content)
	}
}

func TestTrimFoldsOlderHalfIntoSummary(t *testing.T) {
	m := New(4)

	m.Record("wizard", chat.RolePlayer, "one")
	m.Record("wizard", chat.RoleCharacter, "two")
	m.Record("wizard", chat.RolePlayer, "three")
	m.Record("wizard", chat.RoleCharacter, "four")
	m.Record("wizard", chat.RolePlayer, "five") // trim: first 2 summarized

	summary := m.Summary("wizard")
	if !strings.Contains(summary, "Player: one") {
		t.Errorf("summary missing player line: %q", summary)
	}
	if !strings.Contains(summary, "Character: two") {
		t.Errorf("summary missing character line: %q", summary)
	}
	if strings.Contains(summary, "three") {
		t.Errorf("retained turn leaked into summary: %q", summary)
	}

	h := m.History("wizard")
	if len(h) != 3 {
		t.Fatalf("expected 3 retained turns, got %d", len(h))
	}
	if h[0].Content != "three" {
		t.Errorf("retained log starts at %q, want three", h[0].Content)
	}
}

func TestSummaryBounded(t *testing.T) {
	m := New(4)

	long := strings.Repeat("x", 200)
	for i := 0; i < 40; i++ {
		m.Record("wizard", chat.RolePlayer, long)
	}

	if got := len(m.Summary("wizard")); got > 500 {
		t.Errorf("summary length %d exceeds 500", got)
	}
}

func TestSummaryIsSlidingWindow(t *testing.T) {
	m := New(2)

	m.Record("wizard", chat.RolePlayer, strings.Repeat("a", 490))
	m.Record("wizard", chat.RolePlayer, "MARKER")
	m.Record("wizard", chat.RolePlayer, "tail") // trims the first turn into summary

	// Force more trims so the oldest content slides out.
	for i := 0; i < 6; i++ {
		m.Record("wizard", chat.RolePlayer, strings.Repeat("b", 120))
	}

	summary := m.Summary("wizard")
	if len(summary) > 500 {
		t.Fatalf("summary length %d exceeds 500", len(summary))
	}
	if strings.HasPrefix(summary, "Player: aaaa") {
		t.Error("expected oldest summarized content to be cut off")
	}
}

func TestSummaryWindowKeepsValidUTF8(t *testing.T) {
	m := New(2)

	// One fold of a 600-byte run of 3-byte runes: the summary becomes
	// "Player: " (8 bytes) + 600 bytes, so a naive cut at byte 108
	// would land mid-rune (108-8 is not a multiple of 3).
	m.Record("wizard", chat.RolePlayer, strings.Repeat("世", 200))
	m.Record("wizard", chat.RoleCharacter, "Indeed.")
	m.Record("wizard", chat.RolePlayer, "hm") // triggers the trim

	summary := m.Summary("wizard")
	if len(summary) > 500 {
		t.Fatalf("summary length %d exceeds 500", len(summary))
	}
	if !utf8.ValidString(summary) {
		t.Errorf("summary is not valid UTF-8: %q", summary[:12])
	}
	if !strings.HasPrefix(summary, "世") {
		t.Errorf("expected summary to start on a rune boundary, got %q", summary[:12])
	}
}

func TestReset(t *testing.T) {
	m := New(20)
	m.Record("wizard", chat.RolePlayer, "hello")
	m.Record("guard", chat.RolePlayer, "hail")

	m.Reset("wizard")
	if len(m.History("wizard")) != 0 {
		t.Error("wizard history should be empty after reset")
	}
	if len(m.History("guard")) != 1 {
		t.Error("guard history should survive wizard reset")
	}

	m.ResetAll()
	if len(m.History("guard")) != 0 {
		t.Error("guard history should be empty after ResetAll")
	}
}

func TestConcurrentRecords(t *testing.T) {
	m := New(10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("npc-%d", n%2)
			for j := 0; j < 50; j++ {
				m.Record(id, chat.RolePlayer, "msg")
				m.History(id)
				m.Summary(id)
			}
		}(i)
	}
	wg.Wait()

	for _, id := range []string{"npc-0", "npc-1"} {
		if got := len(m.History(id)); got > 10 {
			t.Errorf("%s history length %d exceeds max", id, got)
		}
	}
}
