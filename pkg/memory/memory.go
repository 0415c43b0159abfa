// Package memory keeps a bounded per-character conversation log with a
// lossy rolling summary. When a log outgrows its limit, the older half
// is folded into the summary text and dropped, bounding both prompt
// size and the age of context sent to the generation backend.
package memory

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kmercer13/villageforge/pkg/chat"
)

const (
	// DefaultMaxMessages is the per-character log bound before trimming.
	DefaultMaxMessages = 20

	// maxSummaryLen caps the summary text. The cap is a sliding window
	// over bytes, not sentences; the oldest summarized content may be
	// cut mid-line.
	maxSummaryLen = 500

	// NoConversationSummary is returned for characters with no
	// accumulated summary yet.
	NoConversationSummary = "No previous conversation."
)

type slot struct {
	mu      sync.Mutex
	turns   []chat.Message
	summary string
}

// Memory owns conversation state for every character. Slots are created
// lazily on first record and live until reset. Safe for concurrent use;
// each character's slot has its own lock so turns for different
// characters never contend.
type Memory struct {
	mu          sync.Mutex
	slots       map[string]*slot
	maxMessages int
}

// New creates a Memory with the given per-character log bound. A
// non-positive max falls back to DefaultMaxMessages.
func New(maxMessages int) *Memory {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &Memory{
		slots:       make(map[string]*slot),
		maxMessages: maxMessages,
	}
}

func (m *Memory) slot(npcID string) *slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[npcID]
	if !ok {
		s = &slot{}
		m.slots[npcID] = s
	}
	return s
}

// Record appends a turn to the character's log, trimming afterwards if
// the log has outgrown the configured bound.
func (m *Memory) Record(npcID string, role chat.Role, content string) {
	s := m.slot(npcID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, chat.Message{Role: role, Content: content})
	if len(s.turns) > m.maxMessages {
		s.trim()
	}
}

// trim folds the older half of the log into the summary and keeps the
// newer half. Split index is len/2, so with an odd length the extra
// older turn lands in the summarized half. Caller holds s.mu.
func (s *slot) trim() {
	mid := len(s.turns) / 2
	older := s.turns[:mid]

	lines := make([]string, 0, len(older))
	for _, turn := range older {
		lines = append(lines, turn.Role.Label()+": "+turn.Content)
	}

	if s.summary != "" {
		s.summary += "\n"
	}
	s.summary += strings.Join(lines, "\n")
	if len(s.summary) > maxSummaryLen {
		cut := len(s.summary) - maxSummaryLen
		// Never cut mid-rune; the summary is rendered into the prompt
		// and must stay valid UTF-8.
		for cut < len(s.summary) && !utf8.RuneStart(s.summary[cut]) {
			cut++
		}
		s.summary = s.summary[cut:]
	}

	s.turns = append([]chat.Message(nil), s.turns[mid:]...)
}

// History returns a copy of the character's current log. Unknown ids
// yield an empty history, never an error.
func (m *Memory) History(npcID string) []chat.Message {
	s := m.slot(npcID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.turns...)
}

// Summary returns the accumulated summary for the character, or a fixed
// placeholder when nothing has been summarized yet.
func (m *Memory) Summary(npcID string) string {
	s := m.slot(npcID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == "" {
		return NoConversationSummary
	}
	return s.summary
}

// Reset clears one character's log and summary.
func (m *Memory) Reset(npcID string) {
	s := m.slot(npcID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
	s.summary = ""
}

// ResetAll clears every character's state.
func (m *Memory) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = make(map[string]*slot)
}
