// Package directive implements the machine-readable command sublanguage
// embedded in generated dialogue. A directive appears verbatim as
// [KIND:payload] with a word-character payload. The set of kinds is
// closed; this is deliberately a narrow pattern matcher, not a parser.
package directive

import (
	"regexp"
	"strings"
)

// Kind enumerates the known directive kinds.
type Kind string

const (
	GiveItem        Kind = "GIVE_ITEM"
	MissionComplete Kind = "MISSION_COMPLETE"
)

// Kinds lists every known directive kind.
var Kinds = []Kind{GiveItem, MissionComplete}

var patterns = map[Kind]*regexp.Regexp{
	GiveItem:        regexp.MustCompile(`\[GIVE_ITEM:(\w+)\]`),
	MissionComplete: regexp.MustCompile(`\[MISSION_COMPLETE:(\w+)\]`),
}

// Extract returns the payload of the first directive of the given kind
// in text. Malformed near-matches (wrong brackets, spaces, punctuation
// in the payload) are treated as absent, never as errors. If the model
// emits several directives of one kind, only the first is honored.
func Extract(text string, kind Kind) (string, bool) {
	re, ok := patterns[kind]
	if !ok {
		return "", false
	}
	match := re.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// Clean removes every occurrence of every known directive from text and
// trims surrounding whitespace, producing the player-facing message.
func Clean(text string) string {
	for _, re := range patterns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
