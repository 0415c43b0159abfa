// Package textfilter softens language in player-facing dialogue when
// the configured content rating calls for it. Filtering applies only to
// display output; raw generated text is what gets recorded to memory.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultReplacements maps words to family-friendly alternatives. The
// generation backend is instructed to keep things clean, but that is
// advisory; this is the enforcement side.
var defaultReplacements = map[string]string{
	"damn":    "dang",
	"hell":    "heck",
	"ass":     "butt",
	"bastard": "scoundrel",
	"crap":    "rubbish",
	"shit":    "shoot",
	"fuck":    "fudge",
	"bitch":   "wretch",
	"piss":    "tick",
	"goddamn": "gosh-dang",
}

// Filter replaces flagged words in dialogue with tamer alternatives,
// preserving the case pattern of the original word.
type Filter struct {
	replacements map[string]string
	regexes      map[string]*regexp.Regexp
}

// NewFilter builds a filter from the default replacement table.
func NewFilter() *Filter {
	return NewFilterWith(defaultReplacements)
}

// NewFilterWith builds a filter from a custom replacement table. Words
// match case-insensitively on word boundaries.
func NewFilterWith(replacements map[string]string) *Filter {
	f := &Filter{
		replacements: replacements,
		regexes:      make(map[string]*regexp.Regexp, len(replacements)),
	}
	for word := range replacements {
		f.regexes[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return f
}

// Apply returns text with every flagged word replaced.
func (f *Filter) Apply(text string) string {
	result := text
	for word, re := range f.regexes {
		replacement := f.replacements[word]
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			return preserveCase(match, replacement)
		})
	}
	return result
}

// Flagged reports whether text contains any flagged word.
func (f *Filter) Flagged(text string) bool {
	for _, re := range f.regexes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// RatingRequiresFilter reports whether the given content rating calls
// for filtering. Unknown ratings are left unfiltered.
func RatingRequiresFilter(rating string) bool {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "G", "PG", "PG13", "PG-13":
		return true
	}
	return false
}

// preserveCase applies the case pattern of the original word to the
// replacement: all-upper, all-lower, and title case are matched
// exactly; anything else is mapped rune by rune.
func preserveCase(original, replacement string) string {
	if original == "" {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	originalRunes := []rune(original)
	out := make([]rune, 0, len(replacement))
	for i, r := range []rune(replacement) {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			out = append(out, unicode.ToUpper(r))
		} else {
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}
