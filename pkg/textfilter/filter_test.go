package textfilter

import "testing"

func TestApplyReplacesWithCasePreserved(t *testing.T) {
	f := NewFilter()

	tests := []struct {
		in   string
		want string
	}{
		{"What the hell do you want?", "What the heck do you want?"},
		{"HELL no!", "HECK no!"},
		{"Hell hath no fury.", "Heck hath no fury."},
		{"Get off your ass, soldier.", "Get off your butt, soldier."},
		{"A clean sentence.", "A clean sentence."},
	}

	for _, tt := range tests {
		if got := f.Apply(tt.in); got != tt.want {
			t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyRespectsWordBoundaries(t *testing.T) {
	f := NewFilter()

	// "hello" and "class" contain flagged substrings but are not words.
	in := "Hello there, what a classy assembly."
	if got := f.Apply(in); got != in {
		t.Errorf("Apply changed non-matching words: %q", got)
	}
}

func TestFlagged(t *testing.T) {
	f := NewFilter()

	if !f.Flagged("well, damn") {
		t.Error("expected flagged")
	}
	if f.Flagged("a polite greeting") {
		t.Error("expected not flagged")
	}
}

func TestNewFilterWithCustomTable(t *testing.T) {
	f := NewFilterWith(map[string]string{"dragon": "lizard"})

	if got := f.Apply("The Dragon roars"); got != "The Lizard roars" {
		t.Errorf("Apply() = %q", got)
	}
}

func TestRatingRequiresFilter(t *testing.T) {
	tests := []struct {
		rating string
		want   bool
	}{
		{"G", true},
		{"pg", true},
		{"PG-13", true},
		{"PG13", true},
		{"R", false},
		{"", false},
		{"unrated", false},
	}

	for _, tt := range tests {
		if got := RatingRequiresFilter(tt.rating); got != tt.want {
			t.Errorf("RatingRequiresFilter(%q) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}
