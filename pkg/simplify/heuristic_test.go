package simplify

import (
	"strings"
	"testing"
)

func TestHeuristicRewrite(t *testing.T) {
	input := "This is, however, an approximately complex (and numerous) example; it utilizes many words."
	got := Heuristic(input)

	for _, want := range []string{"but", "about", "hard", "uses"} {
		if !strings.Contains(got, want) {
			t.Errorf("result %q missing %q", got, want)
		}
	}
	for _, banned := range []string{"however", "approximately", "and numerous", "utilizes"} {
		if strings.Contains(got, banned) {
			t.Errorf("result %q still contains %q", got, banned)
		}
	}
	if !strings.HasSuffix(got, ".") || strings.HasSuffix(got, "..") {
		t.Errorf("result %q should end in exactly one period", got)
	}
	if got != strings.TrimSpace(got) {
		t.Errorf("result %q not trimmed", got)
	}
}

func TestHeuristicSentenceCap(t *testing.T) {
	input := strings.Repeat("This is a sentence. ", 12)
	got := Heuristic(input)
	if n := strings.Count(got, "."); n != 5 {
		t.Errorf("got %d sentences (%q), want 5", n, got)
	}
}

func TestHeuristicLongSentenceTruncation(t *testing.T) {
	long := strings.Repeat("x", 400)
	got := Heuristic(long)
	if !strings.Contains(got, "…") {
		t.Errorf("long sentence should carry an ellipsis: %q", got)
	}
	if len([]rune(got)) > 180 {
		t.Errorf("truncated sentence too long: %d runes", len([]rune(got)))
	}
}

func TestHeuristicEmpty(t *testing.T) {
	if got := Heuristic("   "); got != "" {
		t.Errorf("Heuristic(blank) = %q, want empty", got)
	}
}
