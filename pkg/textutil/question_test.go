package textutil

import "testing"

func TestSplitLeadTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"em dash", "Black hole — a region of spacetime", "Black hole"},
		{"en dash", "Event horizon – boundary", "Event horizon"},
		{"hyphen", "Quasar-like object", "Quasar"},
		{"colon", "Gravity: an attraction", "Gravity"},
		{"no separator", "Neutron star", "Neutron star"},
		{"earliest separator wins", "Pulsar: spinning — star", "Pulsar"},
		{"whitespace trimmed", "  Magnetar — dense  ", "Magnetar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLeadTitle(tt.text); got != tt.want {
				t.Errorf("SplitLeadTitle(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestQuestionPhrase(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Black hole", "What is Black hole?"},
		{"Why is the sky blue?", "Why is the sky blue?"},
		{"", ""},
		{"  Gravity ", "What is Gravity?"},
	}

	for _, tt := range tests {
		if got := QuestionPhrase(tt.title); got != tt.want {
			t.Errorf("QuestionPhrase(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestStripQuestionPhrase(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What is Black hole?", "Black hole"},
		{"what is gravity?", "gravity"},
		{"Why is the sky blue?", "Why is the sky blue"},
		{"Neutron star", "Neutron star"},
	}

	for _, tt := range tests {
		if got := StripQuestionPhrase(tt.question); got != tt.want {
			t.Errorf("StripQuestionPhrase(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestTitleFromWikiURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain page link", "https://en.wikipedia.org/wiki/Black_hole", "Black hole"},
		{"encoded segment", "https://en.wikipedia.org/wiki/Stellar%20wind", "Stellar wind"},
		{"not a wiki link", "https://example.com/article/42", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromWikiURL(tt.url); got != tt.want {
				t.Errorf("TitleFromWikiURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestDedupStrings(t *testing.T) {
	in := []string{"Mars", " mars ", "Venus", "", "VENUS", "Jupiter"}
	got := DedupStrings(in)
	want := []string{"Mars", "Venus", "Jupiter"}
	if len(got) != len(want) {
		t.Fatalf("DedupStrings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DedupStrings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	if got := Truncate(in, 3); len(got) != 3 || got[2] != 3 {
		t.Errorf("Truncate(5 items, 3) = %v", got)
	}
	if got := Truncate(in, 10); len(got) != 5 {
		t.Errorf("Truncate(5 items, 10) = %v", got)
	}
	if got := Truncate(in, -1); len(got) != 5 {
		t.Errorf("Truncate(5 items, -1) = %v", got)
	}
}
