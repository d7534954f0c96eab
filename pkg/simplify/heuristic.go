package simplify

import (
	"regexp"
	"strings"
)

const (
	maxSentences        = 5
	sentenceLimit       = 180
	sentenceTruncateTo  = 170
	truncationEllipsis  = "…"
)

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	sentenceBreakRe = regexp.MustCompile(`[—–;]|\s-\s`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	sentenceSplitRe = regexp.MustCompile(`[.!?]+\s*`)
	repeatPeriodRe  = regexp.MustCompile(`\.{2,}`)
)

// synonymTable maps heavy words to plain ones. Applied with word boundaries
// and an optional trailing "s" so simple inflections are covered too.
var synonymTable = []struct {
	from string
	to   string
}{
	{"utilize", "use"},
	{"approximately", "about"},
	{"however", "but"},
	{"complex", "hard"},
	{"numerous", "many"},
	{"consequently", "so"},
	{"additionally", "also"},
	{"demonstrate", "show"},
	{"assist", "help"},
	{"attempt", "try"},
}

var synonymRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(synonymTable))
	for i, pair := range synonymTable {
		res[i] = regexp.MustCompile(`(?i)\b` + pair.from + `(s?)\b`)
	}
	return res
}()

// Heuristic is the deterministic, offline rewriter at the bottom of the
// chain: strip asides, break on dashes and semicolons, swap heavy words for
// plain ones, and keep the first few short sentences.
func Heuristic(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// 1. Drop parenthetical asides.
	text = parentheticalRe.ReplaceAllString(text, "")

	// 2. Dashes and semicolons become sentence breaks.
	text = sentenceBreakRe.ReplaceAllString(text, ". ")

	// 3. Collapse whitespace.
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	// 4. Synonym substitution.
	for i, re := range synonymRes {
		text = re.ReplaceAllString(text, synonymTable[i].to+"$1")
	}

	// 5. Split into sentences, truncate the long ones, keep at most five.
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, maxSentences)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len([]rune(part)) > sentenceLimit {
			part = string([]rune(part)[:sentenceTruncateTo]) + truncationEllipsis
		}
		sentences = append(sentences, part)
		if len(sentences) == maxSentences {
			break
		}
	}
	if len(sentences) == 0 {
		return ""
	}

	// 6. Join with terminal periods, collapsing repeats.
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(s)
		if !strings.HasSuffix(s, truncationEllipsis) {
			b.WriteString(".")
		}
	}
	return repeatPeriodRe.ReplaceAllString(b.String(), ".")
}
