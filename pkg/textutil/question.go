package textutil

import (
	"net/url"
	"strings"
)

// lead separators, whichever occurs first in the text wins.
var leadSeparators = []string{"—", "–", "-", ":"}

// SplitLeadTitle takes the free text of a related-topic record and returns
// the leading title segment, split on the first of "—", "–", "-", ":".
// The right-hand description is discarded.
func SplitLeadTitle(text string) string {
	title := strings.TrimSpace(text)
	cut := len(title)
	for _, sep := range leadSeparators {
		if idx := strings.Index(title, sep); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(title[:cut])
}

// QuestionPhrase turns a title into a question. Titles that already end in a
// question mark pass through unchanged.
func QuestionPhrase(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if strings.HasSuffix(title, "?") {
		return title
	}
	return "What is " + title + "?"
}

// StripQuestionPhrase undoes QuestionPhrase: it removes a leading "What is "
// and a trailing "?" so the remainder can be used as a lookup key.
func StripQuestionPhrase(question string) string {
	q := strings.TrimSpace(question)
	q = strings.TrimPrefix(q, "What is ")
	q = strings.TrimPrefix(q, "what is ")
	q = strings.TrimSuffix(q, "?")
	return strings.TrimSpace(q)
}

// TitleFromWikiURL extracts the page-title segment from an encyclopedia
// link ("/wiki/Some_Title") and decodes it into a plain title. Returns ""
// when the URL is not an encyclopedia page link.
func TitleFromWikiURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	const marker = "/wiki/"
	idx := strings.Index(u.Path, marker)
	if idx < 0 {
		return ""
	}
	segment := u.Path[idx+len(marker):]
	if segment == "" {
		return ""
	}
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		decoded = segment
	}
	return strings.TrimSpace(strings.ReplaceAll(decoded, "_", " "))
}
