package store

// Question is a discoverable sub-topic phrased as a question. The answer is
// lazy: it stays empty until the enrichment resolver populates it, and is
// never rewritten afterwards within a session.
type Question struct {
	Question   string `json:"question"`
	Answer     string `json:"answer,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	TitleGuess string `json:"title_guess,omitempty"`
}

// Enriched reports whether the answer has been resolved already.
func (q *Question) Enriched() bool {
	return q.Answer != ""
}

// Overview is the short summary for the current topic. At most one live
// instance per session, replaced wholesale on each aggregation.
type Overview struct {
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// MediaItem is a single image or video attached to a page. Thumb carries the
// image thumbnail, Poster the video poster frame; only one of the two is set
// depending on the kind.
type MediaItem struct {
	URL    string `json:"url"`
	Thumb  string `json:"thumb,omitempty"`
	Poster string `json:"poster,omitempty"`
	Title  string `json:"title,omitempty"`
}

// MediaSet groups classified media for one enriched question.
type MediaSet struct {
	Images []MediaItem `json:"images"`
	Videos []MediaItem `json:"videos"`
}

// HistoryEntry mirrors one browser history entry. The topmost non-modal
// entry's (View, Query) always matches the live session state, and a modal
// entry exists iff a question modal is open.
type HistoryEntry struct {
	View  string `json:"view"`
	Query string `json:"q"`
	Modal bool   `json:"modal,omitempty"`
}

// Session is the active search session state in memory, one per browser tab.
// Only the session service mutates it.
type Session struct {
	ID    string `json:"id"`
	View  string `json:"view"` // "HOME" | "RESULTS"
	Query string `json:"query"`

	Overview  *Overview   `json:"overview,omitempty"`
	Questions []*Question `json:"questions"`

	// Index into Questions while a modal is open, -1 otherwise.
	SelectedQuestion int       `json:"selected_question"`
	SelectedMedia    *MediaSet `json:"selected_media,omitempty"`
	NotFound         bool      `json:"not_found"`
	Suggestions      []string  `json:"suggestions,omitempty"`
	ErrorMessage     string    `json:"error_message,omitempty"`

	// Server-side mirror of the browser history stack.
	History      []HistoryEntry `json:"history"`
	HistoryIndex int            `json:"history_index"`

	// RunToken increases on every aggregation start; results carrying an
	// older token are discarded at commit time.
	RunToken uint64 `json:"-"`
}

const (
	ViewHome    = "HOME"
	ViewResults = "RESULTS"
)
