package dto

import "curio-be/pkg/store"

type StartSessionRequest struct {
	// Query parameter parsed from the URL on initial load; empty means the
	// session starts on the home view.
	Query string `json:"q" validate:"omitempty,max=300"`
}

type SearchRequest struct {
	Query string `json:"q" validate:"required,min=1,max=300"`
}

type PopstateRequest struct {
	// Index of the restored history entry, as carried by the browser's
	// popstate event state.
	EntryIndex int `json:"entry_index" validate:"gte=0"`
}

type KeyPressRequest struct {
	Key string `json:"key" validate:"required,oneof=/ Escape"`
}

type SimplifyRequest struct {
	Text      string `json:"text" validate:"required,min=1,max=20000"`
	TitleHint string `json:"title_hint" validate:"omitempty,max=300"`
}

type SimplifyResponse struct {
	Eli5 string `json:"eli5"`
}

type KeyPressResponse struct {
	// "header" or "home" when the client should focus a search input,
	// empty otherwise.
	FocusTarget string `json:"focus_target,omitempty"`
	// True when the client should clear the query field.
	ClearQuery bool                  `json:"clear_query,omitempty"`
	State      *SessionStateResponse `json:"state"`
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SessionStateResponse is the snapshot handed to the client after every
// session operation.
type SessionStateResponse struct {
	ID               string                `json:"id"`
	View             string                `json:"view"`
	Query            string                `json:"query"`
	Overview         *store.Overview       `json:"overview,omitempty"`
	Questions        []*store.Question     `json:"questions"`
	SelectedQuestion int                   `json:"selected_question"`
	SelectedMedia    *store.MediaSet       `json:"selected_media,omitempty"`
	NotFound         bool                  `json:"not_found"`
	Suggestions      []string              `json:"suggestions,omitempty"`
	ErrorMessage     string                `json:"error_message,omitempty"`
	History          []store.HistoryEntry  `json:"history"`
	HistoryIndex     int                   `json:"history_index"`
}

// PrefetchQuestionsMessage is published after an aggregation commit so the
// consumer can enrich the leading questions in the background.
type PrefetchQuestionsMessage struct {
	SessionID string `json:"session_id"`
	RunToken  uint64 `json:"run_token"`
	Count     int    `json:"count"`
}
