package nav

import (
	"strings"

	"curio-be/pkg/store"
)

// State is the navigation-relevant slice of a session.
type State struct {
	View      string
	Query     string
	ModalOpen bool
}

type EventKind int

const (
	EventSubmit EventKind = iota
	EventOpen
	EventClose
	EventPopstate
	EventInitialLoad
	EventEscape
)

// Event is one navigation trigger. Query carries the submitted or initial
// query; Entry carries the restored entry for popstate.
type Event struct {
	Kind  EventKind
	Query string
	Entry *store.HistoryEntry
}

type HistoryOp int

const (
	HistoryNone HistoryOp = iota
	HistoryPush
	HistoryReplace
	HistoryBack
)

// Effect is what the caller must do after a transition: mutate the history
// stack and trigger the named follow-up work. The machine itself touches
// neither the stack nor the network, which keeps the table testable on its
// own.
type Effect struct {
	History HistoryOp
	Entry   store.HistoryEntry // payload for Push/Replace

	Aggregate      bool // re-run aggregation for the new query
	Enrich         bool // resolve the opened question
	ClearSelection bool
	ClearQuery     bool
}

// Transition is the state × event table. It returns the next state plus the
// history/effect work the caller applies.
func Transition(s State, e Event) (State, Effect) {
	switch e.Kind {
	case EventSubmit:
		query := strings.TrimSpace(e.Query)
		if query == "" {
			return s, Effect{}
		}
		next := State{View: store.ViewResults, Query: query}
		return next, Effect{
			History:   HistoryPush,
			Entry:     store.HistoryEntry{View: store.ViewResults, Query: query},
			Aggregate: true,
		}

	case EventOpen:
		if s.View != store.ViewResults || s.ModalOpen {
			return s, Effect{}
		}
		next := s
		next.ModalOpen = true
		return next, Effect{
			History: HistoryPush,
			Entry:   store.HistoryEntry{View: s.View, Query: s.Query, Modal: true},
			Enrich:  true,
		}

	case EventClose:
		if !s.ModalOpen {
			return s, Effect{}
		}
		// Close converges with the browser back button: when we pushed a
		// modal entry, pop it instead of mutating state directly. The
		// popstate that follows performs the actual close.
		return s, Effect{History: HistoryBack}

	case EventPopstate:
		if e.Entry == nil {
			return s, Effect{}
		}
		if e.Entry.Modal {
			// Restored a modal entry: just drop the modal, view and query
			// stay untouched.
			next := s
			next.ModalOpen = false
			return next, Effect{ClearSelection: true}
		}
		if s.ModalOpen && e.Entry.View == s.View && e.Entry.Query == s.Query {
			// Back from the modal entry onto its own base entry: purely a
			// modal close, the query keeps its results.
			next := s
			next.ModalOpen = false
			return next, Effect{ClearSelection: true}
		}
		next := State{View: e.Entry.View, Query: e.Entry.Query}
		if next.View == store.ViewResults && strings.TrimSpace(next.Query) != "" {
			return next, Effect{Aggregate: true}
		}
		return next, Effect{ClearSelection: true}

	case EventInitialLoad:
		query := strings.TrimSpace(e.Query)
		if query == "" {
			next := State{View: store.ViewHome}
			return next, Effect{
				History: HistoryReplace,
				Entry:   store.HistoryEntry{View: store.ViewHome},
			}
		}
		next := State{View: store.ViewResults, Query: query}
		return next, Effect{
			History:   HistoryReplace,
			Entry:     store.HistoryEntry{View: store.ViewResults, Query: query},
			Aggregate: true,
		}

	case EventEscape:
		if s.ModalOpen {
			return Transition(s, Event{Kind: EventClose})
		}
		// No modal: signal the client to clear the query field. The
		// committed query stays until the next submit.
		return s, Effect{ClearQuery: true}
	}

	return s, Effect{}
}

// FocusTarget maps "/" onto the search input to focus: the header input on
// the results view, the home input otherwise. Callers skip focusing when a
// text field already has it.
func FocusTarget(s State) string {
	if s.View == store.ViewResults {
		return "header"
	}
	return "home"
}
