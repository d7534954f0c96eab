package nav

import (
	"testing"

	"curio-be/pkg/store"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		event      Event
		wantState  State
		wantEffect Effect
	}{
		{
			name:      "submit from home",
			state:     State{View: store.ViewHome},
			event:     Event{Kind: EventSubmit, Query: "volcano"},
			wantState: State{View: store.ViewResults, Query: "volcano"},
			wantEffect: Effect{
				History:   HistoryPush,
				Entry:     store.HistoryEntry{View: store.ViewResults, Query: "volcano"},
				Aggregate: true,
			},
		},
		{
			name:       "submit blank is ignored",
			state:      State{View: store.ViewHome},
			event:      Event{Kind: EventSubmit, Query: "   "},
			wantState:  State{View: store.ViewHome},
			wantEffect: Effect{},
		},
		{
			name:      "open question pushes one modal entry",
			state:     State{View: store.ViewResults, Query: "volcano"},
			event:     Event{Kind: EventOpen},
			wantState: State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			wantEffect: Effect{
				History: HistoryPush,
				Entry:   store.HistoryEntry{View: store.ViewResults, Query: "volcano", Modal: true},
				Enrich:  true,
			},
		},
		{
			name:       "open is a no-op on home",
			state:      State{View: store.ViewHome},
			event:      Event{Kind: EventOpen},
			wantState:  State{View: store.ViewHome},
			wantEffect: Effect{},
		},
		{
			name:       "close with modal goes back, no direct mutation",
			state:      State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			event:      Event{Kind: EventClose},
			wantState:  State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			wantEffect: Effect{History: HistoryBack},
		},
		{
			name:       "close without modal is a no-op",
			state:      State{View: store.ViewResults, Query: "volcano"},
			event:      Event{Kind: EventClose},
			wantState:  State{View: store.ViewResults, Query: "volcano"},
			wantEffect: Effect{},
		},
		{
			name:  "popstate onto non-modal results entry re-aggregates",
			state: State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			event: Event{Kind: EventPopstate, Entry: &store.HistoryEntry{
				View: store.ViewResults, Query: "lava",
			}},
			wantState:  State{View: store.ViewResults, Query: "lava"},
			wantEffect: Effect{Aggregate: true},
		},
		{
			name:  "popstate back onto the base entry under a modal only clears modal",
			state: State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			event: Event{Kind: EventPopstate, Entry: &store.HistoryEntry{
				View: store.ViewResults, Query: "volcano",
			}},
			wantState:  State{View: store.ViewResults, Query: "volcano"},
			wantEffect: Effect{ClearSelection: true},
		},
		{
			name:  "popstate onto modal entry only clears modal",
			state: State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			event: Event{Kind: EventPopstate, Entry: &store.HistoryEntry{
				View: store.ViewResults, Query: "volcano", Modal: true,
			}},
			wantState:  State{View: store.ViewResults, Query: "volcano"},
			wantEffect: Effect{ClearSelection: true},
		},
		{
			name:  "popstate onto home clears selection",
			state: State{View: store.ViewResults, Query: "volcano"},
			event: Event{Kind: EventPopstate, Entry: &store.HistoryEntry{
				View: store.ViewHome,
			}},
			wantState:  State{View: store.ViewHome},
			wantEffect: Effect{ClearSelection: true},
		},
		{
			name:      "initial load with query replaces, not pushes",
			state:     State{},
			event:     Event{Kind: EventInitialLoad, Query: "volcano"},
			wantState: State{View: store.ViewResults, Query: "volcano"},
			wantEffect: Effect{
				History:   HistoryReplace,
				Entry:     store.HistoryEntry{View: store.ViewResults, Query: "volcano"},
				Aggregate: true,
			},
		},
		{
			name:      "initial load without query goes home",
			state:     State{},
			event:     Event{Kind: EventInitialLoad},
			wantState: State{View: store.ViewHome},
			wantEffect: Effect{
				History: HistoryReplace,
				Entry:   store.HistoryEntry{View: store.ViewHome},
			},
		},
		{
			name:       "escape with modal behaves like close",
			state:      State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			event:      Event{Kind: EventEscape},
			wantState:  State{View: store.ViewResults, Query: "volcano", ModalOpen: true},
			wantEffect: Effect{History: HistoryBack},
		},
		{
			name:       "escape without modal clears query field",
			state:      State{View: store.ViewResults, Query: "volcano"},
			event:      Event{Kind: EventEscape},
			wantState:  State{View: store.ViewResults, Query: "volcano"},
			wantEffect: Effect{ClearQuery: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotState, gotEffect := Transition(tt.state, tt.event)
			if gotState != tt.wantState {
				t.Errorf("state = %+v, want %+v", gotState, tt.wantState)
			}
			if gotEffect != tt.wantEffect {
				t.Errorf("effect = %+v, want %+v", gotEffect, tt.wantEffect)
			}
		})
	}
}

func TestFocusTarget(t *testing.T) {
	if got := FocusTarget(State{View: store.ViewResults, Query: "x"}); got != "header" {
		t.Errorf("FocusTarget(results) = %q, want header", got)
	}
	if got := FocusTarget(State{View: store.ViewHome}); got != "home" {
		t.Errorf("FocusTarget(home) = %q, want home", got)
	}
}

func TestStackPushTruncatesForward(t *testing.T) {
	s := NewStack()
	s.Replace(store.HistoryEntry{View: store.ViewHome})
	s.Push(store.HistoryEntry{View: store.ViewResults, Query: "a"})
	s.Push(store.HistoryEntry{View: store.ViewResults, Query: "b"})

	if _, ok := s.Back(); !ok {
		t.Fatal("Back failed")
	}
	s.Push(store.HistoryEntry{View: store.ViewResults, Query: "c"})

	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3 (forward entry truncated)", s.Len())
	}
	current, _ := s.Current()
	if current.Query != "c" {
		t.Errorf("Current = %+v", current)
	}
	if _, ok := s.Forward(); ok {
		t.Error("Forward should fail at the top of the stack")
	}
}

func TestStackModalRoundTrip(t *testing.T) {
	// Open pushes exactly one entry; back restores the non-modal entry
	// beneath; the invariant "topmost non-modal entry matches live state"
	// holds across the round trip.
	s := NewStack()
	s.Replace(store.HistoryEntry{View: store.ViewResults, Query: "volcano"})
	before := s.Len()

	s.Push(store.HistoryEntry{View: store.ViewResults, Query: "volcano", Modal: true})
	if s.Len() != before+1 {
		t.Fatalf("open pushed %d entries, want exactly 1", s.Len()-before)
	}

	restored, ok := s.Back()
	if !ok {
		t.Fatal("Back failed")
	}
	if restored.Modal || restored.Query != "volcano" {
		t.Errorf("restored = %+v, want the non-modal results entry", restored)
	}
}

func TestStackReplaceSeedsInitialEntry(t *testing.T) {
	s := NewStack()
	s.Replace(store.HistoryEntry{View: store.ViewResults, Query: "volcano"})
	if s.Len() != 1 || s.Index() != 0 {
		t.Errorf("Len=%d Index=%d, want 1/0", s.Len(), s.Index())
	}
	if _, ok := s.Back(); ok {
		t.Error("back from the initial entry must fail: no phantom prior state")
	}
}
