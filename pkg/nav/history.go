package nav

import "curio-be/pkg/store"

// Stack is a server-side mirror of the browser history stack: append-mostly,
// with an index that back/forward moves. Pushing while the index is not at
// the top truncates the forward entries, like a browser does.
type Stack struct {
	entries []store.HistoryEntry
	index   int
}

func NewStack() *Stack {
	return &Stack{index: -1}
}

func (s *Stack) Push(entry store.HistoryEntry) {
	s.entries = append(s.entries[:s.index+1], entry)
	s.index = len(s.entries) - 1
}

// Replace swaps the current entry without growing the stack. On an empty
// stack it seeds the initial entry, which is how initial load avoids a
// phantom prior state.
func (s *Stack) Replace(entry store.HistoryEntry) {
	if s.index < 0 {
		s.entries = []store.HistoryEntry{entry}
		s.index = 0
		return
	}
	s.entries[s.index] = entry
}

// Back moves one entry back and returns the restored entry.
func (s *Stack) Back() (store.HistoryEntry, bool) {
	if s.index <= 0 {
		return store.HistoryEntry{}, false
	}
	s.index--
	return s.entries[s.index], true
}

// Forward moves one entry forward and returns the restored entry.
func (s *Stack) Forward() (store.HistoryEntry, bool) {
	if s.index < 0 || s.index >= len(s.entries)-1 {
		return store.HistoryEntry{}, false
	}
	s.index++
	return s.entries[s.index], true
}

// Go jumps to an absolute position, mirroring a popstate whose entry carries
// its stack index.
func (s *Stack) Go(index int) (store.HistoryEntry, bool) {
	if index < 0 || index >= len(s.entries) {
		return store.HistoryEntry{}, false
	}
	s.index = index
	return s.entries[index], true
}

func (s *Stack) Current() (store.HistoryEntry, bool) {
	if s.index < 0 {
		return store.HistoryEntry{}, false
	}
	return s.entries[s.index], true
}

func (s *Stack) Index() int { return s.index }

func (s *Stack) Len() int { return len(s.entries) }

// Entries returns a copy for snapshots.
func (s *Stack) Entries() []store.HistoryEntry {
	out := make([]store.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Load restores a stack from a snapshot.
func Load(entries []store.HistoryEntry, index int) *Stack {
	s := &Stack{entries: entries, index: index}
	if index >= len(entries) {
		s.index = len(entries) - 1
	}
	return s
}
