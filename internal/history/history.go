package history

import (
	"time"

	"github.com/nibzard/tasks-go/internal/todo"
)

// DefaultMaxStates is the number of snapshots kept when no capacity is given.
const DefaultMaxStates = 50

// Snapshot is one recorded task-list state.
type Snapshot struct {
	Tasks     []todo.Task
	Timestamp time.Time
}

// Entry describes a snapshot without exposing its tasks.
type Entry struct {
	Index     int
	TaskCount int
	Timestamp time.Time
	Current   bool
}

// History manages undo/redo state for a task list.
type History struct {
	states       []Snapshot
	currentIndex int
	maxStates    int

	now func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithClock sets the function used to timestamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}

// New creates an empty history that keeps at most maxStates snapshots.
// A non-positive maxStates selects DefaultMaxStates.
func New(maxStates int, opts ...Option) *History {
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}
	h := &History{
		currentIndex: -1,
		maxStates:    maxStates,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push records tasks as the newest state.
// Any snapshots after the cursor are discarded first.
func (h *History) Push(tasks []todo.Task) {
	clear(h.states[h.currentIndex+1:])
	h.states = h.states[:h.currentIndex+1]

	h.states = append(h.states, Snapshot{
		Tasks:     cloneNonNil(tasks),
		Timestamp: h.now(),
	})

	if len(h.states) > h.maxStates {
		// Drop the oldest; the cursor index now names the appended state.
		h.states[0] = Snapshot{}
		h.states = h.states[1:]
	} else {
		h.currentIndex++
	}
}

// Undo moves the cursor back one snapshot and returns a copy of its tasks.
// It returns false, and changes nothing, when there is no earlier state.
func (h *History) Undo() ([]todo.Task, bool) {
	if h.currentIndex <= 0 {
		return nil, false
	}
	h.currentIndex--
	return cloneNonNil(h.states[h.currentIndex].Tasks), true
}

// Redo moves the cursor forward one snapshot and returns a copy of its tasks.
// It returns false, and changes nothing, when there is no later state.
func (h *History) Redo() ([]todo.Task, bool) {
	if h.currentIndex >= len(h.states)-1 {
		return nil, false
	}
	h.currentIndex++
	return cloneNonNil(h.states[h.currentIndex].Tasks), true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return h.currentIndex > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return h.currentIndex < len(h.states)-1
}

// Clear removes all snapshots.
func (h *History) Clear() {
	h.states = nil
	h.currentIndex = -1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.states)
}

// Index returns the cursor position, or -1 if the history is empty.
func (h *History) Index() int {
	return h.currentIndex
}

// MaxStates returns the snapshot capacity.
func (h *History) MaxStates() int {
	return h.maxStates
}

// Current returns a copy of the tasks at the cursor.
func (h *History) Current() ([]todo.Task, bool) {
	if h.currentIndex < 0 {
		return nil, false
	}
	return cloneNonNil(h.states[h.currentIndex].Tasks), true
}

// Entries describes every stored snapshot, oldest first.
func (h *History) Entries() []Entry {
	entries := make([]Entry, len(h.states))
	for i := range h.states {
		entries[i] = h.entry(i)
	}
	return entries
}

func (h *History) entry(i int) Entry {
	return Entry{
		Index:     i,
		TaskCount: len(h.states[i].Tasks),
		Timestamp: h.states[i].Timestamp,
		Current:   i == h.currentIndex,
	}
}

// cloneNonNil copies tasks so that an empty list stays distinguishable
// from the nil returned by a no-op Undo or Redo.
func cloneNonNil(tasks []todo.Task) []todo.Task {
	out := todo.CloneTasks(tasks)
	if out == nil {
		out = []todo.Task{}
	}
	return out
}
