// Package history provides snapshot-based undo/redo for the task list.
//
// A History is a cursor over a bounded log of full task-list snapshots:
//
//	h := history.New(history.DefaultMaxStates)
//
//	h.Push(tasks)           // record state after every edit
//	if prev, ok := h.Undo(); ok {
//		tasks = prev        // do not Push here
//	}
//	if next, ok := h.Redo(); ok {
//		tasks = next
//	}
//
// # Branch Discarding
//
// Pushing while the cursor is not at the newest snapshot discards every
// snapshot after the cursor first, so an edit made after an undo makes the
// undone states unreachable.
//
// # Capacity
//
// When a push grows the log past its capacity the oldest snapshot is
// dropped and the cursor index is left unchanged. The cursor is always at
// the newest snapshot when that happens, so it still points at the state
// just pushed.
//
// # Copy Semantics
//
// Push copies its input and Undo/Redo return fresh copies, so a History
// never shares task values with its callers. A History is meant to be owned
// by one state controller and is not safe for concurrent use.
package history
