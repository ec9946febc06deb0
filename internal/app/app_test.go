package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/tasks-go/internal/store"
	"github.com/nibzard/tasks-go/internal/todo"
)

var testNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T, st store.Store) *App {
	t.Helper()
	if st == nil {
		st = store.NewMemoryStore()
	}
	a, err := Open(context.Background(), st, Options{
		HistorySize: 10,
		Now:         func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return a
}

func titles(tasks []todo.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestOpen_Defaults(t *testing.T) {
	a := newTestApp(t, nil)

	assert.Empty(t, a.Tasks())
	assert.Equal(t, todo.DefaultCategories(), a.Categories())
	assert.False(t, a.CanUndo())
	assert.False(t, a.CanRedo())
	assert.Empty(t, a.HistoryEntries())
}

func TestOpen_LoadsStoredTasks(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	stored := []todo.Task{{ID: "a", Title: "stored", Category: "1", CreatedAt: testNow, UpdatedAt: testNow}}
	require.NoError(t, store.SaveTasks(ctx, st, stored))

	a := newTestApp(t, st)

	assert.Equal(t, stored, a.Tasks())
	require.Len(t, a.HistoryEntries(), 1)
	assert.False(t, a.CanUndo())
}

func TestOpen_MalformedFallsBack(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Put(ctx, store.KeyTasks, []byte("{not json")))
	require.NoError(t, st.Put(ctx, store.KeyCategories, []byte("[1, 2]")))

	a := newTestApp(t, st)

	assert.Empty(t, a.Tasks())
	assert.Equal(t, todo.DefaultCategories(), a.Categories())

	// The unreadable payloads survive the next save under their backup keys.
	_, err := a.AddTask(ctx, NewTask{Title: "fresh"})
	require.NoError(t, err)
	data, err := st.Get(ctx, store.BackupKey(store.KeyTasks))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
	data, err = st.Get(ctx, store.BackupKey(store.KeyCategories))
	require.NoError(t, err)
	assert.Equal(t, "[1, 2]", string(data))
}

type backupFailStore struct {
	*store.MemoryStore
}

func (s backupFailStore) Put(ctx context.Context, key string, value []byte) error {
	if key == store.BackupKey(store.KeyTasks) {
		return errors.New("read-only")
	}
	return s.MemoryStore.Put(ctx, key, value)
}

func TestOpen_MalformedBackupFails(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, store.KeyTasks, []byte("{not json")))

	_, err := Open(ctx, backupFailStore{mem}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be backed up")

	data, err := mem.Get(ctx, store.KeyTasks)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "original payload must be left alone")
}

type failingStore struct {
	getErr error
	putErr error
}

func (f *failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.getErr }
func (f *failingStore) Put(context.Context, string, []byte) error   { return f.putErr }
func (f *failingStore) Close() error                               { return nil }

func TestOpen_StoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := Open(context.Background(), &failingStore{getErr: boom}, Options{})
	assert.ErrorIs(t, err, boom)

	_, err = Open(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestAddTask(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestApp(t, st)

	first, err := a.AddTask(ctx, NewTask{Title: "  first  ", Description: " desc "})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "first", first.Title)
	assert.Equal(t, "desc", first.Description)
	assert.Equal(t, "1", first.Category, "empty category selects the first one")
	assert.Equal(t, testNow, first.CreatedAt)

	_, err = a.AddTask(ctx, NewTask{Title: "second", Category: "3", DueDate: "2024-03-20"})
	require.NoError(t, err)

	assert.Equal(t, []string{"second", "first"}, titles(a.Tasks()), "new tasks go first")

	persisted, err := store.LoadTasks(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, a.Tasks(), persisted)
}

func TestAddTask_Rejects(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	_, err := a.AddTask(ctx, NewTask{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = a.AddTask(ctx, NewTask{Title: "x", Category: "nope"})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = a.AddTask(ctx, NewTask{Title: "x", DueDate: "15/03/2024"})
	assert.Error(t, err)

	assert.Empty(t, a.Tasks())
	assert.Empty(t, a.HistoryEntries(), "rejected edits are not recorded")
}

func TestToggleEditDelete(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	task, err := a.AddTask(ctx, NewTask{Title: "write report"})
	require.NoError(t, err)

	toggled, err := a.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.True(t, a.HasCompleted())

	edited, err := a.EditTask(ctx, task.ID, func(t *todo.Task) {
		t.ID = "hijack"
		t.Title = " final report "
		t.DueDate = "2024-04-01"
	})
	require.NoError(t, err)
	assert.Equal(t, task.ID, edited.ID, "id cannot change")
	assert.Equal(t, "final report", edited.Title)
	assert.Equal(t, task.CreatedAt, edited.CreatedAt)

	_, err = a.EditTask(ctx, task.ID, func(t *todo.Task) { t.Title = "" })
	assert.ErrorIs(t, err, ErrEmptyTitle)
	got, ok := a.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, "final report", got.Title, "failed edit leaves task unchanged")

	require.NoError(t, a.DeleteTask(ctx, task.ID))
	assert.False(t, a.HasTasks())

	assert.ErrorIs(t, a.DeleteTask(ctx, task.ID), ErrTaskNotFound)
	_, err = a.ToggleTask(ctx, "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestPostponeTask(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	dated, err := a.AddTask(ctx, NewTask{Title: "dated", DueDate: "2024-03-30"})
	require.NoError(t, err)
	undated, err := a.AddTask(ctx, NewTask{Title: "undated"})
	require.NoError(t, err)

	got, err := a.PostponeTask(ctx, dated.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-02", got.DueDate)
	assert.Equal(t, "Postponed by 3 days", got.Note)

	got, err = a.PostponeTask(ctx, undated.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16", got.DueDate)
	assert.Equal(t, "Postponed by 1 day", got.Note)

	_, err = a.PostponeTask(ctx, undated.ID, 0)
	assert.Error(t, err)
}

func TestClearCompletedAndAll(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	n, err := a.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = a.ClearAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, a.HistoryEntries(), "no-op clears are not recorded")

	for _, title := range []string{"a", "b", "c"} {
		_, err := a.AddTask(ctx, NewTask{Title: title})
		require.NoError(t, err)
	}
	for _, task := range a.Visible(AllCategories, todo.FilterAll) {
		if task.Title != "b" {
			_, err := a.ToggleTask(ctx, task.ID)
			require.NoError(t, err)
		}
	}

	n, err = a.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"b"}, titles(a.Tasks()))
	assert.False(t, a.HasCompleted())

	n, err = a.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, a.HasTasks())
	assert.NotNil(t, a.Tasks())
}

func TestUndoRedo(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestApp(t, st)

	undone, err := a.Undo(ctx)
	require.NoError(t, err)
	assert.False(t, undone)

	_, err = a.AddTask(ctx, NewTask{Title: "a"})
	require.NoError(t, err)
	assert.False(t, a.CanUndo(), "the first snapshot has nothing before it")

	_, err = a.AddTask(ctx, NewTask{Title: "b"})
	require.NoError(t, err)
	_, err = a.AddTask(ctx, NewTask{Title: "c"})
	require.NoError(t, err)

	undone, err = a.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, undone)
	assert.Equal(t, []string{"b", "a"}, titles(a.Tasks()))

	persisted, err := store.LoadTasks(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, titles(persisted), "undo is persisted")

	redone, err := a.Redo(ctx)
	require.NoError(t, err)
	assert.True(t, redone)
	assert.Equal(t, []string{"c", "b", "a"}, titles(a.Tasks()))
	assert.Len(t, a.HistoryEntries(), 3, "undo and redo do not record")

	_, err = a.Undo(ctx)
	require.NoError(t, err)
	_, err = a.Undo(ctx)
	require.NoError(t, err)
	assert.True(t, a.CanRedo())

	_, err = a.AddTask(ctx, NewTask{Title: "d"})
	require.NoError(t, err)
	assert.False(t, a.CanRedo(), "a new edit discards the redo branch")
	assert.Equal(t, []string{"d", "a"}, titles(a.Tasks()))
	assert.Len(t, a.HistoryEntries(), 2)
}

func TestUndoRestoresClearedList(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	_, err := a.AddTask(ctx, NewTask{Title: "a"})
	require.NoError(t, err)
	_, err = a.ClearAll(ctx)
	require.NoError(t, err)

	undone, err := a.Undo(ctx)
	require.NoError(t, err)
	require.True(t, undone)
	assert.Equal(t, []string{"a"}, titles(a.Tasks()))

	redone, err := a.Redo(ctx)
	require.NoError(t, err)
	require.True(t, redone)
	assert.Empty(t, a.Tasks())
	assert.NotNil(t, a.Tasks())
}

func TestTasksAreCopies(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)
	_, err := a.AddTask(ctx, NewTask{Title: "a"})
	require.NoError(t, err)

	got := a.Tasks()
	got[0].Title = "mutated"

	assert.Equal(t, "a", a.Tasks()[0].Title)
}

func TestPersistFailureKeepsEdit(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("read-only")
	a, err := Open(ctx, &failingStore{getErr: store.ErrNotFound, putErr: boom}, Options{})
	require.NoError(t, err)

	_, err = a.AddTask(ctx, NewTask{Title: "a"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, titles(a.Tasks()))
	assert.Len(t, a.HistoryEntries(), 1)
}

func TestHistorySizeBoundsEntries(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	for i := 0; i < 15; i++ {
		_, err := a.AddTask(ctx, NewTask{Title: "t"})
		require.NoError(t, err)
	}
	assert.Len(t, a.HistoryEntries(), 10)

	undos := 0
	for {
		ok, err := a.Undo(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		undos++
	}
	assert.Equal(t, 9, undos)
	assert.Len(t, a.Tasks(), 6)
}

func TestVisible(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil)

	high, err := a.AddTask(ctx, NewTask{Title: "high", Category: "1"})
	require.NoError(t, err)
	_, err = a.AddTask(ctx, NewTask{Title: "low", Category: "3"})
	require.NoError(t, err)
	_, err = a.ToggleTask(ctx, high.ID)
	require.NoError(t, err)

	tests := []struct {
		category string
		filter   todo.Filter
		want     []string
	}{
		{AllCategories, todo.FilterAll, []string{"low", "high"}},
		{AllCategories, todo.FilterActive, []string{"low"}},
		{AllCategories, todo.FilterCompleted, []string{"high"}},
		{"1", todo.FilterAll, []string{"high"}},
		{"1", todo.FilterActive, []string{}},
		{"", todo.FilterAll, []string{"low", "high"}},
	}
	for _, tt := range tests {
		got := a.Visible(tt.category, tt.filter)
		assert.Equal(t, tt.want, titles(got), "category=%q filter=%q", tt.category, tt.filter)
	}
}

func TestResolveID(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, store.SaveTasks(ctx, st, []todo.Task{
		{ID: "abc123", Title: "one", Category: "1"},
		{ID: "abd456", Title: "two", Category: "1"},
	}))
	a := newTestApp(t, st)

	id, err := a.ResolveID("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	id, err = a.ResolveID("abd456")
	require.NoError(t, err)
	assert.Equal(t, "abd456", id)

	_, err = a.ResolveID("ab")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = a.ResolveID("zzz")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = a.ResolveID(" ")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
