// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasks-go/internal/app"
	"github.com/nibzard/tasks-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	filter todo.Filter
	now    func() time.Time
}

// WithFilter sets the filter shown on start.
func WithFilter(f todo.Filter) TUIOption {
	return func(c *tuiConfig) {
		c.filter = f
	}
}

// WithClock sets the clock used to group tasks by due date.
func WithClock(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		c.now = now
	}
}

// RunTUI runs the interactive task list until the user quits.
func RunTUI(ctx context.Context, a *app.App, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(ctx, a, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type inputMode int

const (
	modeList inputMode = iota
	modeAdd
	modeEdit
	modeConfirmClear
)

type tuiModel struct {
	ctx context.Context
	app *app.App
	now func() time.Time

	filter   todo.Filter
	category string // app.AllCategories or a category ID

	sections []app.Section
	rows     []todo.Task // sections flattened in display order
	cursor   int

	mode    inputMode
	input   textinput.Model
	editing string // ID of the task being edited

	status   string
	err      error
	showHelp bool
	width    int
}

func newTUIModel(ctx context.Context, a *app.App, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{filter: todo.FilterActive, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	m := &tuiModel{
		ctx:      ctx,
		app:      a,
		now:      c.now,
		filter:   c.filter,
		category: app.AllCategories,
		input:    newTaskInput(),
	}
	m.refresh()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m, m.updateInput(msg)
		case modeConfirmClear:
			return m, m.updateConfirm(msg)
		default:
			return m, m.updateList(msg)
		}
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) tea.Cmd {
	m.err = nil
	m.status = ""

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?", "h":
		m.showHelp = !m.showHelp
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.rows)-1, 0)
	case " ", "x":
		if t, ok := m.selected(); ok {
			updated, err := m.app.ToggleTask(m.ctx, t.ID)
			m.report(err, toggledStatus(updated))
		}
	case "d", "delete":
		if t, ok := m.selected(); ok {
			m.report(m.app.DeleteTask(m.ctx, t.ID), "Deleted")
		}
	case "p":
		if t, ok := m.selected(); ok {
			_, err := m.app.PostponeTask(m.ctx, t.ID, 1)
			m.report(err, "Postponed by 1 day")
		}
	case "a":
		m.openInput(modeAdd, addPrompt, "")
	case "e":
		if t, ok := m.selected(); ok {
			m.editing = t.ID
			m.openInput(modeEdit, editPrompt, t.Title)
		}
	case "u", "ctrl+z":
		ok, err := m.app.Undo(m.ctx)
		m.report(err, pick(ok, "Undone", "Nothing to undo"))
	case "r", "ctrl+r", "ctrl+y":
		ok, err := m.app.Redo(m.ctx)
		m.report(err, pick(ok, "Redone", "Nothing to redo"))
	case "C":
		n, err := m.app.ClearCompleted(m.ctx)
		m.report(err, fmt.Sprintf("Cleared %d completed", n))
	case "X":
		if m.app.HasTasks() {
			m.mode = modeConfirmClear
		}
	case "1":
		m.filter = todo.FilterActive
	case "2":
		m.filter = todo.FilterCompleted
	case "3":
		m.filter = todo.FilterAll
	case "tab":
		m.cycleCategory(1)
	case "shift+tab":
		m.cycleCategory(-1)
	}
	m.refresh()
	return nil
}

func (m *tuiModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return nil
	case tea.KeyEnter:
		m.submitInput()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *tuiModel) submitInput() {
	value := m.input.Value()
	m.err = nil
	switch m.mode {
	case modeAdd:
		if _, err := m.app.QuickAdd(m.ctx, value); err != nil {
			m.err = err
			return
		}
		m.status = "Added"
	case modeEdit:
		_, err := m.app.EditTask(m.ctx, m.editing, func(t *todo.Task) { t.Title = value })
		if err != nil {
			m.err = err
			return
		}
		m.status = "Saved"
	}
	m.closeInput()
	m.refresh()
}

func (m *tuiModel) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	m.mode = modeList
	switch msg.String() {
	case "y", "Y":
		n, err := m.app.ClearAll(m.ctx)
		m.report(err, fmt.Sprintf("Cleared %d tasks", n))
		m.refresh()
	default:
		m.status = "Cancelled"
	}
	return nil
}

// refresh rebuilds the visible rows from the app state.
func (m *tuiModel) refresh() {
	if m.category != app.AllCategories && m.app.CategoryIndex(m.category) < 0 {
		m.category = app.AllCategories
	}
	visible := m.app.Visible(m.category, m.filter)
	m.sections = app.GroupByDate(visible, m.now()).Sections()
	m.rows = m.rows[:0]
	for _, s := range m.sections {
		m.rows = append(m.rows, s.Tasks...)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
}

func (m *tuiModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return todo.Task{}, false
	}
	return m.rows[m.cursor], true
}

func (m *tuiModel) cycleCategory(delta int) {
	ids := []string{app.AllCategories}
	for _, c := range m.app.Categories() {
		ids = append(ids, c.ID)
	}
	cur := 0
	for i, id := range ids {
		if id == m.category {
			cur = i
			break
		}
	}
	m.category = ids[(cur+delta+len(ids))%len(ids)]
	m.cursor = 0
}

// report shows err if set, and status otherwise.
func (m *tuiModel) report(err error, status string) {
	if err != nil {
		m.err = err
		return
	}
	m.status = status
}

func toggledStatus(t todo.Task) string {
	if t.Completed {
		return "Completed"
	}
	return "Reopened"
}

func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
