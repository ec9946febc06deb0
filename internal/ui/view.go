package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasks-go/internal/app"
	"github.com/nibzard/tasks-go/internal/colorutil"
	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	noteStyle    = lipgloss.NewStyle().Italic(true).Faint(true)
)

const minTitleWidth = 20

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.app.CanUndo(), m.app.CanRedo())
		return b.String()
	}

	m.writeFilterLine(&b)

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("  "+m.emptyMessage()) + "\n\n")
	}

	row := 0
	for _, s := range m.sections {
		title := s.Title
		if title == "Overdue" {
			title = overdueStyle.Render(title)
		}
		b.WriteString(sectionStyle.Render(title) + "\n")
		for _, t := range s.Tasks {
			b.WriteString(m.formatRow(t, row == m.cursor))
			b.WriteString("\n")
			row++
		}
		b.WriteString("\n")
	}

	m.writePrompt(&b)
	m.writeStatus(&b)
	writeFooter(&b, m.app.CanUndo(), m.app.CanRedo())
	return b.String()
}

func writeTitle(b *strings.Builder) {
	title := "Tasks"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func (m *tuiModel) writeFilterLine(b *strings.Builder) {
	category := "All categories"
	if m.category != app.AllCategories {
		category = colorutil.Badge(m.app.CategoryName(m.category), m.app.CategoryColor(m.category))
	}
	b.WriteString(fmt.Sprintf("Showing: %s | %s\n\n", m.filter, category))
}

func (m *tuiModel) emptyMessage() string {
	if !m.app.HasTasks() {
		return "No tasks yet. Press a to add one."
	}
	return "No tasks match the current filter."
}

func (m *tuiModel) formatRow(t todo.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	width := minTitleWidth
	if m.width > 0 {
		width = max(m.width-40, minTitleWidth)
	}
	title := utils.Truncate(t.Title, width)
	if t.Completed {
		title = doneStyle.Render(title)
	}

	badge := colorutil.Badge(categoryLabel(m.app, t.Category), m.app.CategoryColor(t.Category))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s", check, title, badge))
	if t.DueDate != "" {
		b.WriteString(dimStyle.Render(" due " + t.DueDate))
	}
	if t.Note != "" {
		b.WriteString(" " + noteStyle.Render(t.Note))
	}

	line := b.String()
	if selected {
		return "> " + cursorStyle.Render(line)
	}
	return "  " + line
}

func categoryLabel(a *app.App, id string) string {
	if name := a.CategoryName(id); name != "" {
		return name
	}
	return "Uncategorized"
}

func (m *tuiModel) writePrompt(b *strings.Builder) {
	switch m.mode {
	case modeAdd, modeEdit:
		b.WriteString(m.input.View() + "\n")
		b.WriteString(dimStyle.Render("enter to save, esc to cancel") + "\n\n")
	case modeConfirmClear:
		b.WriteString(errorStyle.Render("Delete all tasks? (y/n)") + "\n\n")
	}
}

func (m *tuiModel) writeStatus(b *strings.Builder) {
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status) + "\n\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  j/k, arrows  Move\n")
	b.WriteString("  g/G          First / last task\n")
	b.WriteString("  space, x     Toggle completed\n")
	b.WriteString("  a            Add task\n")
	b.WriteString("  e            Edit title\n")
	b.WriteString("  p            Postpone by one day\n")
	b.WriteString("  d            Delete task\n")
	b.WriteString("  u, ctrl+z    Undo\n")
	b.WriteString("  r, ctrl+y    Redo\n")
	b.WriteString("  C            Clear completed\n")
	b.WriteString("  X            Clear all (asks first)\n")
	b.WriteString("  1 / 2 / 3    Show active / completed / all\n")
	b.WriteString("  tab, s-tab   Next / previous category\n")
	b.WriteString("  ?            Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
}

// writeFooter renders the undo and redo hints dimmed when unavailable.
func writeFooter(b *strings.Builder, canUndo, canRedo bool) {
	hint := func(label string, enabled bool) string {
		if enabled {
			return label
		}
		return dimStyle.Render(label)
	}
	b.WriteString(fmt.Sprintf("%s | %s | ? help | q quit\n", hint("u undo", canUndo), hint("r redo", canRedo)))
}
