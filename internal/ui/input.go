package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

const (
	addPrompt  = "New task (title @category due:YYYY-MM-DD): "
	editPrompt = "Edit title: "
)

// newTaskInput returns the line editor used for adding and editing tasks.
// The cursor does not blink: only key messages reach the editor.
func newTaskInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// openInput shows the editor with the given prompt and initial value and
// places the cursor at the end of the line.
func (m *tuiModel) openInput(mode inputMode, prompt, value string) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.Placeholder = ""
	if mode == modeAdd {
		m.input.Placeholder = "buy milk @low due:2024-01-31"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *tuiModel) closeInput() {
	m.mode = modeList
	m.editing = ""
	m.input.Blur()
}
