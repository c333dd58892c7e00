package ui

import (
	"unicode"

	"github.com/atomicstack/buildtree/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// handleTextInput applies filter editing keys to the current level and
// reports whether the key was consumed.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	current := m.currentLevel()
	if current == nil {
		return false
	}
	switch msg.String() {
	case "ctrl+u":
		if current.Filter == "" {
			return false
		}
		current.SetFilter("", 0)
		m.afterFilterEdit()
		events.Filter.Cleared(current.ID)
		return true
	case "ctrl+w":
		if !current.DeleteFilterWordBackward() {
			return false
		}
		m.afterFilterEdit()
		events.Filter.WordBackspace(current.ID, current.Filter)
		return true
	case "ctrl+a":
		if !current.MoveFilterCursorStart() {
			return false
		}
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true
	case "ctrl+e":
		if !current.MoveFilterCursorEnd() {
			return false
		}
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !current.DeleteFilterRuneBackward() {
			return false
		}
		m.afterFilterEdit()
		events.Filter.Backspace(current.ID, current.Filter)
		return true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	case tea.KeySpace:
		if current.Filter == "" {
			return false
		}
		return m.appendToFilter(" ")
	case tea.KeyLeft:
		if !current.MoveFilterCursor(-1) {
			return false
		}
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true
	case tea.KeyRight:
		if !current.MoveFilterCursor(1) {
			return false
		}
		events.Filter.Cursor(current.ID, current.FilterCursor)
		return true
	}
	return false
}

func (m *Model) appendToFilter(text string) bool {
	current := m.currentLevel()
	if current == nil || !current.InsertFilterText(text) {
		return false
	}
	m.afterFilterEdit()
	events.Filter.Append(current.ID, current.Filter)
	return true
}

func (m *Model) afterFilterEdit() {
	m.forceClearInfo()
	m.errMsg = ""
	m.syncViewport(m.currentLevel())
}

// filterPrompt renders the filter line with a static caret.
func (m *Model) filterPrompt() string {
	prompt := paint(styles.FilterPrompt, "» ")
	current := m.currentLevel()
	if current == nil {
		return prompt
	}
	if current.Filter == "" {
		placeholder := []rune("(type to filter)")
		return prompt + renderCaret(string(placeholder[0])) + paint(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + paint(styles.Filter, string(runes[:pos])) + renderCaret(caret) + paint(styles.Filter, after)
}

func renderCaret(char string) string {
	if styles.Cursor != nil {
		return styles.Cursor.Inline(true).Render(char)
	}
	return char
}
