package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// NameForm collects the text for an add or rename.
type NameForm struct {
	input  textinput.Model
	prompt NamePrompt
	title  string
	help   string
}

// NewNameForm builds a focused form for prompt.
func NewNameForm(prompt NamePrompt) *NameForm {
	ti := textinput.New()
	ti.Placeholder = "node name"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &NameForm{
		input:  ti,
		prompt: prompt,
		title:  NameTitle(prompt.Action, len(prompt.Targets)),
		help:   "Press Enter to apply. Esc to cancel.",
	}
}

func (f *NameForm) Prompt() NamePrompt { return f.prompt }
func (f *NameForm) Value() string      { return f.input.Value() }
func (f *NameForm) InputView() string  { return f.input.View() }
func (f *NameForm) Title() string      { return f.title }
func (f *NameForm) Help() string       { return f.help }

// Update feeds msg to the form and reports whether it was submitted or
// cancelled.
func (f *NameForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyEnter:
			return nil, true, false
		case tea.KeyCtrlU:
			f.input.SetValue("")
			f.input.CursorStart()
			return nil, false, false
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd, false, false
}

// ConfirmForm asks a yes/no question.
type ConfirmForm struct {
	prompt ConfirmPrompt
}

// NewConfirmForm builds a form for prompt.
func NewConfirmForm(prompt ConfirmPrompt) *ConfirmForm {
	return &ConfirmForm{prompt: prompt}
}

func (f *ConfirmForm) Prompt() ConfirmPrompt { return f.prompt }

// Title returns the question with its answer hint.
func (f *ConfirmForm) Title() string {
	hint := "[y/N]"
	if f.prompt.Default {
		hint = "[Y/n]"
	}
	return f.prompt.Title + " " + hint
}

func (f *ConfirmForm) Help() string { return "y/n to answer. Enter for the default. Esc to go back." }

// Update interprets a key press. It returns the answer, whether one was
// given, and whether the form was cancelled.
func (f *ConfirmForm) Update(msg tea.Msg) (bool, bool, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, false, false
	}
	switch key.Type {
	case tea.KeyEsc:
		return false, false, true
	case tea.KeyEnter:
		return f.prompt.Default, true, false
	}
	switch strings.ToLower(key.String()) {
	case "y":
		return true, true, false
	case "n":
		return false, true, false
	}
	return false, false, false
}
