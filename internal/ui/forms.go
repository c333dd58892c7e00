package ui

import (
	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/menu"
	"github.com/atomicstack/buildtree/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleNameForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.nameForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.nameForm.Update(msg)
	prompt := m.nameForm.Prompt()
	if cancel {
		m.nameForm = nil
		m.mode = ModeMenu
		events.Form.Cancel("name", string(prompt.Action))
		events.Tree.Abort(string(prompt.Action))
		m.setInfo("Cancelled.")
		return true, nil
	}
	if done {
		value := m.nameForm.Value()
		m.nameForm = nil
		m.mode = ModeMenu
		return true, deliver(menu.ApplyName(m.menuContext(), prompt, value))
	}
	return true, cmd
}

func (m *Model) handleConfirmForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.confirmForm == nil {
		return false, nil
	}
	yes, done, cancel := m.confirmForm.Update(msg)
	prompt := m.confirmForm.Prompt()
	if cancel {
		m.confirmForm = nil
		m.mode = ModeMenu
		events.Form.Cancel("confirm", string(prompt.Action))
		if prompt.Action == session.ActionRemove {
			events.Tree.Abort(string(prompt.Action))
			m.setInfo("Cancelled.")
		}
		return true, nil
	}
	if done {
		m.confirmForm = nil
		m.mode = ModeMenu
		return true, deliver(menu.ApplyConfirm(m.menuContext(), prompt, yes))
	}
	return true, nil
}

func (m *Model) startNameForm(prompt menu.NamePrompt) {
	m.nameForm = menu.NewNameForm(prompt)
	m.mode = ModeNameForm
	events.Form.Open("name", string(prompt.Action))
}

func (m *Model) startConfirmForm(prompt menu.ConfirmPrompt) {
	m.confirmForm = menu.NewConfirmForm(prompt)
	m.mode = ModeConfirm
	events.Form.Open("confirm", string(prompt.Action))
}
