package ui

import (
	"github.com/atomicstack/buildtree/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt centralises the common prompt flow: reset transient state, then
// run the provided action. The action can return a promptResult to control
// follow-up behaviour (command to run, informational message, or error).
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handleSelectPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.SelectPrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		m.startPicker(prompt)
		return promptResult{}
	})
}

func (m *Model) handleNamePromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.NamePrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		m.startNameForm(prompt)
		return promptResult{}
	})
}

func (m *Model) handleConfirmPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.ConfirmPrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		m.startConfirmForm(prompt)
		return promptResult{}
	})
}
