package ui

import (
	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.refreshRoot()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
	} else {
		m.forceClearInfo()
	}
	events.Action.Success(result.Info)
	if result.Quit {
		return tea.Quit
	}
	return nil
}
