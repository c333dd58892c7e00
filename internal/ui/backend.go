package ui

import (
	"fmt"
	"reflect"

	"github.com/atomicstack/buildtree/internal/backend"
	"github.com/atomicstack/buildtree/internal/document"
	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent reacts to an outside change of the backing file. The tree
// is reloaded only while the action menu is idle and nothing is unsaved;
// otherwise the change is reported and the in-memory tree wins.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		events.File.Error(evt.Path, evt.Err)
		return
	}
	path := m.session.Path()
	if path == "" {
		return
	}
	events.File.Changed(path, evt.Op)
	if m.mode != ModeMenu || m.session.Dirty() {
		m.setInfo(fmt.Sprintf("%s changed on disk.", path))
		return
	}
	loaded, err := document.NewStore(path).Load()
	if err != nil {
		events.File.Error(path, err)
		m.errMsg = fmt.Sprintf("reload: %v", err)
		return
	}
	if sameContent(m.session.Tree(), loaded) {
		return
	}
	m.session.Replace(loaded)
	m.applyTreeStyle()
	m.refreshRoot()
	events.File.Load(path, loaded.Count())
	m.setInfo(fmt.Sprintf("Reloaded %s.", path))
}

// sameContent compares the persisted form of two trees, so saves made by
// this process do not trigger a reload.
func sameContent(a, b *tree.Tree) bool {
	return reflect.DeepEqual(document.ToDocument(a), document.ToDocument(b))
}
