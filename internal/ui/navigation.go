package ui

import (
	"sort"

	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/menu"
	"github.com/atomicstack/buildtree/internal/selection"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/tree"
	"github.com/atomicstack/buildtree/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeMenu && m.mode != ModeSelect {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		m.toggleMark()
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.requestExit()
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up", "ctrl+p":
		m.moveCursor((*level).MoveCursorUp)
	case "down", "ctrl+n":
		m.moveCursor((*level).MoveCursorDown)
	case "pgup":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageUp(m.maxVisibleItems()) })
	case "pgdown":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageDown(m.maxVisibleItems()) })
	case "home":
		m.moveCursor((*level).MoveCursorHome)
	case "end":
		m.moveCursor((*level).MoveCursorEnd)
	}
	return nil
}

func (m *Model) moveCursor(move func(*level) bool) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if move(current) {
		events.Menu.Cursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

func (m *Model) toggleMark() {
	current := m.currentLevel()
	if m.mode != ModeSelect || current == nil {
		return
	}
	item, ok := current.Current()
	if !ok || !current.ToggleCurrentSelection() {
		return
	}
	events.Menu.Toggle(current.ID, item.ID, current.IsSelected(item.ID))
}

// requestExit runs the exit action, which asks to save first when needed.
func (m *Model) requestExit() tea.Cmd {
	if m.mode == ModeSelect {
		m.closePicker()
	}
	node, ok := m.registry.Find(string(session.ActionExit))
	if !ok {
		return tea.Quit
	}
	item := menu.Item{ID: node.ID, Label: session.ActionExit.Label()}
	return m.bus.Execute(m.menuContext(), command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
}

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return tea.Quit
	}
	if current.Filter != "" {
		current.SetFilter("", 0)
		events.Filter.Cleared(current.ID)
		m.syncViewport(current)
		return nil
	}
	if m.mode != ModeSelect {
		return m.requestExit()
	}
	if len(m.stack) <= m.picker.base+1 {
		action := m.picker.action
		m.closePicker()
		events.Tree.Abort(string(action))
		m.setInfo("Cancelled.")
		return nil
	}
	m.popLevel()
	return nil
}

func (m *Model) popLevel() {
	current := m.currentLevel()
	m.stack = m.stack[:len(m.stack)-1]
	events.Menu.Pop(current.ID)
	parent := m.currentLevel()
	if parent == nil {
		return
	}
	if idx := parent.IndexOf(current.ID); idx >= 0 {
		parent.Cursor = idx
	} else if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
		parent.Cursor = parent.LastCursor
	}
	parent.LastCursor = -1
	m.syncViewport(parent)
	m.errMsg = ""
}

func (m *Model) handleEnterKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	events.Menu.Enter(current.ID, item.ID, item.Label, current.Filter)
	current.SetFilter("", 0)
	if idx := current.IndexOf(item.ID); idx >= 0 {
		current.Cursor = idx
	}
	m.errMsg = ""
	m.forceClearInfo()

	if m.mode == ModeSelect {
		return m.enterEntry(current, item)
	}
	node, ok := m.registry.Root().Children[item.ID]
	if !ok || node.Action == nil {
		return nil
	}
	label := session.Action(item.ID).Label()
	return m.bus.Execute(m.menuContext(), command.Request{ID: node.ID, Label: label, Handler: node.Action, Item: item})
}

// enterEntry opens a branch entry or finishes the pick with the marked
// entries, falling back to the entry under the cursor.
func (m *Model) enterEntry(current *level, item menu.Item) tea.Cmd {
	p := m.picker
	if item.Branch {
		idx, ok := menu.EntryIndex(item.ID)
		if !ok {
			return nil
		}
		child := newLevel(item.ID, item.Label, menu.EntryItems(p.entries, idx), current.Node)
		child.Parent = idx
		child.ShareSelection(p.selected)
		current.LastCursor = current.Cursor
		m.stack = append(m.stack, child)
		m.syncViewport(child)
		events.Menu.Push(child.ID, len(child.Items))
		return nil
	}
	targets := m.pickedTargets(item)
	action := p.action
	m.closePicker()
	events.Menu.Pick(string(action), len(targets))
	return deliver(menu.TargetsChosen(action, targets))
}

func (m *Model) pickedTargets(item menu.Item) []*tree.Node {
	p := m.picker
	var idxs []int
	for id := range p.selected {
		if idx, ok := menu.EntryIndex(id); ok {
			idxs = append(idxs, idx)
		}
	}
	if len(idxs) == 0 {
		if idx, ok := menu.EntryIndex(item.ID); ok {
			idxs = append(idxs, idx)
		}
	}
	sort.Ints(idxs)
	return selection.Nodes(p.entries, idxs)
}

func (m *Model) startPicker(prompt menu.SelectPrompt) {
	root := m.currentLevel()
	if root != nil {
		root.LastCursor = root.Cursor
	}
	node, _ := m.registry.Find(string(prompt.Action))
	p := &picker{
		action:   prompt.Action,
		title:    prompt.Title,
		entries:  prompt.Entries,
		selected: make(map[string]struct{}),
		base:     len(m.stack),
	}
	first := newLevel("select:"+string(prompt.Action), prompt.Action.Label(), menu.EntryItems(prompt.Entries, selection.TopLevel), node)
	first.Parent = selection.TopLevel
	first.ShareSelection(p.selected)
	m.picker = p
	m.stack = append(m.stack, first)
	m.mode = ModeSelect
	m.syncViewport(first)
	events.Menu.Push(first.ID, len(first.Items))
}

func (m *Model) closePicker() {
	if m.picker == nil {
		m.mode = ModeMenu
		return
	}
	if len(m.stack) > m.picker.base {
		m.stack = m.stack[:m.picker.base]
	}
	m.picker = nil
	m.mode = ModeMenu
	if root := m.currentLevel(); root != nil {
		if root.LastCursor >= 0 && root.LastCursor < len(root.Items) {
			root.Cursor = root.LastCursor
		}
		root.LastCursor = -1
		m.syncViewport(root)
	}
}
