package state

import "github.com/atomicstack/buildtree/internal/menu"

// Level holds one menu screen: its items, filter, cursor, marks and viewport.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	MultiSelect    bool
	Selected       map[string]struct{}
	Node           *menu.Node
	ViewportOffset int
	// Parent is the index of the branch entry whose children this level
	// lists, or -1 for levels that do not show tree entries.
	Parent int
}

// NewLevel constructs a Level with the cursor on the first item.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Selected:   make(map[string]struct{}),
		Node:       node,
		Parent:     -1,
	}
	if node != nil {
		l.MultiSelect = node.MultiSelect
	}
	l.UpdateItems(items)
	return l
}

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}

// IndexOf returns the visible index of the item with id, or -1.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the level items, keeping the filter and, where still
// valid, the cursor and viewport.
func (l *Level) UpdateItems(items []menu.Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 || prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}
