package state

import "github.com/atomicstack/buildtree/internal/menu"

// ShareSelection makes the level record marks in sel, so several levels of
// one picker can contribute to a single selection.
func (l *Level) ShareSelection(sel map[string]struct{}) {
	if sel == nil {
		sel = make(map[string]struct{})
	}
	l.Selected = sel
}

// IsSelected reports whether the given id is marked.
func (l *Level) IsSelected(id string) bool {
	_, ok := l.Selected[id]
	return ok
}

// ToggleCurrentSelection marks or unmarks the leaf item under the cursor.
// Branch items cannot be marked.
func (l *Level) ToggleCurrentSelection() bool {
	item, ok := l.Current()
	if !l.MultiSelect || !ok || item.Branch {
		return false
	}
	if l.Selected == nil {
		l.Selected = make(map[string]struct{})
	}
	if _, marked := l.Selected[item.ID]; marked {
		delete(l.Selected, item.ID)
	} else {
		l.Selected[item.ID] = struct{}{}
	}
	return true
}

// ClearSelection drops every mark.
func (l *Level) ClearSelection() {
	for id := range l.Selected {
		delete(l.Selected, id)
	}
}

// SelectedItems returns the marked items of this level in display order.
func (l *Level) SelectedItems() []menu.Item {
	if len(l.Selected) == 0 {
		return nil
	}
	selected := make([]menu.Item, 0, len(l.Selected))
	for _, item := range l.Full {
		if l.IsSelected(item.ID) {
			selected = append(selected, item)
		}
	}
	return selected
}
