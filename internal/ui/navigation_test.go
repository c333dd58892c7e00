package ui

import (
	"testing"

	"github.com/atomicstack/buildtree/internal/menu"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

func nestedTree() *tree.Tree {
	tr := tree.New("root")
	a := tree.AddChild(tr.Root, "a")
	tree.AddChild(a, "a1")
	tree.AddChild(tr.Root, "b")
	return tr
}

func TestCursorWrapsInMenu(t *testing.T) {
	h := NewHarness(NewModel(session.New(tree.New("root"), nil), Options{}))
	h.Press(tea.KeyUp)
	root := h.Model().stack[0]
	if root.Cursor != len(root.Items)-1 {
		t.Fatalf("expected wrap to the last choice, got %d", root.Cursor)
	}
	h.Press(tea.KeyDown)
	if root.Cursor != 0 {
		t.Fatalf("expected wrap to the first choice, got %d", root.Cursor)
	}
}

func TestPickerEscapePopsOneLevel(t *testing.T) {
	h := NewHarness(NewModel(session.New(nestedTree(), nil), Options{}))
	enter(h)
	down(h)
	enter(h)
	second := h.Model().currentLevel()
	second.Cursor = second.IndexOf(menu.EntryID(3))
	enter(h)
	if depth := len(h.Model().stack); depth != 4 {
		t.Fatalf("expected three picker levels, got %d", depth)
	}

	esc(h)
	if h.Model().currentLevel() != second {
		t.Fatalf("expected to return to the root branch level")
	}
	if item, _ := second.Current(); item.ID != menu.EntryID(3) {
		t.Fatalf("expected cursor back on the opened branch, got %q", item.ID)
	}
	esc(h)
	esc(h)
	if h.Model().Mode() != ModeMenu || len(h.Model().stack) != 1 {
		t.Fatalf("expected picker closed")
	}
}

func TestTabOnlyMarksLeavesInPicker(t *testing.T) {
	h := NewHarness(NewModel(session.New(nestedTree(), nil), Options{}))
	tab(h)
	if len(h.Model().stack[0].Selected) != 0 {
		t.Fatalf("expected tab ignored in the action menu")
	}
	enter(h)
	down(h)
	tab(h)
	if len(h.Model().picker.selected) != 0 {
		t.Fatalf("expected branch entry not markable")
	}
	h.Press(tea.KeyUp)
	tab(h)
	if len(h.Model().picker.selected) != 1 {
		t.Fatalf("expected leaf entry marked")
	}
}

func TestPickWithoutMarksUsesCursorEntry(t *testing.T) {
	s := session.New(nestedTree(), nil)
	h := NewHarness(NewModel(s, Options{}))
	root := h.Model().stack[0]
	root.Cursor = root.IndexOf(string(session.ActionRename))
	enter(h)
	down(h)
	enter(h)
	down(h)
	down(h)
	enter(h)
	form := h.Model().nameForm
	if form == nil {
		t.Fatalf("expected name form")
	}
	targets := form.Prompt().Targets
	if len(targets) != 1 || targets[0].Text() != "b" {
		t.Fatalf("expected b as the only target, got %v", targets)
	}
}

func TestRemovePickerHidesRoot(t *testing.T) {
	s := session.New(nestedTree(), nil)
	m := NewModel(s, Options{})
	m.Update(menu.SelectPrompt{Action: session.ActionRemove, Title: "t", Entries: s.Targets(session.ActionRemove)})
	for _, item := range m.currentLevel().Items {
		if item.Label == "root" {
			t.Fatalf("expected root not offered for removal")
		}
	}
}
