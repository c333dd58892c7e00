package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/buildtree/internal/menu"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

func pickerModel(labels ...string) *Harness {
	tr := tree.New("root")
	for _, label := range labels {
		tree.AddChild(tr.Root, label)
	}
	s := session.New(tr, nil)
	h := NewHarness(NewModel(s, Options{Width: 60}))
	h.Send(menu.SelectPrompt{Action: session.ActionRemove, Title: "Pick", Entries: s.Targets(session.ActionRemove)})
	return h
}

func TestFilterNarrowsPickerAndEnterPicksMatch(t *testing.T) {
	h := pickerModel("alpha", "beta", "gamma")
	h.Type("gam")
	current := h.Model().currentLevel()
	if current.Filter != "gam" {
		t.Fatalf("expected filter text, got %q", current.Filter)
	}
	if len(current.Items) != 1 || current.Items[0].Label != "gamma" {
		t.Fatalf("expected only gamma, got %#v", current.Items)
	}
	enter(h)
	form := h.Model().confirmForm
	if form == nil {
		t.Fatalf("expected confirmation after the pick")
	}
	if targets := form.Prompt().Targets; len(targets) != 1 || targets[0].Text() != "gamma" {
		t.Fatalf("expected gamma picked, got %v", targets)
	}
}

func TestFilterEditingKeys(t *testing.T) {
	h := pickerModel("alpha", "beta")
	current := h.Model().currentLevel()

	h.Type("al")
	h.Press(tea.KeyBackspace)
	if current.Filter != "a" {
		t.Fatalf("expected backspace to drop a rune, got %q", current.Filter)
	}
	h.Type("l pha")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlW})
	if current.Filter != "al " {
		t.Fatalf("expected word delete, got %q", current.Filter)
	}
	h.Press(tea.KeyLeft)
	if current.FilterCursor != 2 {
		t.Fatalf("expected cursor moved left, got %d", current.FilterCursor)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlA})
	if current.FilterCursor != 0 {
		t.Fatalf("expected cursor at start, got %d", current.FilterCursor)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlE})
	if current.FilterCursor != 3 {
		t.Fatalf("expected cursor at end, got %d", current.FilterCursor)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	if current.Filter != "" || len(current.Items) != 2 {
		t.Fatalf("expected filter cleared, got %q with %d items", current.Filter, len(current.Items))
	}
}

func TestLeadingSpaceIsNotFiltered(t *testing.T) {
	h := pickerModel("alpha")
	h.Type(" ")
	if got := h.Model().currentLevel().Filter; got != "" {
		t.Fatalf("expected leading space ignored, got %q", got)
	}
}

func TestEscapeClearsFilterBeforeLeaving(t *testing.T) {
	h := pickerModel("alpha", "beta")
	h.Type("zz")
	if !strings.Contains(h.View(), `No matches for "zz"`) {
		t.Fatalf("expected empty-result message:\n%s", h.View())
	}
	esc(h)
	if h.Model().Mode() != ModeSelect {
		t.Fatalf("expected picker still open after clearing the filter")
	}
	if h.Model().currentLevel().Filter != "" {
		t.Fatalf("expected filter cleared")
	}
	esc(h)
	if h.Model().Mode() != ModeMenu {
		t.Fatalf("expected picker closed")
	}
}
