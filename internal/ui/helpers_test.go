package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/buildtree/internal/document"
	"github.com/atomicstack/buildtree/internal/render"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestSession(t *testing.T, tr *tree.Tree) (*session.Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tree.xml")
	return session.New(tr, document.NewStore(path)), path
}

func newTestHarness(t *testing.T, tr *tree.Tree) (*Harness, *session.Session, string) {
	t.Helper()
	s, path := newTestSession(t, tr)
	model := NewModel(s, Options{Width: 60, Height: 30, ASCII: true})
	return NewHarness(model), s, path
}

func enter(h *Harness) { h.Press(tea.KeyEnter) }
func down(h *Harness)  { h.Press(tea.KeyDown) }
func esc(h *Harness)   { h.Press(tea.KeyEsc) }
func tab(h *Harness)   { h.Press(tea.KeyTab) }

func renderASCII(t *testing.T, s *session.Session) string {
	t.Helper()
	lines, err := s.View(render.Options{})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return lines.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}
