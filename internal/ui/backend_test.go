package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/buildtree/internal/backend"
	"github.com/atomicstack/buildtree/internal/document"
	"github.com/atomicstack/buildtree/internal/tree"
)

func writeTree(t *testing.T, path string, tr *tree.Tree) {
	t.Helper()
	if err := document.NewStore(path).Save(tr); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}

func TestBackendEventReloadsCleanSession(t *testing.T) {
	s, path := newTestSession(t, tree.New("Project"))
	m := NewModel(s, Options{Width: 60, ASCII: true})

	outside := tree.New("Project")
	tree.AddChild(outside.Root, "from-disk")
	writeTree(t, path, outside)

	m.Update(backendEventMsg{event: backend.Event{Path: path, Op: "WRITE"}})
	if got := s.Tree().Nodes(); len(got) != 1 || got[0].Text() != "from-disk" {
		t.Fatalf("expected reloaded tree, got %v", got)
	}
	if s.Dirty() {
		t.Fatalf("expected reload to leave the session clean")
	}
	if !strings.Contains(m.View(), "from-disk") {
		t.Fatalf("expected reloaded node in view:\n%s", m.View())
	}
	if m.stack[0].IndexOf("remove") < 0 {
		t.Fatalf("expected choices refreshed after reload")
	}
}

func TestBackendEventSkipsIdenticalContent(t *testing.T) {
	s, path := newTestSession(t, tree.New("Project"))
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	before := s.Tree()
	m := NewModel(s, Options{})
	m.Update(backendEventMsg{event: backend.Event{Path: path, Op: "WRITE"}})
	if s.Tree() != before {
		t.Fatalf("expected own save not to replace the tree")
	}
	if m.currentInfo() != "" {
		t.Fatalf("expected no message, got %q", m.currentInfo())
	}
}

func TestBackendEventKeepsUnsavedWork(t *testing.T) {
	s, path := newTestSession(t, tree.New("Project"))
	s.Add([]*tree.Node{s.Tree().Root}, "local")
	writeTree(t, path, tree.New("Other"))

	m := NewModel(s, Options{})
	m.Update(backendEventMsg{event: backend.Event{Path: path, Op: "WRITE"}})
	if s.Tree().Root.Text() != "Project" {
		t.Fatalf("expected in-memory tree kept")
	}
	if !strings.Contains(m.currentInfo(), "changed on disk") {
		t.Fatalf("expected change notice, got %q", m.currentInfo())
	}
}

func TestBackendEventReportsErrors(t *testing.T) {
	s, path := newTestSession(t, tree.New("Project"))
	m := NewModel(s, Options{Width: 60})
	m.Update(backendEventMsg{event: backend.Event{Path: path, Err: errors.New("boom")}})
	if !strings.Contains(m.View(), "Watch: boom") {
		t.Fatalf("expected watcher error on the status line:\n%s", m.View())
	}

	m.Update(backendDoneMsg{})
	if m.backend != nil {
		t.Fatalf("expected watcher dropped")
	}
}

func TestBackendEventReportsBrokenFile(t *testing.T) {
	s, path := newTestSession(t, tree.New("Project"))
	writeFile(t, path, "<Tree><Root>")
	m := NewModel(s, Options{Width: 80})
	m.Update(backendEventMsg{event: backend.Event{Path: path, Op: "WRITE"}})
	if !strings.HasPrefix(m.errMsg, "reload:") {
		t.Fatalf("expected reload error, got %q", m.errMsg)
	}
	if s.Tree().Root.Text() != "Project" {
		t.Fatalf("expected tree kept on reload failure")
	}
}
