// Package session sequences user-requested edits over a tree.
package session

import (
	"fmt"
	"strings"

	"github.com/atomicstack/buildtree/internal/document"
	"github.com/atomicstack/buildtree/internal/render"
	"github.com/atomicstack/buildtree/internal/selection"
	"github.com/atomicstack/buildtree/internal/tree"
)

// State is the lifecycle stage of a session.
type State int

const (
	Editing State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "editing"
}

// Action is one user-selectable edit.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRename Action = "rename"
	ActionRemove Action = "remove"
	ActionSave   Action = "save"
	ActionExit   Action = "exit"
)

// Label returns the menu text for the action.
func (a Action) Label() string {
	switch a {
	case ActionAdd:
		return "Add"
	case ActionRename:
		return "Rename"
	case ActionRemove:
		return "Remove"
	case ActionSave:
		return "Save"
	case ActionExit:
		return "Exit"
	default:
		return string(a)
	}
}

// Persister is the backing store a session saves into.
type Persister interface {
	Save(t *tree.Tree) error
}

// Session owns the tree being edited.
type Session struct {
	tree  *tree.Tree
	store Persister
	dirty bool
	state State
}

// New starts an editing session over t backed by store. A nil store makes
// Save fail.
func New(t *tree.Tree, store Persister) *Session {
	return &Session{tree: t, store: store}
}

// Tree returns the tree being edited.
func (s *Session) Tree() *tree.Tree { return s.tree }

// Dirty reports unsaved changes since the last save or load.
func (s *Session) Dirty() bool { return s.dirty }

// State returns the current lifecycle stage.
func (s *Session) State() State { return s.state }

// Path returns the backing file path when the store is a document store.
func (s *Session) Path() string {
	if ds, ok := s.store.(*document.Store); ok {
		return ds.Path
	}
	return ""
}

// Replace swaps in a freshly loaded tree and clears the dirty flag.
func (s *Session) Replace(t *tree.Tree) {
	s.tree = t
	s.dirty = false
}

// Choices lists the actions offered in the current state.
func (s *Session) Choices() []Action {
	choices := []Action{ActionAdd, ActionRename}
	if s.tree.Root.HasChildren() {
		choices = append(choices, ActionRemove)
	}
	if s.dirty {
		choices = append(choices, ActionSave)
	}
	return append(choices, ActionExit)
}

// Targets flattens the tree for picking the targets of action. The root is
// selectable for every action except remove.
func (s *Session) Targets(action Action) []selection.Entry {
	return selection.Flatten(s.tree, action != ActionRemove)
}

// Add appends a child named name under every target. A blank name or an empty
// target list leaves the session untouched and returns false.
func (s *Session) Add(targets []*tree.Node, name string) bool {
	if len(targets) == 0 || strings.TrimSpace(name) == "" {
		return false
	}
	for _, n := range targets {
		tree.AddChild(n, name)
	}
	s.dirty = true
	return true
}

// Rename sets the text of every target to name, with the same abort rules as
// Add.
func (s *Session) Rename(targets []*tree.Node, name string) bool {
	if len(targets) == 0 || strings.TrimSpace(name) == "" {
		return false
	}
	for _, n := range targets {
		tree.UpdateText(n, name)
	}
	s.dirty = true
	return true
}

// Remove detaches every target once confirmed. Targets without a parent are
// skipped. It returns true when at least one node was removed.
func (s *Session) Remove(targets []*tree.Node, confirmed bool) bool {
	if !confirmed {
		return false
	}
	removed := false
	for _, n := range targets {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		tree.RemoveChild(parent, n)
		removed = true
	}
	if removed {
		s.dirty = true
	}
	return removed
}

// Save persists the tree and clears the dirty flag on success.
func (s *Session) Save() error {
	if s.store == nil {
		return fmt.Errorf("save tree: no backing store")
	}
	if err := s.store.Save(s.tree); err != nil {
		return fmt.Errorf("save tree: %w", err)
	}
	s.dirty = false
	return nil
}

// Exit stops the session, saving first when save is set and there are
// unsaved changes. A failed save keeps the session editing.
func (s *Session) Exit(save bool) error {
	if save && s.dirty {
		if err := s.Save(); err != nil {
			return err
		}
	}
	s.state = Stopped
	return nil
}

// View renders the current tree.
func (s *Session) View(opts render.Options) (render.Lines, error) {
	return render.Render(s.tree, opts)
}
