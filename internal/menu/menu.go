package menu

import (
	"github.com/atomicstack/buildtree/internal/selection"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

// Item represents a selectable menu entry.
type Item struct {
	ID    string
	Label string
	// Branch items open a nested level instead of being picked.
	Branch bool
}

// Context carries the session an action operates on.
type Context struct {
	Session *session.Session
}

// Action runs a menu entry and returns the message to deliver to the UI.
// Actions run on the update loop, so they may mutate the session directly.
type Action func(Context, Item) tea.Msg

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Info string
	Err  error
	Quit bool
}

// SelectPrompt asks the user to pick the target nodes of an edit.
type SelectPrompt struct {
	Action  session.Action
	Title   string
	Entries []selection.Entry
}

// NamePrompt asks for the text applied by an add or rename.
type NamePrompt struct {
	Action  session.Action
	Targets []*tree.Node
}

// ConfirmPrompt asks a yes/no question before a remove or an exit.
type ConfirmPrompt struct {
	Action  session.Action
	Targets []*tree.Node
	Title   string
	Default bool
}
