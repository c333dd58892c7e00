package command

import (
	"fmt"

	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus coordinates the execution of menu actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs the action immediately, on the caller's goroutine, and wraps
// the message it produced into a Bubble Tea command. Handlers mutate the
// session, so they must never run concurrently with Update.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	msg := req.Handler(ctx, req.Item)
	if msg == nil {
		events.Command.NoOp(req.ID, req.Label)
		return nil
	}
	events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
	return func() tea.Msg { return msg }
}
