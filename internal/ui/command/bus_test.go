package command

import (
	"testing"

	"github.com/atomicstack/buildtree/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func TestExecuteRunsHandlerImmediately(t *testing.T) {
	calls := 0
	handler := func(menu.Context, menu.Item) tea.Msg {
		calls++
		return menu.ActionResult{Info: "done"}
	}
	cmd := New().Execute(menu.Context{}, Request{ID: "save", Handler: handler})
	if calls != 1 {
		t.Fatalf("expected handler to run during Execute, ran %d times", calls)
	}
	if cmd == nil {
		t.Fatalf("expected command carrying the result")
	}
	result, ok := cmd().(menu.ActionResult)
	if !ok || result.Info != "done" {
		t.Fatalf("unexpected message %#v", result)
	}
	if calls != 1 {
		t.Fatalf("expected command not to run the handler again")
	}
}

func TestExecuteWithoutHandlerOrMessage(t *testing.T) {
	bus := New()
	if cmd := bus.Execute(menu.Context{}, Request{ID: "none"}); cmd != nil {
		t.Fatalf("expected nil command without handler")
	}
	silent := func(menu.Context, menu.Item) tea.Msg { return nil }
	if cmd := bus.Execute(menu.Context{}, Request{ID: "quiet", Handler: silent}); cmd != nil {
		t.Fatalf("expected nil command when the handler returns nothing")
	}
}
