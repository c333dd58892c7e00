package menu

import (
	"fmt"

	"github.com/atomicstack/buildtree/internal/logging/events"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionHandlers maps session actions to their execution logic.
func ActionHandlers() map[session.Action]Action {
	return map[session.Action]Action{
		session.ActionAdd:    selectTargets(session.ActionAdd),
		session.ActionRename: selectTargets(session.ActionRename),
		session.ActionRemove: selectTargets(session.ActionRemove),
		session.ActionSave:   SaveAction,
		session.ActionExit:   ExitAction,
	}
}

func selectTargets(action session.Action) Action {
	return func(ctx Context, _ Item) tea.Msg {
		entries := ctx.Session.Targets(action)
		if len(entries) == 0 {
			events.Tree.Abort(string(action))
			return ActionResult{Info: "Nothing to select."}
		}
		return SelectPrompt{Action: action, Title: SelectTitle(action), Entries: entries}
	}
}

// SaveAction writes the tree to its backing file.
func SaveAction(ctx Context, _ Item) tea.Msg {
	s := ctx.Session
	if err := s.Save(); err != nil {
		events.File.Error(s.Path(), err)
		return ActionResult{Err: err}
	}
	events.File.Save(s.Path(), s.Tree().Count())
	return ActionResult{Info: fmt.Sprintf("Saved %s", s.Path())}
}

// ExitAction stops the session, asking to save first when there are unsaved
// changes.
func ExitAction(ctx Context, _ Item) tea.Msg {
	s := ctx.Session
	if s.Dirty() {
		return ConfirmPrompt{Action: session.ActionExit, Title: ExitTitle(), Default: true}
	}
	if err := s.Exit(false); err != nil {
		return ActionResult{Err: err}
	}
	events.App.Stop(false)
	return ActionResult{Quit: true}
}

// TargetsChosen turns a finished selection into the follow-up prompt.
func TargetsChosen(action session.Action, targets []*tree.Node) tea.Msg {
	if len(targets) == 0 {
		events.Tree.Abort(string(action))
		return ActionResult{Info: "Nothing selected."}
	}
	switch action {
	case session.ActionAdd, session.ActionRename:
		return NamePrompt{Action: action, Targets: targets}
	case session.ActionRemove:
		return ConfirmPrompt{Action: action, Targets: targets, Title: RemoveTitle(len(targets))}
	default:
		return ActionResult{Err: fmt.Errorf("action %s takes no targets", action)}
	}
}

// ApplyName performs an add or rename with the submitted name. Blank names
// cancel the edit.
func ApplyName(ctx Context, prompt NamePrompt, name string) tea.Msg {
	s := ctx.Session
	count := len(prompt.Targets)
	var ok bool
	switch prompt.Action {
	case session.ActionAdd:
		ok = s.Add(prompt.Targets, name)
	case session.ActionRename:
		ok = s.Rename(prompt.Targets, name)
	default:
		return ActionResult{Err: fmt.Errorf("action %s takes no name", prompt.Action)}
	}
	if !ok {
		events.Tree.Abort(string(prompt.Action))
		return ActionResult{Info: "Cancelled."}
	}
	if prompt.Action == session.ActionAdd {
		events.Tree.Add(count, name)
		return ActionResult{Info: fmt.Sprintf("Added %q under %d node%s.", name, count, plural(count))}
	}
	events.Tree.Rename(count, name)
	return ActionResult{Info: fmt.Sprintf("Renamed %d node%s to %q.", count, plural(count), name)}
}

// ApplyConfirm completes a confirmed or declined remove or exit.
func ApplyConfirm(ctx Context, prompt ConfirmPrompt, yes bool) tea.Msg {
	s := ctx.Session
	switch prompt.Action {
	case session.ActionRemove:
		if !s.Remove(prompt.Targets, yes) {
			events.Tree.Abort(string(prompt.Action))
			return ActionResult{Info: "Nothing removed."}
		}
		events.Tree.Remove(len(prompt.Targets))
		return ActionResult{Info: fmt.Sprintf("Removed %d node%s.", len(prompt.Targets), plural(len(prompt.Targets)))}
	case session.ActionExit:
		dirty := s.Dirty()
		if err := s.Exit(yes); err != nil {
			events.File.Error(s.Path(), err)
			return ActionResult{Err: err}
		}
		if yes && dirty {
			events.File.Save(s.Path(), s.Tree().Count())
		}
		events.App.Stop(s.Dirty())
		return ActionResult{Quit: true}
	default:
		return ActionResult{Err: fmt.Errorf("action %s needs no confirmation", prompt.Action)}
	}
}
