// Package ui contains the Bubble Tea program that edits a tree interactively.
// The Model type focuses on message orchestration, while dedicated helpers own
// navigation, filter input, forms, rendering, and file watching.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - While a name or confirm form is open, key presses go to that form.
//     Every other message is routed through a typed handler registry so each
//     tea.Msg is handled by a focused function.
//   - Choosing an action runs its handler through the command bus. Handlers
//     run on the update loop and answer with a prompt message (select, name,
//     confirm) or a menu.ActionResult, which Update dispatches in turn.
//
// State ownership:
//   - Menu level state lives in internal/ui/state.Level, which tracks items,
//     filtering, marks, and viewport calculations.
//   - The target picker stacks one level per opened branch entry on top of the
//     action menu. All picker levels share one set of marks.
//   - The tree itself is owned by the session.Session passed to NewModel; the
//     model only reads it to draw the tree panel.
//
// Backend interactions:
//   - An optional backend.Watcher reports changes to the backing file. The
//     watcher goroutine only posts messages; the reload happens in Update and
//     only while the session has no unsaved changes.
package ui
