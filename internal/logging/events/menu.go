package events

import "github.com/atomicstack/buildtree/internal/logging"

type MenuTracer struct{}

type FilterTracer struct{}

type FormTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	Menu    = MenuTracer{}
	Filter  = FilterTracer{}
	Form    = FormTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (MenuTracer) Enter(levelID, itemID, label, filter string) {
	logging.Trace("menu.enter", map[string]interface{}{
		"level":  levelID,
		"item":   itemID,
		"label":  label,
		"filter": filter,
	})
}

func (MenuTracer) Cursor(levelID string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (MenuTracer) Push(levelID string, items int) {
	logging.Trace("menu.push", map[string]interface{}{"level": levelID, "items": items})
}

func (MenuTracer) Pop(levelID string) {
	logging.Trace("menu.pop", map[string]interface{}{"level": levelID})
}

func (MenuTracer) Toggle(levelID, itemID string, marked bool) {
	logging.Trace("menu.toggle", map[string]interface{}{"level": levelID, "item": itemID, "marked": marked})
}

func (MenuTracer) Pick(action string, targets int) {
	logging.Trace("menu.pick", map[string]interface{}{"action": action, "targets": targets})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FormTracer) Open(kind, action string) {
	logging.Trace("form.open", map[string]interface{}{"kind": kind, "action": action})
}

func (FormTracer) Cancel(kind, action string) {
	logging.Trace("form.cancel", map[string]interface{}{"kind": kind, "action": action})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
