package events

import "github.com/atomicstack/buildtree/internal/logging"

type TreeTracer struct{}

var Tree = TreeTracer{}

func (TreeTracer) Add(targets int, name string) {
	logging.Trace("tree.add", map[string]interface{}{"targets": targets, "name": name})
}

func (TreeTracer) Rename(targets int, name string) {
	logging.Trace("tree.rename", map[string]interface{}{"targets": targets, "name": name})
}

func (TreeTracer) Remove(targets int) {
	logging.Trace("tree.remove", map[string]interface{}{"targets": targets})
}

func (TreeTracer) Abort(action string) {
	logging.Trace("tree.abort", map[string]interface{}{"action": action})
}

func (TreeTracer) Render(lines int, err error) {
	payload := map[string]interface{}{"lines": lines}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("tree.render", payload)
}
