package events

import "github.com/atomicstack/buildtree/internal/logging"

type AppTracer struct{}

type FileTracer struct{}

var (
	App  = AppTracer{}
	File = FileTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(dirty bool) {
	logging.Trace("app.stop", map[string]interface{}{"dirty": dirty})
}

func (FileTracer) Load(path string, nodes int) {
	logging.Trace("file.load", map[string]interface{}{"path": path, "nodes": nodes})
}

func (FileTracer) Save(path string, nodes int) {
	logging.Trace("file.save", map[string]interface{}{"path": path, "nodes": nodes})
}

func (FileTracer) Changed(path, op string) {
	logging.Trace("file.changed", map[string]interface{}{"path": path, "op": op})
}

func (FileTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("file.error", map[string]interface{}{"path": path, "error": err.Error()})
}
