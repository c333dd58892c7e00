package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports a change to the watched file or a watcher failure.
type Event struct {
	Path string
	Op   string
	Err  error
}

// Watcher observes one document file and publishes coalesced change events.
// The parent directory is watched so that atomic replacements are seen.
type Watcher struct {
	path     string
	interval time.Duration
	fsw      *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Bursts of changes closer together than
// interval are reported once.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		fsw:      fsw,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Events returns a channel of file events. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fsw.Close()

	limit := newThrottle(w.interval)
	emit := func(evt Event) bool {
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if !limit.wait(w.ctx) {
				return
			}
			op := w.drain(ev.Op)
			if !emit(Event{Path: w.path, Op: op.String()}) {
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if !emit(Event{Path: w.path, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op != fsnotify.Chmod
}

// drain merges already queued events for the file into op.
func (w *Watcher) drain(op fsnotify.Op) fsnotify.Op {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return op
			}
			if w.relevant(ev) {
				op |= ev.Op
			}
		default:
			return op
		}
	}
}
