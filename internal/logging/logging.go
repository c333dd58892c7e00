package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const defaultLogFile = "buildtree.log"

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
)

func currentPath() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return logPath
}

// Path returns the active log destination.
func Path() string { return currentPath() }

func openLog() (*os.File, error) {
	return os.OpenFile(currentPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// Error appends err to the shared log file as a text record.
func Error(err error) {
	if err == nil {
		return
	}

	f, ferr := openLog()
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", ferr)
		return
	}
	defer f.Close()

	logger := slog.New(slog.NewTextHandler(f, nil))
	logger.LogAttrs(context.Background(), slog.LevelError, err.Error())
}

// Info appends a text record with optional key/value attributes.
func Info(msg string, args ...any) {
	f, err := openLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()

	slog.New(slog.NewTextHandler(f, nil)).Info(msg, args...)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	f, err := openLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}
