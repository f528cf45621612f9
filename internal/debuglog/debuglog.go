// Package debuglog writes structured JSON-lines events to a file when
// semester runs with --debug.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "semester-debug.log"

// Logger writes one JSON object per event. A nil or disabled Logger drops
// everything.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	enabled bool
	seq     int
	now     func() time.Time
}

// Global logger instance
var std *Logger

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, enabled: w != nil, now: time.Now}
}

// Init enables the global logger, writing to path. With enabled false every
// event is discarded.
func Init(enabled bool, path string) error {
	if !enabled {
		std = &Logger{}
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	std = New(f)
	std.closer = f
	std.Event("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// Close flushes the end marker and closes the global log file.
func Close() {
	if std == nil || std.closer == nil {
		return
	}
	std.Event("DEBUG_END", map[string]any{
		"time": time.Now().Format(time.RFC3339),
	})
	_ = std.closer.Close()
	std = nil
}

// Enabled reports whether the global logger records events.
func Enabled() bool {
	return std.Enabled()
}

// Event records an event on the global logger.
func Event(name string, data map[string]any) {
	std.Event(name, data)
}

// Error records err under context on the global logger.
func Error(context string, err error) {
	std.Error(context, err)
}

// Enabled reports whether l records events.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled && l.w != nil
}

// Event writes a structured log entry.
func (l *Logger) Event(name string, data map[string]any) {
	if !l.Enabled() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    l.now().Format("15:04:05.000"),
		"event": name,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// Error logs an error.
func (l *Logger) Error(context string, err error) {
	if err == nil {
		return
	}
	l.Event("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}
