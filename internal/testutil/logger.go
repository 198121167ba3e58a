package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// LogCapture records JSON log lines so tests can assert on them
type LogCapture struct {
	buf bytes.Buffer
}

// CaptureLogger returns a debug-level logger writing into the returned capture
func CaptureLogger() (*slog.Logger, *LogCapture) {
	c := &LogCapture{}
	logger := slog.New(slog.NewJSONHandler(&c.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, c
}

// Entries decodes every captured line. Lines that are not JSON objects are skipped.
func (c *LogCapture) Entries() []map[string]any {
	var entries []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(c.buf.Bytes()))
	for sc.Scan() {
		var e map[string]any
		if err := json.Unmarshal(sc.Bytes(), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Find returns the first entry with the given message
func (c *LogCapture) Find(msg string) (map[string]any, bool) {
	for _, e := range c.Entries() {
		if e["msg"] == msg {
			return e, true
		}
	}
	return nil, false
}
