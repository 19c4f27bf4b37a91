package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type logSettings struct {
	Level  string
	Format string
}

// newLogger builds the process logger and installs it as the slog default.
// Format "json" selects the JSON handler; anything else selects text.
func newLogger(cfg logSettings, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// heldWriter buffers log output while a TUI owns the terminal.
type heldWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	hold bool
	out  io.Writer
}

func newHeldWriter(out io.Writer) *heldWriter {
	return &heldWriter{out: out}
}

func (h *heldWriter) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hold {
		return h.buf.Write(p)
	}
	return h.out.Write(p)
}

// Hold starts buffering.
func (h *heldWriter) Hold() {
	h.mu.Lock()
	h.hold = true
	h.mu.Unlock()
}

// Release writes buffered output and stops buffering.
func (h *heldWriter) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hold = false
	if h.buf.Len() == 0 {
		return
	}
	if _, err := h.buf.WriteTo(h.out); err != nil {
		// Best-effort flush to stderr.
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
	}
}
