package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// New creates a console slog.Logger with provided level string.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a text logger writing to w.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

// Files opens dated log files next to console output.
type Files struct {
	Dir     string
	Level   string
	Console io.Writer
	Now     func() time.Time
}

// Source returns a logger writing to the console and <dir>/<source>_YYYYMMDD.log.
// The returned closer releases the file.
func (f Files) Source(source string) (*slog.Logger, io.Closer, error) {
	return f.open(fmt.Sprintf("%s_%s.log", source, f.now().Format("20060102")), "source", source)
}

// Batch returns a logger writing to the console and <dir>/main_YYYYMMDD_HHMMSS.log.
func (f Files) Batch() (*slog.Logger, io.Closer, error) {
	return f.open(fmt.Sprintf("main_%s.log", f.now().Format("20060102_150405")))
}

func (f Files) open(name string, attrs ...any) (*slog.Logger, io.Closer, error) {
	console := f.Console
	if console == nil {
		console = os.Stdout
	}

	dir := f.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	logger := NewWithWriter(io.MultiWriter(console, file), f.Level)
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	return logger, file, nil
}

func (f Files) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
