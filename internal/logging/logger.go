// Package logging provides structured logging for the bridge and its callers.
// It wraps Go's log/slog package; logs go to a JSON file or to stderr as text.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Log levels supported by the logger.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// AbbrevMaxLen is the longest a subprocess line may be in a log message.
const AbbrevMaxLen = 65

// Abbrev shortens x for logging.
func Abbrev(x string) string {
	if len(x) > AbbrevMaxLen {
		return x[0:AbbrevMaxLen-1] + "..."
	}
	return x
}

// Logger provides structured logging. It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	// file is shared with every child Logger.
	file *logFile
}

// logFile is a log file that can be closed while
// loggers still hold it. Entries written after Close are dropped.
type logFile struct {
	mu sync.Mutex
	f  *os.File
}

func (lf *logFile) Write(p []byte) (int, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	if lf.f == nil {
		return len(p), nil
	}
	return lf.f.Write(p)
}

func (lf *logFile) Close() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	if lf.f == nil {
		return nil
	}
	err := lf.f.Close()
	lf.f = nil
	return err
}

// NewLogger creates a Logger writing JSON lines to logPath.
// If logPath is empty, text lines go to stderr.
//
// The level parameter is one of DEBUG, INFO, WARN, ERROR;
// anything unrecognized means INFO.
func NewLogger(logPath string, level string) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if logPath == "" {
		return &Logger{
			logger: slog.New(slog.NewTextHandler(os.Stderr, opts)),
		}, nil
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	lf := &logFile{f: file}
	return &Logger{
		logger: slog.New(slog.NewJSONHandler(lf, opts)),
		file:   lf,
	}, nil
}

// NewWriterLogger returns a Logger that writes text lines to w.
// Handy in tests.
func NewWriterLogger(w io.Writer, level string) *Logger {
	return &Logger{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})),
	}
}

// NopLogger returns a Logger that discards everything.
func NopLogger() *Logger {
	return NewWriterLogger(io.Discard, LevelError)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child Logger that adds the given key-value pairs to every entry.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	return &Logger{
		logger: l.logger.With(args...),
		file:   l.file,
	}
}

// WithInvocation tags entries with the id of one command invocation.
func (l *Logger) WithInvocation(id string) *Logger {
	return l.With("invocation_id", id)
}

// WithComponent tags entries with a component name, e.g. "stdOut".
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	l.logger.Log(context.Background(), level, msg, args...)
}

// Close closes the log file, if there is one, for this
// Logger and every Logger derived from it.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
