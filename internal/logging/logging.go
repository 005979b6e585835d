// Package logging wraps charmbracelet/log with the levels and format used by
// every binary.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the process default. It discards until a binary installs one.
var Logger = Discard()

// New returns a logger writing to w at the named level
// (debug, info, warn, error, fatal).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if strings.TrimSpace(level) != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	}), nil
}

// Discard returns a logger that writes nowhere.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OpenFile appends to path and returns a logger plus a close func.
func OpenFile(path, level string) (*log.Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, f.Close, nil
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) { Logger.Info(msg, keyvals...) }

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) { Logger.Warn(msg, keyvals...) }

// Error logs an error message
func Error(msg string, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }
