// Package logger provides verbose logging for framescope.
// When verbose mode is enabled via the --verbose flag, messages about
// routing, result shapes, and backend calls are written to stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	log     *slog.Logger
)

func init() {
	log = newLogger(output)
}

// newLogger builds a tint-backed logger. Colour is only used for terminals.
func newLogger(w io.Writer) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = newLogger(w)
}

func emit(level slog.Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Log(context.Background(), level, fmt.Sprintf(format, args...))
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(slog.LevelDebug, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	emit(slog.LevelInfo, "=== %s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(slog.LevelInfo, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(slog.LevelWarn, format, args...)
}
