// Package logger provides verbose logging for the titlescan CLI.
// When verbose mode is enabled via the --verbose flag, pipeline progress
// is printed to stderr. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

// Levels in increasing severity.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = map[Level]string{
	LevelDebug: "[DEBUG]",
	LevelInfo:  "[INFO]",
	LevelWarn:  "[WARN]",
	LevelError: "[ERROR]",
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now               = time.Now
)

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

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if level < LevelError && !verbose {
		return
	}
	fmt.Fprintf(output, levelTags[level]+" "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error prints a message regardless of verbose mode.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Timed logs the start of a stage and returns a func that logs its duration.
//
//	defer logger.Timed("matching")()
func Timed(stage string) func() {
	start := now()
	Debug("%s: started", stage)
	return func() {
		Debug("%s: done in %s", stage, now().Sub(start).Round(time.Millisecond))
	}
}
