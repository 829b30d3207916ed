// Package debug provides conditional debug logging for slidescroll.
//
// Debug logging is enabled by setting the SLIDESCROLL_DEBUG environment variable:
//
//	SLIDESCROLL_DEBUG=1 slidescroll deck.md 2>debug.log
//
// When enabled, debug messages are written to stderr (or the writer passed to
// SetOutput) with timestamps. When disabled (default), all debug functions are
// no-ops.
package debug

import (
	"io"
	"log"
	"os"
	"time"
)

var (
	// enabled is true when SLIDESCROLL_DEBUG is set
	enabled bool
	// logger writes with a [SLIDESCROLL] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("SLIDESCROLL_DEBUG") != "" {
		enabled = true
		logger = newLogger(os.Stderr)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[SLIDESCROLL] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = newLogger(os.Stderr)
	}
}

// SetOutput redirects debug output. The TUI owns stderr's terminal while
// running, so the CLI points this at a file.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// Log writes a debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
		return
	}
	logger.Printf(format, args...)
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if !enabled {
		return
	}
	logger.Printf("=== %s ===", name)
}
