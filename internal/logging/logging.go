// Package logging provides the one package-level logger used by the
// outer layers (orchestrator, cmd/ohm), per SPEC_FULL.md's AMBIENT STACK:
// structured, leveled logging via github.com/charmbracelet/log, attached
// fields per call site rather than a global singleton threaded through
// the core DSP/codec/frame/modem packages, which stay logging-free.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

var base = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
})

// Logger is the interface the rest of the module logs through.
type Logger = *log.Logger

// Default returns the process-wide logger, with its level left at the
// default (info) until SetVerbose is called.
func Default() Logger { return base }

// SetVerbose switches the default logger to debug level, per cmd/ohm's
// -v/--verbose flag.
func SetVerbose(verbose bool) {
	if verbose {
		base.SetLevel(log.DebugLevel)
		return
	}
	base.SetLevel(log.InfoLevel)
}

// With returns a child logger carrying the given key/value fields, the
// way a request-scoped logger is built for one transmit/receive
// operation.
func With(keyvals ...interface{}) Logger {
	return base.With(keyvals...)
}
