// Package logging builds the structured loggers used by the CLI and servers.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a stderr logger with timestamps. Verbose enables debug output.
func New(prefix string, verbose bool) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, verbose)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, prefix string, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
