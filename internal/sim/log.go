package sim

import (
	"os"

	"github.com/charmbracelet/log"
)

// Directive failures are recovered locally and surfaced only through this
// logger; Step never returns an error.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "sim"})

// SetLogger replaces the package logger. Drivers that own the terminal (the
// TUI) redirect simulation logging away from stderr.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}
