// Package log wires every other package's diagnostics through a single
// leveled, go-logging backend instead of ad hoc fmt/log calls, so a user
// running the UCI binary can turn search-lifecycle chatter up or down
// without recompiling.
package log

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

var backendInitialized bool

// Configure installs a leveled backend writing to w (os.Stderr by default)
// at the given level, shared by every logger returned from For. Call it
// once at process start from cmd/crabchess-uci before constructing the
// engine or UCI loop.
func Configure(w io.Writer, level logging.Level) {
	if w == nil {
		w = os.Stderr
	}
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} [%{module}] %{message}`,
	)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	backendInitialized = true
}

// For returns a named logger for the given package/module. If Configure
// hasn't run yet, For runs it with stderr at INFO level first, which is
// good enough for tests that never call Configure.
func For(module string) *logging.Logger {
	if !backendInitialized {
		Configure(os.Stderr, logging.INFO)
	}
	return logging.MustGetLogger(module)
}

// ParseLevel adapts a UCI-flag-friendly string ("debug", "info", "warning",
// "error") into a go-logging Level, defaulting to INFO on anything
// unrecognized rather than erroring — a bad -loglevel flag shouldn't keep
// the engine from starting.
func ParseLevel(s string) logging.Level {
	lvl, err := logging.LogLevel(s)
	if err != nil {
		return logging.INFO
	}
	return lvl
}
