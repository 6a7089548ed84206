// Package logging wraps a package-level zerolog.Logger writing to stderr,
// console-formatted when stderr is a terminal and JSON otherwise, using
// mattn/go-isatty for terminal detection.
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var logger = newLogger()

func newLogger() zerolog.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// SetLevel sets the minimum level the logger emits.
func SetLevel(level zerolog.Level) {
	logger = logger.Level(level)
}

// Logger returns the package-level logger, for callers that need the full
// zerolog API.
func Logger() *zerolog.Logger { return &logger }

func Debug() *zerolog.Event { return logger.Debug() }
func Info() *zerolog.Event  { return logger.Info() }
func Warn() *zerolog.Event  { return logger.Warn() }
func Error() *zerolog.Event { return logger.Error() }
func Fatal() *zerolog.Event { return logger.Fatal() }
