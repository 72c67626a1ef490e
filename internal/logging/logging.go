// Package logging initializes the process-wide zerolog logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Console output goes to stderr so
// it never mixes with report output on stdout; structured JSON is used
// when console is false (service mode).
func Init(level string, console bool) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(level))

	var logger zerolog.Logger
	if console {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	logger = logger.With().Timestamp().Str("app", "sigsum").Logger()
	log.Logger = logger
	return logger
}

// ParseLevel converts a level string to a zerolog level. Unknown
// strings default to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
