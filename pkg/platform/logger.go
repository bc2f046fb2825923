// Package platform carries the small shared pieces: logging setup and
// environment lookups.
package platform

import (
	"os"

	"github.com/rs/zerolog"
)

// InitLogger builds the process logger. Console output is for the CLI;
// services log structured JSON to stdout.
func InitLogger(console bool, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if console {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
