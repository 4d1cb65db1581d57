package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// NewConsole is the human-readable variant used in development.
func NewConsole(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
