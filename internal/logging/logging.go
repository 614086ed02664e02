package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger returns the logger used across labkeeper. Output goes to stderr
// through a console writer; LABKEEPER_LOG_LEVEL overrides the default level.
func NewLogger() *zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LABKEEPER_LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()

	// Keep the global logger in sync for packages that use zerolog/log.
	log.Logger = logger

	return &logger
}
