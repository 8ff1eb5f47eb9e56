// Package logging provides structured logging for shelfmap using zerolog.
// Terminals get human-readable console output, everything else gets JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("source", "primary").Int("records", 812).Msg("Dataset loaded")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	defaultLogger = NewLoggerFromConfig(ConfigFromEnv())

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

// ConfigFromEnv derives a Config from LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT,
// NO_COLOR and DEBUG. A set DEBUG only applies when LOG_LEVEL is empty.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("LOG_LEVEL") != "":
		cfg.Level = os.Getenv("LOG_LEVEL")
	case os.Getenv("DEBUG") != "":
		cfg.Level = "debug"
	}
	if f := os.Getenv("LOG_FORMAT"); f != "" {
		cfg.Format = f
	}
	if o := os.Getenv("LOG_OUTPUT"); o != "" {
		cfg.Output = o
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts a new info level log event.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a new warning level log event.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts a new error level log event.
func Error() *zerolog.Event { return defaultLogger.Error() }

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
