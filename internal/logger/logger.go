package logger

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New is built before the config, so it reads .env on its own; godotenv
// never overrides variables that are already set.
func New() zerolog.Logger {
	_ = godotenv.Load()
	return newLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// ParseLevel falls back to debug for empty or unknown names.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return level
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)
}

var Module = fx.Provide(New)
