// Package logging builds the zerolog loggers used by the comstack binaries.
// The core library takes a logger as an option and stays silent without one;
// these helpers exist so every binary configures output the same way.
package logging

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "COMSTACK_LOG_LEVEL"
	EnvLogTimestamp = "COMSTACK_LOG_TIMESTAMP"
	EnvLogNoColor   = "COMSTACK_LOG_NOCOLOR"
)

// New builds a console logger tagged with the application name. Environment
// variables override level, timestamps and coloring.
func New(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    envBool(EnvLogNoColor),
	}
	logger := zerolog.New(output).Level(level()).With().Str("app", app).Logger()
	if timestamps() {
		logger = logger.With().Timestamp().Logger()
	}
	return logger
}

func level() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvLogLevel))) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func timestamps() bool {
	raw := os.Getenv(EnvLogTimestamp)
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return true
	}
	return v
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
