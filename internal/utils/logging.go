package utils

import (
	"log/slog"
	"os"

	"github.com/dabloons/wattsd/internal/config"
)

// ValidateLogLevel ensures the provided level is valid, returning a default if not
func ValidateLogLevel(level string) string {
	switch level {
	case config.LogLevelDebug, config.LogLevelInfo, config.LogLevelWarn, config.LogLevelError:
		return level
	default:
		return config.LogLevelInfo
	}
}

// ValidateLogFormat ensures the provided format is valid, returning a default if not
func ValidateLogFormat(format string) string {
	switch format {
	case config.LogFormatText, config.LogFormatJSON:
		return format
	default:
		return config.LogFormatText
	}
}

// SetupLogger creates a logger writing to stderr. When level is non-nil it
// is used as the handler's level so the level can change at runtime.
func SetupLogger(levelName, format string, level *slog.LevelVar) *slog.Logger {
	parsed := config.ParseLogLevel(ValidateLogLevel(levelName))

	var leveler slog.Leveler = parsed
	if level != nil {
		level.Set(parsed)
		leveler = level
	}

	opts := &slog.HandlerOptions{Level: leveler}
	var handler slog.Handler
	if ValidateLogFormat(format) == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// SetupErrorLogger creates a simple text logger for reporting errors during startup.
func SetupErrorLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// SetAsDefaultLogger sets a logger as the default logger
func SetAsDefaultLogger(logger *slog.Logger) {
	slog.SetDefault(logger)
}
