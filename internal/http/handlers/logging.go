package handlers

import (
	"context"
	"fmt"
	"log/slog"
)

// --- Get Log Level ---

// GetLevelInput is the input for reading the current log level.
type GetLevelInput struct{}

// GetLevelOutput is the output for reading the current log level.
type GetLevelOutput struct {
	Body struct {
		Level string `json:"level" doc:"Current global log level"`
	}
}

// --- Set Log Level ---

// SetLevelInput is the input for changing the log level at runtime.
type SetLevelInput struct {
	Body struct {
		Level string `json:"level" doc:"New global log level (debug, info, warn, error)" enum:"debug,info,warn,error"`
	}
}

// SetLevelOutput is the output for changing the log level.
type SetLevelOutput struct {
	Body StatusResponse
}

// LoggingHandler implements runtime log level control. The daemon's slog
// handler reads its level from the shared LevelVar, so changes take effect
// immediately.
type LoggingHandler struct {
	Level *slog.LevelVar
}

// GetLevel returns the current global log level.
func (h *LoggingHandler) GetLevel(_ context.Context, _ *GetLevelInput) (*GetLevelOutput, error) {
	out := &GetLevelOutput{}
	out.Body.Level = LevelToString(h.Level.Level())
	return out, nil
}

// SetLevel changes the global log level at runtime.
func (h *LoggingHandler) SetLevel(_ context.Context, input *SetLevelInput) (*SetLevelOutput, error) {
	level, err := ParseLevel(input.Body.Level)
	if err != nil {
		return nil, err
	}
	h.Level.Set(level)
	return &SetLevelOutput{Body: StatusResponse{Status: "ok"}}, nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LevelToString converts a slog.Level to its canonical name. Levels outside
// the standard four are clamped to the nearest name.
func LevelToString(level slog.Level) string {
	switch {
	case level <= slog.LevelDebug:
		return "debug"
	case level <= slog.LevelInfo:
		return "info"
	case level <= slog.LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// Ensure LoggingHandler implements the interface at compile time.
var _ LoggingHandlers = (*LoggingHandler)(nil)

// LoggingHandlers defines the interface for logging operations.
type LoggingHandlers interface {
	GetLevel(ctx context.Context, input *GetLevelInput) (*GetLevelOutput, error)
	SetLevel(ctx context.Context, input *SetLevelInput) (*SetLevelOutput, error)
}
