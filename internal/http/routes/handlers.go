package routes

import (
	"context"

	"github.com/dabloons/wattsd/internal/http/handlers"
)

// Handlers aggregates all handler interfaces for route registration.
// For the main server, pass real handler implementations.
// For OpenAPI generation, pass stub implementations.
type Handlers struct {
	HealthCheck  func(ctx context.Context, input *handlers.HealthInput) (*handlers.HealthOutput, error)
	VersionCheck func(ctx context.Context, input *handlers.VersionInput) (*handlers.VersionOutput, error)
	Room         handlers.RoomHandlers
	Light        handlers.LightHandlers
	Logging      handlers.LoggingHandlers
}
