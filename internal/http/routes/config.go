// Package routes provides shared route registration for the wattsd HTTP API.
// Both the main server and the OpenAPI generator use the same route definitions,
// ensuring the spec is always in sync with the implementation.
package routes

import (
	"github.com/danielgtaylor/huma/v2"
)

// NewHumaConfig creates the shared Huma configuration for the API.
func NewHumaConfig(version, baseURL string) huma.Config {
	cfg := huma.DefaultConfig("wattsd API", version)
	cfg.Info.Description = "REST API for room-level control of Philips Hue and Nanoleaf lights via the wattsd daemon."

	// Disable $schema field in responses
	cfg.CreateHooks = nil

	if baseURL != "" {
		cfg.Servers = []*huma.Server{
			{URL: baseURL, Description: "API Server"},
		}
	}

	// Define OpenAPI tags
	cfg.Tags = []*huma.Tag{
		{Name: "Rooms", Description: "Room management and room-wide light control"},
		{Name: "Lights", Description: "Light inventory across vendor integrations"},
		{Name: "Logging", Description: "Runtime log level management"},
	}

	return cfg
}
