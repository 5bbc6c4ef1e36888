// Package store defines the persistent room/light store consumed by the
// room orchestrator. The orchestrator depends on the Store interface only;
// the sqlite subpackage provides the default implementation.
package store

import (
	"context"
	"slices"

	"github.com/dabloons/wattsd/internal/light"
)

// Room is a user-defined grouping of lights. Rooms hold light ids only
// (weak references): deleting a room never deletes its lights, and a light
// may exist without belonging to any room.
type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	LightIDs []string `json:"light_ids"`

	// IntegrationIDs maps each integration type to the vendor-assigned
	// group identifier for this room, at most one per vendor.
	IntegrationIDs map[light.IntegrationType]string `json:"integration_ids,omitempty"`
}

// IntegrationID returns the vendor group id for the given integration, or
// "" when no group has been created yet.
func (r *Room) IntegrationID(t light.IntegrationType) string {
	return r.IntegrationIDs[t]
}

// SetIntegrationID records the vendor group id for the given integration.
func (r *Room) SetIntegrationID(t light.IntegrationType, id string) {
	if r.IntegrationIDs == nil {
		r.IntegrationIDs = make(map[light.IntegrationType]string, 1)
	}
	r.IntegrationIDs[t] = id
}

// HasLight reports whether the room's membership contains the light id.
func (r *Room) HasLight(id string) bool {
	return slices.Contains(r.LightIDs, id)
}

// Store is the persistent room/light store.
type Store interface {
	// CreateRoom creates a room with a store-assigned id and no lights.
	CreateRoom(ctx context.Context, name string) (*Room, error)

	// GetRooms returns all user-defined rooms.
	GetRooms(ctx context.Context) ([]*Room, error)

	// SetRoomLights replaces the room's light membership.
	SetRoomLights(ctx context.Context, roomID string, lightIDs []string) error

	// SetRoomIntegrationID records the vendor-assigned group id for a room.
	SetRoomIntegrationID(ctx context.Context, roomID string, integration light.IntegrationType, integrationID string) error

	// DeleteRoom deletes the room record. The room's lights are untouched.
	DeleteRoom(ctx context.Context, roomID string) error

	// SaveLight inserts or updates a light record. A light already known
	// under the same (integration, vendor id) keeps its store id.
	SaveLight(ctx context.Context, l light.Light) (light.Light, error)

	// GetLight returns a single light by store id.
	GetLight(ctx context.Context, id string) (light.Light, error)

	// GetLights returns all known lights.
	GetLights(ctx context.Context) ([]light.Light, error)

	// GetLightsForIDs resolves light records for the given store ids.
	// Unknown ids are skipped.
	GetLightsForIDs(ctx context.Context, ids []string) ([]light.Light, error)

	// UpdateLights persists the current state of multiple lights.
	UpdateLights(ctx context.Context, lights []light.Light) error

	Close() error
}
