// Package handlers provides typed Huma request/response structs and handler
// implementations for the wattsd HTTP API.
package handlers

import (
	"github.com/dabloons/wattsd/internal/light"
	"github.com/dabloons/wattsd/internal/store"
)

// --- Light types ---

// LightStateResponse is the API representation of a light's state.
type LightStateResponse struct {
	On         bool     `json:"on" doc:"Power state"`
	Brightness float64  `json:"brightness" doc:"Brightness level (0.0-1.0)"`
	Hue        *float64 `json:"hue,omitempty" doc:"Hue in degrees (0-360)"`
	Saturation *float64 `json:"saturation,omitempty" doc:"Saturation (0.0-1.0)"`
}

// LightResponse is the API representation of a known light.
type LightResponse struct {
	ID          string             `json:"id" doc:"Unique light identifier"`
	Name        string             `json:"name" doc:"Display name of the light"`
	Integration string             `json:"integration" doc:"Vendor integration (hue or nanoleaf)"`
	VendorID    string             `json:"vendor_id" doc:"Vendor-native identifier"`
	Address     string             `json:"address,omitempty" doc:"Device address for directly-addressed lights"`
	State       LightStateResponse `json:"state" doc:"Last known state"`
}

// LightFromInternal converts a light.Light to a LightResponse.
func LightFromInternal(l light.Light) LightResponse {
	return LightResponse{
		ID:          l.ID,
		Name:        l.Name,
		Integration: string(l.Integration),
		VendorID:    l.VendorID,
		Address:     l.Address,
		State: LightStateResponse{
			On:         l.State.On,
			Brightness: l.State.Brightness,
			Hue:        l.State.Hue,
			Saturation: l.State.Saturation,
		},
	}
}

// LightsFromInternal converts a slice of lights to LightResponses.
func LightsFromInternal(lights []light.Light) []LightResponse {
	result := make([]LightResponse, len(lights))
	for i, l := range lights {
		result[i] = LightFromInternal(l)
	}
	return result
}

// --- Room types ---

// RoomResponse is the API representation of a room.
type RoomResponse struct {
	ID       string   `json:"id" doc:"Unique room identifier (UUID)"`
	Name     string   `json:"name" doc:"Display name of the room"`
	LightIDs []string `json:"light_ids" doc:"IDs of the lights in this room"`

	// IntegrationIDs maps vendor integrations to their group identifier
	// for this room, where the vendor supports server-side grouping.
	IntegrationIDs map[string]string `json:"integration_ids,omitempty" doc:"Vendor group identifiers keyed by integration"`
}

// RoomFromInternal converts a store.Room to a RoomResponse.
func RoomFromInternal(r *store.Room) RoomResponse {
	lightIDs := r.LightIDs
	if lightIDs == nil {
		lightIDs = []string{}
	}
	resp := RoomResponse{
		ID:       r.ID,
		Name:     r.Name,
		LightIDs: lightIDs,
	}
	if len(r.IntegrationIDs) > 0 {
		resp.IntegrationIDs = make(map[string]string, len(r.IntegrationIDs))
		for t, id := range r.IntegrationIDs {
			resp.IntegrationIDs[string(t)] = id
		}
	}
	return resp
}

// RoomsFromInternal converts a slice of rooms to RoomResponses.
func RoomsFromInternal(rooms []*store.Room) []RoomResponse {
	result := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		result[i] = RoomFromInternal(r)
	}
	return result
}

// --- Common response types ---

// StatusResponse is a simple status response.
type StatusResponse struct {
	Status string `json:"status" doc:"Operation status"`
}
