package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	werrors "github.com/dabloons/wattsd/internal/errors"
	"github.com/dabloons/wattsd/internal/light"
	"github.com/dabloons/wattsd/internal/store"
)

// RoomService is the room orchestration surface the HTTP layer consumes.
// Implemented by *room.Manager.
type RoomService interface {
	CreateRoom(ctx context.Context, name string) (*store.Room, error)
	Rooms(ctx context.Context) ([]*store.Room, error)
	RoomForID(ctx context.Context, roomID string) (*store.Room, error)
	DeleteRoom(ctx context.Context, roomID string) error
	AddLightsToRoom(ctx context.Context, roomID string, lightIDs []string) error
	RemoveLightFromRoom(ctx context.Context, roomID, lightID string) error
	SetRoomLightState(ctx context.Context, roomID string, state light.LightState) error
	TurnOnRoomLights(ctx context.Context, roomID string) error
	TurnOffRoomLights(ctx context.Context, roomID string) error
	RoomLights(ctx context.Context, roomID string) ([]light.Light, error)
	RoomIntegrations(ctx context.Context, roomID string) ([]light.IntegrationType, error)
}

// --- List Rooms ---

// ListRoomsInput is the input for listing all rooms.
type ListRoomsInput struct{}

// ListRoomsOutput is the output for listing all rooms.
type ListRoomsOutput struct {
	Body []RoomResponse
}

// --- Create Room ---

// CreateRoomInput is the input for creating a new room.
type CreateRoomInput struct {
	Body struct {
		Name string `json:"name" doc:"Display name for the room" minLength:"1"`
	}
}

// CreateRoomOutput is the output for creating a new room (HTTP 201).
type CreateRoomOutput struct {
	Body RoomResponse
}

// --- Get Room ---

// GetRoomInput is the input for getting a single room.
type GetRoomInput struct {
	ID string `path:"id" doc:"Room identifier"`
}

// GetRoomOutput is the output for getting a single room.
type GetRoomOutput struct {
	Body RoomResponse
}

// --- Delete Room ---

// DeleteRoomInput is the input for deleting a room.
type DeleteRoomInput struct {
	ID string `path:"id" doc:"Room identifier"`
}

// DeleteRoomOutput is the output for deleting a room (HTTP 204).
type DeleteRoomOutput struct{}

// --- Room Lights ---

// ListRoomLightsInput is the input for listing a room's lights.
type ListRoomLightsInput struct {
	ID string `path:"id" doc:"Room identifier"`
}

// ListRoomLightsOutput is the output for listing a room's lights.
type ListRoomLightsOutput struct {
	Body []LightResponse
}

// AddRoomLightsInput is the input for adding lights to a room.
type AddRoomLightsInput struct {
	ID   string `path:"id" doc:"Room identifier"`
	Body struct {
		LightIDs []string `json:"light_ids" doc:"IDs of the lights to add"`
	}
}

// AddRoomLightsOutput is the output for adding lights to a room.
type AddRoomLightsOutput struct {
	Body RoomResponse
}

// RemoveRoomLightInput is the input for removing one light from a room.
type RemoveRoomLightInput struct {
	ID      string `path:"id" doc:"Room identifier"`
	LightID string `path:"light_id" doc:"Light identifier"`
}

// RemoveRoomLightOutput is the output for removing a light (HTTP 204).
type RemoveRoomLightOutput struct{}

// --- Room Integrations ---

// RoomIntegrationsInput is the input for listing a room's integrations.
type RoomIntegrationsInput struct {
	ID string `path:"id" doc:"Room identifier"`
}

// RoomIntegrationsOutput is the output for listing a room's integrations.
type RoomIntegrationsOutput struct {
	Body []string
}

// --- Set Room State ---

// SetRoomStateInput is the input for applying state to every light in a
// room. On is required; omitted optional fields leave the corresponding
// light properties unchanged.
type SetRoomStateInput struct {
	ID   string `path:"id" doc:"Room identifier"`
	Body struct {
		On         bool     `json:"on" doc:"Power state for all lights in the room"`
		Brightness float64  `json:"brightness" doc:"Brightness level (0.0-1.0)" minimum:"0" maximum:"1"`
		Hue        *float64 `json:"hue,omitempty" doc:"Hue in degrees (0-360)" minimum:"0" maximum:"360"`
		Saturation *float64 `json:"saturation,omitempty" doc:"Saturation (0.0-1.0)" minimum:"0" maximum:"1"`
	}
}

// SetRoomStateOutput is the output for setting room state.
type SetRoomStateOutput struct {
	Body StatusResponse
}

// --- Room Power ---

// RoomPowerInput is the input for turning a room on or off.
type RoomPowerInput struct {
	ID string `path:"id" doc:"Room identifier"`
}

// RoomPowerOutput is the output for turning a room on or off.
type RoomPowerOutput struct {
	Body StatusResponse
}

// RoomHandler implements room-related HTTP handlers.
type RoomHandler struct {
	Rooms RoomService
}

// ListRooms returns all rooms as an array.
func (h *RoomHandler) ListRooms(ctx context.Context, _ *ListRoomsInput) (*ListRoomsOutput, error) {
	rooms, err := h.Rooms.Rooms(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to list rooms: %s", err))
	}
	return &ListRoomsOutput{Body: RoomsFromInternal(rooms)}, nil
}

// CreateRoom creates a new room and returns it with HTTP 201.
func (h *RoomHandler) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	r, err := h.Rooms.CreateRoom(ctx, input.Body.Name)
	if err != nil {
		if werrors.IsInvalidInput(err) {
			return nil, huma.Error400BadRequest(fmt.Sprintf("Invalid room: %s", err))
		}
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to create room: %s", err))
	}
	return &CreateRoomOutput{Body: RoomFromInternal(r)}, nil
}

// GetRoom returns a single room by ID.
func (h *RoomHandler) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	r, err := h.Rooms.RoomForID(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound(fmt.Sprintf("Room not found: %s", err))
	}
	return &GetRoomOutput{Body: RoomFromInternal(r)}, nil
}

// DeleteRoom deletes a room and returns HTTP 204. The room's lights remain.
func (h *RoomHandler) DeleteRoom(ctx context.Context, input *DeleteRoomInput) (*DeleteRoomOutput, error) {
	if err := h.Rooms.DeleteRoom(ctx, input.ID); err != nil {
		if werrors.IsNotFound(err) {
			return nil, huma.Error404NotFound("Room not found")
		}
		if werrors.IsVendorUnavailable(err) {
			return nil, huma.Error502BadGateway(fmt.Sprintf("Vendor cleanup failed: %s", err))
		}
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to delete room: %s", err))
	}
	return &DeleteRoomOutput{}, nil
}

// ListRoomLights returns the resolved light records for a room.
func (h *RoomHandler) ListRoomLights(ctx context.Context, input *ListRoomLightsInput) (*ListRoomLightsOutput, error) {
	lights, err := h.Rooms.RoomLights(ctx, input.ID)
	if err != nil {
		if werrors.IsNotFound(err) {
			return nil, huma.Error404NotFound("Room not found")
		}
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to list room lights: %s", err))
	}
	return &ListRoomLightsOutput{Body: LightsFromInternal(lights)}, nil
}

// RoomIntegrations returns the distinct vendor integrations represented in
// the room's lights, sorted.
func (h *RoomHandler) RoomIntegrations(ctx context.Context, input *RoomIntegrationsInput) (*RoomIntegrationsOutput, error) {
	integrations, err := h.Rooms.RoomIntegrations(ctx, input.ID)
	if err != nil {
		if werrors.IsNotFound(err) {
			return nil, huma.Error404NotFound("Room not found")
		}
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to list room integrations: %s", err))
	}
	out := make([]string, len(integrations))
	for i, t := range integrations {
		out[i] = string(t)
	}
	return &RoomIntegrationsOutput{Body: out}, nil
}

// AddRoomLights adds lights to a room and returns the updated room.
func (h *RoomHandler) AddRoomLights(ctx context.Context, input *AddRoomLightsInput) (*AddRoomLightsOutput, error) {
	if err := h.Rooms.AddLightsToRoom(ctx, input.ID, input.Body.LightIDs); err != nil {
		if werrors.IsNotFound(err) {
			return nil, huma.Error404NotFound(fmt.Sprintf("Room or light not found: %s", err))
		}
		if werrors.IsVendorUnavailable(err) || werrors.IsVendorProtocol(err) {
			return nil, huma.Error502BadGateway(fmt.Sprintf("Vendor group update failed: %s", err))
		}
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to add lights: %s", err))
	}
	r, err := h.Rooms.RoomForID(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to reload room: %s", err))
	}
	return &AddRoomLightsOutput{Body: RoomFromInternal(r)}, nil
}

// RemoveRoomLight removes one light from a room and returns HTTP 204.
func (h *RoomHandler) RemoveRoomLight(ctx context.Context, input *RemoveRoomLightInput) (*RemoveRoomLightOutput, error) {
	if err := h.Rooms.RemoveLightFromRoom(ctx, input.ID, input.LightID); err != nil {
		if werrors.IsNotFound(err) {
			return nil, huma.Error404NotFound(fmt.Sprintf("Not found: %s", err))
		}
		if werrors.IsVendorUnavailable(err) || werrors.IsVendorProtocol(err) {
			return nil, huma.Error502BadGateway(fmt.Sprintf("Vendor group update failed: %s", err))
		}
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to remove light: %s", err))
	}
	return &RemoveRoomLightOutput{}, nil
}

// SetRoomState applies state to every light in the room across all vendors.
func (h *RoomHandler) SetRoomState(ctx context.Context, input *SetRoomStateInput) (*SetRoomStateOutput, error) {
	state := light.LightState{
		On:         input.Body.On,
		Brightness: input.Body.Brightness,
		Hue:        input.Body.Hue,
		Saturation: input.Body.Saturation,
	}
	if err := h.Rooms.SetRoomLightState(ctx, input.ID, state); err != nil {
		return nil, roomStateError(err)
	}
	return &SetRoomStateOutput{Body: StatusResponse{Status: "ok"}}, nil
}

// TurnOnRoom turns every light in the room on at full brightness.
func (h *RoomHandler) TurnOnRoom(ctx context.Context, input *RoomPowerInput) (*RoomPowerOutput, error) {
	if err := h.Rooms.TurnOnRoomLights(ctx, input.ID); err != nil {
		return nil, roomStateError(err)
	}
	return &RoomPowerOutput{Body: StatusResponse{Status: "ok"}}, nil
}

// TurnOffRoom turns every light in the room off.
func (h *RoomHandler) TurnOffRoom(ctx context.Context, input *RoomPowerInput) (*RoomPowerOutput, error) {
	if err := h.Rooms.TurnOffRoomLights(ctx, input.ID); err != nil {
		return nil, roomStateError(err)
	}
	return &RoomPowerOutput{Body: StatusResponse{Status: "ok"}}, nil
}

func roomStateError(err error) error {
	switch {
	case werrors.IsNotFound(err):
		return huma.Error404NotFound(fmt.Sprintf("Not found: %s", err))
	case werrors.IsInvalidInput(err):
		return huma.Error400BadRequest(fmt.Sprintf("Invalid request: %s", err))
	case werrors.IsVendorUnavailable(err), werrors.IsVendorProtocol(err):
		return huma.Error502BadGateway(fmt.Sprintf("Vendor operation failed: %s", err))
	default:
		return huma.Error500InternalServerError(fmt.Sprintf("Failed to set room state: %s", err))
	}
}

// Ensure RoomHandler implements the interface at compile time.
var _ RoomHandlers = (*RoomHandler)(nil)

// RoomHandlers defines the interface for room operations.
type RoomHandlers interface {
	ListRooms(ctx context.Context, input *ListRoomsInput) (*ListRoomsOutput, error)
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) (*DeleteRoomOutput, error)
	ListRoomLights(ctx context.Context, input *ListRoomLightsInput) (*ListRoomLightsOutput, error)
	RoomIntegrations(ctx context.Context, input *RoomIntegrationsInput) (*RoomIntegrationsOutput, error)
	AddRoomLights(ctx context.Context, input *AddRoomLightsInput) (*AddRoomLightsOutput, error)
	RemoveRoomLight(ctx context.Context, input *RemoveRoomLightInput) (*RemoveRoomLightOutput, error)
	SetRoomState(ctx context.Context, input *SetRoomStateInput) (*SetRoomStateOutput, error)
	TurnOnRoom(ctx context.Context, input *RoomPowerInput) (*RoomPowerOutput, error)
	TurnOffRoom(ctx context.Context, input *RoomPowerInput) (*RoomPowerOutput, error)
}
