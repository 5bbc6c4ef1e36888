package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	werrors "github.com/dabloons/wattsd/internal/errors"
	"github.com/dabloons/wattsd/internal/light"
)

// LightStore is the light lookup surface the HTTP layer consumes.
// Implemented by store.Store.
type LightStore interface {
	GetLights(ctx context.Context) ([]light.Light, error)
	GetLight(ctx context.Context, id string) (light.Light, error)
}

// LightControl is the single-light command surface.
// Implemented by *room.Manager.
type LightControl interface {
	SetLightState(ctx context.Context, lightID string, state light.LightState) error
}

// --- List Lights ---

// ListLightsInput is the input for listing all lights.
type ListLightsInput struct{}

// ListLightsOutput is the output for listing all lights.
type ListLightsOutput struct {
	Body []LightResponse
}

// --- Get Light ---

// GetLightInput is the input for getting a single light.
type GetLightInput struct {
	ID string `path:"id" doc:"Light identifier"`
}

// GetLightOutput is the output for getting a single light.
type GetLightOutput struct {
	Body LightResponse
}

// --- Set Light State ---

// SetLightStateInput is the input for applying state to one light.
type SetLightStateInput struct {
	ID   string `path:"id" doc:"Light identifier"`
	Body struct {
		On         bool     `json:"on" doc:"Power state"`
		Brightness float64  `json:"brightness" doc:"Brightness level (0.0-1.0)" minimum:"0" maximum:"1"`
		Hue        *float64 `json:"hue,omitempty" doc:"Hue in degrees (0-360)" minimum:"0" maximum:"360"`
		Saturation *float64 `json:"saturation,omitempty" doc:"Saturation (0.0-1.0)" minimum:"0" maximum:"1"`
	}
}

// SetLightStateOutput is the output for applying state to one light.
type SetLightStateOutput struct {
	Body StatusResponse
}

// LightHandler implements light-related HTTP handlers. Lights are
// registered through discovery or bridge import; the API exposes reads and
// single-light state commands, while batch changes go through rooms.
type LightHandler struct {
	Lights  LightStore
	Control LightControl
}

// ListLights returns all known lights.
func (h *LightHandler) ListLights(ctx context.Context, _ *ListLightsInput) (*ListLightsOutput, error) {
	lights, err := h.Lights.GetLights(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to list lights: %s", err))
	}
	return &ListLightsOutput{Body: LightsFromInternal(lights)}, nil
}

// GetLight returns a single light by ID.
func (h *LightHandler) GetLight(ctx context.Context, input *GetLightInput) (*GetLightOutput, error) {
	l, err := h.Lights.GetLight(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound(fmt.Sprintf("Light not found: %s", err))
	}
	return &GetLightOutput{Body: LightFromInternal(l)}, nil
}

// SetLightState applies state to a single light through its vendor.
func (h *LightHandler) SetLightState(ctx context.Context, input *SetLightStateInput) (*SetLightStateOutput, error) {
	state := light.LightState{
		On:         input.Body.On,
		Brightness: input.Body.Brightness,
		Hue:        input.Body.Hue,
		Saturation: input.Body.Saturation,
	}
	if err := h.Control.SetLightState(ctx, input.ID, state); err != nil {
		switch {
		case werrors.IsNotFound(err):
			return nil, huma.Error404NotFound(fmt.Sprintf("Light not found: %s", err))
		case werrors.IsVendorUnavailable(err), werrors.IsVendorProtocol(err):
			return nil, huma.Error502BadGateway(fmt.Sprintf("Vendor operation failed: %s", err))
		default:
			return nil, huma.Error500InternalServerError(fmt.Sprintf("Failed to set light state: %s", err))
		}
	}
	return &SetLightStateOutput{Body: StatusResponse{Status: "ok"}}, nil
}

// Ensure LightHandler implements the interface at compile time.
var _ LightHandlers = (*LightHandler)(nil)

// LightHandlers defines the interface for light operations.
type LightHandlers interface {
	ListLights(ctx context.Context, input *ListLightsInput) (*ListLightsOutput, error)
	GetLight(ctx context.Context, input *GetLightInput) (*GetLightOutput, error)
	SetLightState(ctx context.Context, input *SetLightStateInput) (*SetLightStateOutput, error)
}
