package routes

import (
	"context"

	"github.com/dabloons/wattsd/internal/http/handlers"
)

// StubHandlers returns a Handlers instance with stub implementations.
// All handlers return nil responses; these are only used for OpenAPI generation
// where Huma extracts type information from function signatures.
func StubHandlers() *Handlers {
	return &Handlers{
		HealthCheck: func(_ context.Context, _ *handlers.HealthInput) (*handlers.HealthOutput, error) {
			return nil, nil
		},
		VersionCheck: func(_ context.Context, _ *handlers.VersionInput) (*handlers.VersionOutput, error) {
			return nil, nil
		},
		Room:    &stubRoomHandlers{},
		Light:   &stubLightHandlers{},
		Logging: &stubLoggingHandlers{},
	}
}

// --- Room stubs ---

type stubRoomHandlers struct{}

func (s *stubRoomHandlers) ListRooms(_ context.Context, _ *handlers.ListRoomsInput) (*handlers.ListRoomsOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) CreateRoom(_ context.Context, _ *handlers.CreateRoomInput) (*handlers.CreateRoomOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) GetRoom(_ context.Context, _ *handlers.GetRoomInput) (*handlers.GetRoomOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) DeleteRoom(_ context.Context, _ *handlers.DeleteRoomInput) (*handlers.DeleteRoomOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) ListRoomLights(_ context.Context, _ *handlers.ListRoomLightsInput) (*handlers.ListRoomLightsOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) RoomIntegrations(_ context.Context, _ *handlers.RoomIntegrationsInput) (*handlers.RoomIntegrationsOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) AddRoomLights(_ context.Context, _ *handlers.AddRoomLightsInput) (*handlers.AddRoomLightsOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) RemoveRoomLight(_ context.Context, _ *handlers.RemoveRoomLightInput) (*handlers.RemoveRoomLightOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) SetRoomState(_ context.Context, _ *handlers.SetRoomStateInput) (*handlers.SetRoomStateOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) TurnOnRoom(_ context.Context, _ *handlers.RoomPowerInput) (*handlers.RoomPowerOutput, error) {
	return nil, nil
}

func (s *stubRoomHandlers) TurnOffRoom(_ context.Context, _ *handlers.RoomPowerInput) (*handlers.RoomPowerOutput, error) {
	return nil, nil
}

// --- Light stubs ---

type stubLightHandlers struct{}

func (s *stubLightHandlers) ListLights(_ context.Context, _ *handlers.ListLightsInput) (*handlers.ListLightsOutput, error) {
	return nil, nil
}

func (s *stubLightHandlers) GetLight(_ context.Context, _ *handlers.GetLightInput) (*handlers.GetLightOutput, error) {
	return nil, nil
}

func (s *stubLightHandlers) SetLightState(_ context.Context, _ *handlers.SetLightStateInput) (*handlers.SetLightStateOutput, error) {
	return nil, nil
}

// --- Logging stubs ---

type stubLoggingHandlers struct{}

func (s *stubLoggingHandlers) GetLevel(_ context.Context, _ *handlers.GetLevelInput) (*handlers.GetLevelOutput, error) {
	return nil, nil
}

func (s *stubLoggingHandlers) SetLevel(_ context.Context, _ *handlers.SetLevelInput) (*handlers.SetLevelOutput, error) {
	return nil, nil
}
