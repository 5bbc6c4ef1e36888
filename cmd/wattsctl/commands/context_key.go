package commands

import (
	"context"

	"github.com/dabloons/wattsd/pkg/client"
)

// ClientContextKey is used for storing the API client in the command
// context. Main and the tests both attach the client under this key.
var ClientContextKey = &struct{}{}

// API is the subset of the wattsd client the commands use. Tests provide
// a fake; main provides *client.Client.
type API interface {
	GetVersion(ctx context.Context) (client.Version, error)
	GetLights(ctx context.Context) ([]client.Light, error)
	GetLight(ctx context.Context, id string) (client.Light, error)
	SetLightState(ctx context.Context, id string, state client.LightState) error
	GetRooms(ctx context.Context) ([]client.Room, error)
	GetRoom(ctx context.Context, id string) (client.Room, error)
	CreateRoom(ctx context.Context, name string) (client.Room, error)
	DeleteRoom(ctx context.Context, id string) error
	GetRoomLights(ctx context.Context, id string) ([]client.Light, error)
	GetRoomIntegrations(ctx context.Context, id string) ([]string, error)
	AddRoomLights(ctx context.Context, id string, lightIDs []string) (client.Room, error)
	RemoveRoomLight(ctx context.Context, id, lightID string) error
	SetRoomState(ctx context.Context, id string, state client.LightState) error
	TurnOnRoom(ctx context.Context, id string) error
	TurnOffRoom(ctx context.Context, id string) error
	GetLogLevel(ctx context.Context) (string, error)
	SetLogLevel(ctx context.Context, level string) error
}

var _ API = (*client.Client)(nil)

// apiFromCmd returns the API client attached to the command context.
func apiFromCmd(cmd interface{ Context() context.Context }) API {
	return cmd.Context().Value(ClientContextKey).(API)
}
