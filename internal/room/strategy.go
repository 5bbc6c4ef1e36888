package room

import (
	"context"
	"log/slog"
	"math"

	"github.com/dabloons/wattsd/internal/errors"
	"github.com/dabloons/wattsd/internal/light"
	"github.com/dabloons/wattsd/internal/store"
	"github.com/dabloons/wattsd/pkg/hue"
	"github.com/dabloons/wattsd/pkg/nanoleaf"
)

// Strategy applies a desired state to one vendor's lights in a room. One
// implementation exists per integration type; the Manager dispatches
// through a closed table so adding a vendor is a single registration.
type Strategy interface {
	ApplyState(ctx context.Context, room *store.Room, lights []light.Light, state light.LightState) error
}

// GroupClient is the batch-group vendor surface the orchestrator consumes.
// Implemented by *hue.Client.
type GroupClient interface {
	CreateGroupWithLights(ctx context.Context, name string, lightIDs []string) (string, error)
	SetGroupLights(ctx context.Context, groupID string, lightIDs []string) error
	SetGroupState(ctx context.Context, groupID string, state hue.GroupState) error
	SetLightState(ctx context.Context, lightID string, state hue.GroupState) error
	DeleteGroup(ctx context.Context, groupID string) error
}

// DeviceClient is the per-device vendor surface the orchestrator consumes.
// Implemented by *nanoleaf.Client.
type DeviceClient interface {
	SetState(ctx context.Context, address, token string, state nanoleaf.State) error
}

// groupStrategy issues a single command against the room's vendor-assigned
// group. It never creates groups; that is the orchestrator's job during
// AddLightsToRoom.
type groupStrategy struct {
	integration light.IntegrationType
	bridge      GroupClient
	logger      *slog.Logger
}

func (s *groupStrategy) ApplyState(ctx context.Context, room *store.Room, lights []light.Light, state light.LightState) error {
	groupID := room.IntegrationID(s.integration)
	if groupID == "" {
		return errors.InvalidInputf("room %s has no %s group", room.ID, s.integration)
	}

	s.logger.Debug("applying group state", "room", room.ID, "group", groupID, "on", state.On)
	return s.bridge.SetGroupState(ctx, groupID, hueGroupState(state))
}

// sequentialStrategy commands devices one at a time: device k+1 is not
// commanded before device k acknowledges. The vendor's local network drops
// concurrent commands, so sequencing trades latency for reliability. The
// first device failure stops the chain.
type sequentialStrategy struct {
	devices DeviceClient
	logger  *slog.Logger
}

func (s *sequentialStrategy) ApplyState(ctx context.Context, room *store.Room, lights []light.Light, state light.LightState) error {
	deviceState := nanoleafState(state)
	for _, l := range lights {
		if err := s.devices.SetState(ctx, l.Address, l.Token, deviceState); err != nil {
			s.logger.Debug("sequential dispatch stopped", "room", room.ID, "light", l.ID, "error", err)
			return errors.WrapErrorf(err, "light %s", l.ID)
		}
	}
	return nil
}

// hueGroupState converts the normalized state to the bridge's scales:
// brightness 0-254, hue 0-65535 from degrees, saturation 0-254.
func hueGroupState(state light.LightState) hue.GroupState {
	gs := hue.GroupState{
		On:  state.On,
		Bri: uint8(math.Round(clamp01(state.Brightness) * 254)),
	}
	if state.Hue != nil {
		h := uint16(math.Round(clampDegrees(*state.Hue) / 360 * 65535))
		gs.Hue = &h
	}
	if state.Saturation != nil {
		sat := uint8(math.Round(clamp01(*state.Saturation) * 254))
		gs.Sat = &sat
	}
	return gs
}

// nanoleafState converts the normalized state to the device's scales:
// brightness 0-100, hue in whole degrees, saturation 0-100.
func nanoleafState(state light.LightState) nanoleaf.State {
	ds := nanoleaf.State{
		On:         state.On,
		Brightness: int(math.Round(clamp01(state.Brightness) * 100)),
	}
	if state.Hue != nil {
		h := int(math.Round(clampDegrees(*state.Hue)))
		ds.Hue = &h
	}
	if state.Saturation != nil {
		sat := int(math.Round(clamp01(*state.Saturation) * 100))
		ds.Sat = &sat
	}
	return ds
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func clampDegrees(v float64) float64 {
	return math.Min(360, math.Max(0, v))
}
