package room

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabloons/wattsd/internal/errors"
	"github.com/dabloons/wattsd/internal/light"
	"github.com/dabloons/wattsd/internal/store"
	"github.com/dabloons/wattsd/pkg/hue"
	"github.com/dabloons/wattsd/pkg/nanoleaf"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGroupClient struct {
	createdName   string
	createdLights []string
	createErr     error
	groupID       string

	setLightsGroup string
	setLights      []string
	setLightsErr   error

	stateGroup string
	state      hue.GroupState
	stateCalls int
	stateErr   error

	lightStateID  string
	lightState    hue.GroupState
	lightStateErr error

	deletedGroup string
	deleteErr    error
}

func (f *fakeGroupClient) CreateGroupWithLights(_ context.Context, name string, lightIDs []string) (string, error) {
	f.createdName = name
	f.createdLights = lightIDs
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.groupID, nil
}

func (f *fakeGroupClient) SetGroupLights(_ context.Context, groupID string, lightIDs []string) error {
	f.setLightsGroup = groupID
	f.setLights = lightIDs
	return f.setLightsErr
}

func (f *fakeGroupClient) SetGroupState(_ context.Context, groupID string, state hue.GroupState) error {
	f.stateGroup = groupID
	f.state = state
	f.stateCalls++
	return f.stateErr
}

func (f *fakeGroupClient) SetLightState(_ context.Context, lightID string, state hue.GroupState) error {
	f.lightStateID = lightID
	f.lightState = state
	return f.lightStateErr
}

func (f *fakeGroupClient) DeleteGroup(_ context.Context, groupID string) error {
	f.deletedGroup = groupID
	return f.deleteErr
}

type deviceCall struct {
	address string
	token   string
	state   nanoleaf.State
}

type fakeDeviceClient struct {
	calls   []deviceCall
	failAt  int // 1-based call index that fails, 0 means never
	failErr error
}

func (f *fakeDeviceClient) SetState(_ context.Context, address, token string, state nanoleaf.State) error {
	f.calls = append(f.calls, deviceCall{address: address, token: token, state: state})
	if f.failAt != 0 && len(f.calls) == f.failAt {
		return f.failErr
	}
	return nil
}

func TestGroupStrategySingleCall(t *testing.T) {
	bridge := &fakeGroupClient{}
	s := &groupStrategy{integration: light.IntegrationHue, bridge: bridge, logger: testLogger()}

	room := &store.Room{ID: "r1"}
	room.SetIntegrationID(light.IntegrationHue, "7")

	lights := []light.Light{
		{ID: "l1", Integration: light.IntegrationHue, VendorID: "1"},
		{ID: "l2", Integration: light.IntegrationHue, VendorID: "2"},
	}

	err := s.ApplyState(context.Background(), room, lights, light.LightState{On: true, Brightness: 1.0})
	require.NoError(t, err)

	// One call regardless of how many lights are in the group.
	assert.Equal(t, 1, bridge.stateCalls)
	assert.Equal(t, "7", bridge.stateGroup)
	assert.True(t, bridge.state.On)
	assert.Equal(t, uint8(254), bridge.state.Bri)
}

func TestGroupStrategyNoGroupID(t *testing.T) {
	bridge := &fakeGroupClient{}
	s := &groupStrategy{integration: light.IntegrationHue, bridge: bridge, logger: testLogger()}

	err := s.ApplyState(context.Background(), &store.Room{ID: "r1"}, nil, light.LightState{On: true})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Equal(t, 0, bridge.stateCalls)
}

func TestSequentialStrategyOrderAndFailFast(t *testing.T) {
	devices := &fakeDeviceClient{failAt: 2, failErr: errors.VendorUnavailablef("device timeout")}
	s := &sequentialStrategy{devices: devices, logger: testLogger()}

	lights := []light.Light{
		{ID: "l1", Address: "10.0.0.1:16021", Token: "t1"},
		{ID: "l2", Address: "10.0.0.2:16021", Token: "t2"},
		{ID: "l3", Address: "10.0.0.3:16021", Token: "t3"},
	}

	err := s.ApplyState(context.Background(), &store.Room{ID: "r1"}, lights, light.LightState{On: true, Brightness: 0.5})
	require.Error(t, err)
	assert.True(t, errors.IsVendorUnavailable(err))
	assert.Contains(t, err.Error(), "l2")

	// The third device is never commanded after the second one fails.
	require.Len(t, devices.calls, 2)
	assert.Equal(t, "10.0.0.1:16021", devices.calls[0].address)
	assert.Equal(t, "t1", devices.calls[0].token)
	assert.Equal(t, "10.0.0.2:16021", devices.calls[1].address)
}

func TestSequentialStrategyAllSucceed(t *testing.T) {
	devices := &fakeDeviceClient{}
	s := &sequentialStrategy{devices: devices, logger: testLogger()}

	lights := []light.Light{
		{ID: "l1", Address: "a", Token: "t"},
		{ID: "l2", Address: "b", Token: "t"},
	}

	err := s.ApplyState(context.Background(), &store.Room{ID: "r1"}, lights, light.LightState{On: false})
	require.NoError(t, err)
	assert.Len(t, devices.calls, 2)
	assert.False(t, devices.calls[0].state.On)
}

func TestHueGroupStateConversion(t *testing.T) {
	hueDeg := 180.0
	sat := 0.5
	gs := hueGroupState(light.LightState{On: true, Brightness: 0.5, Hue: &hueDeg, Saturation: &sat})

	assert.True(t, gs.On)
	assert.Equal(t, uint8(127), gs.Bri)
	require.NotNil(t, gs.Hue)
	assert.Equal(t, uint16(32768), *gs.Hue)
	require.NotNil(t, gs.Sat)
	assert.Equal(t, uint8(127), *gs.Sat)
}

func TestHueGroupStateClamps(t *testing.T) {
	gs := hueGroupState(light.LightState{On: true, Brightness: 2.0})
	assert.Equal(t, uint8(254), gs.Bri)

	gs = hueGroupState(light.LightState{On: true, Brightness: -1.0})
	assert.Equal(t, uint8(0), gs.Bri)
	assert.Nil(t, gs.Hue)
	assert.Nil(t, gs.Sat)
}

func TestNanoleafStateConversion(t *testing.T) {
	hueDeg := 120.0
	sat := 1.0
	ds := nanoleafState(light.LightState{On: true, Brightness: 0.75, Hue: &hueDeg, Saturation: &sat})

	assert.True(t, ds.On)
	assert.Equal(t, 75, ds.Brightness)
	require.NotNil(t, ds.Hue)
	assert.Equal(t, 120, *ds.Hue)
	require.NotNil(t, ds.Sat)
	assert.Equal(t, 100, *ds.Sat)
}
