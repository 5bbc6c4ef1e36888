package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabloons/wattsd/pkg/client"
)

func testLights() []client.Light {
	hue := 200.0
	sat := 0.6
	return []client.Light{
		{
			ID:          "l1",
			Name:        "Hue Bulb",
			Integration: "hue",
			VendorID:    "3",
			State:       client.LightState{On: true, Brightness: 0.5, Hue: &hue, Saturation: &sat},
		},
		{
			ID:          "l2",
			Name:        "Panel",
			Integration: "nanoleaf",
			VendorID:    "NL1",
			Address:     "10.0.0.9:16021",
			State:       client.LightState{On: false, Brightness: 0},
		},
	}
}

func TestLightListParseable(t *testing.T) {
	mock := &mockAPI{lights: testLights()}

	cmd := newLightListCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"--parseable"})

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Contains(t, out, `id="l1"`)
	assert.Contains(t, out, `integration="hue"`)
	assert.Contains(t, out, "hue=200.00")
	assert.Contains(t, out, `id="l2"`)
	assert.Contains(t, out, `address="10.0.0.9:16021"`)
}

func TestLightListTable(t *testing.T) {
	mock := &mockAPI{lights: testLights()}

	cmd := newLightListCommand()
	cmd.SetContext(contextWith(mock))

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Contains(t, out, "Hue Bulb")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Panel")
}

func TestLightGetParseable(t *testing.T) {
	mock := &mockAPI{lights: testLights()}

	cmd := newLightGetCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"l2", "--parseable"})

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Contains(t, out, `id="l2"`)
	assert.Contains(t, out, `integration="nanoleaf"`)
	assert.Contains(t, out, "on=false")
}

func TestLightListEmpty(t *testing.T) {
	mock := &mockAPI{}

	cmd := newLightListCommand()
	cmd.SetContext(contextWith(mock))

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})
	assert.Contains(t, out, "No lights discovered")
}

func TestLightSet(t *testing.T) {
	mock := &mockAPI{}

	cmd := newLightSetCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"l1", "--brightness", "40"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "l1", mock.setLightID)
	require.NotNil(t, mock.setLight)
	assert.True(t, mock.setLight.On)
	assert.InDelta(t, 0.4, mock.setLight.Brightness, 0.001)
}

func TestRoomIntegrationsCommand(t *testing.T) {
	mock := &mockAPI{integrations: []string{"hue", "nanoleaf"}}

	cmd := newRoomIntegrationsCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1"})

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})
	assert.Contains(t, out, "hue")
	assert.Contains(t, out, "nanoleaf")
}

func TestLoggingCommands(t *testing.T) {
	mock := &mockAPI{logLevel: "info"}

	set := NewLoggingCommand(nil)
	set.SetContext(contextWith(mock))
	set.SetArgs([]string{"set", "debug"})
	require.NoError(t, set.Execute())
	assert.Equal(t, "debug", mock.logLevel)

	get := NewLoggingCommand(nil)
	get.SetContext(contextWith(mock))
	get.SetArgs([]string{"get"})
	out := captureStdout(func() {
		require.NoError(t, get.Execute())
	})
	assert.Contains(t, out, "debug")
}
