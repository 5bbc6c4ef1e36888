package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabloons/wattsd/pkg/client"
)

func TestRoomListParseable(t *testing.T) {
	mock := &mockAPI{rooms: []client.Room{
		{
			ID:             "r1",
			Name:           "Living Room",
			LightIDs:       []string{"l1", "l2"},
			IntegrationIDs: map[string]string{"hue": "7"},
		},
	}}

	cmd := newRoomListCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"--parseable"})

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Contains(t, out, `id="r1"`)
	assert.Contains(t, out, `name="Living Room"`)
	assert.Contains(t, out, `lights="l1,l2"`)
	assert.Contains(t, out, `groups="hue:7"`)
}

func TestRoomListTable(t *testing.T) {
	mock := &mockAPI{rooms: []client.Room{
		{ID: "r1", Name: "Office", LightIDs: []string{"l1"}},
	}}

	cmd := newRoomListCommand()
	cmd.SetContext(contextWith(mock))

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Contains(t, out, "Office")
	assert.Contains(t, out, "l1")
}

func TestRoomListEmpty(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomListCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"--parseable"})

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})
	assert.Empty(t, out)
}

func TestRoomCreate(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomCreateCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"Bedroom"})

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Equal(t, "Bedroom", mock.createdRoom)
	assert.Contains(t, out, "Created room Bedroom")
}

func TestRoomDelete(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomDeleteCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "r1", mock.deletedRoom)
}

func TestRoomAddLight(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomAddLightCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1", "l1", "l2"})

	out := captureStdout(func() {
		require.NoError(t, cmd.Execute())
	})

	assert.Equal(t, []string{"l1", "l2"}, mock.addedLights)
	assert.Contains(t, out, "now has 2 lights")
}

func TestRoomRemoveLight(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomRemoveLightCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1", "l1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "l1", mock.removedLight)
}

func TestRoomSet(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomSetCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1", "--brightness", "50", "--hue", "120", "--saturation", "80"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "r1", mock.setRoomID)
	require.NotNil(t, mock.setState)
	assert.True(t, mock.setState.On)
	assert.InDelta(t, 0.5, mock.setState.Brightness, 0.001)
	require.NotNil(t, mock.setState.Hue)
	assert.InDelta(t, 120.0, *mock.setState.Hue, 0.001)
	require.NotNil(t, mock.setState.Saturation)
	assert.InDelta(t, 0.8, *mock.setState.Saturation, 0.001)
}

func TestRoomSetOff(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomSetCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1", "--off"})

	require.NoError(t, cmd.Execute())
	require.NotNil(t, mock.setState)
	assert.False(t, mock.setState.On)
	assert.Nil(t, mock.setState.Hue)
	assert.Nil(t, mock.setState.Saturation)
}

func TestRoomSetRejectsBadValues(t *testing.T) {
	mock := &mockAPI{}

	cmd := newRoomSetCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1", "--brightness", "150"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brightness")
	assert.Nil(t, mock.setState)
}

func TestRoomOnOff(t *testing.T) {
	mock := &mockAPI{}

	on := newRoomOnCommand()
	on.SetContext(contextWith(mock))
	on.SetArgs([]string{"r1"})
	require.NoError(t, on.Execute())

	off := newRoomOffCommand()
	off.SetContext(contextWith(mock))
	off.SetArgs([]string{"r2"})
	require.NoError(t, off.Execute())

	assert.Equal(t, "r1", mock.onRoom)
	assert.Equal(t, "r2", mock.offRoom)
}

func TestRoomCommandPropagatesErrors(t *testing.T) {
	mock := &mockAPI{err: errors.New("daemon unreachable")}

	cmd := newRoomOnCommand()
	cmd.SetContext(contextWith(mock))
	cmd.SetArgs([]string{"r1"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon unreachable")
}
