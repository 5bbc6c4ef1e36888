package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(testLogger(), server.URL)
}

func TestGetRooms(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/rooms", r.URL.Path)
		json.NewEncoder(w).Encode([]Room{
			{ID: "r1", Name: "Living Room", LightIDs: []string{"l1"}},
		})
	})

	rooms, err := c.GetRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Living Room", rooms[0].Name)
}

func TestCreateRoom(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/rooms", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Office", body["name"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Room{ID: "r2", Name: "Office"})
	})

	room, err := c.CreateRoom(context.Background(), "Office")
	require.NoError(t, err)
	assert.Equal(t, "r2", room.ID)
}

func TestSetRoomState(t *testing.T) {
	var got LightState
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/rooms/r1/state", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	hue := 200.0
	err := c.SetRoomState(context.Background(), "r1", LightState{On: true, Brightness: 0.5, Hue: &hue})
	require.NoError(t, err)
	assert.True(t, got.On)
	assert.Equal(t, 0.5, got.Brightness)
	require.NotNil(t, got.Hue)
	assert.Equal(t, 200.0, *got.Hue)
}

func TestTurnOnOffRoom(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	require.NoError(t, c.TurnOnRoom(context.Background(), "r1"))
	require.NoError(t, c.TurnOffRoom(context.Background(), "r1"))
	assert.Equal(t, []string{"/api/v1/rooms/r1/on", "/api/v1/rooms/r1/off"}, paths)
}

func TestRemoveRoomLight(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/rooms/r1/lights/l1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.RemoveRoomLight(context.Background(), "r1", "l1"))
}

func TestErrorResponseUsesProblemDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"title":  "Not Found",
			"status": 404,
			"detail": "Room not found",
		})
	})

	_, err := c.GetRoom(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error 404")
	assert.Contains(t, err.Error(), "Room not found")
}

func TestGetLights(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Light{
			{ID: "l1", Name: "Panel", Integration: "nanoleaf", State: LightState{On: true, Brightness: 0.8}},
		})
	})

	lights, err := c.GetLights(context.Background())
	require.NoError(t, err)
	require.Len(t, lights, 1)
	assert.Equal(t, "nanoleaf", lights[0].Integration)
	assert.True(t, lights[0].State.On)
}

func TestSetLightState(t *testing.T) {
	var got LightState
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/lights/l1/state", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	err := c.SetLightState(context.Background(), "l1", LightState{On: true, Brightness: 0.4})
	require.NoError(t, err)
	assert.True(t, got.On)
	assert.Equal(t, 0.4, got.Brightness)
}

func TestGetRoomIntegrations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/rooms/r1/integrations", r.URL.Path)
		json.NewEncoder(w).Encode([]string{"hue", "nanoleaf"})
	})

	integrations, err := c.GetRoomIntegrations(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"hue", "nanoleaf"}, integrations)
}

func TestLogLevelRoundTrip(t *testing.T) {
	level := "info"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{"level": level})
		case http.MethodPut:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			level = body["level"]
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		}
	})

	require.NoError(t, c.SetLogLevel(context.Background(), "debug"))
	got, err := c.GetLogLevel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "debug", got)
}
