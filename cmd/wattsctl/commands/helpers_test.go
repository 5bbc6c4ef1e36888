package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"regexp"

	"github.com/pterm/pterm"

	"github.com/dabloons/wattsd/pkg/client"
)

// captureStdout captures stdout during the execution of f, disables pterm
// color, and strips ANSI codes from the output.
func captureStdout(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	oldPrintColor := pterm.PrintColor
	oldOutput := pterm.Output
	oldDefaultTableWriter := pterm.DefaultTable.Writer

	pterm.PrintColor = false
	pterm.Output = true
	pterm.DefaultTable.Writer = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout

	pterm.PrintColor = oldPrintColor
	pterm.Output = oldOutput
	pterm.DefaultTable.Writer = oldDefaultTableWriter

	out := <-outC

	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(out, "")
}

// mockAPI implements API for CLI tests and records mutating calls.
type mockAPI struct {
	rooms  []client.Room
	lights []client.Light

	integrations []string

	createdRoom  string
	deletedRoom  string
	setLightID   string
	setLight     *client.LightState
	addedLights  []string
	removedLight string
	setRoomID    string
	setState     *client.LightState
	onRoom       string
	offRoom      string
	logLevel     string

	err error
}

var _ API = (*mockAPI)(nil)

func (m *mockAPI) GetVersion(ctx context.Context) (client.Version, error) {
	return client.Version{Version: "1.2.3", Commit: "abc", BuildDate: "today"}, m.err
}

func (m *mockAPI) GetLights(ctx context.Context) ([]client.Light, error) {
	return m.lights, m.err
}

func (m *mockAPI) GetLight(ctx context.Context, id string) (client.Light, error) {
	for _, l := range m.lights {
		if l.ID == id {
			return l, nil
		}
	}
	if m.err != nil {
		return client.Light{}, m.err
	}
	return client.Light{ID: id}, nil
}

func (m *mockAPI) SetLightState(ctx context.Context, id string, state client.LightState) error {
	m.setLightID = id
	m.setLight = &state
	return m.err
}

func (m *mockAPI) GetRoomIntegrations(ctx context.Context, id string) ([]string, error) {
	return m.integrations, m.err
}

func (m *mockAPI) GetRooms(ctx context.Context) ([]client.Room, error) {
	return m.rooms, m.err
}

func (m *mockAPI) GetRoom(ctx context.Context, id string) (client.Room, error) {
	for _, r := range m.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return client.Room{ID: id}, m.err
}

func (m *mockAPI) CreateRoom(ctx context.Context, name string) (client.Room, error) {
	m.createdRoom = name
	return client.Room{ID: "new-room", Name: name}, m.err
}

func (m *mockAPI) DeleteRoom(ctx context.Context, id string) error {
	m.deletedRoom = id
	return m.err
}

func (m *mockAPI) GetRoomLights(ctx context.Context, id string) ([]client.Light, error) {
	return m.lights, m.err
}

func (m *mockAPI) AddRoomLights(ctx context.Context, id string, lightIDs []string) (client.Room, error) {
	m.addedLights = lightIDs
	return client.Room{ID: id, Name: "Room", LightIDs: lightIDs}, m.err
}

func (m *mockAPI) RemoveRoomLight(ctx context.Context, id, lightID string) error {
	m.removedLight = lightID
	return m.err
}

func (m *mockAPI) SetRoomState(ctx context.Context, id string, state client.LightState) error {
	m.setRoomID = id
	m.setState = &state
	return m.err
}

func (m *mockAPI) TurnOnRoom(ctx context.Context, id string) error {
	m.onRoom = id
	return m.err
}

func (m *mockAPI) TurnOffRoom(ctx context.Context, id string) error {
	m.offRoom = id
	return m.err
}

func (m *mockAPI) GetLogLevel(ctx context.Context) (string, error) {
	return m.logLevel, m.err
}

func (m *mockAPI) SetLogLevel(ctx context.Context, level string) error {
	m.logLevel = level
	return m.err
}

// contextWith returns a context with the mock attached under the client key.
func contextWith(m *mockAPI) context.Context {
	return context.WithValue(context.Background(), ClientContextKey, m)
}
