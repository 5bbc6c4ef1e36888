// Package room implements the room lifecycle orchestrator: it fans a
// single logical room operation out into one sub-operation per vendor
// integration, tracks completion through the coordinator, and mirrors
// resulting state into the store.
package room

import (
	"context"
	"log/slog"

	"github.com/dabloons/wattsd/internal/coordinator"
	"github.com/dabloons/wattsd/internal/errors"
	"github.com/dabloons/wattsd/internal/events"
	"github.com/dabloons/wattsd/internal/light"
	"github.com/dabloons/wattsd/internal/store"
)

// Manager orchestrates room operations across the store and the vendor
// integrations.
type Manager struct {
	logger     *slog.Logger
	store      store.Store
	bridge     GroupClient
	devices    DeviceClient
	coord      *coordinator.Coordinator
	bus        *events.Bus
	strategies map[light.IntegrationType]Strategy
}

// NewManager creates a room manager wired to the store and both vendor
// clients.
func NewManager(logger *slog.Logger, st store.Store, bridge GroupClient, devices DeviceClient, bus *events.Bus) *Manager {
	m := &Manager{
		logger:  logger,
		store:   st,
		bridge:  bridge,
		devices: devices,
		coord:   coordinator.New(logger),
		bus:     bus,
		strategies: map[light.IntegrationType]Strategy{
			light.IntegrationHue:      &groupStrategy{integration: light.IntegrationHue, bridge: bridge, logger: logger},
			light.IntegrationNanoleaf: &sequentialStrategy{devices: devices, logger: logger},
		},
	}
	return m
}

// RegisterStrategy installs or replaces the strategy for an integration
// type. Adding a vendor is this one registration plus its client.
func (m *Manager) RegisterStrategy(t light.IntegrationType, s Strategy) {
	m.strategies[t] = s
}

// CreateRoom creates an empty room. No vendor interaction happens until
// lights are added.
func (m *Manager) CreateRoom(ctx context.Context, name string) (*store.Room, error) {
	if name == "" {
		return nil, errors.InvalidInputf("room name is required")
	}
	room, err := m.store.CreateRoom(ctx, name)
	if err != nil {
		return nil, err
	}
	m.logger.Info("room: created", "id", room.ID, "name", name)
	m.publish(events.RoomCreated, room)
	return room, nil
}

// Rooms returns all user-defined rooms.
func (m *Manager) Rooms(ctx context.Context) ([]*store.Room, error) {
	return m.store.GetRooms(ctx)
}

// RoomForID returns a single room by id.
func (m *Manager) RoomForID(ctx context.Context, roomID string) (*store.Room, error) {
	rooms, err := m.store.GetRooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rooms {
		if r.ID == roomID {
			return r, nil
		}
	}
	return nil, errors.NotFoundf("room %s", roomID)
}

// AddLightsToRoom adds lights to a room's membership. Membership is
// persisted first; only then is the batch-group vendor's group created (on
// first batch-vendor light) or its membership reconciled. An empty light
// list succeeds without touching the store or any vendor.
func (m *Manager) AddLightsToRoom(ctx context.Context, roomID string, lightIDs []string) error {
	if len(lightIDs) == 0 {
		return nil
	}

	room, err := m.RoomForID(ctx, roomID)
	if err != nil {
		return err
	}

	lightIDs = dedupe(lightIDs)
	added, err := m.store.GetLightsForIDs(ctx, lightIDs)
	if err != nil {
		return err
	}
	if len(added) != len(lightIDs) {
		return errors.NotFoundf("one or more lights do not exist")
	}

	for _, id := range lightIDs {
		if !room.HasLight(id) {
			room.LightIDs = append(room.LightIDs, id)
		}
	}

	// Persist membership first; a store failure short-circuits before any
	// vendor call.
	if err := m.store.SetRoomLights(ctx, room.ID, room.LightIDs); err != nil {
		return err
	}

	if err := m.syncVendorGroup(ctx, room); err != nil {
		return err
	}

	m.publish(events.RoomLightsChanged, room)
	return nil
}

// syncVendorGroup creates the batch-group vendor's group the first time one
// of its lights joins the room, or reconciles the group membership when the
// group already exists. Two concurrent adds may both observe "no group yet"
// and create duplicate groups; that read-then-create race is a known gap.
func (m *Manager) syncVendorGroup(ctx context.Context, room *store.Room) error {
	lights, err := m.store.GetLightsForIDs(ctx, room.LightIDs)
	if err != nil {
		return err
	}

	hueLights := light.Of(lights, light.IntegrationHue)
	if len(hueLights) == 0 {
		return nil
	}
	vendorIDs := make([]string, len(hueLights))
	for i, l := range hueLights {
		vendorIDs[i] = l.VendorID
	}

	groupID := room.IntegrationID(light.IntegrationHue)
	if groupID != "" {
		return m.bridge.SetGroupLights(ctx, groupID, vendorIDs)
	}

	groupID, err = m.bridge.CreateGroupWithLights(ctx, room.Name, vendorIDs)
	if err != nil {
		return err
	}
	room.SetIntegrationID(light.IntegrationHue, groupID)
	if err := m.store.SetRoomIntegrationID(ctx, room.ID, light.IntegrationHue, groupID); err != nil {
		return err
	}
	m.logger.Info("room: vendor group created", "room", room.ID, "group", groupID)
	return nil
}

// RemoveLightFromRoom removes one light from a room. When the light belongs
// to the batch-group vendor, the vendor's group membership is updated
// first, and the store membership is persisted only after that update's
// completion is observed, success or failure, so the store never races
// ahead of the vendor. A vendor failure is still reported after the
// membership is persisted.
func (m *Manager) RemoveLightFromRoom(ctx context.Context, roomID, lightID string) error {
	room, err := m.RoomForID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.HasLight(lightID) {
		return errors.NotFoundf("light %s is not in room %s", lightID, roomID)
	}

	removed, err := m.store.GetLight(ctx, lightID)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(room.LightIDs)-1)
	for _, id := range room.LightIDs {
		if id != lightID {
			remaining = append(remaining, id)
		}
	}

	var vendorErr error
	groupID := room.IntegrationID(light.IntegrationHue)
	if removed.Integration == light.IntegrationHue && groupID != "" {
		remainingLights, err := m.store.GetLightsForIDs(ctx, remaining)
		if err != nil {
			return err
		}
		hueLights := light.Of(remainingLights, light.IntegrationHue)
		vendorIDs := make([]string, len(hueLights))
		for i, l := range hueLights {
			vendorIDs[i] = l.VendorID
		}
		vendorErr = m.bridge.SetGroupLights(ctx, groupID, vendorIDs)
	}

	if err := m.store.SetRoomLights(ctx, room.ID, remaining); err != nil {
		if vendorErr != nil {
			return vendorErr
		}
		return err
	}
	room.LightIDs = remaining

	m.publish(events.RoomLightsChanged, room)
	return vendorErr
}

// TurnOnRoomLights turns every light in the room on at full brightness.
func (m *Manager) TurnOnRoomLights(ctx context.Context, roomID string) error {
	return m.SetRoomLightState(ctx, roomID, light.LightState{On: true, Brightness: 1.0})
}

// TurnOffRoomLights turns every light in the room off.
func (m *Manager) TurnOffRoomLights(ctx context.Context, roomID string) error {
	return m.SetRoomLightState(ctx, roomID, light.LightState{On: false, Brightness: 0.0})
}

// SetRoomLightState applies state to every light in the room. One
// sub-operation runs per vendor integration present; the call returns once
// every vendor reports, aggregating first-failure-wins. The store mirror of
// the new state runs concurrently and is soft: its failure is logged and
// published but never fails the operation. If ctx expires first, a failure
// is synthesized for every vendor still outstanding and the aggregate is
// returned.
func (m *Manager) SetRoomLightState(ctx context.Context, roomID string, state light.LightState) error {
	room, err := m.RoomForID(ctx, roomID)
	if err != nil {
		return err
	}
	lights, err := m.store.GetLightsForIDs(ctx, room.LightIDs)
	if err != nil {
		return err
	}

	participants := light.Integrations(lights)

	// Snapshot the per-vendor subsets before anything runs; the mirror
	// goroutine mutates its own copy concurrently.
	subsets := make(map[light.IntegrationType][]light.Light, len(participants))
	for _, integration := range participants {
		subsets[integration] = light.Of(lights, integration)
	}
	mirror := make([]light.Light, len(lights))
	copy(mirror, lights)

	done := make(chan error, 1)
	op := m.coord.Begin(participants, func(err error) { done <- err })

	for _, integration := range participants {
		strat, ok := m.strategies[integration]
		if !ok {
			op.Report(integration, errors.Internalf("no strategy registered for %s", integration))
			continue
		}
		go func(integration light.IntegrationType, strat Strategy) {
			op.Report(integration, strat.ApplyState(ctx, room, subsets[integration], state))
		}(integration, strat)
	}

	// Mirror into the store concurrently; never gates the vendor result.
	go m.mirrorState(context.WithoutCancel(ctx), room, mirror, state)

	select {
	case err := <-done:
		if err == nil {
			m.publish(events.RoomStateChanged, roomStateEvent{RoomID: room.ID, State: state})
		}
		return err
	case <-ctx.Done():
		for _, integration := range op.Outstanding() {
			op.Report(integration, errors.VendorUnavailablef("%s did not complete: %v", integration, ctx.Err()))
		}
		return <-done
	}
}

type roomStateEvent struct {
	RoomID string           `json:"room_id"`
	State  light.LightState `json:"state"`
}

// mirrorState writes the new state onto every affected light record. A
// failure here is soft: logged, published as a warning event, and never
// reported as the operation's outcome.
func (m *Manager) mirrorState(ctx context.Context, room *store.Room, lights []light.Light, state light.LightState) {
	for i := range lights {
		lights[i].State.Apply(state)
	}
	if err := m.store.UpdateLights(ctx, lights); err != nil {
		m.logger.Warn("room: failed to mirror state to store", "room", room.ID, "error", err)
		m.publish(events.StateMirrorFailed, map[string]string{
			"room_id": room.ID,
			"error":   err.Error(),
		})
		return
	}
	m.publish(events.LightStateChanged, roomStateEvent{RoomID: room.ID, State: state})
}

// DeleteRoom deletes the room record and the batch-group vendor's group if
// one was created. Vendor cleanup is attempted even when the store deletion
// fails; the operation reports failure if either fails. Lights are never
// deleted with the room.
func (m *Manager) DeleteRoom(ctx context.Context, roomID string) error {
	room, err := m.RoomForID(ctx, roomID)
	if err != nil {
		return err
	}

	storeErr := m.store.DeleteRoom(ctx, roomID)

	var vendorErr error
	if groupID := room.IntegrationID(light.IntegrationHue); groupID != "" {
		vendorErr = m.bridge.DeleteGroup(ctx, groupID)
		if vendorErr != nil {
			m.logger.Error("room: vendor group cleanup failed", "room", roomID, "group", groupID, "error", vendorErr)
		}
	}

	if storeErr == nil {
		m.publish(events.RoomDeleted, map[string]string{"room_id": roomID})
	} else {
		return storeErr
	}
	return vendorErr
}

// SetLightState applies state to a single light through its vendor and
// mirrors the result into the store. Unlike room operations this is a
// single vendor call, so no coordinator operation is involved.
func (m *Manager) SetLightState(ctx context.Context, lightID string, state light.LightState) error {
	l, err := m.store.GetLight(ctx, lightID)
	if err != nil {
		return err
	}

	switch l.Integration {
	case light.IntegrationHue:
		err = m.bridge.SetLightState(ctx, l.VendorID, hueGroupState(state))
	case light.IntegrationNanoleaf:
		err = m.devices.SetState(ctx, l.Address, l.Token, nanoleafState(state))
	default:
		return errors.Internalf("no client registered for %s", l.Integration)
	}
	if err != nil {
		return errors.WrapErrorf(err, "light %s", lightID)
	}

	l.State.Apply(state)
	if err := m.store.UpdateLights(ctx, []light.Light{l}); err != nil {
		m.logger.Warn("room: failed to mirror light state to store", "light", lightID, "error", err)
		m.publish(events.StateMirrorFailed, map[string]string{
			"light_id": lightID,
			"error":    err.Error(),
		})
		return nil
	}
	m.publish(events.LightStateChanged, l)
	return nil
}

// RoomIntegrations returns the distinct integration types represented in
// the room's resolved lights.
func (m *Manager) RoomIntegrations(ctx context.Context, roomID string) ([]light.IntegrationType, error) {
	lights, err := m.roomLights(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return light.Integrations(lights), nil
}

// RoomLightsOf returns the room's lights belonging to one integration type.
func (m *Manager) RoomLightsOf(ctx context.Context, roomID string, t light.IntegrationType) ([]light.Light, error) {
	lights, err := m.roomLights(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return light.Of(lights, t), nil
}

// RoomLights returns all resolved light records for a room.
func (m *Manager) RoomLights(ctx context.Context, roomID string) ([]light.Light, error) {
	return m.roomLights(ctx, roomID)
}

func (m *Manager) roomLights(ctx context.Context, roomID string) ([]light.Light, error) {
	room, err := m.RoomForID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return m.store.GetLightsForIDs(ctx, room.LightIDs)
}

func (m *Manager) publish(t events.EventType, data any) {
	if m.bus != nil {
		m.bus.Publish(events.NewEvent(t, data))
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
