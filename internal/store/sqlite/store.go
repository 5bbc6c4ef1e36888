// Package sqlite is the SQLite-backed implementation of store.Store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/dabloons/wattsd/internal/errors"
	"github.com/dabloons/wattsd/internal/light"
	"github.com/dabloons/wattsd/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS room_lights (
	room_id  TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
	light_id TEXT NOT NULL,
	PRIMARY KEY (room_id, light_id)
);
CREATE TABLE IF NOT EXISTS room_integrations (
	room_id        TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
	integration    TEXT NOT NULL,
	integration_id TEXT NOT NULL,
	PRIMARY KEY (room_id, integration)
);
CREATE TABLE IF NOT EXISTS lights (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	integration TEXT NOT NULL,
	vendor_id   TEXT NOT NULL,
	address     TEXT NOT NULL DEFAULT '',
	token       TEXT NOT NULL DEFAULT '',
	on_state    INTEGER NOT NULL DEFAULT 0,
	brightness  REAL NOT NULL DEFAULT 0,
	hue         REAL,
	saturation  REAL,
	UNIQUE (integration, vendor_id)
);
`

// Store is a SQLite-backed store.Store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. Foreign keys are enabled so room membership rows follow
// their room on delete.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	logger.Info("store: opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRoom creates a room with a fresh UUID and no lights.
func (s *Store) CreateRoom(ctx context.Context, name string) (*store.Room, error) {
	room := &store.Room{ID: uuid.NewString(), Name: name}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO rooms (id, name) VALUES (?, ?)`, room.ID, room.Name); err != nil {
		return nil, errors.Storef("creating room %q: %v", name, err)
	}
	s.logger.Debug("store: room created", "id", room.ID, "name", name)
	return room, nil
}

// GetRooms returns all rooms with membership and vendor group ids resolved.
func (s *Store) GetRooms(ctx context.Context) ([]*store.Room, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM rooms ORDER BY name`)
	if err != nil {
		return nil, errors.Storef("listing rooms: %v", err)
	}
	defer rows.Close()

	var rooms []*store.Room
	for rows.Next() {
		room := &store.Room{}
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, errors.Storef("scanning room: %v", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storef("listing rooms: %v", err)
	}

	for _, room := range rooms {
		if err := s.loadRoomRefs(ctx, room); err != nil {
			return nil, err
		}
	}
	return rooms, nil
}

func (s *Store) loadRoomRefs(ctx context.Context, room *store.Room) error {
	rows, err := s.db.QueryContext(ctx, `SELECT light_id FROM room_lights WHERE room_id = ?`, room.ID)
	if err != nil {
		return errors.Storef("loading room %s lights: %v", room.ID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return errors.Storef("scanning room light: %v", err)
		}
		room.LightIDs = append(room.LightIDs, id)
	}
	if err := rows.Err(); err != nil {
		return errors.Storef("loading room %s lights: %v", room.ID, err)
	}

	irows, err := s.db.QueryContext(ctx, `SELECT integration, integration_id FROM room_integrations WHERE room_id = ?`, room.ID)
	if err != nil {
		return errors.Storef("loading room %s integrations: %v", room.ID, err)
	}
	defer irows.Close()
	for irows.Next() {
		var integration, integrationID string
		if err := irows.Scan(&integration, &integrationID); err != nil {
			return errors.Storef("scanning room integration: %v", err)
		}
		room.SetIntegrationID(light.IntegrationType(integration), integrationID)
	}
	if err := irows.Err(); err != nil {
		return errors.Storef("loading room %s integrations: %v", room.ID, err)
	}
	return nil
}

// SetRoomLights replaces the room's membership in one transaction.
func (s *Store) SetRoomLights(ctx context.Context, roomID string, lightIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Storef("starting transaction: %v", err)
	}
	defer tx.Rollback()

	if err := roomExists(ctx, tx, roomID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM room_lights WHERE room_id = ?`, roomID); err != nil {
		return errors.Storef("clearing room %s lights: %v", roomID, err)
	}
	for _, id := range lightIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO room_lights (room_id, light_id) VALUES (?, ?)`, roomID, id); err != nil {
			return errors.Storef("adding light %s to room %s: %v", id, roomID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Storef("committing room %s lights: %v", roomID, err)
	}
	return nil
}

// SetRoomIntegrationID records the vendor group id for a room, replacing
// any previous id for the same integration.
func (s *Store) SetRoomIntegrationID(ctx context.Context, roomID string, integration light.IntegrationType, integrationID string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO room_integrations (room_id, integration, integration_id) VALUES (?, ?, ?)
		ON CONFLICT (room_id, integration) DO UPDATE SET integration_id = excluded.integration_id`,
		roomID, string(integration), integrationID)
	if err != nil {
		return errors.Storef("setting room %s integration id: %v", roomID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundf("room %s", roomID)
	}
	return nil
}

// DeleteRoom deletes the room record; membership and integration rows
// cascade. Lights are never touched.
func (s *Store) DeleteRoom(ctx context.Context, roomID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, roomID)
	if err != nil {
		return errors.Storef("deleting room %s: %v", roomID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundf("room %s", roomID)
	}
	s.logger.Debug("store: room deleted", "id", roomID)
	return nil
}

// SaveLight upserts a light. Records already known under the same
// (integration, vendor id) keep their store id, so repeated discovery runs
// are idempotent.
func (s *Store) SaveLight(ctx context.Context, l light.Light) (light.Light, error) {
	if l.ID == "" {
		// Reuse the id of an existing record for this device, if any.
		row := s.db.QueryRowContext(ctx, `SELECT id FROM lights WHERE integration = ? AND vendor_id = ?`,
			string(l.Integration), l.VendorID)
		var existing string
		switch err := row.Scan(&existing); err {
		case nil:
			l.ID = existing
		case sql.ErrNoRows:
			l.ID = uuid.NewString()
		default:
			return light.Light{}, errors.Storef("looking up light: %v", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lights (id, name, integration, vendor_id, address, token, on_state, brightness, hue, saturation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			token = excluded.token,
			on_state = excluded.on_state,
			brightness = excluded.brightness,
			hue = excluded.hue,
			saturation = excluded.saturation`,
		l.ID, l.Name, string(l.Integration), l.VendorID, l.Address, l.Token,
		boolToInt(l.State.On), l.State.Brightness, l.State.Hue, l.State.Saturation)
	if err != nil {
		return light.Light{}, errors.Storef("saving light %s: %v", l.ID, err)
	}
	return l, nil
}

// GetLight returns a single light by store id.
func (s *Store) GetLight(ctx context.Context, id string) (light.Light, error) {
	row := s.db.QueryRowContext(ctx, lightSelect+` WHERE id = ?`, id)
	l, err := scanLight(row)
	if err == sql.ErrNoRows {
		return light.Light{}, errors.NotFoundf("light %s", id)
	}
	if err != nil {
		return light.Light{}, errors.Storef("loading light %s: %v", id, err)
	}
	return l, nil
}

// GetLights returns all known lights.
func (s *Store) GetLights(ctx context.Context) ([]light.Light, error) {
	rows, err := s.db.QueryContext(ctx, lightSelect+` ORDER BY name`)
	if err != nil {
		return nil, errors.Storef("listing lights: %v", err)
	}
	defer rows.Close()
	return collectLights(rows)
}

// GetLightsForIDs resolves light records for the given store ids, skipping
// unknown ids.
func (s *Store) GetLightsForIDs(ctx context.Context, ids []string) ([]light.Light, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, lightSelect+` WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, errors.Storef("resolving lights: %v", err)
	}
	defer rows.Close()
	return collectLights(rows)
}

// UpdateLights persists the state of multiple lights in one transaction.
func (s *Store) UpdateLights(ctx context.Context, lights []light.Light) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Storef("starting transaction: %v", err)
	}
	defer tx.Rollback()

	for _, l := range lights {
		if _, err := tx.ExecContext(ctx, `
			UPDATE lights SET name = ?, on_state = ?, brightness = ?, hue = ?, saturation = ?
			WHERE id = ?`,
			l.Name, boolToInt(l.State.On), l.State.Brightness, l.State.Hue, l.State.Saturation, l.ID); err != nil {
			return errors.Storef("updating light %s: %v", l.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Storef("committing light updates: %v", err)
	}
	return nil
}

const lightSelect = `SELECT id, name, integration, vendor_id, address, token, on_state, brightness, hue, saturation FROM lights`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLight(row rowScanner) (light.Light, error) {
	var l light.Light
	var integration string
	var on int
	var hue, saturation sql.NullFloat64
	err := row.Scan(&l.ID, &l.Name, &integration, &l.VendorID, &l.Address, &l.Token,
		&on, &l.State.Brightness, &hue, &saturation)
	if err != nil {
		return light.Light{}, err
	}
	l.Integration = light.IntegrationType(integration)
	l.State.On = on != 0
	if hue.Valid {
		l.State.Hue = &hue.Float64
	}
	if saturation.Valid {
		l.State.Saturation = &saturation.Float64
	}
	return l, nil
}

func collectLights(rows *sql.Rows) ([]light.Light, error) {
	var lights []light.Light
	for rows.Next() {
		l, err := scanLight(rows)
		if err != nil {
			return nil, errors.Storef("scanning light: %v", err)
		}
		lights = append(lights, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storef("iterating lights: %v", err)
	}
	return lights, nil
}

func roomExists(ctx context.Context, tx *sql.Tx, roomID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, roomID).Scan(&one)
	if err == sql.ErrNoRows {
		return errors.NotFoundf("room %s", roomID)
	}
	if err != nil {
		return errors.Storef("checking room %s: %v", roomID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
