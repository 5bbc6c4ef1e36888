// Package client provides a Go client for the wattsd HTTP API, used by
// wattsctl and available to other programs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// LightState is the API representation of a light's state.
type LightState struct {
	On         bool     `json:"on"`
	Brightness float64  `json:"brightness"`
	Hue        *float64 `json:"hue,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
}

// Light is the API representation of a light.
type Light struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Integration string     `json:"integration"`
	VendorID    string     `json:"vendor_id"`
	Address     string     `json:"address,omitempty"`
	State       LightState `json:"state"`
}

// Room is the API representation of a room.
type Room struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	LightIDs       []string          `json:"light_ids"`
	IntegrationIDs map[string]string `json:"integration_ids,omitempty"`
}

// Version is the daemon's build information.
type Version struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// Client is an HTTP client for the wattsd API.
type Client struct {
	logger  *slog.Logger
	baseURL string
	client  *http.Client
}

// New creates a client for the daemon at baseURL (e.g. http://localhost:9123).
func New(logger *slog.Logger, baseURL string) *Client {
	return &Client{
		logger:  logger,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// request performs an HTTP request and decodes the JSON response
func (c *Client) request(ctx context.Context, method, path string, body any, resp any) error {
	url := c.baseURL + path
	c.logger.Debug("HTTP request", "method", method, "url", url)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		c.logger.Debug("HTTP error response", "status", httpResp.StatusCode, "body", string(respBody))
		return fmt.Errorf("HTTP error %d: %s", httpResp.StatusCode, apiErrorDetail(respBody))
	}

	if resp != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, resp); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// apiErrorDetail extracts the human-readable detail from a problem+json
// error body, falling back to the raw body.
func apiErrorDetail(body []byte) string {
	var problem struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &problem); err == nil && problem.Detail != "" {
		return problem.Detail
	}
	return string(body)
}

// GetVersion returns the running daemon's version information.
func (c *Client) GetVersion(ctx context.Context) (Version, error) {
	var resp Version
	err := c.request(ctx, http.MethodGet, "/api/v1/version", nil, &resp)
	return resp, err
}

// GetLights returns all known lights.
func (c *Client) GetLights(ctx context.Context) ([]Light, error) {
	var resp []Light
	if err := c.request(ctx, http.MethodGet, "/api/v1/lights", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetLight returns a single light.
func (c *Client) GetLight(ctx context.Context, id string) (Light, error) {
	var resp Light
	err := c.request(ctx, http.MethodGet, "/api/v1/lights/"+id, nil, &resp)
	return resp, err
}

// SetLightState applies state to a single light.
func (c *Client) SetLightState(ctx context.Context, id string, state LightState) error {
	return c.request(ctx, http.MethodPut, "/api/v1/lights/"+id+"/state", state, nil)
}

// GetRooms returns all rooms.
func (c *Client) GetRooms(ctx context.Context) ([]Room, error) {
	var resp []Room
	if err := c.request(ctx, http.MethodGet, "/api/v1/rooms", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetRoom returns a single room.
func (c *Client) GetRoom(ctx context.Context, id string) (Room, error) {
	var resp Room
	err := c.request(ctx, http.MethodGet, "/api/v1/rooms/"+id, nil, &resp)
	return resp, err
}

// CreateRoom creates a new room.
func (c *Client) CreateRoom(ctx context.Context, name string) (Room, error) {
	var resp Room
	err := c.request(ctx, http.MethodPost, "/api/v1/rooms", map[string]string{"name": name}, &resp)
	return resp, err
}

// DeleteRoom deletes a room. Its lights are not deleted.
func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/api/v1/rooms/"+id, nil, nil)
}

// GetRoomLights returns the resolved lights of a room.
func (c *Client) GetRoomLights(ctx context.Context, id string) ([]Light, error) {
	var resp []Light
	if err := c.request(ctx, http.MethodGet, "/api/v1/rooms/"+id+"/lights", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetRoomIntegrations returns the vendor integrations represented in a room.
func (c *Client) GetRoomIntegrations(ctx context.Context, id string) ([]string, error) {
	var resp []string
	if err := c.request(ctx, http.MethodGet, "/api/v1/rooms/"+id+"/integrations", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddRoomLights adds lights to a room and returns the updated room.
func (c *Client) AddRoomLights(ctx context.Context, id string, lightIDs []string) (Room, error) {
	var resp Room
	body := map[string]any{"light_ids": lightIDs}
	err := c.request(ctx, http.MethodPost, "/api/v1/rooms/"+id+"/lights", body, &resp)
	return resp, err
}

// RemoveRoomLight removes one light from a room.
func (c *Client) RemoveRoomLight(ctx context.Context, id, lightID string) error {
	return c.request(ctx, http.MethodDelete, "/api/v1/rooms/"+id+"/lights/"+lightID, nil, nil)
}

// SetRoomState applies state to every light in the room.
func (c *Client) SetRoomState(ctx context.Context, id string, state LightState) error {
	return c.request(ctx, http.MethodPut, "/api/v1/rooms/"+id+"/state", state, nil)
}

// TurnOnRoom turns every light in the room on at full brightness.
func (c *Client) TurnOnRoom(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodPost, "/api/v1/rooms/"+id+"/on", nil, nil)
}

// TurnOffRoom turns every light in the room off.
func (c *Client) TurnOffRoom(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodPost, "/api/v1/rooms/"+id+"/off", nil, nil)
}

// GetLogLevel returns the daemon's current log level.
func (c *Client) GetLogLevel(ctx context.Context) (string, error) {
	var resp struct {
		Level string `json:"level"`
	}
	err := c.request(ctx, http.MethodGet, "/api/v1/logging/level", nil, &resp)
	return resp.Level, err
}

// SetLogLevel changes the daemon's log level at runtime.
func (c *Client) SetLogLevel(ctx context.Context, level string) error {
	return c.request(ctx, http.MethodPut, "/api/v1/logging/level", map[string]string{"level": level}, nil)
}
