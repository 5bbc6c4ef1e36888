// Package hue implements the REST client for the batch-group vendor: a
// bridge that groups lights under a server-side group identifier and
// accepts one command per group.
package hue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dabloons/wattsd/internal/errors"
)

// GroupState is the wire-level desired state for a group command.
// Bri is the bridge's 1-254 scale; Hue is 0-65535 and Sat 0-254, both
// omitted when nil.
type GroupState struct {
	On  bool    `json:"on"`
	Bri uint8   `json:"bri"`
	Hue *uint16 `json:"hue,omitempty"`
	Sat *uint8  `json:"sat,omitempty"`
}

// LightInfo is the bridge's description of a single light, keyed by the
// bridge-local id in GetLights.
type LightInfo struct {
	Name  string `json:"name"`
	State struct {
		On  bool   `json:"on"`
		Bri uint8  `json:"bri"`
		Hue uint16 `json:"hue"`
		Sat uint8  `json:"sat"`
	} `json:"state"`
}

// Client handles HTTP communication with a bridge.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the bridge at address, authenticating with
// the application username issued during pairing.
func NewClient(address, username string, logger *slog.Logger, httpClient ...*http.Client) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	var hc *http.Client
	if len(httpClient) > 0 && httpClient[0] != nil {
		hc = httpClient[0]
	} else {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    fmt.Sprintf("http://%s/api/%s", address, username),
		httpClient: hc,
		logger:     logger,
	}
}

// bridgeResult is one element of the bridge's command response array. Each
// element carries either a success payload (object for creates, plain
// string for deletes) or an error object.
type bridgeResult struct {
	Success json.RawMessage `json:"success"`
	Error   *struct {
		Type        int    `json:"type"`
		Address     string `json:"address"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateGroupWithLights creates a bridge group containing the given
// bridge-local light ids and returns the new group id. The bridge responds
// with an array whose first element carries a success object with the id;
// any other shape is reported as a protocol error.
func (c *Client) CreateGroupWithLights(ctx context.Context, name string, lightIDs []string) (string, error) {
	payload := struct {
		Name   string   `json:"name"`
		Type   string   `json:"type"`
		Lights []string `json:"lights"`
	}{Name: name, Type: "Room", Lights: lightIDs}

	results, err := c.command(ctx, http.MethodPost, "/groups", payload)
	if err != nil {
		return "", err
	}

	if len(results) == 0 || len(results[0].Success) == 0 {
		return "", errors.VendorProtocolf("group create response carries no success object")
	}
	var success map[string]json.RawMessage
	if err := json.Unmarshal(results[0].Success, &success); err != nil {
		return "", errors.VendorProtocolf("group create success is not an object: %v", err)
	}
	raw, ok := success["id"]
	if !ok {
		return "", errors.VendorProtocolf("group create response missing id")
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", errors.VendorProtocolf("group create id is not a string: %v", err)
	}

	c.logger.Debug("hue: group created", "name", name, "id", id, "lights", lightIDs)
	return id, nil
}

// SetGroupState issues a single state command against a group.
func (c *Client) SetGroupState(ctx context.Context, groupID string, state GroupState) error {
	_, err := c.command(ctx, http.MethodPut, "/groups/"+groupID+"/action", state)
	return err
}

// SetLightState issues a state command against a single light.
func (c *Client) SetLightState(ctx context.Context, lightID string, state GroupState) error {
	_, err := c.command(ctx, http.MethodPut, "/lights/"+lightID+"/state", state)
	return err
}

// SetGroupLights replaces the group's light membership.
func (c *Client) SetGroupLights(ctx context.Context, groupID string, lightIDs []string) error {
	payload := struct {
		Lights []string `json:"lights"`
	}{Lights: lightIDs}
	_, err := c.command(ctx, http.MethodPut, "/groups/"+groupID, payload)
	return err
}

// DeleteGroup removes a group from the bridge.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	_, err := c.command(ctx, http.MethodDelete, "/groups/"+groupID, nil)
	return err
}

// GetLights returns all lights known to the bridge, keyed by bridge-local id.
func (c *Client) GetLights(ctx context.Context) (map[string]LightInfo, error) {
	url := c.baseURL + "/lights"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("hue: /lights request failed", "url", url, "error", err)
		return nil, errors.VendorUnavailablef("failed to list bridge lights: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.VendorUnavailablef("unexpected status code: %d", resp.StatusCode)
	}

	var lights map[string]LightInfo
	if err := json.NewDecoder(resp.Body).Decode(&lights); err != nil {
		return nil, errors.VendorProtocolf("failed to decode bridge lights: %v", err)
	}
	return lights, nil
}

// command sends one bridge command and decodes the result array. Bridge
// application errors ride inside a 200 response, so each element is checked
// for an error object.
func (c *Client) command(ctx context.Context, method, path string, payload any) ([]bridgeResult, error) {
	var body *bytes.Buffer
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	} else {
		body = bytes.NewBuffer(nil)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("hue: bridge request failed", "method", method, "url", url, "error", err)
		return nil, errors.VendorUnavailablef("bridge request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.VendorUnavailablef("unexpected status code: %d", resp.StatusCode)
	}

	var results []bridgeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.VendorProtocolf("failed to decode bridge response: %v", err)
	}
	for _, r := range results {
		if r.Error != nil {
			return results, errors.VendorProtocolf("bridge error at %s: %s", r.Error.Address, r.Error.Description)
		}
	}

	c.logger.Debug("hue: command ok", "method", method, "path", path)
	return results, nil
}
