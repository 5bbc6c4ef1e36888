// Package nanoleaf implements the client for the per-device vendor: every
// device is addressed directly over HTTP, one call per device, with no
// server-side grouping.
package nanoleaf

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

// State is the wire-level desired state for one device. Brightness is the
// device's 0-100 scale; Hue is 0-360 degrees and Sat 0-100, both omitted
// when nil.
type State struct {
	On         bool
	Brightness int
	Hue        *int
	Sat        *int
}

// Client handles HTTP communication with individual devices.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client. A single Client serves any number of devices;
// the target address and auth token are supplied per call.
func NewClient(logger *slog.Logger, httpClient ...*http.Client) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	var hc *http.Client
	if len(httpClient) > 0 && httpClient[0] != nil {
		hc = httpClient[0]
	} else {
		hc = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{httpClient: hc, logger: logger}
}

// intValue is the device wire format: every field is an object holding a
// single "value" key.
type intValue struct {
	Value int `json:"value"`
}

type boolValue struct {
	Value bool `json:"value"`
}

type statePayload struct {
	On         boolValue `json:"on"`
	Brightness intValue  `json:"brightness"`
	Hue        *intValue `json:"hue,omitempty"`
	Sat        *intValue `json:"sat,omitempty"`
}

// SetState applies the state to the device at address, authenticating with
// its pairing token.
func (c *Client) SetState(ctx context.Context, address, token string, state State) error {
	payload := statePayload{
		On:         boolValue{state.On},
		Brightness: intValue{state.Brightness},
	}
	if state.Hue != nil {
		payload.Hue = &intValue{*state.Hue}
	}
	if state.Sat != nil {
		payload.Sat = &intValue{*state.Sat}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("http://%s/api/v1/%s/state", address, token)
	c.logger.Debug("nanoleaf: setting device state",
		"address", address,
		"on", state.On,
		"brightness", state.Brightness)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("nanoleaf: state request failed", "address", address, "error", err)
		return errors.VendorUnavailablef("device %s unreachable: %v", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.VendorUnavailablef("device %s returned status %d", address, resp.StatusCode)
	}

	return nil
}
