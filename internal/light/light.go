// Package light defines the shared light data model: the Light record, the
// LightState value applied by room operations, and the closed set of vendor
// integration types a light can belong to.
package light

import "sort"

// IntegrationType identifies which vendor ecosystem a light belongs to.
type IntegrationType string

const (
	// IntegrationHue is the batch-group vendor: lights are grouped under a
	// bridge-side group identifier and commanded with one call per group.
	IntegrationHue IntegrationType = "hue"

	// IntegrationNanoleaf is the per-device vendor: every device is
	// addressed directly with one HTTP call, no server-side grouping.
	IntegrationNanoleaf IntegrationType = "nanoleaf"
)

// Valid reports whether t is a known integration type.
func (t IntegrationType) Valid() bool {
	switch t {
	case IntegrationHue, IntegrationNanoleaf:
		return true
	}
	return false
}

// LightState is the desired or current state of a light. On and Brightness
// form the minimal update unit and are always set together; Hue and
// Saturation are optional and left unchanged when nil.
type LightState struct {
	On         bool     `json:"on"`
	Brightness float64  `json:"brightness"` // normalized 0.0-1.0
	Hue        *float64 `json:"hue,omitempty"` // degrees, 0-360
	Saturation *float64 `json:"saturation,omitempty"` // normalized 0.0-1.0
}

// Apply merges an update into s. On and brightness are always taken from
// the update; hue and saturation only when the update carries them.
func (s *LightState) Apply(update LightState) {
	s.On = update.On
	s.Brightness = update.Brightness
	if update.Hue != nil {
		s.Hue = update.Hue
	}
	if update.Saturation != nil {
		s.Saturation = update.Saturation
	}
}

// Light is a single light record. Lights are owned by the store; rooms hold
// light IDs only, so a light may exist without belonging to any room.
type Light struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Integration IntegrationType `json:"integration"`

	// VendorID is the vendor-native identifier: the bridge-local light id
	// for the batch-group vendor, the device serial for the per-device one.
	VendorID string `json:"vendor_id"`

	// Address is the device endpoint (host:port) for per-device vendors.
	// Empty for lights reached through a bridge.
	Address string `json:"address,omitempty"`

	// Token is the per-device auth token, where the vendor requires one.
	Token string `json:"-"`

	State LightState `json:"state"`
}

// Integrations returns the distinct integration types represented in
// lights, sorted for determinism. Input order and duplicates have no effect
// on the result.
func Integrations(lights []Light) []IntegrationType {
	seen := make(map[IntegrationType]struct{}, len(lights))
	for _, l := range lights {
		seen[l.Integration] = struct{}{}
	}
	out := make([]IntegrationType, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Of returns the subset of lights belonging to the given integration type,
// preserving input order.
func Of(lights []Light, t IntegrationType) []Light {
	var out []Light
	for _, l := range lights {
		if l.Integration == t {
			out = append(out, l)
		}
	}
	return out
}
