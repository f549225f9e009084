package transfer

import "encoding/json"

// RawPreset is the permissive wire shape for preset import. Files come from
// several generations of the product plus hand-edited exports, so every field
// that ever had a synonym keeps it here. Schedule stays raw until the
// normalizer decides whether it is object-form or array-form.
type RawPreset struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Name        string          `json:"name"`
	PresetName  string          `json:"preset_name"`
	Description string          `json:"description"`
	Schedule    json.RawMessage `json:"schedule"`
	Platforms   map[string]any  `json:"platforms"`
	CreatedAt   string          `json:"createdAt"`
}

// RawDayConfig is one day entry in either schedule form. Enabled is a pointer
// so "absent" and "false" stay distinguishable: older exports omitted the flag
// for enabled days.
type RawDayConfig struct {
	Enabled     *bool    `json:"enabled"`
	Topic       string   `json:"topic"`
	ContentType string   `json:"content_type"`
	Time        string   `json:"time"`
	PostTime    string   `json:"post_time"`
	Platforms   []string `json:"platforms"`
}

// DroppedPreset records why one element of an import file was rejected.
// Import is best-effort: invalid elements are reported, not fatal.
type DroppedPreset struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk preset import.
type ImportResult struct {
	Imported   int             `json:"imported"`
	Duplicates int             `json:"duplicates"`
	Dropped    []DroppedPreset `json:"dropped,omitempty"`
}

type PresetUpsert struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Schedule    map[string]RawDayConfig `json:"schedule"`
	Platforms   map[string]any          `json:"platforms"`
}
