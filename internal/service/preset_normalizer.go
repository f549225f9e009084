package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/postplannerhq/postplanner/internal/models"
	"github.com/postplannerhq/postplanner/internal/transfer"
)

const (
	defaultTopic = "motivational"
	defaultTime  = "09:00"
)

var dayAliasPattern = regexp.MustCompile(`^day(\d+)$`)

// Normalizer turns permissive preset payloads into the canonical shape:
// exactly seven weekday keys, every day carrying a topic and a time, synonym
// fields collapsed. Invalid elements are dropped with a reason instead of
// failing the whole import.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NormalizeAll processes a decoded import array element by element. Elements
// that cannot be decoded or validated land in the dropped list; the rest come
// back as canonical presets in input order.
func (n *Normalizer) NormalizeAll(items []json.RawMessage) ([]*models.Preset, []transfer.DroppedPreset) {
	var presets []*models.Preset
	var dropped []transfer.DroppedPreset

	for i, item := range items {
		raw := new(transfer.RawPreset)
		if err := json.Unmarshal(item, raw); err != nil {
			dropped = append(dropped, transfer.DroppedPreset{Index: i, Reason: "malformed preset entry"})
			continue
		}

		preset, err := n.Normalize(raw)
		if err != nil {
			dropped = append(dropped, transfer.DroppedPreset{
				Index:  i,
				Name:   rawName(raw),
				Reason: err.Error(),
			})
			continue
		}
		presets = append(presets, preset)
	}
	return presets, dropped
}

// Normalize validates and canonicalizes a single raw preset. The returned
// error, when non-nil, is the drop reason.
func (n *Normalizer) Normalize(raw *transfer.RawPreset) (*models.Preset, error) {
	name := rawName(raw)
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}

	schedule, recognized, err := n.normalizeSchedule(raw.Schedule)
	if err != nil {
		return nil, err
	}
	if recognized == 0 {
		return nil, fmt.Errorf("schedule has no recognized days")
	}

	createdAt := n.now()
	if raw.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, raw.CreatedAt); err == nil {
			createdAt = t
		}
	}

	return &models.Preset{
		Name:        name,
		Description: raw.Description,
		Schedule:    schedule,
		Platforms:   normalizePlatforms(raw.Platforms),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}, nil
}

// NormalizeUpsert canonicalizes a create/update request body. Unlike import,
// a bad schedule here is a hard validation error.
func (n *Normalizer) NormalizeUpsert(req *transfer.PresetUpsert) (*models.Preset, error) {
	raw := &transfer.RawPreset{
		Name:        req.Name,
		Description: req.Description,
		Platforms:   req.Platforms,
	}
	if req.Schedule != nil {
		encoded, err := json.Marshal(req.Schedule)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule", ErrValidation)
		}
		raw.Schedule = encoded
	}

	preset, err := n.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return preset, nil
}

func rawName(raw *transfer.RawPreset) string {
	if name := strings.TrimSpace(raw.Name); name != "" {
		return name
	}
	return strings.TrimSpace(raw.PresetName)
}

// normalizeSchedule accepts both schedule encodings. Object form keys days by
// name; array form lists them positionally starting Monday. Returns the
// canonical seven-key map and how many input days were recognized.
func (n *Normalizer) normalizeSchedule(raw json.RawMessage) (map[string]models.DayConfig, int, error) {
	if len(raw) == 0 {
		return nil, 0, fmt.Errorf("missing schedule")
	}

	byDay := make(map[string]json.RawMessage)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for key, val := range obj {
			day, ok := canonicalDay(key)
			if !ok {
				continue
			}
			byDay[day] = val
		}
	} else {
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, 0, fmt.Errorf("unrecognized schedule shape")
		}
		// Entries past Sunday have no weekday to land on.
		for i, val := range arr {
			if i >= len(models.Weekdays) {
				break
			}
			byDay[models.Weekdays[i]] = val
		}
	}

	schedule := make(map[string]models.DayConfig, len(models.Weekdays))
	recognized := 0
	for _, day := range models.Weekdays {
		val, ok := byDay[day]
		if !ok {
			schedule[day] = disabledDay()
			continue
		}

		var rawDay transfer.RawDayConfig
		if err := json.Unmarshal(val, &rawDay); err != nil {
			schedule[day] = disabledDay()
			continue
		}
		schedule[day] = normalizeDay(&rawDay)
		recognized++
	}
	return schedule, recognized, nil
}

func canonicalDay(key string) (string, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, day := range models.Weekdays {
		if key == day {
			return day, true
		}
	}
	if m := dayAliasPattern.FindStringSubmatch(key); m != nil {
		idx := 0
		fmt.Sscanf(m[1], "%d", &idx)
		if idx < len(models.Weekdays) {
			return models.Weekdays[idx], true
		}
	}
	return "", false
}

func normalizeDay(raw *transfer.RawDayConfig) models.DayConfig {
	topic := firstNonEmpty(raw.Topic, raw.ContentType)
	postTime := firstNonEmpty(raw.Time, raw.PostTime)

	// An explicit flag wins. Without one, a day counts as enabled only when
	// it carries some detail; a bare {} stays disabled.
	enabled := topic != "" || postTime != ""
	if raw.Enabled != nil {
		enabled = *raw.Enabled
	}

	return models.DayConfig{
		Enabled:   enabled,
		Topic:     firstNonEmpty(topic, defaultTopic),
		Time:      firstNonEmpty(postTime, defaultTime),
		Platforms: raw.Platforms,
	}
}

func disabledDay() models.DayConfig {
	return models.DayConfig{Enabled: false, Topic: defaultTopic, Time: defaultTime}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// normalizePlatforms keeps only known platform ids and coerces the assorted
// historical value encodings (bool, "Yes"/"No", 0/1) to bool. Instagram was
// the product's home platform and starts enabled; only an explicit falsy
// value turns it off.
func normalizePlatforms(raw map[string]any) map[string]bool {
	platforms := make(map[string]bool, len(models.KnownPlatforms))
	for _, p := range models.KnownPlatforms {
		platforms[p] = p == "instagram"
	}
	for key, val := range raw {
		key = strings.ToLower(strings.TrimSpace(key))
		if _, ok := platforms[key]; !ok {
			continue
		}
		platforms[key] = truthy(val)
	}
	return platforms
}

func truthy(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return true
		}
		return false
	case float64:
		return v != 0
	default:
		return false
	}
}
