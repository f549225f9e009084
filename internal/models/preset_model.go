package models

import "time"

// Weekdays is the canonical weekday order. Schedule normalization maps
// array-form schedules positionally against this slice (index 0 = Monday),
// and every normalized schedule contains exactly these seven keys.
var Weekdays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// KnownPlatforms are the platform ids a preset can target.
var KnownPlatforms = []string{"instagram", "linkedin", "facebook", "twitter"}

// DayConfig is one day's entry in a preset schedule.
type DayConfig struct {
	Enabled     bool     `json:"enabled"`
	Topic       string   `json:"topic"`
	Time        string   `json:"time"` // HH:MM, 24h
	ContentType string   `json:"content_type,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
}

// Preset is a reusable weekly schedule template. Schedule and Platforms are
// stored as JSONB columns; Schedule always holds all seven weekday keys.
type Preset struct {
	ID          int64                `db:"id" json:"id"`
	UserID      int64                `db:"user_id" json:"user_id"`
	Name        string               `db:"name" json:"name"`
	Description string               `db:"description" json:"description"`
	Schedule    map[string]DayConfig `db:"schedule" json:"schedule"`
	Platforms   map[string]bool      `db:"platforms" json:"platforms"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
}

// EnabledDays returns the enabled day names in canonical weekday order.
func (p *Preset) EnabledDays() []string {
	var days []string
	for _, day := range Weekdays {
		if cfg, ok := p.Schedule[day]; ok && cfg.Enabled {
			days = append(days, day)
		}
	}
	return days
}
