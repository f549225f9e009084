package models

import "time"

const (
	ContentStatusDraft     = "draft"
	ContentStatusScheduled = "scheduled"
	ContentStatusPublished = "published"
)

// ValidContentStatus reports whether s is one of the three content states.
// Transitions between them are user-driven only; nothing in the system
// advances a post automatically.
func ValidContentStatus(s string) bool {
	return s == ContentStatusDraft || s == ContentStatusScheduled || s == ContentStatusPublished
}

// ScheduledContent is a single calendar-bound post entry.
type ScheduledContent struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Date      string    `db:"date" json:"date"` // YYYY-MM-DD
	Time      string    `db:"time" json:"time"` // HH:MM
	Platforms []string  `db:"platforms" json:"platforms"`
	Status    string    `db:"status" json:"status"`
	Tags      string    `db:"tags" json:"tags"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Post is a content-library entry. Field1/Field2 carry category-specific
// attributes (ingredients/cook time for recipes, duration/difficulty for
// workouts).
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Category  string    `db:"category" json:"category"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Tags      string    `db:"tags" json:"tags"`
	URL       string    `db:"url" json:"url,omitempty"`
	Field1    string    `db:"field1" json:"field1,omitempty"`
	Field2    string    `db:"field2" json:"field2,omitempty"`
	Used      bool      `db:"used" json:"used"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CustomCategory struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Icon      string    `db:"icon" json:"icon"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
