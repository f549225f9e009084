package transfer

import "encoding/json"

// ScheduledContentUpsert tolerates both the historical single-string platform
// field and the list form; Platforms() resolves to the canonical list.
type ScheduledContentUpsert struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	PlatformRaw json.RawMessage `json:"platform"`
	Status      string          `json:"status"`
	Tags        string          `json:"tags"`
}

// Platforms normalizes the platform field: a JSON string becomes a one-element
// list, a JSON array is taken as-is, anything else is empty.
func (u *ScheduledContentUpsert) Platforms() []string {
	if len(u.PlatformRaw) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(u.PlatformRaw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}
	var list []string
	if err := json.Unmarshal(u.PlatformRaw, &list); err == nil {
		return list
	}
	return nil
}

type StatusUpdate struct {
	Status string `json:"status"`
}

type PostUpsert struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Tags     string `json:"tags"`
	URL      string `json:"url"`
	Field1   string `json:"field1"`
	Field2   string `json:"field2"`
}

type CategoryUpsert struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}
