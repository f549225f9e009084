package transfer

type ParseURLRequest struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
}

// URLMetadata is the parse-url response. Field1/Field2 carry type-specific
// extractions: ingredients/cook time for recipes, duration/difficulty for
// workouts.
type URLMetadata struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	SiteName     string `json:"site_name"`
	URL          string `json:"url"`
	Field1       string `json:"field1"`
	Field2       string `json:"field2"`
	DetectedType string `json:"detected_type"`
}
