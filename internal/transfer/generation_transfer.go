package transfer

// GenerationRequest is the uniform request shape passed to every text
// generation provider.
type GenerationRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
}

type GenerationResult struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	Tokens       int    `json:"tokens,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// DayOutcome is one day's result from a weekly generation run.
type DayOutcome struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	ContentID int64  `json:"content_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// WeekSummary is the normal return shape of the weekly orchestrator. Partial
// completion is expected, not exceptional: failed days appear in Outcomes with
// their reasons and the loop keeps going.
type WeekSummary struct {
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Outcomes  []DayOutcome `json:"outcomes"`
}

type GenerateWeekRequest struct {
	PresetID int64      `json:"preset_id,omitempty"`
	Preset   *RawPreset `json:"preset,omitempty"`
	StartDay string     `json:"start_day,omitempty"`
	Model    string     `json:"model,omitempty"`
}

type GenerateRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Model        string  `json:"model,omitempty"`
	Tone         string  `json:"tone,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
}

type VariationRequest struct {
	Content string `json:"content"`
	Tone    string `json:"tone"`
}

type ImproveRequest struct {
	Caption string `json:"caption"`
}

type HashtagsRequest struct {
	Content string `json:"content"`
	Count   int    `json:"count,omitempty"`
}

type AnalyzeRequest struct {
	Content string `json:"content"`
}
