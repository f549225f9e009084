package queue

import (
	"github.com/postplannerhq/postplanner/internal/service"
)

type Queue struct {
	sch service.SchedulerService
}

func NewQueue(sch service.SchedulerService) *Queue {
	return &Queue{
		sch: sch,
	}
}

const TaskTypeApplyPreset = "apply:preset"

// ApplyPresetPayload runs a weekly generation in the background. Model is
// optional and pins a provider the same way the synchronous endpoint does.
type ApplyPresetPayload struct {
	UserID   int64  `json:"user_id"`
	PresetID int64  `json:"preset_id"`
	Model    string `json:"model,omitempty"`
}
