package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/postplannerhq/postplanner/internal/transfer"
)

func (q *Queue) HandleApplyPresetTask(ctx context.Context, t *asynq.Task) error {
	var payload ApplyPresetPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	summary, err := q.sch.GenerateWeek(ctx, payload.UserID, &transfer.GenerateWeekRequest{
		PresetID: payload.PresetID,
		Model:    payload.Model,
	})
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	slog.Info("weekly generation finished",
		"user_id", payload.UserID,
		"preset_id", payload.PresetID,
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)
	return nil
}
