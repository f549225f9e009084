package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

func EnqueueApplyPreset(asynqClient *asynq.Client, payload ApplyPresetPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeApplyPreset, data)
	_, err = asynqClient.Enqueue(task, asynq.MaxRetry(3))
	if err != nil {
		return err
	}
	return nil
}
