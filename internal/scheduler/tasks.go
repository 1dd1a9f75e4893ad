package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskDistributeOpportunities = "opportunities:distribute"

// DistributePayload carries metadata about the enqueuing trigger.
type DistributePayload struct {
	TriggeredAt time.Time `json:"triggeredAt"`
	Source      string    `json:"source"`
}

func NewDistributeTask(payload DistributePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDistributeOpportunities, data), nil
}

func ParseDistributePayload(task *asynq.Task) (DistributePayload, error) {
	var payload DistributePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DistributePayload{}, err
	}
	return payload, nil
}
