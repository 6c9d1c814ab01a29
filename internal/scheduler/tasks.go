package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskDealFollowUp is the task type for next-action reminders on open deals.
const TaskDealFollowUp = "deals.follow_up"

// DealFollowUpPayload identifies the deal a reminder belongs to.
type DealFollowUpPayload struct {
	DealID string `json:"dealId"`
}

// NewDealFollowUpTask builds the asynq task for a follow-up reminder.
func NewDealFollowUpTask(payload DealFollowUpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDealFollowUp, data), nil
}

// ParseDealFollowUpPayload decodes a follow-up task payload.
func ParseDealFollowUpPayload(task *asynq.Task) (DealFollowUpPayload, error) {
	var payload DealFollowUpPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DealFollowUpPayload{}, err
	}
	return payload, nil
}
