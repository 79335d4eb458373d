package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskBuyerRescore = "buyers.rescore"

const TaskStaleScoreSweep = "buyers.rescore.sweep"

type BuyerRescorePayload struct {
	BuyerID string `json:"buyerId"`
	Profile string `json:"profile,omitempty"`
}

type StaleScoreSweepPayload struct {
	MaxAgeHours int `json:"maxAgeHours"`
	Limit       int `json:"limit"`
}

func NewBuyerRescoreTask(payload BuyerRescorePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBuyerRescore, data), nil
}

func ParseBuyerRescorePayload(task *asynq.Task) (BuyerRescorePayload, error) {
	var payload BuyerRescorePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return BuyerRescorePayload{}, err
	}
	return payload, nil
}

func NewStaleScoreSweepTask(payload StaleScoreSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStaleScoreSweep, data), nil
}

func ParseStaleScoreSweepPayload(task *asynq.Task) (StaleScoreSweepPayload, error) {
	var payload StaleScoreSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return StaleScoreSweepPayload{}, err
	}
	return payload, nil
}
