package service

import (
	"encoding/json"
	"fmt"

	"sparkle-booking/core/constants"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// OrderTaskPayload is the body of every post-payment task.
type OrderTaskPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}

// NewCalendarSyncTask runs once. Sync failures are recorded on the order instead of retried.
func NewCalendarSyncTask(orderID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(OrderTaskPayload{OrderID: orderID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskCalendarSync, payload, asynq.MaxRetry(0)), nil
}

func NewNotifyTask(orderID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(OrderTaskPayload{OrderID: orderID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskNotify, payload, asynq.MaxRetry(constants.TaskNotifyRetry)), nil
}

func parseOrderTask(task *asynq.Task) (uuid.UUID, error) {
	var p OrderTaskPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return uuid.Nil, fmt.Errorf("decode %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	if p.OrderID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s payload has no order_id: %w", task.Type(), asynq.SkipRetry)
	}
	return p.OrderID, nil
}
