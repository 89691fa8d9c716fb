package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"homecollect/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingNotify = "booking:notify"
	// NotificationQueue is the asynq queue booking messages are enqueued on.
	NotificationQueue = "notifications"
)

// NewBookingNotificationTask builds the task and its delivery options.
func NewBookingNotificationTask(payload models.BookingNotification, timeout time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingNotify, b)
	opts := []asynq.Option{
		asynq.Queue(NotificationQueue),
		asynq.MaxRetry(5),
	}
	if timeout > 0 {
		opts = append(opts, asynq.Timeout(timeout))
	}
	return task, opts, nil
}

// ParseBookingNotification decodes a task produced by NewBookingNotificationTask.
func ParseBookingNotification(task *asynq.Task) (models.BookingNotification, error) {
	var p models.BookingNotification
	if task.Type() != TypeBookingNotify {
		return p, fmt.Errorf("unexpected task type %q", task.Type())
	}
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid booking notification payload: %w", err)
	}
	return p, nil
}
