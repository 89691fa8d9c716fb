package notification

import (
	"context"
	"fmt"
	"time"

	"homecollect/models"
	"homecollect/services/tasks"

	"github.com/hibiken/asynq"
)

// Enqueuer is the subset of *asynq.Client used by TaskNotifier.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskNotifier hands notifications to the asynq worker so delivery is retried
// outside the request path.
type TaskNotifier struct {
	Client      Enqueuer
	TaskTimeout time.Duration
}

func NewTaskNotifier(client Enqueuer, taskTimeout time.Duration) *TaskNotifier {
	return &TaskNotifier{Client: client, TaskTimeout: taskTimeout}
}

func (n *TaskNotifier) NotifyBookingConfirmed(ctx context.Context, order models.Order, otp string) error {
	return n.enqueue(ctx, models.NewBookingNotification(models.NotifyBookingConfirmed, order, otp))
}

func (n *TaskNotifier) NotifyStatusUpdate(ctx context.Context, order models.Order, status models.BookingStatus, notes, otp string) error {
	p := models.NewBookingNotification(models.NotifyStatusUpdate, order, otp)
	p.Status = status
	p.Notes = notes
	return n.enqueue(ctx, p)
}

func (n *TaskNotifier) enqueue(ctx context.Context, p models.BookingNotification) error {
	task, opts, err := tasks.NewBookingNotificationTask(p, n.TaskTimeout)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}
	if _, err := n.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue notification for order %s: %w", p.OrderID, err)
	}
	return nil
}
