package cron

import (
	"context"
	"time"

	"homecollect/config"
	"homecollect/services/notification"
	"homecollect/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt returns the asynq connection for the notification queue DB.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NotificationWorker drains the booking notification queue.
type NotificationWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewNotificationWorker(opt asynq.RedisClientOpt, deliverer notification.Deliverer, logger *zap.Logger) *NotificationWorker {
	srv := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.NotificationQueue: 1,
			},
			Logger: zapAdapter{logger.Sugar()},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingNotify, handleBookingNotification(deliverer, logger))

	return &NotificationWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying start-up with backoff.
func (w *NotificationWorker) Start() {
	go func() {
		w.logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("Notification worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Notification worker gave up; notifications stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func (w *NotificationWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleBookingNotification(deliverer notification.Deliverer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingNotification(task)
		if err != nil {
			logger.Error("Dropping malformed notification task", zap.Error(err))
			return asynq.SkipRetry
		}

		if err := deliverer.Deliver(ctx, p); err != nil {
			logger.Warn("Notification delivery failed",
				zap.String("orderId", p.OrderID), zap.String("kind", p.Kind), zap.Error(err))
			return err
		}
		return nil
	}
}

// zapAdapter satisfies asynq.Logger.
type zapAdapter struct {
	s *zap.SugaredLogger
}

func (a zapAdapter) Debug(args ...interface{}) { a.s.Debug(args...) }
func (a zapAdapter) Info(args ...interface{})  { a.s.Info(args...) }
func (a zapAdapter) Warn(args ...interface{})  { a.s.Warn(args...) }
func (a zapAdapter) Error(args ...interface{}) { a.s.Error(args...) }
func (a zapAdapter) Fatal(args ...interface{}) { a.s.Fatal(args...) }
