package notification

import (
	"context"
	"fmt"

	"homecollect/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService delivers booking messages as FCM pushes to the
// order's device. Without a push client or a device token the rendered
// message is only logged.
type DefaultNotificationService struct {
	Push   PushClient
	Logger *zap.Logger
}

func NewDefaultNotificationService(push PushClient, logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{Push: push, Logger: logger}
}

func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, order models.Order, otp string) error {
	return s.Deliver(ctx, models.NewBookingNotification(models.NotifyBookingConfirmed, order, otp))
}

func (s *DefaultNotificationService) NotifyStatusUpdate(ctx context.Context, order models.Order, status models.BookingStatus, notes, otp string) error {
	n := models.NewBookingNotification(models.NotifyStatusUpdate, order, otp)
	n.Status = status
	n.Notes = notes
	return s.Deliver(ctx, n)
}

func (s *DefaultNotificationService) Deliver(ctx context.Context, n models.BookingNotification) error {
	title, body := Render(n)

	if s.Push == nil || n.FCMToken == "" {
		s.Logger.Info("Booking notification (no push target)",
			zap.String("orderId", n.OrderID),
			zap.String("kind", n.Kind),
			zap.String("phone", n.PatientPhone),
			zap.String("title", title),
		)
		return nil
	}

	msg := &messaging.Message{
		Token: n.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":    n.Kind,
			"orderId": n.OrderID,
			"status":  string(n.Status),
			"role":    "user",
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "home_collection",
				Sound:     "default",
			},
		},
	}

	id, err := s.Push.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send push for order %s: %w", n.OrderID, err)
	}
	s.Logger.Debug("Booking push sent", zap.String("orderId", n.OrderID), zap.String("messageId", id))
	return nil
}
