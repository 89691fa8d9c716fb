package notification

import (
	"context"

	"homecollect/models"

	"firebase.google.com/go/v4/messaging"
)

// Notifier is the booking core's outbound port. Callers treat every error
// as non-fatal.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, order models.Order, otp string) error
	NotifyStatusUpdate(ctx context.Context, order models.Order, status models.BookingStatus, notes, otp string) error
}

// Deliverer sends an already assembled notification.
type Deliverer interface {
	Deliver(ctx context.Context, n models.BookingNotification) error
}

// PushClient is the subset of the FCM messaging client used here.
type PushClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}
