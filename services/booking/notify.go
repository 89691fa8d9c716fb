package booking

import (
	"context"

	"go.uber.org/zap"
)

// notify runs send after the caller's writes are committed. It never blocks
// the request and its failures are only logged.
func (s *DefaultBookingService) notify(ctx context.Context, orderID, what string, send func(context.Context) error) {
	if s.Notifier == nil {
		return
	}
	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.NotifyTimeout)
		defer cancel()
		if err := send(nctx); err != nil {
			s.Logger.Warn("Notification failed", zap.String("orderId", orderID), zap.String("event", what), zap.Error(err))
		}
	}()
}
