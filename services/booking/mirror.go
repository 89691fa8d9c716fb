package booking

import (
	"context"
	"fmt"

	"homecollect/models"

	"go.uber.org/zap"
)

// mirror copies the booking onto the order's bookingDetails together with
// any extra order fields.
func (s *DefaultBookingService) mirror(ctx context.Context, orderID string, b *models.Booking, extra models.OrderUpdate) (*models.Order, error) {
	extra.BookingDetails = models.DetailsFromBooking(b)
	extra.UpdatedAt = s.Now()

	order, err := s.Orders.Update(ctx, orderID, extra)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", orderID, err)
	}
	return order, nil
}

// mirrorBestEffort is used after the booking change is committed: the booking
// stays authoritative and a failed mirror is only logged.
func (s *DefaultBookingService) mirrorBestEffort(ctx context.Context, order *models.Order, b *models.Booking, extra models.OrderUpdate) *models.Order {
	updated, err := s.mirror(ctx, order.ID, b, extra)
	if err != nil {
		s.Logger.Error("Order mirror out of date", zap.String("orderId", order.ID), zap.String("bookingId", b.ID), zap.Error(err))
		fallback := *order
		fallback.BookingDetails = models.DetailsFromBooking(b)
		return &fallback
	}
	return updated
}
