package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "homecollect/database/repository/booking"
	orderRepo "homecollect/database/repository/order"
	"homecollect/models"

	"go.uber.org/zap"
)

// claimTTL is how long a claim whose booking is gone or inactive is still
// honoured. It covers a BookSlot that has claimed but not yet written its
// booking, and a cancel that has not yet released its claim.
const claimTTL = 2 * time.Minute

// claimOrder makes bookingID the order's only capacity holder. The claim is a
// compare-and-set on the order, so of several concurrent bookings for one
// order exactly one proceeds to reserve.
func (s *DefaultBookingService) claimOrder(ctx context.Context, order *models.Order, bookingID string, now time.Time) error {
	expected := ""
	if order.BookingClaim != "" {
		stale, err := s.staleClaim(ctx, order, now)
		if err != nil {
			return err
		}
		if !stale {
			return ErrAlreadyBooked
		}
		expected = order.BookingClaim
	}

	err := s.Orders.ClaimBooking(ctx, order.ID, expected, bookingID, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orderRepo.ErrClaimConflict):
		return ErrAlreadyBooked
	case errors.Is(err, orderRepo.ErrOrderNotFound):
		return ErrOrderNotFound
	}
	return fmt.Errorf("failed to claim order: %w", err)
}

// staleClaim reports whether the claim left on order can be taken over: its
// booking is missing or no longer active, and has been for claimTTL.
func (s *DefaultBookingService) staleClaim(ctx context.Context, order *models.Order, now time.Time) (bool, error) {
	b, err := s.Bookings.GetByID(ctx, order.BookingClaim)
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return order.BookingClaimedAt == nil || now.Sub(*order.BookingClaimedAt) > claimTTL, nil
	case err != nil:
		return false, fmt.Errorf("failed to load claiming booking: %w", err)
	case b.Status.Active():
		return false, nil
	}
	return now.Sub(b.UpdatedAt) > claimTTL, nil
}

func (s *DefaultBookingService) releaseClaim(ctx context.Context, orderID, bookingID string) {
	if err := s.Orders.ReleaseBookingClaim(context.WithoutCancel(ctx), orderID, bookingID); err != nil {
		s.Logger.Error("Failed to release order claim",
			zap.String("orderId", orderID), zap.String("bookingId", bookingID), zap.Error(err))
	}
}
