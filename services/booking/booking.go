package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "homecollect/database/repository/booking"
	orderRepo "homecollect/database/repository/order"
	timeslotRepo "homecollect/database/repository/timeslot"
	"homecollect/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) loadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, NewError(KindValidation, "orderId is required")
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

func (s *DefaultBookingService) activeBooking(ctx context.Context, orderID string) (*models.Booking, error) {
	b, err := s.Bookings.GetActiveByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrNoBooking
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return b, nil
}

func isOwnerOrAdmin(order *models.Order, r models.Requester) bool {
	return r.IsAdmin() || (r.UserID != "" && order.UserID == r.UserID)
}

// BookSlot reserves one unit of the requested hour for the order and records
// the booking on both the booking and the order.
func (s *DefaultBookingService) BookSlot(ctx context.Context, in BookSlotInput, requester models.Requester) (*models.BookingConfirmation, error) {
	if in.Hour < 0 || in.Hour > 23 {
		return nil, NewError(KindValidation, "hour must be between 0 and 23")
	}
	date, err := s.bookableDate(in.Date)
	if err != nil {
		return nil, err
	}

	order, err := s.loadOrder(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	// Checked before reserving so a rejected caller never holds capacity.
	if !isOwnerOrAdmin(order, requester) {
		return nil, ErrForbidden
	}
	if _, err := s.activeBooking(ctx, order.ID); err == nil {
		return nil, ErrAlreadyBooked
	} else if !errors.Is(err, ErrNoBooking) {
		return nil, err
	}

	t, err := s.resolveTeam(ctx, in.PostalCode)
	if err != nil {
		return nil, err
	}
	if !t.Works(in.Hour) {
		return nil, NewError(KindOutsideWorkingHours,
			"%s collects between %02d:00 and %02d:00", t.Name, t.StartHour, t.EndHour)
	}

	now := s.Now()
	bookingID := uuid.New().String()
	if err := s.claimOrder(ctx, order, bookingID, now); err != nil {
		return nil, err
	}

	slot, err := s.Slots.Reserve(ctx, *t, date, in.Hour, models.SlotBookingRef{
		BookingID:   bookingID,
		OrderID:     order.ID,
		PatientName: order.PatientName,
		BookedAt:    now,
	})
	if err != nil {
		s.releaseClaim(ctx, order.ID, bookingID)
		if errors.Is(err, timeslotRepo.ErrSlotFull) {
			next, nerr := s.nextAvailable(ctx, *t, date, in.Hour)
			if nerr != nil {
				s.Logger.Warn("Failed to compute next available slot", zap.Error(nerr))
			}
			return nil, slotFullError(next)
		}
		return nil, fmt.Errorf("failed to reserve slot: %w", err)
	}

	b := &models.Booking{
		ID:           bookingID,
		OrderID:      order.ID,
		TeamID:       t.ID,
		TeamName:     t.Name,
		Date:         date,
		Hour:         in.Hour,
		TimeRange:    models.HourRange(in.Hour),
		PatientName:  order.PatientName,
		PatientPhone: order.PatientPhone,
		Status:       models.StatusBookingConfirmed,
		StatusUpdates: []models.StatusUpdate{{
			Status:    models.StatusBookingConfirmed,
			Timestamp: now,
			Actor:     "system",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	otp, err := s.NewOTP()
	if err != nil {
		s.releaseUnit(ctx, b)
		s.releaseClaim(ctx, order.ID, b.ID)
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}
	b.VerificationOTP = otp

	if err := s.Bookings.Create(ctx, b); err != nil {
		s.releaseUnit(ctx, b)
		s.releaseClaim(ctx, order.ID, b.ID)
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	updated, err := s.mirror(ctx, order.ID, b, models.OrderUpdate{OrderStatus: models.StringPtr(models.OrderScheduled)})
	if err != nil {
		s.undoBooking(ctx, b)
		s.releaseClaim(ctx, order.ID, b.ID)
		return nil, err
	}

	s.notify(ctx, order.ID, "booking confirmed", func(nctx context.Context) error {
		return s.Notifier.NotifyBookingConfirmed(nctx, *updated, otp)
	})

	s.Logger.Info("Slot booked",
		zap.String("orderId", order.ID),
		zap.String("bookingId", b.ID),
		zap.String("teamId", t.ID),
		zap.String("date", date),
		zap.Int("hour", in.Hour),
		zap.Int("remaining", slot.RemainingCapacity()),
	)

	return &models.BookingConfirmation{
		BookingID:      b.ID,
		TeamName:       t.Name,
		ScheduledDate:  date,
		TimeRange:      b.TimeRange,
		RemainingSlots: slot.RemainingCapacity(),
	}, nil
}

// releaseUnit gives the booking's unit back, ignoring request cancellation.
func (s *DefaultBookingService) releaseUnit(ctx context.Context, b *models.Booking) {
	ctx = context.WithoutCancel(ctx)
	_, released, err := s.Slots.Release(ctx, b.TeamID, b.Date, b.Hour, b.ID)
	if err != nil {
		s.Logger.Error("Failed to release slot unit",
			zap.String("bookingId", b.ID), zap.String("teamId", b.TeamID),
			zap.String("date", b.Date), zap.Int("hour", b.Hour), zap.Error(err))
		return
	}
	if !released {
		s.Logger.Warn("Slot unit was already released", zap.String("bookingId", b.ID))
	}
}

// undoBooking removes a booking whose order mirror could not be written.
func (s *DefaultBookingService) undoBooking(ctx context.Context, b *models.Booking) {
	if err := s.Bookings.Delete(context.WithoutCancel(ctx), b.ID); err != nil {
		s.Logger.Error("Failed to delete orphaned booking", zap.String("bookingId", b.ID), zap.Error(err))
	}
	s.releaseUnit(ctx, b)
}

// GetBooking returns the order's most recent booking.
func (s *DefaultBookingService) GetBooking(ctx context.Context, orderID string, requester models.Requester) (*models.Booking, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isOwnerOrAdmin(order, requester) && !requester.IsCollector() {
		return nil, ErrForbidden
	}
	b, err := s.Bookings.GetLatestByOrderID(ctx, order.ID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrNoBooking
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return b, nil
}

// CancelBooking cancels the order's active booking and frees its slot unit.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, orderID string, requester models.Requester, reason string) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !isOwnerOrAdmin(order, requester) && !requester.IsCollector() {
		return ErrForbidden
	}
	b, err := s.activeBooking(ctx, order.ID)
	if err != nil {
		return err
	}
	return s.cancel(ctx, order, b, requester, reason)
}

func (s *DefaultBookingService) cancel(ctx context.Context, order *models.Order, b *models.Booking, actor models.Requester, reason string) error {
	if !canTransition(b.Status, models.StatusCancelled) {
		return NewError(KindInvalidTransition, "a %s booking can no longer be cancelled", b.Status)
	}

	now := s.Now()
	_, err := s.Bookings.Transition(ctx, b.ID, b.Status, models.BookingTransition{
		Status:      models.StatusCancelled,
		OTP:         b.VerificationOTP,
		OTPVerified: b.OTPVerified,
		Entry: &models.StatusUpdate{
			Status:    models.StatusCancelled,
			Timestamp: now,
			Actor:     actor.Actor(),
			Notes:     reason,
		},
		At: now,
	})
	if err != nil {
		return transitionError(err)
	}

	// The status CAS above admits exactly one canceller, so this runs once.
	s.releaseUnit(ctx, b)

	updated, err := s.Orders.Update(ctx, order.ID, models.OrderUpdate{
		OrderStatus:         models.StringPtr(models.OrderPlaced),
		ClearBookingDetails: true,
		UpdatedAt:           now,
	})
	if err != nil {
		s.Logger.Error("Failed to clear order booking details", zap.String("orderId", order.ID), zap.Error(err))
		updated = order
	}

	// Released last so a new booking cannot start before the mirror is cleared.
	s.releaseClaim(ctx, order.ID, b.ID)

	s.notify(ctx, order.ID, "booking cancelled", func(nctx context.Context) error {
		return s.Notifier.NotifyStatusUpdate(nctx, *updated, models.StatusCancelled, reason, "")
	})

	s.Logger.Info("Booking cancelled",
		zap.String("orderId", order.ID), zap.String("bookingId", b.ID), zap.String("actor", actor.Actor()))
	return nil
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		return ErrConcurrentUpdate
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrNoBooking
	default:
		return fmt.Errorf("failed to update booking: %w", err)
	}
}
