package booking

import (
	"context"
	"crypto/subtle"
	"slices"

	"homecollect/models"

	"go.uber.org/zap"
)

// transitions lists the moves allowed from each status. otp_verified is
// entered only through VerifyOTP.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusBookingConfirmed: {models.StatusOTPVerified, models.StatusCancelled},
	models.StatusOTPVerified:      {models.StatusOnWay, models.StatusCancelled},
	models.StatusOnWay:            {models.StatusReached, models.StatusCancelled},
	models.StatusReached:          {models.StatusCollected, models.StatusCancelled},
	models.StatusCollected:        {models.StatusCompleted},
}

func canTransition(from, to models.BookingStatus) bool {
	return slices.Contains(transitions[from], to)
}

// UpdateStatus moves the order's active booking to status. Each accepted move
// issues a fresh OTP for the next handoff.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, orderID, status string, actor models.Requester, notes string) (*models.StatusChange, error) {
	next := models.BookingStatus(status)
	if !next.Valid() {
		return nil, NewError(KindInvalidStatus, "unknown status %q", status)
	}
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	b, err := s.activeBooking(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	if next == models.StatusCancelled {
		if err := s.cancel(ctx, order, b, actor, notes); err != nil {
			return nil, err
		}
		return &models.StatusChange{OldStatus: b.Status, NewStatus: next}, nil
	}
	if next == models.StatusOTPVerified {
		return nil, NewError(KindInvalidTransition, "otp_verified is set by verifying the OTP")
	}
	if !canTransition(b.Status, next) {
		return nil, NewError(KindInvalidTransition, "cannot move from %s to %s", b.Status, next)
	}

	otp, err := s.NewOTP()
	if err != nil {
		return nil, err
	}
	now := s.Now()
	updated, err := s.Bookings.Transition(ctx, b.ID, b.Status, models.BookingTransition{
		Status:      next,
		OTP:         otp,
		OTPVerified: false,
		Entry: &models.StatusUpdate{
			Status:    next,
			Timestamp: now,
			Actor:     actor.Actor(),
			Notes:     notes,
		},
		At: now,
	})
	if err != nil {
		return nil, transitionError(err)
	}

	extra := models.OrderUpdate{}
	switch next {
	case models.StatusCollected:
		extra.OrderStatus = models.StringPtr(models.OrderProcessing)
	case models.StatusCompleted:
		extra.OrderStatus = models.StringPtr(models.OrderDelivered)
		extra.DeliveredAt = &now
	}
	mirrored := s.mirrorBestEffort(ctx, order, updated, extra)

	s.notify(ctx, order.ID, "status update", func(nctx context.Context) error {
		return s.Notifier.NotifyStatusUpdate(nctx, *mirrored, next, notes, otp)
	})

	s.Logger.Info("Booking status updated",
		zap.String("orderId", order.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(next)),
		zap.String("actor", actor.Actor()),
	)
	return &models.StatusChange{OldStatus: b.Status, NewStatus: next}, nil
}

// VerifyOTP checks the code the patient shows the collector. From
// booking_confirmed it advances to otp_verified; later it only marks the
// current code as verified.
func (s *DefaultBookingService) VerifyOTP(ctx context.Context, orderID, otp string, actor models.Requester) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	b, err := s.activeBooking(ctx, order.ID)
	if err != nil {
		return err
	}
	if b.VerificationOTP == "" {
		return ErrOTPNotFound
	}
	if subtle.ConstantTimeCompare([]byte(otp), []byte(b.VerificationOTP)) != 1 {
		return ErrInvalidOTP
	}

	now := s.Now()
	t := models.BookingTransition{
		Status:      b.Status,
		OTP:         b.VerificationOTP,
		OTPVerified: true,
		At:          now,
	}
	if b.Status == models.StatusBookingConfirmed {
		t.Status = models.StatusOTPVerified
		t.Entry = &models.StatusUpdate{
			Status:    models.StatusOTPVerified,
			Timestamp: now,
			Actor:     actor.Actor(),
		}
	}

	updated, err := s.Bookings.Transition(ctx, b.ID, b.Status, t)
	if err != nil {
		return transitionError(err)
	}
	mirrored := s.mirrorBestEffort(ctx, order, updated, models.OrderUpdate{})

	if t.Entry != nil {
		s.notify(ctx, order.ID, "otp verified", func(nctx context.Context) error {
			return s.Notifier.NotifyStatusUpdate(nctx, *mirrored, models.StatusOTPVerified, "", "")
		})
	}

	s.Logger.Info("Booking OTP verified",
		zap.String("orderId", order.ID), zap.String("status", string(updated.Status)), zap.String("actor", actor.Actor()))
	return nil
}
