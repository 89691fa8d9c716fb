package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	bookingRepo "homecollect/database/repository/booking"
	"homecollect/models"
	"homecollect/services/booking"

	"go.uber.org/zap"
)

// Samples and payment are taken once the collector is at the door.
var fieldStatuses = []models.BookingStatus{models.StatusReached, models.StatusCollected, models.StatusCompleted}

// Custody moves to the lab only after collection.
var handoverStatuses = []models.BookingStatus{models.StatusCollected, models.StatusCompleted}

func (s *DefaultCollectorService) activeBooking(ctx context.Context, orderID string) (*models.Booking, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, booking.NewError(booking.KindValidation, "orderId is required")
	}
	b, err := s.Bookings.GetActiveByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, booking.ErrNoBooking
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return b, nil
}

func requireStatus(b *models.Booking, allowed []models.BookingStatus, what string) error {
	if slices.Contains(allowed, b.Status) {
		return nil
	}
	return booking.NewError(booking.KindInvalidTransition, "%s is not allowed while the booking is %s", what, b.Status)
}

func (s *DefaultCollectorService) update(ctx context.Context, b *models.Booking, allowed []models.BookingStatus, u models.CollectionUpdate) (*models.Booking, error) {
	updated, err := s.Bookings.UpdateCollection(ctx, b.ID, allowed, u)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			return nil, booking.ErrConcurrentUpdate
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, booking.ErrNoBooking
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return updated, nil
}

func validSampleType(t string) bool {
	return t == models.SampleBlood || t == models.SampleUrine || t == models.SampleOther
}

// sampleFields lists the fields req writes for sampleType. Empty notes and
// image references leave the stored values alone.
func sampleFields(sampleType string, req models.SampleUpdateRequest) *models.SampleFieldUpdate {
	f := &models.SampleFieldUpdate{Type: sampleType, Collected: models.BoolPtr(req.Collected)}
	if req.ImageRef != "" {
		f.ImageRef = models.StringPtr(req.ImageRef)
	}
	if req.Notes != "" {
		f.Notes = models.StringPtr(req.Notes)
	}
	switch sampleType {
	case models.SampleBlood:
		f.IsRandom = models.BoolPtr(req.IsRandom)
	case models.SampleUrine:
		f.NotGiven = models.BoolPtr(req.NotGiven)
	}
	return f
}

func (s *DefaultCollectorService) RecordSample(ctx context.Context, orderID, sampleType string, req models.SampleUpdateRequest) (*models.Booking, error) {
	if !validSampleType(sampleType) {
		return nil, booking.NewError(booking.KindValidation, "unknown sample type %q", sampleType)
	}
	b, err := s.activeBooking(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus(b, fieldStatuses, "recording samples"); err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, b, fieldStatuses, models.CollectionUpdate{
		Sample: sampleFields(sampleType, req),
		At:     s.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Sample recorded",
		zap.String("orderId", orderID), zap.String("type", sampleType), zap.Bool("collected", req.Collected))
	return updated, nil
}

// UploadSampleImage stores a photo of the sample and records its reference
// without touching the collected flag.
func (s *DefaultCollectorService) UploadSampleImage(ctx context.Context, orderID, sampleType string, file io.Reader) (*models.Booking, error) {
	if !validSampleType(sampleType) {
		return nil, booking.NewError(booking.KindValidation, "unknown sample type %q", sampleType)
	}
	b, err := s.activeBooking(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus(b, fieldStatuses, "uploading sample images"); err != nil {
		return nil, err
	}

	ref, err := s.Images.UploadSampleImage(ctx, orderID, sampleType, file)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, b, fieldStatuses, models.CollectionUpdate{
		Sample: &models.SampleFieldUpdate{Type: sampleType, ImageRef: models.StringPtr(ref)},
		At:     s.Now(),
	})
}

// RecordPayment stores the doorstep payment and marks the order paid.
func (s *DefaultCollectorService) RecordPayment(ctx context.Context, orderID string, amount float64, method string) (*models.Booking, error) {
	if amount < 0 {
		return nil, booking.NewError(booking.KindValidation, "amount must not be negative")
	}
	b, err := s.activeBooking(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus(b, fieldStatuses, "recording payment"); err != nil {
		return nil, err
	}

	now := s.Now()
	updated, err := s.update(ctx, b, fieldStatuses, models.CollectionUpdate{
		Payment: &models.PaymentRecord{Amount: amount, Method: strings.TrimSpace(method), CollectedAt: &now},
		At:      now,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Orders.Update(ctx, orderID, models.OrderUpdate{
		IsPaid:    models.BoolPtr(true),
		PaidAt:    &now,
		UpdatedAt: now,
	}); err != nil {
		s.Logger.Error("Failed to mark order paid", zap.String("orderId", orderID), zap.Error(err))
	}

	s.Logger.Info("Payment recorded", zap.String("orderId", orderID), zap.Float64("amount", amount), zap.String("method", method))
	return updated, nil
}

func (s *DefaultCollectorService) MarkSampleHandover(ctx context.Context, orderID string) (*models.HandoverResult, error) {
	return s.Handover(ctx, orderID, models.HandoverRequest{Sample: true})
}

func (s *DefaultCollectorService) MarkAmountHandover(ctx context.Context, orderID string) (*models.HandoverResult, error) {
	return s.Handover(ctx, orderID, models.HandoverRequest{Amount: true})
}

// Handover sets the requested custody flags. Flags already set keep their
// first timestamp. The order is complete once both flags are set,
// whichever arrives last, and keeps the time of that completion.
func (s *DefaultCollectorService) Handover(ctx context.Context, orderID string, req models.HandoverRequest) (*models.HandoverResult, error) {
	if !req.Sample && !req.Amount {
		return nil, booking.NewError(booking.KindValidation, "nothing to hand over")
	}
	b, err := s.activeBooking(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireStatus(b, handoverStatuses, "handover"); err != nil {
		return nil, err
	}

	now := s.Now()
	u := models.CollectionUpdate{At: now}
	if req.Sample && !b.Handover.SampleHandedOver {
		u.SampleHandedOverAt = &now
	}
	if req.Amount && !b.Handover.AmountHandedOver {
		u.AmountHandedOverAt = &now
	}

	updated := b
	changed := u.SampleHandedOverAt != nil || u.AmountHandedOverAt != nil
	if changed {
		if updated, err = s.update(ctx, b, handoverStatuses, u); err != nil {
			return nil, err
		}
	}

	complete := updated.Handover.Complete()
	// Only the call that sets the second flag stamps the order.
	if changed && complete && !b.Handover.Complete() {
		if _, err := s.Orders.Update(ctx, orderID, models.OrderUpdate{
			CollectionCompleted:   models.BoolPtr(true),
			CollectionCompletedAt: &now,
			UpdatedAt:             now,
		}); err != nil {
			s.Logger.Error("Failed to mark collection completed", zap.String("orderId", orderID), zap.Error(err))
		}
	}

	s.Logger.Info("Handover recorded",
		zap.String("orderId", orderID),
		zap.Bool("sample", updated.Handover.SampleHandedOver),
		zap.Bool("amount", updated.Handover.AmountHandedOver),
		zap.Bool("collectionCompleted", complete),
	)
	return &models.HandoverResult{Handover: updated.Handover, CollectionCompleted: complete}, nil
}
