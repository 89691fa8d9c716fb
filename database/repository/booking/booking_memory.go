package bookingRepo

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"homecollect/models"
)

type memoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
}

// NewMemoryBookingRepo constructs an in-process BookingRepository.
func NewMemoryBookingRepo() BookingRepository {
	return &memoryBookingRepo{bookings: make(map[string]*models.Booking)}
}

func cloneBooking(b *models.Booking) *models.Booking {
	out := *b
	out.StatusUpdates = slices.Clone(b.StatusUpdates)
	return &out
}

func (r *memoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *memoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *memoryBookingRepo) latest(orderID string, keep func(*models.Booking) bool) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *models.Booking
	for _, b := range r.bookings {
		if b.OrderID != orderID || !keep(b) {
			continue
		}
		if found == nil || b.CreatedAt.After(found.CreatedAt) {
			found = b
		}
	}
	if found == nil {
		return nil, ErrBookingNotFound
	}
	return cloneBooking(found), nil
}

func (r *memoryBookingRepo) GetActiveByOrderID(_ context.Context, orderID string) (*models.Booking, error) {
	return r.latest(orderID, func(b *models.Booking) bool { return b.Status.Active() })
}

func (r *memoryBookingRepo) GetLatestByOrderID(_ context.Context, orderID string) (*models.Booking, error) {
	return r.latest(orderID, func(*models.Booking) bool { return true })
}

func (r *memoryBookingRepo) Transition(_ context.Context, id string, from models.BookingStatus, t models.BookingTransition) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status != from {
		return nil, ErrStatusConflict
	}
	b.Status = t.Status
	b.VerificationOTP = t.OTP
	b.OTPVerified = t.OTPVerified
	b.UpdatedAt = t.At
	if t.Entry != nil {
		b.StatusUpdates = append(b.StatusUpdates, *t.Entry)
	}
	return cloneBooking(b), nil
}

func (r *memoryBookingRepo) UpdateCollection(_ context.Context, id string, allowed []models.BookingStatus, u models.CollectionUpdate) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if !slices.Contains(allowed, b.Status) {
		return nil, ErrStatusConflict
	}
	if u.Sample != nil {
		if err := applySample(&b.Samples, *u.Sample, u.At); err != nil {
			return nil, err
		}
	}
	if u.Payment != nil {
		b.Payment = *u.Payment
	}
	if u.SampleHandedOverAt != nil {
		b.Handover.SampleHandedOver = true
		b.Handover.SampleHandedOverAt = u.SampleHandedOverAt
	}
	if u.AmountHandedOverAt != nil {
		b.Handover.AmountHandedOver = true
		b.Handover.AmountHandedOverAt = u.AmountHandedOverAt
	}
	b.UpdatedAt = u.At
	return cloneBooking(b), nil
}

func applySample(s *models.SampleCollection, f models.SampleFieldUpdate, at time.Time) error {
	var st *models.SampleStatus
	switch f.Type {
	case models.SampleBlood:
		st = &s.Blood.SampleStatus
		if f.IsRandom != nil {
			s.Blood.IsRandom = *f.IsRandom
		}
	case models.SampleUrine:
		st = &s.Urine.SampleStatus
		if f.NotGiven != nil {
			s.Urine.NotGiven = *f.NotGiven
		}
	case models.SampleOther:
		st = &s.Other
	default:
		return fmt.Errorf("unknown sample type %q", f.Type)
	}

	if f.Collected != nil {
		st.Collected = *f.Collected
		switch {
		case !*f.Collected:
			st.CollectedAt = nil
		case st.CollectedAt == nil:
			stamp := at
			st.CollectedAt = &stamp
		}
	}
	if f.ImageRef != nil {
		st.ImageRef = *f.ImageRef
	}
	if f.Notes != nil {
		st.Notes = *f.Notes
	}
	return nil
}

func (r *memoryBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memoryBookingRepo) ListByTeamAndDate(_ context.Context, teamID, date string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.TeamID == teamID && b.Date == date {
			out = append(out, *cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryBookingRepo) EnsureIndexes(context.Context) error { return nil }
