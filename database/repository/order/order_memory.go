package orderRepo

import (
	"context"
	"slices"
	"sync"
	"time"

	"homecollect/models"
)

type memoryOrderRepo struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

// NewMemoryOrderRepo constructs an in-process OrderRepository.
func NewMemoryOrderRepo() OrderRepository {
	return &memoryOrderRepo{orders: make(map[string]*models.Order)}
}

func cloneOrder(o *models.Order) *models.Order {
	out := *o
	if o.BookingDetails != nil {
		d := *o.BookingDetails
		d.StatusUpdates = slices.Clone(d.StatusUpdates)
		out.BookingDetails = &d
	}
	return &out
}

func (r *memoryOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memoryOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *memoryOrderRepo) Update(_ context.Context, id string, u models.OrderUpdate) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if u.OrderStatus != nil {
		o.OrderStatus = *u.OrderStatus
	}
	if u.BookingDetails != nil {
		o.BookingDetails = cloneOrder(&models.Order{BookingDetails: u.BookingDetails}).BookingDetails
	} else if u.ClearBookingDetails {
		o.BookingDetails = nil
	}
	if u.IsPaid != nil {
		o.IsPaid = *u.IsPaid
	}
	if u.PaidAt != nil {
		o.PaidAt = u.PaidAt
	}
	if u.CollectionCompleted != nil {
		o.CollectionCompleted = *u.CollectionCompleted
	}
	if u.CollectionCompletedAt != nil {
		o.CollectionCompletedAt = u.CollectionCompletedAt
	}
	if u.DeliveredAt != nil {
		o.DeliveredAt = u.DeliveredAt
	}
	o.UpdatedAt = u.UpdatedAt
	return cloneOrder(o), nil
}

func (r *memoryOrderRepo) ClaimBooking(_ context.Context, orderID, expected, bookingID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if o.BookingClaim != expected {
		return ErrClaimConflict
	}
	o.BookingClaim = bookingID
	o.BookingClaimedAt = &at
	return nil
}

func (r *memoryOrderRepo) ReleaseBookingClaim(_ context.Context, orderID, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	if o.BookingClaim == bookingID {
		o.BookingClaim = ""
		o.BookingClaimedAt = nil
	}
	return nil
}

func (r *memoryOrderRepo) EnsureIndexes(context.Context) error { return nil }
