package orderRepo

import (
	"context"
	"errors"
	"time"

	"homecollect/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrClaimConflict is returned when the stored booking claim is not the expected one.
	ErrClaimConflict = errors.New("order booking claim changed")
)

// OrderRepository is the booking core's view of the shared orders collection.
// Orders are created by the storefront; Create exists for seeding.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// Update applies the non-nil fields of u and returns the updated order.
	Update(ctx context.Context, id string, u models.OrderUpdate) (*models.Order, error)
	// ClaimBooking sets the order's booking claim to bookingID only if the
	// stored claim still equals expected ("" for no claim).
	ClaimBooking(ctx context.Context, orderID, expected, bookingID string, at time.Time) error
	// ReleaseBookingClaim clears the claim if bookingID still holds it.
	ReleaseBookingClaim(ctx context.Context, orderID, bookingID string) error
	EnsureIndexes(ctx context.Context) error
}
