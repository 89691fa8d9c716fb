package bookingRepo

import (
	"context"
	"errors"

	"homecollect/models"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	// ErrStatusConflict means the stored status was not the one the caller expected.
	ErrStatusConflict = errors.New("booking status changed concurrently")
)

// BookingRepository defines data access for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetActiveByOrderID returns the order's non-cancelled booking.
	GetActiveByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	// GetLatestByOrderID returns the most recent booking of the order in any status.
	GetLatestByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	// Transition applies t only while the stored status equals from and
	// returns the updated booking, or ErrStatusConflict.
	Transition(ctx context.Context, id string, from models.BookingStatus, t models.BookingTransition) (*models.Booking, error)
	// UpdateCollection sets the non-nil collector fields while the status is
	// one of allowed and returns the updated booking, or ErrStatusConflict.
	UpdateCollection(ctx context.Context, id string, allowed []models.BookingStatus, u models.CollectionUpdate) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	// ListByTeamAndDate returns the team's bookings for date ordered by hour then creation time.
	ListByTeamAndDate(ctx context.Context, teamID, date string) ([]models.Booking, error)
	EnsureIndexes(ctx context.Context) error
}
