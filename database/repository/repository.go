package repository

import (
	"context"

	bookingRepo "homecollect/database/repository/booking"
	orderRepo "homecollect/database/repository/order"
	teamRepo "homecollect/database/repository/team"
	timeslotRepo "homecollect/database/repository/timeslot"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces.
type TeamRepository = teamRepo.TeamRepository

type TimeSlotRepository = timeslotRepo.TimeSlotRepository

type BookingRepository = bookingRepo.BookingRepository

type OrderRepository = orderRepo.OrderRepository

// Stores bundles every repository the booking core needs.
type Stores struct {
	Teams    TeamRepository
	Slots    TimeSlotRepository
	Bookings BookingRepository
	Orders   OrderRepository
}

// NewMongoStores wires the MongoDB implementations against db.
func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Teams:    teamRepo.NewMongoTeamRepo(db),
		Slots:    timeslotRepo.NewMongoTimeSlotRepo(db),
		Bookings: bookingRepo.NewMongoBookingRepo(db),
		Orders:   orderRepo.NewMongoOrderRepo(db),
	}
}

// NewMemoryStores wires the in-process implementations.
func NewMemoryStores() *Stores {
	return &Stores{
		Teams:    teamRepo.NewMemoryTeamRepo(),
		Slots:    timeslotRepo.NewMemoryTimeSlotRepo(),
		Bookings: bookingRepo.NewMemoryBookingRepo(),
		Orders:   orderRepo.NewMemoryOrderRepo(),
	}
}

// EnsureIndexes bootstraps indexes on every store; memory stores are no-ops.
func (s *Stores) EnsureIndexes(ctx context.Context) error {
	for _, ensure := range []func(context.Context) error{
		s.Teams.EnsureIndexes,
		s.Slots.EnsureIndexes,
		s.Bookings.EnsureIndexes,
		s.Orders.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}
