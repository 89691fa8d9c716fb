// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"errors"
	"fmt"

	"homecollect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSlotFull is returned when a reservation finds no remaining capacity.
	ErrSlotFull = errors.New("timeslot is fully booked")
	// ErrNotFound is returned when the requested slot was never created.
	ErrNotFound = errors.New("timeslot not found")
)

// TimeSlotRepository is the slot ledger: per team, per date, per hour
// occupancy counters with the booking units that occupy them.
type TimeSlotRepository interface {
	// EnsureSlots creates any missing slot for the team's working hours on date
	// and returns all of them ordered by hour.
	EnsureSlots(ctx context.Context, team models.CollectionTeam, date string) ([]models.TimeSlot, error)
	// GetByTeamAndDate returns the slots that exist, ordered by hour, without creating any.
	GetByTeamAndDate(ctx context.Context, teamID, date string) ([]models.TimeSlot, error)
	GetSlot(ctx context.Context, teamID, date string, hour int) (*models.TimeSlot, error)
	// Reserve increments occupancy and appends ref in one indivisible step,
	// or returns ErrSlotFull.
	Reserve(ctx context.Context, team models.CollectionTeam, date string, hour int, ref models.SlotBookingRef) (*models.TimeSlot, error)
	// Release removes the booking unit and decrements occupancy, floored at 0.
	// released is false when the booking no longer occupied the slot.
	Release(ctx context.Context, teamID, date string, hour int, bookingID string) (slot *models.TimeSlot, released bool, err error)
	EnsureIndexes(ctx context.Context) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo(db *mongo.Database) TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: db.Collection("timeslots"),
	}
}

func slotKey(teamID, date string, hour int) string {
	return fmt.Sprintf("%s|%s|%02d", teamID, date, hour)
}
