package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homecollect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserve takes one unit of the slot. The capacity guard and the increment are
// evaluated by the server in a single document update, so concurrent callers
// can never push occupancy past maxCapacity.
func (r *mongoTimeSlotRepo) Reserve(
	ctx context.Context,
	team models.CollectionTeam,
	date string,
	hour int,
	ref models.SlotBookingRef,
) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Step 1: lazily create the slot.
	_, err := r.coll.BulkWrite(ctx, []mongo.WriteModel{upsertModel(team, date, hour, time.Now())})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("failed to create timeslot: %w", err)
	}

	// Step 2: guarded increment.
	filter := slotFilter(team.ID, date, hour)
	filter["$expr"] = bson.M{"$lt": bson.A{"$currentOccupancy", "$maxCapacity"}}
	update := bson.M{
		"$inc":  bson.M{"currentOccupancy": 1},
		"$push": bson.M{"bookings": ref},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.TimeSlot
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSlotFull
		}
		return nil, fmt.Errorf("failed to reserve timeslot: %w", err)
	}
	return &slot, nil
}

// Release gives back the unit held by bookingID. The filter only matches while
// the booking ref is still present, so a second release is a no-op.
func (r *mongoTimeSlotRepo) Release(ctx context.Context, teamID, date string, hour int, bookingID string) (*models.TimeSlot, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	pull := bson.M{"bookings": bson.M{"bookingId": bookingID}}

	filter := slotFilter(teamID, date, hour)
	filter["bookings.bookingId"] = bookingID
	filter["currentOccupancy"] = bson.M{"$gt": 0}

	var slot models.TimeSlot
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{
		"$inc":  bson.M{"currentOccupancy": -1},
		"$pull": pull,
	}, opts).Decode(&slot)
	if err == nil {
		return &slot, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("failed to release timeslot: %w", err)
	}

	// Occupancy already at 0 but the ref is still there: drop the ref only.
	floorFilter := slotFilter(teamID, date, hour)
	floorFilter["bookings.bookingId"] = bookingID
	err = r.coll.FindOneAndUpdate(ctx, floorFilter, bson.M{"$pull": pull}, opts).Decode(&slot)
	if err == nil {
		return &slot, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("failed to release timeslot: %w", err)
	}

	current, err := r.GetSlot(ctx, teamID, date, hour)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}
