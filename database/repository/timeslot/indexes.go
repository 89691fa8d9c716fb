// FILE: database/repository/timeslot/indexes.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the timeslots collection.
func (r *mongoTimeSlotRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// One document per (team, date, hour); lazy creation relies on it.
		{
			Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "date", Value: 1}, {Key: "hour", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("team_date_hour_unique"),
		},
		{
			Keys:    bson.D{{Key: "bookings.bookingId", Value: 1}},
			Options: options.Index().SetName("booking_ref_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create timeslot indexes: %w", err)
	}
	return nil
}

func (r *memoryTimeSlotRepo) EnsureIndexes(context.Context) error { return nil }
