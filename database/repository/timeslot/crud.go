// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homecollect/models"
)

func slotFilter(teamID, date string, hour int) bson.M {
	return bson.M{"teamId": teamID, "date": date, "hour": hour}
}

func newSlotDoc(team models.CollectionTeam, date string, hour int, now time.Time) bson.M {
	return bson.M{
		"id":               uuid.New().String(),
		"teamId":           team.ID,
		"date":             date,
		"hour":             hour,
		"maxCapacity":      team.MaxBookingsPerHour,
		"currentOccupancy": 0,
		"bookings":         bson.A{},
		"createdAt":        now,
	}
}

// upsertModel creates the slot if absent and leaves an existing one untouched.
func upsertModel(team models.CollectionTeam, date string, hour int, now time.Time) *mongo.UpdateOneModel {
	doc := newSlotDoc(team, date, hour, now)
	// The filter fields are copied into the inserted document by the server.
	delete(doc, "teamId")
	delete(doc, "date")
	delete(doc, "hour")
	return mongo.NewUpdateOneModel().
		SetFilter(slotFilter(team.ID, date, hour)).
		SetUpdate(bson.M{"$setOnInsert": doc}).
		SetUpsert(true)
}

func (r *mongoTimeSlotRepo) EnsureSlots(ctx context.Context, team models.CollectionTeam, date string) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	hours := team.Hours()
	if len(hours) == 0 {
		return []models.TimeSlot{}, nil
	}

	now := time.Now()
	writes := make([]mongo.WriteModel, 0, len(hours))
	for _, h := range hours {
		writes = append(writes, upsertModel(team, date, h, now))
	}

	_, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	// A concurrent creator winning the unique index race is fine.
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("failed to create timeslots: %w", err)
	}

	filter := bson.M{
		"teamId": team.ID,
		"date":   date,
		"hour":   bson.M{"$gte": team.StartHour, "$lt": team.EndHour},
	}
	return r.find(ctx, filter)
}

func (r *mongoTimeSlotRepo) GetByTeamAndDate(ctx context.Context, teamID, date string) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.find(ctx, bson.M{"teamId": teamID, "date": date})
}

func (r *mongoTimeSlotRepo) find(ctx context.Context, filter bson.M) ([]models.TimeSlot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "hour", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeslots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.TimeSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding timeslots: %w", err)
	}
	return slots, nil
}

func (r *mongoTimeSlotRepo) GetSlot(ctx context.Context, teamID, date string, hour int) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.TimeSlot
	err := r.coll.FindOne(ctx, slotFilter(teamID, date, hour)).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &slot, nil
}
