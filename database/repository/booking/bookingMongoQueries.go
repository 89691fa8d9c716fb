// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

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

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id}, nil)
}

func (r *MongoBookingRepo) GetActiveByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	filter := bson.M{"orderId": orderID, "status": bson.M{"$ne": models.StatusCancelled}}
	return r.findOne(ctx, filter, latestFirst())
}

func (r *MongoBookingRepo) GetLatestByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"orderId": orderID}, latestFirst())
}

func latestFirst() *options.FindOneOptions {
	return options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if opts == nil {
		opts = options.FindOne()
	}
	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) ListByTeamAndDate(ctx context.Context, teamID, date string) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "hour", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"teamId": teamID, "date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
