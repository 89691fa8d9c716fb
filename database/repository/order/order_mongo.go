package orderRepo

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

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo creates an OrderRepository over the orders collection.
func NewMongoOrderRepo(db *mongo.Database) OrderRepository {
	return &MongoOrderRepo{coll: db.Collection("orders")}
}

func (r *MongoOrderRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingDetails.bookingId", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	order.UpdatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *MongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order models.Order
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&order); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order with id %s: %w", id, err)
	}
	return &order, nil
}

// updateDoc turns an OrderUpdate into $set / $unset stages.
func updateDoc(u models.OrderUpdate) bson.M {
	set := bson.M{"updatedAt": u.UpdatedAt}
	if u.OrderStatus != nil {
		set["orderStatus"] = *u.OrderStatus
	}
	if u.BookingDetails != nil {
		set["bookingDetails"] = u.BookingDetails
	}
	if u.IsPaid != nil {
		set["isPaid"] = *u.IsPaid
	}
	if u.PaidAt != nil {
		set["paidAt"] = u.PaidAt
	}
	if u.CollectionCompleted != nil {
		set["collectionCompleted"] = *u.CollectionCompleted
	}
	if u.CollectionCompletedAt != nil {
		set["collectionCompletedAt"] = u.CollectionCompletedAt
	}
	if u.DeliveredAt != nil {
		set["deliveredAt"] = u.DeliveredAt
	}

	doc := bson.M{"$set": set}
	if u.ClearBookingDetails && u.BookingDetails == nil {
		doc["$unset"] = bson.M{"bookingDetails": ""}
	}
	return doc
}

func (r *MongoOrderRepo) Update(ctx context.Context, id string, u models.OrderUpdate) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, updateDoc(u), opts).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order with id %s: %w", id, err)
	}
	return &order, nil
}

func claimFilter(orderID, expected string) bson.M {
	if expected == "" {
		return bson.M{"id": orderID, "$or": bson.A{
			bson.M{"bookingClaim": bson.M{"$exists": false}},
			bson.M{"bookingClaim": ""},
		}}
	}
	return bson.M{"id": orderID, "bookingClaim": expected}
}

// ClaimBooking is a single conditional update, so only one of several
// concurrent claimants for the same expected value can match.
func (r *MongoOrderRepo) ClaimBooking(ctx context.Context, orderID, expected, bookingID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, claimFilter(orderID, expected), bson.M{
		"$set": bson.M{"bookingClaim": bookingID, "bookingClaimedAt": at},
	})
	if err != nil {
		return fmt.Errorf("failed to claim order %s: %w", orderID, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": orderID})
	if err != nil {
		return fmt.Errorf("failed to check order %s: %w", orderID, err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return ErrClaimConflict
}

func (r *MongoOrderRepo) ReleaseBookingClaim(ctx context.Context, orderID, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": orderID, "bookingClaim": bookingID}, bson.M{
		"$unset": bson.M{"bookingClaim": "", "bookingClaimedAt": ""},
	})
	if err != nil {
		return fmt.Errorf("failed to release claim on order %s: %w", orderID, err)
	}
	return nil
}
