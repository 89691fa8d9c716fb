// File: database/repository/booking/bookingMongoCrud.go
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

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Delete removes a booking document by its ID.
func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Transition is a compare-and-set on status.
func (r *MongoBookingRepo) Transition(ctx context.Context, id string, from models.BookingStatus, t models.BookingTransition) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":          t.Status,
			"verificationOtp": t.OTP,
			"otpVerified":     t.OTPVerified,
			"updatedAt":       t.At,
		},
	}
	if t.Entry != nil {
		update["$push"] = bson.M{"statusUpdates": t.Entry}
	}

	return r.findOneAndUpdate(ctx, bson.M{"id": id, "status": from}, update)
}

// UpdateCollection sets collector-side fields guarded by the allowed statuses.
// Sample fields are written one path at a time in an update pipeline so a
// concurrent write to another field of the same sample is not overwritten.
func (r *MongoBookingRepo) UpdateCollection(ctx context.Context, id string, allowed []models.BookingStatus, u models.CollectionUpdate) (*models.Booking, error) {
	set := bson.M{"updatedAt": literal(u.At)}
	var unset []string
	if u.Sample != nil {
		var err error
		if unset, err = sampleFields(set, *u.Sample, u.At); err != nil {
			return nil, err
		}
	}
	if u.Payment != nil {
		set["payment"] = literal(u.Payment)
	}
	if u.SampleHandedOverAt != nil {
		set["handover.sampleHandedOver"] = literal(true)
		set["handover.sampleHandedOverAt"] = literal(u.SampleHandedOverAt)
	}
	if u.AmountHandedOverAt != nil {
		set["handover.amountHandedOver"] = literal(true)
		set["handover.amountHandedOverAt"] = literal(u.AmountHandedOverAt)
	}

	pipeline := mongo.Pipeline{{{Key: "$set", Value: set}}}
	if len(unset) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$unset", Value: unset}})
	}

	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": allowed}}
	return r.findOneAndUpdate(ctx, filter, pipeline)
}

// sampleFields adds the written fields of f to set and returns the paths to
// remove.
func sampleFields(set bson.M, f models.SampleFieldUpdate, at time.Time) ([]string, error) {
	switch f.Type {
	case models.SampleBlood, models.SampleUrine, models.SampleOther:
	default:
		return nil, fmt.Errorf("unknown sample type %q", f.Type)
	}
	prefix := "samples." + f.Type + "."

	var unset []string
	if f.Collected != nil {
		set[prefix+"collected"] = literal(*f.Collected)
		if *f.Collected {
			set[prefix+"collectedAt"] = bson.M{"$ifNull": bson.A{"$" + prefix + "collectedAt", at}}
		} else {
			unset = append(unset, prefix+"collectedAt")
		}
	}
	if f.ImageRef != nil {
		set[prefix+"imageRef"] = literal(*f.ImageRef)
	}
	if f.Notes != nil {
		set[prefix+"notes"] = literal(*f.Notes)
	}
	if f.IsRandom != nil && f.Type == models.SampleBlood {
		set[prefix+"isRandom"] = literal(*f.IsRandom)
	}
	if f.NotGiven != nil && f.Type == models.SampleUrine {
		set[prefix+"notGiven"] = literal(*f.NotGiven)
	}
	return unset, nil
}

// literal keeps pipeline values such as "$..." strings from being read as
// field paths.
func literal(v interface{}) bson.M {
	return bson.M{"$literal": v}
}

func (r *MongoBookingRepo) findOneAndUpdate(ctx context.Context, filter bson.M, update interface{}) (*models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if err == nil {
		return &booking, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	// Tell a missing booking apart from a lost race.
	n, cerr := r.coll.CountDocuments(ctx, bson.M{"id": filter["id"]})
	if cerr != nil {
		return nil, fmt.Errorf("failed to update booking: %w", cerr)
	}
	if n == 0 {
		return nil, ErrBookingNotFound
	}
	return nil, ErrStatusConflict
}
