package teamRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTeamRepo implements TeamRepository using MongoDB.
type MongoTeamRepo struct {
	coll *mongo.Collection
}

// NewMongoTeamRepo creates a TeamRepository over the collection_teams collection.
func NewMongoTeamRepo(db *mongo.Database) TeamRepository {
	return &MongoTeamRepo{coll: db.Collection("collection_teams")}
}

func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoTeamRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "postalCodes", Value: 1}, {Key: "active", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create team indexes: %w", err)
	}
	return nil
}
