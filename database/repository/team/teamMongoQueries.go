// File: database/repository/team/teamMongoQueries.go
package teamRepo

import (
	"context"
	"fmt"
	"time"

	"homecollect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List retrieves all teams sorted by name.
func (r *MongoTeamRepo) List(ctx context.Context) ([]models.CollectionTeam, error) {
	return r.find(ctx, bson.M{})
}

// FindActiveByPostalCode matches code against the postalCodes array.
func (r *MongoTeamRepo) FindActiveByPostalCode(ctx context.Context, code string) ([]models.CollectionTeam, error) {
	return r.find(ctx, bson.M{"postalCodes": code, "active": true})
}

func (r *MongoTeamRepo) find(ctx context.Context, filter bson.M) ([]models.CollectionTeam, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer cursor.Close(ctx)

	teams := []models.CollectionTeam{}
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("error decoding teams: %w", err)
	}
	return teams, nil
}
