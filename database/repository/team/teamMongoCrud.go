// File: database/repository/team/teamMongoCrud.go
package teamRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homecollect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new team document.
func (r *MongoTeamRepo) Create(ctx context.Context, team *models.CollectionTeam) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, team); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetByID retrieves a team document by its ID.
func (r *MongoTeamRepo) GetByID(ctx context.Context, id string) (*models.CollectionTeam, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var team models.CollectionTeam
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team with id %s: %w", id, err)
	}
	return &team, nil
}
