package teamRepo

import (
	"context"
	"errors"

	"homecollect/models"
)

var ErrTeamNotFound = errors.New("collection team not found")

// TeamRepository defines data access for collection teams.
type TeamRepository interface {
	// Create inserts a new team record.
	Create(ctx context.Context, team *models.CollectionTeam) error
	// GetByID retrieves a team by its unique ID.
	GetByID(ctx context.Context, id string) (*models.CollectionTeam, error)
	// List returns every team, active or not, ordered by name.
	List(ctx context.Context) ([]models.CollectionTeam, error)
	// FindActiveByPostalCode returns active teams whose postal code set contains code.
	FindActiveByPostalCode(ctx context.Context, code string) ([]models.CollectionTeam, error)
	EnsureIndexes(ctx context.Context) error
}
