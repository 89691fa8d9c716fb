package team

import (
	"context"
	"errors"
	"time"

	"homecollect/database/repository"
	"homecollect/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// ErrNoServiceAvailable is returned when no active team covers a postal code.
	ErrNoServiceAvailable = errors.New("no collection team serves this postal code")
	ErrInvalidTeam        = errors.New("invalid team definition")
	ErrTeamNotFound       = errors.New("collection team not found")
)

// TeamService is the collection team registry.
type TeamService interface {
	// FindServingTeam resolves the active team responsible for postalCode.
	FindServingTeam(ctx context.Context, postalCode string) (*models.CollectionTeam, error)
	GetTeam(ctx context.Context, id string) (*models.CollectionTeam, error)
	CreateTeam(ctx context.Context, req models.CreateTeamRequest) (*models.CollectionTeam, error)
	ListTeams(ctx context.Context) ([]models.CollectionTeam, error)
}

// DefaultTeamService implements TeamService. Cache may be nil.
type DefaultTeamService struct {
	Repo     repository.TeamRepository
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

func NewTeamService(repo repository.TeamRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *DefaultTeamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultTeamService{Repo: repo, Cache: cache, CacheTTL: ttl, Logger: logger}
}
