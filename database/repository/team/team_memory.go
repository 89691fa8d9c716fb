package teamRepo

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"homecollect/models"

	"github.com/google/uuid"
)

type memoryTeamRepo struct {
	mu    sync.RWMutex
	teams map[string]models.CollectionTeam
}

// NewMemoryTeamRepo constructs an in-process TeamRepository.
func NewMemoryTeamRepo() TeamRepository {
	return &memoryTeamRepo{teams: make(map[string]models.CollectionTeam)}
}

func cloneTeam(t models.CollectionTeam) models.CollectionTeam {
	t.PostalCodes = slices.Clone(t.PostalCodes)
	return t
}

func (r *memoryTeamRepo) Create(_ context.Context, team *models.CollectionTeam) error {
	if team.ID == "" {
		team.ID = uuid.New().String()
	}
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[team.ID] = cloneTeam(*team)
	return nil
}

func (r *memoryTeamRepo) GetByID(_ context.Context, id string) (*models.CollectionTeam, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	out := cloneTeam(t)
	return &out, nil
}

func (r *memoryTeamRepo) List(ctx context.Context) ([]models.CollectionTeam, error) {
	return r.filter(func(models.CollectionTeam) bool { return true }), nil
}

func (r *memoryTeamRepo) FindActiveByPostalCode(_ context.Context, code string) ([]models.CollectionTeam, error) {
	return r.filter(func(t models.CollectionTeam) bool {
		return t.Active && slices.Contains(t.PostalCodes, code)
	}), nil
}

func (r *memoryTeamRepo) filter(keep func(models.CollectionTeam) bool) []models.CollectionTeam {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.CollectionTeam{}
	for _, t := range r.teams {
		if keep(t) {
			out = append(out, cloneTeam(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *memoryTeamRepo) EnsureIndexes(context.Context) error { return nil }
