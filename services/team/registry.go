package team

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	teamRepo "homecollect/database/repository/team"
	"homecollect/models"

	"go.uber.org/zap"
)

// FindServingTeam returns the active team for postalCode. When several teams
// cover the same code the highest Priority wins, then the lowest name.
func (s *DefaultTeamService) FindServingTeam(ctx context.Context, postalCode string) (*models.CollectionTeam, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, ErrNoServiceAvailable
	}

	if t, ok := s.cachedTeam(ctx, postalCode); ok {
		return t, nil
	}

	teams, err := s.Repo.FindActiveByPostalCode(ctx, postalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up team for %s: %w", postalCode, err)
	}
	if len(teams) == 0 {
		return nil, ErrNoServiceAvailable
	}

	chosen := pickTeam(teams)
	s.cacheTeam(ctx, postalCode, chosen)
	return &chosen, nil
}

func pickTeam(teams []models.CollectionTeam) models.CollectionTeam {
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Priority != teams[j].Priority {
			return teams[i].Priority > teams[j].Priority
		}
		return teams[i].Name < teams[j].Name
	})
	return teams[0]
}

func (s *DefaultTeamService) GetTeam(ctx context.Context, id string) (*models.CollectionTeam, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *DefaultTeamService) ListTeams(ctx context.Context) ([]models.CollectionTeam, error) {
	return s.Repo.List(ctx)
}

// CreateTeam validates and stores a team, then drops cached lookups for its
// postal codes so the new priority order is seen immediately.
func (s *DefaultTeamService) CreateTeam(ctx context.Context, req models.CreateTeamRequest) (*models.CollectionTeam, error) {
	t := models.CollectionTeam{
		Name:               strings.TrimSpace(req.Name),
		MaxBookingsPerHour: req.MaxBookingsPerHour,
		Priority:           req.Priority,
		Active:             true,
	}
	if req.StartHour != nil {
		t.StartHour = *req.StartHour
	}
	if req.EndHour != nil {
		t.EndHour = *req.EndHour
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	for _, code := range req.PostalCodes {
		if code = strings.TrimSpace(code); code != "" {
			t.PostalCodes = append(t.PostalCodes, code)
		}
	}
	if err := validateTeam(t); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, &t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, t.PostalCodes)
	s.Logger.Info("Collection team created",
		zap.String("teamId", t.ID), zap.String("name", t.Name), zap.Strings("postalCodes", t.PostalCodes))
	return &t, nil
}

func validateTeam(t models.CollectionTeam) error {
	switch {
	case t.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidTeam)
	case len(t.PostalCodes) == 0:
		return fmt.Errorf("%w: at least one postal code is required", ErrInvalidTeam)
	case t.StartHour < 0 || t.EndHour > 24 || t.StartHour >= t.EndHour:
		return fmt.Errorf("%w: working window must satisfy 0 <= startHour < endHour <= 24", ErrInvalidTeam)
	case t.MaxBookingsPerHour < 1:
		return fmt.Errorf("%w: maxBookingsPerHour must be at least 1", ErrInvalidTeam)
	}
	return nil
}
