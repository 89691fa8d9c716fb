package booking

import (
	"context"
	"errors"
	"fmt"

	"homecollect/models"
	"homecollect/services/team"
)

func (s *DefaultBookingService) resolveTeam(ctx context.Context, postalCode string) (*models.CollectionTeam, error) {
	t, err := s.Teams.FindServingTeam(ctx, postalCode)
	if err != nil {
		if errors.Is(err, team.ErrNoServiceAvailable) {
			return nil, ErrNoServiceAvailable
		}
		return nil, fmt.Errorf("failed to resolve collection team: %w", err)
	}
	return t, nil
}

// ListSlots returns every working hour of the serving team on date, creating
// missing slots on the way. Past dates are refused before anything is written.
func (s *DefaultBookingService) ListSlots(ctx context.Context, postalCode, date string) (*models.SlotListing, error) {
	day, err := s.bookableDate(date)
	if err != nil {
		return nil, err
	}
	t, err := s.resolveTeam(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	slots, err := s.Slots.EnsureSlots(ctx, *t, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}

	views := make([]models.SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, slot.View())
	}
	return &models.SlotListing{Team: t.Summary(), Date: day, Slots: views}, nil
}

func (s *DefaultBookingService) FindNextAvailable(ctx context.Context, postalCode, date string, afterHour int) (*models.NextSlot, error) {
	if afterHour < -1 || afterHour > 23 {
		return nil, NewError(KindValidation, "afterHour must be between -1 and 23")
	}
	day, err := s.bookableDate(date)
	if err != nil {
		return nil, err
	}
	t, err := s.resolveTeam(ctx, postalCode)
	if err != nil {
		return nil, err
	}
	return s.nextAvailable(ctx, *t, day, afterHour)
}

// nextAvailable scans hours after afterHour without creating slots; a slot
// that does not exist yet has the team's full capacity.
func (s *DefaultBookingService) nextAvailable(ctx context.Context, t models.CollectionTeam, date string, afterHour int) (*models.NextSlot, error) {
	existing, err := s.Slots.GetByTeamAndDate(ctx, t.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	byHour := make(map[int]models.TimeSlot, len(existing))
	for _, slot := range existing {
		byHour[slot.Hour] = slot
	}

	start := max(afterHour+1, t.StartHour)
	for h := start; h < t.EndHour; h++ {
		remaining := t.MaxBookingsPerHour
		if slot, ok := byHour[h]; ok {
			remaining = slot.RemainingCapacity()
		}
		if remaining > 0 {
			return &models.NextSlot{
				Available:      true,
				Date:           date,
				Hour:           models.IntPtr(h),
				TimeRange:      models.HourRange(h),
				RemainingSlots: models.IntPtr(remaining),
			}, nil
		}
	}

	return &models.NextSlot{
		Available:          false,
		NextDate:           nextDate(date),
		SuggestedHour:      models.IntPtr(t.StartHour),
		SuggestedTimeRange: models.HourRange(t.StartHour),
	}, nil
}
