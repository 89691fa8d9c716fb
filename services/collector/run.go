package collector

import (
	"context"
	"fmt"
	"strings"

	"homecollect/models"
	"homecollect/services/booking"
)

// ListRun returns the team's active bookings for a day, ordered by hour and
// then by booking time.
func (s *DefaultCollectorService) ListRun(ctx context.Context, teamID, date string) (*models.CollectorRun, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, booking.NewError(booking.KindValidation, "teamId is required")
	}
	day, err := booking.NormalizeDate(date, s.Location)
	if err != nil {
		return nil, err
	}
	dateStr := booking.FormatDate(day)

	bookings, err := s.Bookings.ListByTeamAndDate(ctx, teamID, dateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to list run: %w", err)
	}

	run := &models.CollectorRun{TeamID: teamID, Date: dateStr, Stops: []models.RunStop{}}
	for _, b := range bookings {
		if !b.Status.Active() {
			continue
		}
		run.Stops = append(run.Stops, models.RunStop{
			BookingID:    b.ID,
			OrderID:      b.OrderID,
			Hour:         b.Hour,
			TimeRange:    b.TimeRange,
			PatientName:  b.PatientName,
			PatientPhone: b.PatientPhone,
			Status:       b.Status,
			OTPVerified:  b.OTPVerified,
			Handover:     b.Handover,
		})
	}
	return run, nil
}
