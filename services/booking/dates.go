package booking

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Timestamps without a zone are read as wall-clock time in the service zone.
// The fractional layout also matches values with no fraction.
const localTimestampLayout = "2006-01-02T15:04:05.999999999"

// NormalizeDate accepts YYYY-MM-DD, a zone-less timestamp or an RFC3339
// timestamp and returns the calendar day in loc.
func NormalizeDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, NewError(KindValidation, "date is required")
	}

	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return startOfDay(t), nil
	}
	if t, err := time.ParseInLocation(localTimestampLayout, raw, loc); err == nil {
		return startOfDay(t), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, NewError(KindValidation, "date %q must be YYYY-MM-DD or an ISO-8601 timestamp", raw)
	}
	return startOfDay(t.In(loc)), nil
}

// FormatDate renders a day as stored on slots and bookings.
func FormatDate(day time.Time) string {
	return day.Format(dateLayout)
}

func (s *DefaultBookingService) normalizeDate(raw string) (time.Time, error) {
	return NormalizeDate(raw, s.Location)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *DefaultBookingService) today() time.Time {
	return startOfDay(s.Now().In(s.Location))
}

// bookableDate normalizes raw and rejects days before today.
func (s *DefaultBookingService) bookableDate(raw string) (string, error) {
	day, err := s.normalizeDate(raw)
	if err != nil {
		return "", err
	}
	if day.Before(s.today()) {
		return "", ErrPastDate
	}
	return FormatDate(day), nil
}

func nextDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(dateLayout)
}
