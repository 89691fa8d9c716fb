package models

import (
	"fmt"
	"time"
)

// TimeSlot is one hour of one team's capacity on one calendar day.
// The (TeamID, Date, Hour) triple is unique.
type TimeSlot struct {
	ID               string           `bson:"id" json:"id"`
	TeamID           string           `bson:"teamId" json:"teamId"`
	Date             string           `bson:"date" json:"date"` // e.g., "2025-03-01"
	Hour             int              `bson:"hour" json:"hour"`
	MaxCapacity      int              `bson:"maxCapacity" json:"maxCapacity"`
	CurrentOccupancy int              `bson:"currentOccupancy" json:"currentOccupancy"`
	Bookings         []SlotBookingRef `bson:"bookings" json:"bookings"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
}

// SlotBookingRef is the unit a booking occupies inside a slot.
type SlotBookingRef struct {
	BookingID   string    `bson:"bookingId" json:"bookingId"`
	OrderID     string    `bson:"orderId" json:"orderId"`
	PatientName string    `bson:"patientName,omitempty" json:"patientName,omitempty"`
	BookedAt    time.Time `bson:"bookedAt" json:"bookedAt"`
}

func (s TimeSlot) IsAvailable() bool {
	return s.CurrentOccupancy < s.MaxCapacity
}

func (s TimeSlot) RemainingCapacity() int {
	if r := s.MaxCapacity - s.CurrentOccupancy; r > 0 {
		return r
	}
	return 0
}

func (s TimeSlot) TimeRange() string {
	return HourRange(s.Hour)
}

// HourRange formats an hour as "HH:00 - HH+1:00".
func HourRange(hour int) string {
	return fmt.Sprintf("%02d:00 - %02d:00", hour, hour+1)
}

// SlotView is the client-facing slot entry.
type SlotView struct {
	Hour            int    `json:"hour"`
	TimeRange       string `json:"timeRange"`
	Available       bool   `json:"available"`
	CurrentBookings int    `json:"currentBookings"`
	MaxBookings     int    `json:"maxBookings"`
	RemainingSlots  int    `json:"remainingSlots"`
}

func (s TimeSlot) View() SlotView {
	return SlotView{
		Hour:            s.Hour,
		TimeRange:       s.TimeRange(),
		Available:       s.IsAvailable(),
		CurrentBookings: s.CurrentOccupancy,
		MaxBookings:     s.MaxCapacity,
		RemainingSlots:  s.RemainingCapacity(),
	}
}

// SlotListing is the response of a slot listing for one team and day.
type SlotListing struct {
	Team  TeamSummary `json:"team"`
	Date  string      `json:"date"`
	Slots []SlotView  `json:"slots"`
}

// NextSlot is either a concrete hour with capacity on the requested day or a
// suggestion to try the team's opening hour on the next day.
type NextSlot struct {
	Available          bool   `json:"available"`
	Date               string `json:"date,omitempty"`
	Hour               *int   `json:"hour,omitempty"`
	TimeRange          string `json:"timeRange,omitempty"`
	RemainingSlots     *int   `json:"remainingSlots,omitempty"`
	NextDate           string `json:"nextDate,omitempty"`
	SuggestedHour      *int   `json:"suggestedHour,omitempty"`
	SuggestedTimeRange string `json:"suggestedTimeRange,omitempty"`
}
