package models

import "time"

// CollectionTeam is a home-collection unit serving a fixed set of postal codes.
type CollectionTeam struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	PostalCodes        []string  `bson:"postalCodes" json:"postalCodes"`
	StartHour          int       `bson:"startHour" json:"startHour"` // inclusive, 24h
	EndHour            int       `bson:"endHour" json:"endHour"`     // exclusive, 24h
	MaxBookingsPerHour int       `bson:"maxBookingsPerHour" json:"maxBookingsPerHour"`
	Priority           int       `bson:"priority" json:"priority"` // higher wins when postal codes overlap
	Active             bool      `bson:"active" json:"active"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Hours returns the working hours in order.
func (t CollectionTeam) Hours() []int {
	if t.EndHour <= t.StartHour {
		return nil
	}
	hours := make([]int, 0, t.EndHour-t.StartHour)
	for h := t.StartHour; h < t.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Works reports whether hour lies in [StartHour, EndHour).
func (t CollectionTeam) Works(hour int) bool {
	return hour >= t.StartHour && hour < t.EndHour
}

// TeamSummary is the public view embedded in slot responses.
type TeamSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

func (t CollectionTeam) Summary() TeamSummary {
	return TeamSummary{ID: t.ID, Name: t.Name, StartHour: t.StartHour, EndHour: t.EndHour}
}
