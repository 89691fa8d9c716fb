package notification

import (
	"fmt"

	"homecollect/models"
)

var statusLines = map[models.BookingStatus]string{
	models.StatusBookingConfirmed: "Your home collection is confirmed",
	models.StatusOTPVerified:      "Your collector has verified the booking",
	models.StatusOnWay:            "Your collector is on the way",
	models.StatusReached:          "Your collector has arrived",
	models.StatusCollected:        "Your samples have been collected",
	models.StatusCompleted:        "Your home collection is complete",
	models.StatusCancelled:        "Your home collection was cancelled",
}

// Render produces the title and body for a notification.
func Render(n models.BookingNotification) (string, string) {
	switch n.Kind {
	case models.NotifyBookingConfirmed:
		body := fmt.Sprintf("Hi %s, %s will visit on %s between %s.", n.PatientName, n.TeamName, n.ScheduledDate, n.TimeRange)
		if n.OTP != "" {
			body += fmt.Sprintf(" Share code %s with the collector.", n.OTP)
		}
		return "Home collection booked", body
	default:
		title, ok := statusLines[n.Status]
		if !ok {
			title = "Home collection update"
		}
		body := title + "."
		if n.Notes != "" {
			body += " " + n.Notes
		}
		if n.OTP != "" && n.Status != models.StatusCompleted && n.Status != models.StatusCancelled {
			body += fmt.Sprintf(" Your code for the next step is %s.", n.OTP)
		}
		return title, body
	}
}
