package models

// Notification kinds carried by BookingNotification.
const (
	NotifyBookingConfirmed = "booking_confirmed"
	NotifyStatusUpdate     = "status_update"
)

// BookingNotification is the self-contained message handed to the delivery
// layer, either directly or through the task queue.
type BookingNotification struct {
	Kind          string        `json:"kind"`
	OrderID       string        `json:"orderId"`
	UserID        string        `json:"userId"`
	PatientName   string        `json:"patientName"`
	PatientPhone  string        `json:"patientPhone"`
	FCMToken      string        `json:"fcmToken,omitempty"`
	Status        BookingStatus `json:"status,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	OTP           string        `json:"otp,omitempty"`
	TeamName      string        `json:"teamName,omitempty"`
	ScheduledDate string        `json:"scheduledDate,omitempty"`
	TimeRange     string        `json:"timeRange,omitempty"`
}

// NewBookingNotification snapshots the order fields a message needs.
func NewBookingNotification(kind string, order Order, otp string) BookingNotification {
	n := BookingNotification{
		Kind:         kind,
		OrderID:      order.ID,
		UserID:       order.UserID,
		PatientName:  order.PatientName,
		PatientPhone: order.PatientPhone,
		FCMToken:     order.FCMToken,
		OTP:          otp,
	}
	if d := order.BookingDetails; d != nil {
		n.TeamName = d.TeamName
		n.ScheduledDate = d.ScheduledDate
		n.TimeRange = d.TimeRange
		n.Status = d.CollectorStatus
	}
	return n
}
