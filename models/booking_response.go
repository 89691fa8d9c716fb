package models

// BookingConfirmation is returned after a successful reservation.
type BookingConfirmation struct {
	BookingID      string `json:"bookingId"`
	TeamName       string `json:"teamName"`
	ScheduledDate  string `json:"scheduledDate"`
	TimeRange      string `json:"timeRange"`
	RemainingSlots int    `json:"remainingSlots"`
}

// StatusChange reports an accepted lifecycle transition.
type StatusChange struct {
	OldStatus BookingStatus `json:"oldStatus"`
	NewStatus BookingStatus `json:"newStatus"`
}

// RunStop is one booking on a collector's day run.
type RunStop struct {
	BookingID    string        `json:"bookingId"`
	OrderID      string        `json:"orderId"`
	Hour         int           `json:"hour"`
	TimeRange    string        `json:"timeRange"`
	PatientName  string        `json:"patientName"`
	PatientPhone string        `json:"patientPhone"`
	Status       BookingStatus `json:"status"`
	OTPVerified  bool          `json:"otpVerified"`
	Handover     Handover      `json:"handover"`
}

// CollectorRun lists a team's bookings for one day in visiting order.
type CollectorRun struct {
	TeamID string    `json:"teamId"`
	Date   string    `json:"date"`
	Stops  []RunStop `json:"stops"`
}

// HandoverResult reports the handover flags and the derived order flag.
type HandoverResult struct {
	Handover            Handover `json:"handover"`
	CollectionCompleted bool     `json:"collectionCompleted"`
}
