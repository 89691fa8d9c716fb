package models

import "time"

// Order statuses touched by the booking core.
const (
	OrderPlaced     = "placed"
	OrderScheduled  = "scheduled"
	OrderProcessing = "processing"
	OrderDelivered  = "delivered"
)

// Order is owned by the storefront; the booking core reads it and keeps
// BookingDetails in step with the authoritative booking.
type Order struct {
	ID                    string          `bson:"id" json:"id"`
	UserID                string          `bson:"userId" json:"userId"`
	PatientName           string          `bson:"patientName" json:"patientName"`
	PatientPhone          string          `bson:"patientPhone" json:"patientPhone"`
	FCMToken              string          `bson:"fcmToken,omitempty" json:"-"`
	Amount                float64         `bson:"amount" json:"amount"`
	OrderStatus           string          `bson:"orderStatus" json:"orderStatus"`
	IsPaid                bool            `bson:"isPaid" json:"isPaid"`
	PaidAt                *time.Time      `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CollectionCompleted   bool            `bson:"collectionCompleted" json:"collectionCompleted"`
	CollectionCompletedAt *time.Time      `bson:"collectionCompletedAt,omitempty" json:"collectionCompletedAt,omitempty"`
	DeliveredAt           *time.Time      `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	BookingDetails        *BookingDetails `bson:"bookingDetails,omitempty" json:"bookingDetails,omitempty"`
	// BookingClaim holds the id of the one booking allowed to occupy capacity
	// for this order. It is set before a unit is reserved.
	BookingClaim     string     `bson:"bookingClaim,omitempty" json:"-"`
	BookingClaimedAt *time.Time `bson:"bookingClaimedAt,omitempty" json:"-"`
	UpdatedAt             time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// BookingDetails is the denormalised copy of the active booking.
type BookingDetails struct {
	BookingID       string         `bson:"bookingId" json:"bookingId"`
	CollectorTeamID string         `bson:"collectorTeamId" json:"collectorTeamId"`
	TeamName        string         `bson:"teamName" json:"teamName"`
	ScheduledDate   string         `bson:"scheduledDate" json:"scheduledDate"`
	ScheduledHour   int            `bson:"scheduledHour" json:"scheduledHour"`
	TimeRange       string         `bson:"timeRange" json:"timeRange"`
	VerificationOTP string         `bson:"verificationOtp" json:"-"`
	OTPVerified     bool           `bson:"otpVerified" json:"otpVerified"`
	CollectorStatus BookingStatus  `bson:"collectorStatus" json:"collectorStatus"`
	StatusUpdates   []StatusUpdate `bson:"statusUpdates" json:"statusUpdates"`
}

// DetailsFromBooking derives the order mirror from a booking.
func DetailsFromBooking(b *Booking) *BookingDetails {
	updates := make([]StatusUpdate, len(b.StatusUpdates))
	copy(updates, b.StatusUpdates)
	return &BookingDetails{
		BookingID:       b.ID,
		CollectorTeamID: b.TeamID,
		TeamName:        b.TeamName,
		ScheduledDate:   b.Date,
		ScheduledHour:   b.Hour,
		TimeRange:       b.TimeRange,
		VerificationOTP: b.VerificationOTP,
		OTPVerified:     b.OTPVerified,
		CollectorStatus: b.Status,
		StatusUpdates:   updates,
	}
}

// OrderUpdate defines the order fields the booking core may change; nil
// fields are left untouched.
type OrderUpdate struct {
	OrderStatus           *string
	BookingDetails        *BookingDetails
	ClearBookingDetails   bool
	IsPaid                *bool
	PaidAt                *time.Time
	CollectionCompleted   *bool
	CollectionCompletedAt *time.Time
	DeliveredAt           *time.Time
	UpdatedAt             time.Time
}

func StringPtr(s string) *string { return &s }
func BoolPtr(b bool) *bool       { return &b }
func IntPtr(i int) *int          { return &i }
