package models

import "time"

// BookingStatus is the collector-side lifecycle state of a booking.
type BookingStatus string

const (
	StatusBookingConfirmed BookingStatus = "booking_confirmed"
	StatusOTPVerified      BookingStatus = "otp_verified"
	StatusOnWay            BookingStatus = "on_way"
	StatusReached          BookingStatus = "reached"
	StatusCollected        BookingStatus = "collected"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelled        BookingStatus = "cancelled"
)

var allStatuses = map[BookingStatus]struct{}{
	StatusBookingConfirmed: {},
	StatusOTPVerified:      {},
	StatusOnWay:            {},
	StatusReached:          {},
	StatusCollected:        {},
	StatusCompleted:        {},
	StatusCancelled:        {},
}

// Valid reports whether s is a member of the status enum.
func (s BookingStatus) Valid() bool {
	_, ok := allStatuses[s]
	return ok
}

// Active bookings hold a slot unit.
func (s BookingStatus) Active() bool {
	return s != StatusCancelled
}

// Sample types tracked per booking.
const (
	SampleBlood = "blood"
	SampleUrine = "urine"
	SampleOther = "other"
)

// StatusUpdate is one append-only history entry.
type StatusUpdate struct {
	Status    BookingStatus `bson:"status" json:"status"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
	Actor     string        `bson:"actor" json:"actor"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Booking is a single patient's reservation of one slot unit.
type Booking struct {
	ID              string           `bson:"id" json:"id"`
	OrderID         string           `bson:"orderId" json:"orderId"`
	TeamID          string           `bson:"teamId" json:"teamId"`
	TeamName        string           `bson:"teamName" json:"teamName"`
	Date            string           `bson:"date" json:"date"`
	Hour            int              `bson:"hour" json:"hour"`
	TimeRange       string           `bson:"timeRange" json:"timeRange"`
	PatientName     string           `bson:"patientName" json:"patientName"`
	PatientPhone    string           `bson:"patientPhone" json:"patientPhone"`
	Status          BookingStatus    `bson:"status" json:"status"`
	StatusUpdates   []StatusUpdate   `bson:"statusUpdates" json:"statusUpdates"`
	VerificationOTP string           `bson:"verificationOtp" json:"-"`
	OTPVerified     bool             `bson:"otpVerified" json:"otpVerified"`
	Samples         SampleCollection `bson:"samples" json:"samples"`
	Payment         PaymentRecord    `bson:"payment" json:"payment"`
	Handover        Handover         `bson:"handover" json:"handover"`
	CreatedAt       time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// SampleStatus is the common collection state of one sample type.
type SampleStatus struct {
	Collected   bool       `bson:"collected" json:"collected"`
	ImageRef    string     `bson:"imageRef,omitempty" json:"imageRef,omitempty"`
	CollectedAt *time.Time `bson:"collectedAt,omitempty" json:"collectedAt,omitempty"`
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

type BloodSample struct {
	SampleStatus `bson:",inline"`
	IsRandom     bool `bson:"isRandom" json:"isRandom"`
}

type UrineSample struct {
	SampleStatus `bson:",inline"`
	NotGiven     bool `bson:"notGiven" json:"notGiven"`
}

type SampleCollection struct {
	Blood BloodSample  `bson:"blood" json:"blood"`
	Urine UrineSample  `bson:"urine" json:"urine"`
	Other SampleStatus `bson:"other" json:"other"`
}

// PaymentRecord is cash or card collected at the doorstep.
type PaymentRecord struct {
	Amount      float64    `bson:"amount" json:"amount"`
	Method      string     `bson:"method,omitempty" json:"method,omitempty"`
	CollectedAt *time.Time `bson:"collectedAt,omitempty" json:"collectedAt,omitempty"`
}

// Handover keeps the two custody transfers independent; an order is complete
// only when both are true.
type Handover struct {
	SampleHandedOver   bool       `bson:"sampleHandedOver" json:"sampleHandedOver"`
	SampleHandedOverAt *time.Time `bson:"sampleHandedOverAt,omitempty" json:"sampleHandedOverAt,omitempty"`
	AmountHandedOver   bool       `bson:"amountHandedOver" json:"amountHandedOver"`
	AmountHandedOverAt *time.Time `bson:"amountHandedOverAt,omitempty" json:"amountHandedOverAt,omitempty"`
}

func (h Handover) Complete() bool {
	return h.SampleHandedOver && h.AmountHandedOver
}

// BookingTransition is applied atomically when the stored status still equals
// the expected one.
type BookingTransition struct {
	Status      BookingStatus
	OTP         string
	OTPVerified bool
	Entry       *StatusUpdate // nil leaves the history untouched
	At          time.Time
}

// SampleFieldUpdate names single fields of one sample type to write. Nil
// fields are not written, so updates to other fields of the same sample are
// kept. Turning Collected on stamps collectedAt unless it is already set;
// turning it off clears it.
type SampleFieldUpdate struct {
	Type      string
	Collected *bool
	ImageRef  *string
	Notes     *string
	IsRandom  *bool // blood only
	NotGiven  *bool // urine only
}

// CollectionUpdate carries the collector-side fields to set; nil fields are left alone.
type CollectionUpdate struct {
	Sample             *SampleFieldUpdate
	Payment            *PaymentRecord
	SampleHandedOverAt *time.Time
	AmountHandedOverAt *time.Time
	At                 time.Time
}
