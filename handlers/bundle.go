// File: homecollect/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Slot endpoints
	ListSlots     gin.HandlerFunc
	NextAvailable gin.HandlerFunc

	// Booking endpoints
	BookSlot      gin.HandlerFunc
	GetBooking    gin.HandlerFunc
	CancelBooking gin.HandlerFunc
	VerifyOTP     gin.HandlerFunc
	UpdateStatus  gin.HandlerFunc

	// Collector endpoints
	ListRun           gin.HandlerFunc
	RecordSample      gin.HandlerFunc
	UploadSampleImage gin.HandlerFunc
	RecordPayment     gin.HandlerFunc
	Handover          gin.HandlerFunc

	// Admin endpoints
	CreateTeam gin.HandlerFunc
	ListTeams  gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(slots *SlotHandler, bookings *BookingHandler, collector *CollectorHandler, teams *TeamHandler) *HandlerBundle {
	return &HandlerBundle{
		ListSlots:     slots.ListSlots,
		NextAvailable: slots.NextAvailable,

		BookSlot:      bookings.BookSlot,
		GetBooking:    bookings.GetBooking,
		CancelBooking: bookings.CancelBooking,
		VerifyOTP:     bookings.VerifyOTP,
		UpdateStatus:  bookings.UpdateStatus,

		ListRun:           collector.ListRun,
		RecordSample:      collector.RecordSample,
		UploadSampleImage: collector.UploadSampleImage,
		RecordPayment:     collector.RecordPayment,
		Handover:          collector.Handover,

		CreateTeam: teams.CreateTeam,
		ListTeams:  teams.ListTeams,
	}
}
