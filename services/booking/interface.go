package booking

import (
	"context"
	"time"

	"homecollect/database/repository"
	"homecollect/models"
	"homecollect/services/notification"
	"homecollect/utils"

	"go.uber.org/zap"
)

// SlotService lists capacity for a postal code.
type SlotService interface {
	ListSlots(ctx context.Context, postalCode, date string) (*models.SlotListing, error)
	FindNextAvailable(ctx context.Context, postalCode, date string, afterHour int) (*models.NextSlot, error)
}

// BookingService reserves slots and drives the booking lifecycle.
type BookingService interface {
	BookSlot(ctx context.Context, in BookSlotInput, requester models.Requester) (*models.BookingConfirmation, error)
	GetBooking(ctx context.Context, orderID string, requester models.Requester) (*models.Booking, error)
	CancelBooking(ctx context.Context, orderID string, requester models.Requester, reason string) error
	VerifyOTP(ctx context.Context, orderID, otp string, actor models.Requester) error
	UpdateStatus(ctx context.Context, orderID, status string, actor models.Requester, notes string) (*models.StatusChange, error)
}

// TeamResolver is satisfied by the team registry.
type TeamResolver interface {
	FindServingTeam(ctx context.Context, postalCode string) (*models.CollectionTeam, error)
}

type BookSlotInput struct {
	OrderID    string
	PostalCode string
	Date       string
	Hour       int
}

// DefaultBookingService implements SlotService and BookingService.
type DefaultBookingService struct {
	Teams         TeamResolver
	Slots         repository.TimeSlotRepository
	Bookings      repository.BookingRepository
	Orders        repository.OrderRepository
	Notifier      notification.Notifier
	Logger        *zap.Logger
	Location      *time.Location
	NotifyTimeout time.Duration
	// Now and NewOTP are replaceable in tests.
	Now    func() time.Time
	NewOTP func() (string, error)
}

func NewBookingService(
	stores *repository.Stores,
	teams TeamResolver,
	notifier notification.Notifier,
	logger *zap.Logger,
	loc *time.Location,
	notifyTimeout time.Duration,
) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &DefaultBookingService{
		Teams:         teams,
		Slots:         stores.Slots,
		Bookings:      stores.Bookings,
		Orders:        stores.Orders,
		Notifier:      notifier,
		Logger:        logger,
		Location:      loc,
		NotifyTimeout: notifyTimeout,
		Now:           time.Now,
		NewOTP:        utils.GenerateBookingOTP,
	}
}
