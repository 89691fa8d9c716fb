package collector

import (
	"context"
	"io"
	"time"

	"homecollect/database/repository"
	"homecollect/models"
	"homecollect/services/storage"

	"go.uber.org/zap"
)

// CollectorService records what happens at the patient's door and after.
type CollectorService interface {
	RecordSample(ctx context.Context, orderID, sampleType string, req models.SampleUpdateRequest) (*models.Booking, error)
	UploadSampleImage(ctx context.Context, orderID, sampleType string, file io.Reader) (*models.Booking, error)
	RecordPayment(ctx context.Context, orderID string, amount float64, method string) (*models.Booking, error)
	MarkSampleHandover(ctx context.Context, orderID string) (*models.HandoverResult, error)
	MarkAmountHandover(ctx context.Context, orderID string) (*models.HandoverResult, error)
	Handover(ctx context.Context, orderID string, req models.HandoverRequest) (*models.HandoverResult, error)
	ListRun(ctx context.Context, teamID, date string) (*models.CollectorRun, error)
}

// DefaultCollectorService implements CollectorService.
type DefaultCollectorService struct {
	Bookings repository.BookingRepository
	Orders   repository.OrderRepository
	Images   storage.ImageStore
	Logger   *zap.Logger
	Location *time.Location
	Now      func() time.Time
}

func NewCollectorService(stores *repository.Stores, images storage.ImageStore, logger *zap.Logger, loc *time.Location) *DefaultCollectorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	if images == nil {
		images = storage.DisabledImageStore{}
	}
	return &DefaultCollectorService{
		Bookings: stores.Bookings,
		Orders:   stores.Orders,
		Images:   images,
		Logger:   logger,
		Location: loc,
		Now:      time.Now,
	}
}
