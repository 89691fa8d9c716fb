package collector

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"homecollect/database/repository"
	"homecollect/models"
	"homecollect/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockImages struct{ mock.Mock }

func (m *mockImages) UploadSampleImage(ctx context.Context, orderID, sampleType string, file io.Reader) (string, error) {
	args := m.Called(ctx, orderID, sampleType, file)
	return args.String(0), args.Error(1)
}

func (m *mockImages) DeleteImage(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

var clock = time.Date(2030, 1, 10, 9, 30, 0, 0, time.UTC)

func newTracker(t *testing.T, status models.BookingStatus) (*DefaultCollectorService, *repository.Stores) {
	t.Helper()
	ctx := context.Background()
	stores := repository.NewMemoryStores()

	require.NoError(t, stores.Orders.Create(ctx, &models.Order{ID: "o-1", UserID: "u-1", Amount: 800, OrderStatus: models.OrderScheduled}))
	require.NoError(t, stores.Bookings.Create(ctx, &models.Booking{
		ID:        "b-1",
		OrderID:   "o-1",
		TeamID:    "T1",
		Date:      "2030-01-10",
		Hour:      9,
		TimeRange: models.HourRange(9),
		Status:    status,
		CreatedAt: clock.Add(-time.Hour),
	}))

	svc := NewCollectorService(stores, nil, nil, time.UTC)
	svc.Now = func() time.Time { return clock }
	return svc, stores
}

func TestRecordSample_RequiresCollectorAtDoor(t *testing.T) {
	svc, _ := newTracker(t, models.StatusOnWay)

	_, err := svc.RecordSample(context.Background(), "o-1", models.SampleBlood, models.SampleUpdateRequest{Collected: true})
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestRecordSample_StampsCollectedAt(t *testing.T) {
	svc, _ := newTracker(t, models.StatusReached)
	ctx := context.Background()

	b, err := svc.RecordSample(ctx, "o-1", models.SampleBlood, models.SampleUpdateRequest{Collected: true, IsRandom: true, Notes: "left arm"})
	require.NoError(t, err)
	assert.True(t, b.Samples.Blood.Collected)
	assert.True(t, b.Samples.Blood.IsRandom)
	assert.Equal(t, "left arm", b.Samples.Blood.Notes)
	require.NotNil(t, b.Samples.Blood.CollectedAt)
	assert.Equal(t, clock, *b.Samples.Blood.CollectedAt)

	// A later update keeps the first collection time.
	svc.Now = func() time.Time { return clock.Add(time.Minute) }
	b, err = svc.RecordSample(ctx, "o-1", models.SampleBlood, models.SampleUpdateRequest{Collected: true, IsRandom: true})
	require.NoError(t, err)
	assert.Equal(t, clock, *b.Samples.Blood.CollectedAt)
	assert.Equal(t, "left arm", b.Samples.Blood.Notes)

	b, err = svc.RecordSample(ctx, "o-1", models.SampleUrine, models.SampleUpdateRequest{NotGiven: true})
	require.NoError(t, err)
	assert.True(t, b.Samples.Urine.NotGiven)
	assert.False(t, b.Samples.Urine.Collected)
	assert.Nil(t, b.Samples.Urine.CollectedAt)

	_, err = svc.RecordSample(ctx, "o-1", "saliva", models.SampleUpdateRequest{})
	assert.ErrorIs(t, err, booking.ErrValidation)
}

func TestRecordSample_NoBooking(t *testing.T) {
	svc, _ := newTracker(t, models.StatusReached)

	_, err := svc.RecordSample(context.Background(), "o-2", models.SampleBlood, models.SampleUpdateRequest{})
	assert.ErrorIs(t, err, booking.ErrNoBooking)
}

func TestUploadSampleImage_RecordsReference(t *testing.T) {
	svc, _ := newTracker(t, models.StatusCollected)
	images := &mockImages{}
	images.On("UploadSampleImage", mock.Anything, "o-1", models.SampleOther, mock.Anything).
		Return("https://img.example/o-1_other.jpg", nil)
	svc.Images = images

	b, err := svc.UploadSampleImage(context.Background(), "o-1", models.SampleOther, strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/o-1_other.jpg", b.Samples.Other.ImageRef)
	assert.False(t, b.Samples.Other.Collected)
	images.AssertExpectations(t)
}

func TestRecordPayment_MarksOrderPaid(t *testing.T) {
	svc, stores := newTracker(t, models.StatusReached)
	ctx := context.Background()

	b, err := svc.RecordPayment(ctx, "o-1", 800, "cash")
	require.NoError(t, err)
	assert.Equal(t, 800.0, b.Payment.Amount)
	assert.Equal(t, "cash", b.Payment.Method)

	o, err := stores.Orders.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.True(t, o.IsPaid)
	require.NotNil(t, o.PaidAt)

	_, err = svc.RecordPayment(ctx, "o-1", -1, "cash")
	assert.ErrorIs(t, err, booking.ErrValidation)
}

func TestHandover_CompletesOnlyWhenBothFlagsSet(t *testing.T) {
	steps := map[string][]func(*DefaultCollectorService) (*models.HandoverResult, error){
		"sample first": {
			func(s *DefaultCollectorService) (*models.HandoverResult, error) { return s.MarkSampleHandover(context.Background(), "o-1") },
			func(s *DefaultCollectorService) (*models.HandoverResult, error) { return s.MarkAmountHandover(context.Background(), "o-1") },
		},
		"amount first": {
			func(s *DefaultCollectorService) (*models.HandoverResult, error) { return s.MarkAmountHandover(context.Background(), "o-1") },
			func(s *DefaultCollectorService) (*models.HandoverResult, error) { return s.MarkSampleHandover(context.Background(), "o-1") },
		},
	}

	for name, seq := range steps {
		t.Run(name, func(t *testing.T) {
			svc, stores := newTracker(t, models.StatusCollected)

			first, err := seq[0](svc)
			require.NoError(t, err)
			assert.False(t, first.CollectionCompleted)

			o, err := stores.Orders.GetByID(context.Background(), "o-1")
			require.NoError(t, err)
			assert.False(t, o.CollectionCompleted)

			second, err := seq[1](svc)
			require.NoError(t, err)
			assert.True(t, second.CollectionCompleted)
			assert.True(t, second.Handover.SampleHandedOver)
			assert.True(t, second.Handover.AmountHandedOver)

			o, err = stores.Orders.GetByID(context.Background(), "o-1")
			require.NoError(t, err)
			assert.True(t, o.CollectionCompleted)
			assert.NotNil(t, o.CollectionCompletedAt)
		})
	}
}

func TestHandover_ConcurrentFlagsStillComplete(t *testing.T) {
	svc, stores := newTracker(t, models.StatusCompleted)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _, _ = svc.MarkSampleHandover(context.Background(), "o-1") }()
	go func() { defer wg.Done(); _, _ = svc.MarkAmountHandover(context.Background(), "o-1") }()
	wg.Wait()

	o, err := stores.Orders.GetByID(context.Background(), "o-1")
	require.NoError(t, err)
	assert.True(t, o.CollectionCompleted)
}

func TestHandover_Rules(t *testing.T) {
	svc, _ := newTracker(t, models.StatusReached)

	_, err := svc.MarkSampleHandover(context.Background(), "o-1")
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)

	_, err = svc.Handover(context.Background(), "o-1", models.HandoverRequest{})
	assert.ErrorIs(t, err, booking.ErrValidation)
}

func TestHandover_RepeatKeepsFirstTimestamp(t *testing.T) {
	svc, _ := newTracker(t, models.StatusCollected)

	first, err := svc.MarkSampleHandover(context.Background(), "o-1")
	require.NoError(t, err)

	svc.Now = func() time.Time { return clock.Add(time.Hour) }
	again, err := svc.MarkSampleHandover(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, *first.Handover.SampleHandedOverAt, *again.Handover.SampleHandedOverAt)
}

func TestHandover_RepeatKeepsCompletionTime(t *testing.T) {
	svc, stores := newTracker(t, models.StatusCollected)
	ctx := context.Background()

	_, err := svc.MarkSampleHandover(ctx, "o-1")
	require.NoError(t, err)
	_, err = svc.MarkAmountHandover(ctx, "o-1")
	require.NoError(t, err)

	o, err := stores.Orders.GetByID(ctx, "o-1")
	require.NoError(t, err)
	require.NotNil(t, o.CollectionCompletedAt)
	completedAt := *o.CollectionCompletedAt

	svc.Now = func() time.Time { return clock.Add(2 * time.Hour) }
	res, err := svc.Handover(ctx, "o-1", models.HandoverRequest{Sample: true, Amount: true})
	require.NoError(t, err)
	assert.True(t, res.CollectionCompleted)

	_, err = svc.MarkAmountHandover(ctx, "o-1")
	require.NoError(t, err)

	o, err = stores.Orders.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.True(t, o.CollectionCompleted)
	require.NotNil(t, o.CollectionCompletedAt)
	assert.True(t, completedAt.Equal(*o.CollectionCompletedAt))
}

func TestUploadSampleImage_KeepsConcurrentSampleRecord(t *testing.T) {
	svc, stores := newTracker(t, models.StatusReached)
	ctx := context.Background()

	uploading := make(chan struct{})
	recorded := make(chan struct{})
	images := &mockImages{}
	images.On("UploadSampleImage", mock.Anything, "o-1", models.SampleBlood, mock.Anything).
		Run(func(mock.Arguments) {
			close(uploading)
			<-recorded
		}).
		Return("https://img.example/o-1_blood.jpg", nil)
	svc.Images = images

	done := make(chan error, 1)
	go func() {
		_, err := svc.UploadSampleImage(ctx, "o-1", models.SampleBlood, strings.NewReader("jpeg"))
		done <- err
	}()

	// The upload has already read the booking when the sample is recorded.
	<-uploading
	_, err := svc.RecordSample(ctx, "o-1", models.SampleBlood, models.SampleUpdateRequest{Collected: true, Notes: "left arm"})
	require.NoError(t, err)
	close(recorded)
	require.NoError(t, <-done)

	b, err := stores.Bookings.GetByID(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/o-1_blood.jpg", b.Samples.Blood.ImageRef)
	assert.True(t, b.Samples.Blood.Collected)
	assert.Equal(t, "left arm", b.Samples.Blood.Notes)
	require.NotNil(t, b.Samples.Blood.CollectedAt)
	assert.Equal(t, clock, *b.Samples.Blood.CollectedAt)
}

func TestRecordSample_LeavesImageReference(t *testing.T) {
	svc, _ := newTracker(t, models.StatusReached)
	ctx := context.Background()
	images := &mockImages{}
	images.On("UploadSampleImage", mock.Anything, "o-1", models.SampleUrine, mock.Anything).
		Return("https://img.example/o-1_urine.jpg", nil)
	svc.Images = images

	_, err := svc.UploadSampleImage(ctx, "o-1", models.SampleUrine, strings.NewReader("jpeg"))
	require.NoError(t, err)

	b, err := svc.RecordSample(ctx, "o-1", models.SampleUrine, models.SampleUpdateRequest{Collected: true})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/o-1_urine.jpg", b.Samples.Urine.ImageRef)
	assert.True(t, b.Samples.Urine.Collected)

	b, err = svc.RecordSample(ctx, "o-1", models.SampleUrine, models.SampleUpdateRequest{Collected: false})
	require.NoError(t, err)
	assert.False(t, b.Samples.Urine.Collected)
	assert.Nil(t, b.Samples.Urine.CollectedAt)
	assert.Equal(t, "https://img.example/o-1_urine.jpg", b.Samples.Urine.ImageRef)
}
