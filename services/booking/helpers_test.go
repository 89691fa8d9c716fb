package booking

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"homecollect/database/repository"
	"homecollect/models"
	"homecollect/services/team"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyBookingConfirmed(ctx context.Context, order models.Order, otp string) error {
	return m.Called(ctx, order, otp).Error(0)
}

func (m *mockNotifier) NotifyStatusUpdate(ctx context.Context, order models.Order, status models.BookingStatus, notes, otp string) error {
	return m.Called(ctx, order, status, notes, otp).Error(0)
}

func quietNotifier() *mockNotifier {
	n := &mockNotifier{}
	n.On("NotifyBookingConfirmed", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	n.On("NotifyStatusUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return n
}

var ist = time.FixedZone("IST", 5*3600+1800)

const (
	today    = "2030-01-09"
	tomorrow = "2030-01-10"
)

type fixture struct {
	svc    *DefaultBookingService
	stores *repository.Stores
	team   *models.CollectionTeam
}

func customer(id string) models.Requester  { return models.Requester{UserID: id, Role: models.RoleCustomer} }
func collector() models.Requester         { return models.Requester{UserID: "c-1", Role: models.RoleCollector} }
func admin() models.Requester             { return models.Requester{UserID: "a-1", Role: models.RoleAdmin} }

// newFixture provisions team T1 serving 560001 from 08:00 to 18:00 with
// capacity per hour, and a clock at 10:00 IST on 2030-01-09.
func newFixture(t *testing.T, capacity int, notifier *mockNotifier) *fixture {
	t.Helper()
	ctx := context.Background()
	stores := repository.NewMemoryStores()

	t1 := &models.CollectionTeam{
		ID:                 "T1",
		Name:               "North Unit",
		PostalCodes:        []string{"560001"},
		StartHour:          8,
		EndHour:            18,
		MaxBookingsPerHour: capacity,
		Active:             true,
	}
	require.NoError(t, stores.Teams.Create(ctx, t1))

	var seq atomic.Int64
	svc := NewBookingService(stores, team.NewTeamService(stores.Teams, nil, 0, nil), notifier, nil, ist, time.Second)
	svc.Now = func() time.Time { return time.Date(2030, 1, 9, 10, 0, 0, 0, ist) }
	svc.NewOTP = func() (string, error) { return fmt.Sprintf("%06d", seq.Add(1)), nil }

	return &fixture{svc: svc, stores: stores, team: t1}
}

func (f *fixture) addOrder(t *testing.T, id, userID string) {
	t.Helper()
	require.NoError(t, f.stores.Orders.Create(context.Background(), &models.Order{
		ID:           id,
		UserID:       userID,
		PatientName:  "Patient " + id,
		PatientPhone: "+91980000" + id,
		Amount:       1200,
		OrderStatus:  models.OrderPlaced,
	}))
}

func (f *fixture) book(t *testing.T, orderID, userID string, hour int) (*models.BookingConfirmation, error) {
	t.Helper()
	return f.svc.BookSlot(context.Background(), BookSlotInput{
		OrderID:    orderID,
		PostalCode: "560001",
		Date:       tomorrow,
		Hour:       hour,
	}, customer(userID))
}

func (f *fixture) order(t *testing.T, id string) *models.Order {
	t.Helper()
	o, err := f.stores.Orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	return o
}

func (f *fixture) booking(t *testing.T, orderID string) *models.Booking {
	t.Helper()
	b, err := f.stores.Bookings.GetLatestByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	return b
}
