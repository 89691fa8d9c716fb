package booking

import (
	"context"
	"testing"

	"homecollect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookedFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t, 5, quietNotifier())
	f.addOrder(t, "1", "u1")
	_, err := f.book(t, "1", "u1", 9)
	require.NoError(t, err)
	return f
}

func TestUpdateStatus_UnknownStatusLeavesHistoryUntouched(t *testing.T) {
	f := bookedFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), "1", "teleported", collector(), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	b := f.booking(t, "1")
	assert.Equal(t, models.StatusBookingConfirmed, b.Status)
	assert.Len(t, b.StatusUpdates, 1)
}

func TestUpdateStatus_RequiresStaff(t *testing.T) {
	f := bookedFixture(t)

	_, err := f.svc.UpdateStatus(context.Background(), "1", string(models.StatusOnWay), customer("u1"), "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_EnforcesOrder(t *testing.T) {
	f := bookedFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, "1", string(models.StatusOnWay), collector(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition, "OTP must be verified first")

	_, err = f.svc.UpdateStatus(ctx, "1", string(models.StatusOTPVerified), collector(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition, "otp_verified only via VerifyOTP")

	assert.Len(t, f.booking(t, "1").StatusUpdates, 1)
}

func TestVerifyOTP(t *testing.T) {
	f := bookedFixture(t)
	ctx := context.Background()
	otp := f.booking(t, "1").VerificationOTP

	err := f.svc.VerifyOTP(ctx, "1", "999999", collector())
	assert.ErrorIs(t, err, ErrInvalidOTP)

	for _, near := range []string{otp[:5], otp + "0", " " + otp, ""} {
		err = f.svc.VerifyOTP(ctx, "1", near, collector())
		assert.ErrorIs(t, err, ErrInvalidOTP, "code %q", near)
	}
	assert.Equal(t, models.StatusBookingConfirmed, f.booking(t, "1").Status)

	err = f.svc.VerifyOTP(ctx, "1", otp, customer("u1"))
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.VerifyOTP(ctx, "1", otp, collector()))
	b := f.booking(t, "1")
	assert.Equal(t, models.StatusOTPVerified, b.Status)
	assert.True(t, b.OTPVerified)
	assert.Len(t, b.StatusUpdates, 2)

	o := f.order(t, "1")
	assert.Equal(t, models.StatusOTPVerified, o.BookingDetails.CollectorStatus)
	assert.True(t, o.BookingDetails.OTPVerified)
}

func TestVerifyOTP_NoCodeIssued(t *testing.T) {
	f := newFixture(t, 5, quietNotifier())
	f.addOrder(t, "1", "u1")
	require.NoError(t, f.stores.Bookings.Create(context.Background(), &models.Booking{
		ID:      "legacy",
		OrderID: "1",
		TeamID:  "T1",
		Date:    tomorrow,
		Hour:    9,
		Status:  models.StatusBookingConfirmed,
	}))

	err := f.svc.VerifyOTP(context.Background(), "1", "123456", collector())
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestLifecycle_RunsToCompletion(t *testing.T) {
	f := bookedFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.VerifyOTP(ctx, "1", f.booking(t, "1").VerificationOTP, collector()))

	prevOTP := f.booking(t, "1").VerificationOTP
	for _, next := range []models.BookingStatus{models.StatusOnWay, models.StatusReached, models.StatusCollected} {
		change, err := f.svc.UpdateStatus(ctx, "1", string(next), collector(), "")
		require.NoError(t, err)
		assert.Equal(t, next, change.NewStatus)

		b := f.booking(t, "1")
		assert.NotEqual(t, prevOTP, b.VerificationOTP, "every accepted update issues a new code")
		assert.False(t, b.OTPVerified)
		prevOTP = b.VerificationOTP
	}

	o := f.order(t, "1")
	assert.Equal(t, models.OrderProcessing, o.OrderStatus)

	// Handoff code verification in a later state does not move the status.
	require.NoError(t, f.svc.VerifyOTP(ctx, "1", prevOTP, collector()))
	b := f.booking(t, "1")
	assert.Equal(t, models.StatusCollected, b.Status)
	assert.True(t, b.OTPVerified)

	err := f.svc.CancelBooking(ctx, "1", admin(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	change, err := f.svc.UpdateStatus(ctx, "1", string(models.StatusCompleted), admin(), "handed to lab")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCollected, change.OldStatus)

	o = f.order(t, "1")
	assert.Equal(t, models.OrderDelivered, o.OrderStatus)
	assert.NotNil(t, o.DeliveredAt)
	assert.Len(t, o.BookingDetails.StatusUpdates, 6)

	_, err = f.svc.UpdateStatus(ctx, "1", string(models.StatusOnWay), collector(), "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_CancelledReleasesSlot(t *testing.T) {
	f := bookedFixture(t)
	ctx := context.Background()

	change, err := f.svc.UpdateStatus(ctx, "1", string(models.StatusCancelled), collector(), "no show")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBookingConfirmed, change.OldStatus)
	assert.Equal(t, models.StatusCancelled, change.NewStatus)

	slot, err := f.stores.Slots.GetSlot(ctx, "T1", tomorrow, 9)
	require.NoError(t, err)
	assert.Zero(t, slot.CurrentOccupancy)

	_, err = f.svc.UpdateStatus(ctx, "1", string(models.StatusOnWay), collector(), "")
	assert.ErrorIs(t, err, ErrNoBooking)
}
