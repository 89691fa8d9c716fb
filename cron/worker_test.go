package cron

import (
	"context"
	"errors"
	"testing"

	"homecollect/models"
	"homecollect/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDeliverer struct{ mock.Mock }

func (m *mockDeliverer) Deliver(ctx context.Context, n models.BookingNotification) error {
	return m.Called(ctx, n).Error(0)
}

func TestHandleBookingNotification_Delivers(t *testing.T) {
	d := &mockDeliverer{}
	payload := models.BookingNotification{Kind: models.NotifyBookingConfirmed, OrderID: "o-9", OTP: "000123"}
	d.On("Deliver", mock.Anything, payload).Return(nil)

	task, _, err := tasks.NewBookingNotificationTask(payload, 0)
	require.NoError(t, err)

	h := handleBookingNotification(d, zap.NewNop())
	require.NoError(t, h(context.Background(), task))
	d.AssertExpectations(t)
}

func TestHandleBookingNotification_DeliveryErrorIsRetried(t *testing.T) {
	d := &mockDeliverer{}
	d.On("Deliver", mock.Anything, mock.Anything).Return(errors.New("fcm down"))

	task, _, err := tasks.NewBookingNotificationTask(models.BookingNotification{OrderID: "o-9"}, 0)
	require.NoError(t, err)

	err = handleBookingNotification(d, zap.NewNop())(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleBookingNotification_MalformedSkipsRetry(t *testing.T) {
	d := &mockDeliverer{}
	err := handleBookingNotification(d, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeBookingNotify, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	d.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}
