package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSlots_CreatesWorkingHoursOnce(t *testing.T) {
	f := newFixture(t, 5, quietNotifier())
	ctx := context.Background()

	listing, err := f.svc.ListSlots(ctx, "560001", tomorrow)
	require.NoError(t, err)
	assert.Equal(t, "T1", listing.Team.ID)
	assert.Equal(t, tomorrow, listing.Date)
	require.Len(t, listing.Slots, 10)
	assert.Equal(t, "08:00 - 09:00", listing.Slots[0].TimeRange)
	assert.Equal(t, "17:00 - 18:00", listing.Slots[9].TimeRange)
	for _, s := range listing.Slots {
		assert.True(t, s.Available)
		assert.Equal(t, 5, s.MaxBookings)
		assert.Equal(t, 5, s.RemainingSlots)
	}

	again, err := f.svc.ListSlots(ctx, "560001", tomorrow)
	require.NoError(t, err)
	assert.Equal(t, listing, again)
}

func TestListSlots_PastDateCreatesNothing(t *testing.T) {
	f := newFixture(t, 5, quietNotifier())
	ctx := context.Background()

	_, err := f.svc.ListSlots(ctx, "560001", "2030-01-08")
	assert.ErrorIs(t, err, ErrPastDate)

	slots, err := f.stores.Slots.GetByTeamAndDate(ctx, "T1", "2030-01-08")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListSlots_TodayIsBookable(t *testing.T) {
	f := newFixture(t, 5, quietNotifier())

	listing, err := f.svc.ListSlots(context.Background(), "560001", today)
	require.NoError(t, err)
	assert.Len(t, listing.Slots, 10)
}

func TestListSlots_NormalizesTimestampsToServiceZone(t *testing.T) {
	f := newFixture(t, 5, quietNotifier())

	// 20:00 UTC on the 9th is 01:30 IST on the 10th.
	listing, err := f.svc.ListSlots(context.Background(), "560001", "2030-01-09T20:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, tomorrow, listing.Date)

	listing, err = f.svc.ListSlots(context.Background(), "560001", " 2030-01-10 ")
	require.NoError(t, err)
	assert.Equal(t, tomorrow, listing.Date)

	// Zone-less timestamps are wall-clock times in the service zone.
	afternoon, err := f.svc.ListSlots(context.Background(), "560001", "2030-01-10T14:35:00")
	require.NoError(t, err)
	midnight, err := f.svc.ListSlots(context.Background(), "560001", "2030-01-10T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, tomorrow, afternoon.Date)
	assert.Equal(t, afternoon.Date, midnight.Date)
	assert.Equal(t, afternoon.Slots, midnight.Slots)

	listing, err = f.svc.ListSlots(context.Background(), "560001", "2030-01-10T23:59:59.5")
	require.NoError(t, err)
	assert.Equal(t, tomorrow, listing.Date)

	_, err = f.svc.ListSlots(context.Background(), "560001", "10/01/2030")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListSlots_UnknownPostalCode(t *testing.T) {
	f := newFixture(t, 5, quietNotifier())

	_, err := f.svc.ListSlots(context.Background(), "999999", tomorrow)
	assert.ErrorIs(t, err, ErrNoServiceAvailable)
}

func TestFindNextAvailable_SkipsFullHours(t *testing.T) {
	f := newFixture(t, 1, quietNotifier())
	ctx := context.Background()
	f.addOrder(t, "1", "u1")
	f.addOrder(t, "2", "u2")

	_, err := f.book(t, "1", "u1", 9)
	require.NoError(t, err)
	_, err = f.book(t, "2", "u2", 10)
	require.NoError(t, err)

	next, err := f.svc.FindNextAvailable(ctx, "560001", tomorrow, 8)
	require.NoError(t, err)
	require.True(t, next.Available)
	assert.Equal(t, 11, *next.Hour)
	assert.Equal(t, "11:00 - 12:00", next.TimeRange)
	assert.Equal(t, 1, *next.RemainingSlots)

	next, err = f.svc.FindNextAvailable(ctx, "560001", tomorrow, -1)
	require.NoError(t, err)
	assert.Equal(t, 8, *next.Hour)
}

func TestFindNextAvailable_SuggestsTomorrowAfterClosing(t *testing.T) {
	f := newFixture(t, 5, quietNotifier())

	next, err := f.svc.FindNextAvailable(context.Background(), "560001", tomorrow, 17)
	require.NoError(t, err)
	assert.False(t, next.Available)
	assert.Equal(t, "2030-01-11", next.NextDate)
	assert.Equal(t, 8, *next.SuggestedHour)
	assert.Equal(t, "08:00 - 09:00", next.SuggestedTimeRange)

	slots, err := f.stores.Slots.GetByTeamAndDate(context.Background(), "T1", tomorrow)
	require.NoError(t, err)
	assert.Empty(t, slots, "lookups never create slots")
}
