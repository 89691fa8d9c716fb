package timeslotRepo

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"homecollect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTeam(capacity int) models.CollectionTeam {
	return models.CollectionTeam{
		ID:                 "T1",
		Name:               "North Unit",
		PostalCodes:        []string{"560001"},
		StartHour:          8,
		EndHour:            18,
		MaxBookingsPerHour: capacity,
		Active:             true,
	}
}

func ref(id string) models.SlotBookingRef {
	return models.SlotBookingRef{BookingID: id, OrderID: "order-" + id, PatientName: "P " + id}
}

func TestEnsureSlotsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimeSlotRepo()
	team := testTeam(5)

	first, err := repo.EnsureSlots(ctx, team, "2030-01-10")
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, 8, first[0].Hour)
	assert.Equal(t, 17, first[9].Hour)

	second, err := repo.EnsureSlots(ctx, team, "2030-01-10")
	require.NoError(t, err)
	require.Len(t, second, 10)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, 5, second[i].MaxCapacity)
		assert.Zero(t, second[i].CurrentOccupancy)
	}
}

func TestGetByTeamAndDateDoesNotCreate(t *testing.T) {
	repo := NewMemoryTimeSlotRepo()

	slots, err := repo.GetByTeamAndDate(context.Background(), "T1", "2030-01-10")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = repo.GetSlot(context.Background(), "T1", "2030-01-10", 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReserveStopsAtCapacity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimeSlotRepo()
	team := testTeam(2)

	for i := 0; i < 2; i++ {
		slot, err := repo.Reserve(ctx, team, "2030-01-10", 9, ref(fmt.Sprint(i)))
		require.NoError(t, err)
		assert.Equal(t, i+1, slot.CurrentOccupancy)
	}

	_, err := repo.Reserve(ctx, team, "2030-01-10", 9, ref("x"))
	assert.ErrorIs(t, err, ErrSlotFull)

	slot, err := repo.GetSlot(ctx, "T1", "2030-01-10", 9)
	require.NoError(t, err)
	assert.Equal(t, 2, slot.CurrentOccupancy)
	assert.Len(t, slot.Bookings, 2)
}

func TestConcurrentReserveNeverOverbooks(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimeSlotRepo()
	team := testTeam(5)

	const callers = 50
	var ok, full atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Reserve(ctx, team, "2030-01-10", 10, ref(fmt.Sprint(i)))
			switch err {
			case nil:
				ok.Add(1)
			case ErrSlotFull:
				full.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 5, ok.Load())
	assert.EqualValues(t, callers-5, full.Load())

	slot, err := repo.GetSlot(ctx, "T1", "2030-01-10", 10)
	require.NoError(t, err)
	assert.Equal(t, 5, slot.CurrentOccupancy)
	assert.Len(t, slot.Bookings, slot.CurrentOccupancy)
}

func TestReleaseIsNotRepeated(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimeSlotRepo()
	team := testTeam(3)

	_, err := repo.Reserve(ctx, team, "2030-01-10", 11, ref("a"))
	require.NoError(t, err)
	_, err = repo.Reserve(ctx, team, "2030-01-10", 11, ref("b"))
	require.NoError(t, err)

	slot, released, err := repo.Release(ctx, "T1", "2030-01-10", 11, "a")
	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, 1, slot.CurrentOccupancy)
	require.Len(t, slot.Bookings, 1)
	assert.Equal(t, "b", slot.Bookings[0].BookingID)

	slot, released, err = repo.Release(ctx, "T1", "2030-01-10", 11, "a")
	require.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, 1, slot.CurrentOccupancy)
}

func TestConcurrentReserveAndReleaseConserveOccupancy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimeSlotRepo()
	team := testTeam(100)

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprint(i)
			if _, err := repo.Reserve(ctx, team, "2030-01-10", 12, ref(id)); err != nil {
				t.Errorf("reserve %s: %v", id, err)
				return
			}
			if i%2 == 0 {
				if _, _, err := repo.Release(ctx, "T1", "2030-01-10", 12, id); err != nil {
					t.Errorf("release %s: %v", id, err)
				}
			}
		}(i)
	}
	wg.Wait()

	slot, err := repo.GetSlot(ctx, "T1", "2030-01-10", 12)
	require.NoError(t, err)
	assert.Equal(t, 20, slot.CurrentOccupancy)
	assert.Len(t, slot.Bookings, 20)
}

func TestReturnedSlotsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTimeSlotRepo()

	slot, err := repo.Reserve(ctx, testTeam(2), "2030-01-10", 9, ref("a"))
	require.NoError(t, err)
	slot.Bookings[0].BookingID = "mutated"
	slot.CurrentOccupancy = 99

	stored, err := repo.GetSlot(ctx, "T1", "2030-01-10", 9)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentOccupancy)
	assert.Equal(t, "a", stored.Bookings[0].BookingID)
}
