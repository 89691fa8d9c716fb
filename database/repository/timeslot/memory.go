package timeslotRepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"homecollect/models"

	"github.com/google/uuid"
)

// memoryTimeSlotRepo is the single-node ledger. Every read or write of a slot
// happens under that slot's key lock; mu only guards the map itself.
type memoryTimeSlotRepo struct {
	mu    sync.RWMutex
	slots map[string]*models.TimeSlot
	locks *keyedMutex
}

// NewMemoryTimeSlotRepo constructs an in-process TimeSlotRepository.
func NewMemoryTimeSlotRepo() TimeSlotRepository {
	return &memoryTimeSlotRepo{
		slots: make(map[string]*models.TimeSlot),
		locks: newKeyedMutex(),
	}
}

func cloneSlot(s *models.TimeSlot) models.TimeSlot {
	out := *s
	out.Bookings = append([]models.SlotBookingRef{}, s.Bookings...)
	return out
}

func (r *memoryTimeSlotRepo) lookup(key string) *models.TimeSlot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slots[key]
}

// getOrCreate must be called with the key lock held.
func (r *memoryTimeSlotRepo) getOrCreate(team models.CollectionTeam, date string, hour int) *models.TimeSlot {
	key := slotKey(team.ID, date, hour)
	if s := r.lookup(key); s != nil {
		return s
	}
	s := &models.TimeSlot{
		ID:          uuid.New().String(),
		TeamID:      team.ID,
		Date:        date,
		Hour:        hour,
		MaxCapacity: team.MaxBookingsPerHour,
		Bookings:    []models.SlotBookingRef{},
		CreatedAt:   time.Now(),
	}
	r.mu.Lock()
	r.slots[key] = s
	r.mu.Unlock()
	return s
}

func (r *memoryTimeSlotRepo) EnsureSlots(_ context.Context, team models.CollectionTeam, date string) ([]models.TimeSlot, error) {
	out := []models.TimeSlot{}
	for _, h := range team.Hours() {
		unlock := r.locks.Lock(slotKey(team.ID, date, h))
		out = append(out, cloneSlot(r.getOrCreate(team, date, h)))
		unlock()
	}
	return out, nil
}

func (r *memoryTimeSlotRepo) GetByTeamAndDate(_ context.Context, teamID, date string) ([]models.TimeSlot, error) {
	prefix := teamID + "|" + date + "|"
	r.mu.RLock()
	var keys []string
	for k := range r.slots {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	r.mu.RUnlock()

	out := []models.TimeSlot{}
	for _, k := range keys {
		unlock := r.locks.Lock(k)
		if s := r.lookup(k); s != nil {
			out = append(out, cloneSlot(s))
		}
		unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out, nil
}

func (r *memoryTimeSlotRepo) GetSlot(_ context.Context, teamID, date string, hour int) (*models.TimeSlot, error) {
	key := slotKey(teamID, date, hour)
	unlock := r.locks.Lock(key)
	defer unlock()

	s := r.lookup(key)
	if s == nil {
		return nil, ErrNotFound
	}
	out := cloneSlot(s)
	return &out, nil
}

func (r *memoryTimeSlotRepo) Reserve(_ context.Context, team models.CollectionTeam, date string, hour int, ref models.SlotBookingRef) (*models.TimeSlot, error) {
	unlock := r.locks.Lock(slotKey(team.ID, date, hour))
	defer unlock()

	s := r.getOrCreate(team, date, hour)
	if s.CurrentOccupancy >= s.MaxCapacity {
		return nil, ErrSlotFull
	}
	s.CurrentOccupancy++
	s.Bookings = append(s.Bookings, ref)

	out := cloneSlot(s)
	return &out, nil
}

func (r *memoryTimeSlotRepo) Release(_ context.Context, teamID, date string, hour int, bookingID string) (*models.TimeSlot, bool, error) {
	key := slotKey(teamID, date, hour)
	unlock := r.locks.Lock(key)
	defer unlock()

	s := r.lookup(key)
	if s == nil {
		return nil, false, ErrNotFound
	}

	idx := -1
	for i, b := range s.Bookings {
		if b.BookingID == bookingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		out := cloneSlot(s)
		return &out, false, nil
	}

	s.Bookings = append(s.Bookings[:idx], s.Bookings[idx+1:]...)
	if s.CurrentOccupancy > 0 {
		s.CurrentOccupancy--
	}
	out := cloneSlot(s)
	return &out, true, nil
}
