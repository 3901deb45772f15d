package repository

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/mannar-express/service-seats/internal/domain/route"
	seatDomain "github.com/mannar-express/service-seats/internal/domain/seat"
)

// MemorySeatRepository is an in-memory seat.Repository for tests. It keeps a
// query counter so cache behavior can be asserted against actual store reads.
type MemorySeatRepository struct {
	mu      sync.RWMutex
	seats   map[uuid.UUID]*seatDomain.Seat
	queries atomic.Int64
}

// NewMemorySeatRepository creates an empty in-memory repository.
func NewMemorySeatRepository() *MemorySeatRepository {
	return &MemorySeatRepository{seats: make(map[uuid.UUID]*seatDomain.Seat)}
}

// QueryCount returns the number of FindByRouteAndDate calls served so far.
func (r *MemorySeatRepository) QueryCount() int64 {
	return r.queries.Load()
}

// FindByID retrieves a seat by its document id.
func (r *MemorySeatRepository) FindByID(ctx context.Context, id uuid.UUID) (*seatDomain.Seat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.seats[id]
	if !ok {
		return nil, seatDomain.NewNotFoundError(id.String())
	}
	return cloneSeat(st), nil
}

// FindByRouteAndDate retrieves every seat for one (route, date) pair.
func (r *MemorySeatRepository) FindByRouteAndDate(ctx context.Context, rt route.Route, date string) ([]*seatDomain.Seat, error) {
	r.queries.Add(1)
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*seatDomain.Seat
	for _, st := range r.seats {
		if st.Route() == rt && st.Date() == date {
			result = append(result, cloneSeat(st))
		}
	}
	return result, nil
}

// CreateBatch persists a fresh seat-set.
func (r *MemorySeatRepository) CreateBatch(ctx context.Context, seats []*seatDomain.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, st := range seats {
		r.seats[st.ID()] = cloneSeat(st)
	}
	return nil
}

// Update persists the seat's current state unconditionally.
func (r *MemorySeatRepository) Update(ctx context.Context, s *seatDomain.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seats[s.ID()]; !ok {
		return seatDomain.NewNotFoundError(s.ID().String())
	}
	r.seats[s.ID()] = cloneSeat(s)
	return nil
}

// BookIfAvailable persists a booking only if the stored seat is still unbooked.
func (r *MemorySeatRepository) BookIfAvailable(ctx context.Context, s *seatDomain.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.seats[s.ID()]
	if !ok {
		return seatDomain.NewNotFoundError(s.ID().String())
	}
	if stored.IsBooked() {
		return seatDomain.NewConflictError("Seat is already booked")
	}
	r.seats[s.ID()] = cloneSeat(s)
	return nil
}

// ApplyLayout commits a layout migration.
func (r *MemorySeatRepository) ApplyLayout(ctx context.Context, creates, relabels []*seatDomain.Seat, deleteIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, st := range creates {
		r.seats[st.ID()] = cloneSeat(st)
	}
	for _, st := range relabels {
		r.seats[st.ID()] = cloneSeat(st)
	}
	for _, id := range deleteIDs {
		delete(r.seats, id)
	}
	return nil
}

func cloneSeat(s *seatDomain.Seat) *seatDomain.Seat {
	return seatDomain.ReconstructSeat(
		s.ID(),
		s.SeatNumber(),
		s.Route(),
		s.Date(),
		s.IsBooked(),
		s.IsPickedUp(),
		s.PassengerName(),
		s.PassengerPhone(),
		s.Gender(),
		s.BoardingPoint(),
		s.RowNumber(),
		s.Position(),
		s.CreatedAt(),
		s.UpdatedAt(),
	)
}
