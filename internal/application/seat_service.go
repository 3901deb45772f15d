package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mannar-express/service-seats/internal/cache"
	"github.com/mannar-express/service-seats/internal/domain/route"
	seatDomain "github.com/mannar-express/service-seats/internal/domain/seat"
	"github.com/mannar-express/service-seats/internal/events"
)

const eventSource = "service-seats"

// dateLayout is the calendar date format used throughout the seat store.
const dateLayout = "2006-01-02"

// PassengerRequest holds the passenger fields for Book and Update operations.
type PassengerRequest struct {
	PassengerName  string `json:"passengerName"`
	PassengerPhone string `json:"passengerPhone"`
	Gender         string `json:"gender"`
	BoardingPoint  string `json:"boardingPoint"`
}

// SeatDTO is the response representation of a seat document.
type SeatDTO struct {
	ID             uuid.UUID           `json:"_id"`
	SeatNumber     int                 `json:"seatNumber"`
	Route          string              `json:"route"`
	Date           string              `json:"date"`
	IsBooked       bool                `json:"isBooked"`
	IsPickedUp     bool                `json:"isPickedUp"`
	PassengerName  string              `json:"passengerName"`
	PassengerPhone string              `json:"passengerPhone"`
	Gender         string              `json:"gender"`
	BoardingPoint  string              `json:"boardingPoint"`
	RowNumber      int                 `json:"rowNumber"`
	Position       seatDomain.Position `json:"position"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// InitResult reports what one route's inventory initialization changed.
type InitResult struct {
	Created    int `json:"created"`
	Relabelled int `json:"relabelled"`
	Deleted    int `json:"deleted"`
}

// Changed returns true if the initialization touched the seat-set.
func (r InitResult) Changed() bool {
	return r.Created > 0 || r.Relabelled > 0 || r.Deleted > 0
}

// SeatService is the application service orchestrating seat inventory and
// booking use cases.
type SeatService struct {
	repo      seatDomain.Repository
	cache     *cache.SeatCache
	publisher events.Publisher
	logger    *zap.Logger
}

// NewSeatService creates a new SeatService.
func NewSeatService(
	repo seatDomain.Repository,
	seatCache *cache.SeatCache,
	publisher events.Publisher,
	logger *zap.Logger,
) *SeatService {
	return &SeatService{
		repo:      repo,
		cache:     seatCache,
		publisher: publisher,
		logger:    logger,
	}
}

// ResolveDate validates a YYYY-MM-DD date parameter, defaulting to the current
// calendar date in the server's local timezone when empty.
func ResolveDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", seatDomain.NewValidationError("Date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// InitializeRoutes ensures a seat-set exists for every configured route on the
// given date. It returns the number of routes whose seat-sets were created or
// migrated.
func (s *SeatService) InitializeRoutes(ctx context.Context, date string, totalSeats int, force bool) (int, error) {
	initialized := 0
	for _, rt := range route.All() {
		result, err := s.EnsureInventory(ctx, rt, date, totalSeats, force)
		if err != nil {
			return initialized, err
		}
		if result.Changed() {
			initialized++
		}
	}
	return initialized, nil
}

// EnsureInventory guarantees the (route, date) seat-set matches the requested
// layout size. With force=false an existing seat-set is left untouched; with
// force=true retained seats are relabelled, missing seats created, and seats
// beyond the new count deleted, all in one atomic batch.
func (s *SeatService) EnsureInventory(ctx context.Context, rt route.Route, date string, totalSeats int, force bool) (InitResult, error) {
	if !rt.IsValid() {
		return InitResult{}, seatDomain.NewValidationError("Unknown route: " + rt.String())
	}
	if err := seatDomain.ValidateSeatCount(totalSeats); err != nil {
		return InitResult{}, err
	}

	existing, err := s.repo.FindByRouteAndDate(ctx, rt, date)
	if err != nil {
		return InitResult{}, err
	}

	if len(existing) == 0 {
		seats := make([]*seatDomain.Seat, 0, totalSeats)
		for n := 1; n <= totalSeats; n++ {
			st, err := seatDomain.NewSeat(rt, date, n, totalSeats)
			if err != nil {
				return InitResult{}, err
			}
			seats = append(seats, st)
		}
		if err := s.repo.CreateBatch(ctx, seats); err != nil {
			return InitResult{}, err
		}

		s.cache.Invalidate(rt, date)
		result := InitResult{Created: totalSeats}
		s.publishInventoryInitialized(ctx, rt, date, totalSeats, result, force)
		s.logger.Info("seat inventory created",
			zap.String("route", rt.String()),
			zap.String("date", date),
			zap.Int("seats", totalSeats),
		)
		return result, nil
	}

	if !force {
		return InitResult{}, nil
	}

	byNumber := make(map[int]*seatDomain.Seat, len(existing))
	for _, st := range existing {
		byNumber[st.SeatNumber()] = st
	}

	var creates, relabels []*seatDomain.Seat
	var deleteIDs []uuid.UUID

	for n := 1; n <= totalSeats; n++ {
		if st, ok := byNumber[n]; ok {
			if err := st.Relabel(totalSeats); err != nil {
				return InitResult{}, err
			}
			relabels = append(relabels, st)
			continue
		}
		st, err := seatDomain.NewSeat(rt, date, n, totalSeats)
		if err != nil {
			return InitResult{}, err
		}
		creates = append(creates, st)
	}
	for _, st := range existing {
		if st.SeatNumber() > totalSeats {
			deleteIDs = append(deleteIDs, st.ID())
		}
	}

	if err := s.repo.ApplyLayout(ctx, creates, relabels, deleteIDs); err != nil {
		return InitResult{}, err
	}

	s.cache.Invalidate(rt, date)
	result := InitResult{
		Created:    len(creates),
		Relabelled: len(relabels),
		Deleted:    len(deleteIDs),
	}
	s.publishInventoryInitialized(ctx, rt, date, totalSeats, result, force)
	s.logger.Info("seat inventory migrated",
		zap.String("route", rt.String()),
		zap.String("date", date),
		zap.Int("seats", totalSeats),
		zap.Int("created", result.Created),
		zap.Int("relabelled", result.Relabelled),
		zap.Int("deleted", result.Deleted),
	)
	return result, nil
}

// ListSeats returns every seat for (route, date) sorted by seat number,
// serving from the read cache when the entry is still fresh. Unknown route
// labels yield an empty list rather than an error.
func (s *SeatService) ListSeats(ctx context.Context, rt route.Route, date string) ([]SeatDTO, error) {
	if rt == "" {
		return nil, seatDomain.NewValidationError("Route parameter is required")
	}

	if seats, ok := s.cache.Get(rt, date); ok {
		return toSeatDTOs(seats), nil
	}

	seats, err := s.repo.FindByRouteAndDate(ctx, rt, date)
	if err != nil {
		return nil, err
	}

	// Sorted in application code so the store needs no composite index.
	sort.Slice(seats, func(i, j int) bool {
		return seats[i].SeatNumber() < seats[j].SeatNumber()
	})

	s.cache.Put(rt, date, seats)
	return toSeatDTOs(seats), nil
}

// Book places a passenger on an available seat.
func (s *SeatService) Book(ctx context.Context, seatID uuid.UUID, req PassengerRequest) (*SeatDTO, error) {
	st, err := s.repo.FindByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	if err := st.Book(req.PassengerName, req.PassengerPhone, seatDomain.Gender(req.Gender), req.BoardingPoint); err != nil {
		return nil, err
	}

	// Conditional write keyed on the booking flag: a concurrent booking that
	// commits first makes this one fail with a conflict instead of silently
	// overwriting it.
	if err := s.repo.BookIfAvailable(ctx, st); err != nil {
		return nil, err
	}

	s.cache.Invalidate(st.Route(), st.Date())
	s.publishSeatEvent(ctx, events.SeatBooked, st)

	dto := toSeatDTO(st)
	return &dto, nil
}

// UpdatePassenger overwrites a seat's passenger fields. The seat is not
// required to be booked; the booking flag is left as-is either way, matching
// the system this replaces.
func (s *SeatService) UpdatePassenger(ctx context.Context, seatID uuid.UUID, req PassengerRequest) (*SeatDTO, error) {
	st, err := s.repo.FindByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	if err := st.UpdatePassenger(req.PassengerName, req.PassengerPhone, seatDomain.Gender(req.Gender), req.BoardingPoint); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	s.cache.Invalidate(st.Route(), st.Date())
	s.publishSeatEvent(ctx, events.SeatPassengerUpdated, st)

	dto := toSeatDTO(st)
	return &dto, nil
}

// Cancel releases a seat and clears its passenger data. Cancelling an
// already-available seat succeeds.
func (s *SeatService) Cancel(ctx context.Context, seatID uuid.UUID) (*SeatDTO, error) {
	st, err := s.repo.FindByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	st.Cancel()
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	s.cache.Invalidate(st.Route(), st.Date())
	s.publishSeatEvent(ctx, events.SeatBookingCancelled, st)

	dto := toSeatDTO(st)
	return &dto, nil
}

// SetPickup records whether the passenger has boarded.
func (s *SeatService) SetPickup(ctx context.Context, seatID uuid.UUID, pickedUp bool) (*SeatDTO, error) {
	st, err := s.repo.FindByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	st.SetPickedUp(pickedUp)
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}

	s.cache.Invalidate(st.Route(), st.Date())
	s.publishSeatEvent(ctx, events.SeatPickupChanged, st)

	dto := toSeatDTO(st)
	return &dto, nil
}

// --- Helpers ---

func toSeatDTO(st *seatDomain.Seat) SeatDTO {
	return SeatDTO{
		ID:             st.ID(),
		SeatNumber:     st.SeatNumber(),
		Route:          st.Route().String(),
		Date:           st.Date(),
		IsBooked:       st.IsBooked(),
		IsPickedUp:     st.IsPickedUp(),
		PassengerName:  st.PassengerName(),
		PassengerPhone: st.PassengerPhone(),
		Gender:         string(st.Gender()),
		BoardingPoint:  st.BoardingPoint(),
		RowNumber:      st.RowNumber(),
		Position:       st.Position(),
		CreatedAt:      st.CreatedAt(),
		UpdatedAt:      st.UpdatedAt(),
	}
}

func toSeatDTOs(seats []*seatDomain.Seat) []SeatDTO {
	dtos := make([]SeatDTO, len(seats))
	for i, st := range seats {
		dtos[i] = toSeatDTO(st)
	}
	return dtos
}

func (s *SeatService) publishSeatEvent(ctx context.Context, eventType string, st *seatDomain.Seat) {
	evt, err := events.NewEvent(eventSource, eventType, events.SeatEvent{
		SeatID:     st.ID(),
		SeatNumber: st.SeatNumber(),
		Route:      st.Route().String(),
		Date:       st.Date(),
		IsBooked:   st.IsBooked(),
		IsPickedUp: st.IsPickedUp(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create seat event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, events.TopicSeatEvents, st.ID().String(), evt); err != nil {
		s.logger.Error("failed to publish seat event",
			zap.String("event_type", eventType),
			zap.String("seat_id", st.ID().String()),
			zap.Error(err),
		)
	}
}

func (s *SeatService) publishInventoryInitialized(ctx context.Context, rt route.Route, date string, totalSeats int, result InitResult, forced bool) {
	evt, err := events.NewEvent(eventSource, events.SeatInventoryInitialized, events.InventoryInitializedEvent{
		Route:      rt.String(),
		Date:       date,
		SeatCount:  totalSeats,
		Created:    result.Created,
		Relabelled: result.Relabelled,
		Deleted:    result.Deleted,
		Forced:     forced,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create inventory event", zap.Error(err))
		return
	}

	key := rt.String() + "-" + date
	if err := s.publisher.Publish(ctx, events.TopicSeatEvents, key, evt); err != nil {
		s.logger.Error("failed to publish inventory event",
			zap.String("route", rt.String()),
			zap.String("date", date),
			zap.Error(err),
		)
	}
}
