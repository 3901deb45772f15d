package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mannar-express/service-seats/internal/cache"
	"github.com/mannar-express/service-seats/internal/domain/route"
	seatDomain "github.com/mannar-express/service-seats/internal/domain/seat"
	"github.com/mannar-express/service-seats/internal/events"
	"github.com/mannar-express/service-seats/internal/repository"
)

const testDate = "2026-09-01"

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, topic, key string, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, evt := range p.events {
		types[i] = evt.Type
	}
	return types
}

type serviceFixture struct {
	service   *SeatService
	repo      *repository.MemorySeatRepository
	publisher *recordingPublisher
	clock     *time.Time
}

func (f *serviceFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	clock := &now
	repo := repository.NewMemorySeatRepository()
	publisher := &recordingPublisher{}
	seatCache := cache.NewSeatCache(zap.NewNop(), cache.WithClock(func() time.Time { return *clock }))

	return &serviceFixture{
		service:   NewSeatService(repo, seatCache, publisher, zap.NewNop()),
		repo:      repo,
		publisher: publisher,
		clock:     clock,
	}
}

func (f *serviceFixture) initInventory(t *testing.T, totalSeats int) {
	t.Helper()
	result, err := f.service.EnsureInventory(context.Background(), route.MannarToColombo, testDate, totalSeats, false)
	require.NoError(t, err)
	require.Equal(t, totalSeats, result.Created)
}

func (f *serviceFixture) bookSeat(t *testing.T, seatNumber int) uuid.UUID {
	t.Helper()
	id := seatDomain.DeterministicID(route.MannarToColombo, testDate, seatNumber)
	_, err := f.service.Book(context.Background(), id, PassengerRequest{
		PassengerName:  "Nimal Perera",
		PassengerPhone: "0712345678",
		Gender:         "male",
		BoardingPoint:  "Murunkan Town",
	})
	require.NoError(t, err)
	return id
}

func TestEnsureInventory_CreatesFreshSeatSet(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)

	seats, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	require.Len(t, seats, 51)

	for i, st := range seats {
		assert.Equal(t, i+1, st.SeatNumber)
		assert.False(t, st.IsBooked)
	}
}

func TestEnsureInventory_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)

	first, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)

	result, err := f.service.EnsureInventory(context.Background(), route.MannarToColombo, testDate, 51, false)
	require.NoError(t, err)
	assert.Equal(t, InitResult{}, result)

	second, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	require.Len(t, second, 51)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Position, second[i].Position)
		assert.Equal(t, first[i].RowNumber, second[i].RowNumber)
	}
}

func TestEnsureInventory_SeatCountValidation(t *testing.T) {
	f := newFixture(t)

	var validationErr *seatDomain.ValidationError
	_, err := f.service.EnsureInventory(context.Background(), route.MannarToColombo, testDate, 4, false)
	require.ErrorAs(t, err, &validationErr)

	_, err = f.service.EnsureInventory(context.Background(), route.MannarToColombo, testDate, 500, false)
	require.ErrorAs(t, err, &validationErr)
}

func TestEnsureInventory_ResizePreservesBookings(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	bookedID := f.bookSeat(t, 10)

	result, err := f.service.EnsureInventory(context.Background(), route.MannarToColombo, testDate, 30, true)
	require.NoError(t, err)
	assert.Equal(t, InitResult{Created: 0, Relabelled: 30, Deleted: 21}, result)

	seats, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	require.Len(t, seats, 30)

	booked := seats[9]
	assert.Equal(t, bookedID, booked.ID)
	assert.True(t, booked.IsBooked)
	assert.Equal(t, "Nimal Perera", booked.PassengerName)
	assert.Equal(t, "0712345678", booked.PassengerPhone)

	wantPos, wantRow, err := seatDomain.ComputePosition(10, 30)
	require.NoError(t, err)
	assert.Equal(t, wantPos, booked.Position)
	assert.Equal(t, wantRow, booked.RowNumber)
}

func TestEnsureInventory_ResizeGrowsSeatSet(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 30)

	result, err := f.service.EnsureInventory(context.Background(), route.MannarToColombo, testDate, 51, true)
	require.NoError(t, err)
	assert.Equal(t, InitResult{Created: 21, Relabelled: 30, Deleted: 0}, result)

	seats, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	require.Len(t, seats, 51)
}

func TestInitializeRoutes_CoversBothRoutes(t *testing.T) {
	f := newFixture(t)

	initialized, err := f.service.InitializeRoutes(context.Background(), testDate, 51, false)
	require.NoError(t, err)
	assert.Equal(t, 2, initialized)

	// Second call is a no-op for both routes.
	initialized, err = f.service.InitializeRoutes(context.Background(), testDate, 51, false)
	require.NoError(t, err)
	assert.Equal(t, 0, initialized)
}

func TestListSeats_RouteRequired(t *testing.T) {
	f := newFixture(t)

	var validationErr *seatDomain.ValidationError
	_, err := f.service.ListSeats(context.Background(), "", testDate)
	require.ErrorAs(t, err, &validationErr)
}

func TestListSeats_UnknownRouteReturnsEmptyList(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)

	seats, err := f.service.ListSeats(context.Background(), route.Route("Jaffna to Colombo"), testDate)
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestListSeats_ServedFromCacheWithinTTL(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)

	_, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	queriesAfterFirst := f.repo.QueryCount()

	f.advance(29 * time.Second)
	_, err = f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)

	assert.Equal(t, queriesAfterFirst, f.repo.QueryCount(), "second list within TTL must not hit the store")
}

func TestListSeats_CacheExpiresAfterTTL(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)

	_, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	queriesAfterFirst := f.repo.QueryCount()

	f.advance(30 * time.Second)
	_, err = f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)

	assert.Equal(t, queriesAfterFirst+1, f.repo.QueryCount())
}

func TestListSeats_NeverReturnsPreMutationData(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)

	// Prime the cache, then mutate within the TTL window.
	_, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	f.bookSeat(t, 10)

	seats, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	assert.True(t, seats[9].IsBooked, "list after booking must reflect the booking")
}

func TestBook_Conflict(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	id := f.bookSeat(t, 10)

	_, err := f.service.Book(context.Background(), id, PassengerRequest{
		PassengerName:  "Kamala Silva",
		PassengerPhone: "0779999999",
		Gender:         "female",
	})

	var conflictErr *seatDomain.ConflictError
	require.ErrorAs(t, err, &conflictErr)

	seats, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", seats[9].PassengerName, "losing booking must not overwrite the winner")
}

func TestBook_Validation(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	id := seatDomain.DeterministicID(route.MannarToColombo, testDate, 10)

	tests := []struct {
		name string
		req  PassengerRequest
	}{
		{"phone too short", PassengerRequest{PassengerPhone: "12345", Gender: "male"}},
		{"invalid gender", PassengerRequest{PassengerPhone: "0712345678", Gender: "other"}},
		{"missing phone", PassengerRequest{Gender: "male"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Book(context.Background(), id, tt.req)
			var validationErr *seatDomain.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}

	seats, err := f.service.ListSeats(context.Background(), route.MannarToColombo, testDate)
	require.NoError(t, err)
	assert.False(t, seats[9].IsBooked)
}

func TestBook_NotFound(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)

	_, err := f.service.Book(context.Background(), uuid.New(), PassengerRequest{
		PassengerPhone: "0712345678",
		Gender:         "male",
	})

	var notFoundErr *seatDomain.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestUpdatePassenger_PreservesBookingFlag(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	id := seatDomain.DeterministicID(route.MannarToColombo, testDate, 10)

	// Update on an unbooked seat writes passenger data without booking it.
	result, err := f.service.UpdatePassenger(context.Background(), id, PassengerRequest{
		PassengerName:  "Kamala Silva",
		PassengerPhone: "0779999999",
		Gender:         "female",
	})
	require.NoError(t, err)
	assert.False(t, result.IsBooked)
	assert.Equal(t, "Kamala Silva", result.PassengerName)
}

func TestCancel_ResetsSeat(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	id := f.bookSeat(t, 10)

	result, err := f.service.Cancel(context.Background(), id)
	require.NoError(t, err)

	assert.False(t, result.IsBooked)
	assert.False(t, result.IsPickedUp)
	assert.Empty(t, result.PassengerName)
	assert.Empty(t, result.PassengerPhone)
	assert.Empty(t, result.Gender)
	assert.Empty(t, result.BoardingPoint)
}

func TestCancel_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	id := f.bookSeat(t, 10)

	_, err := f.service.Cancel(context.Background(), id)
	require.NoError(t, err)
	_, err = f.service.Cancel(context.Background(), id)
	require.NoError(t, err)
}

func TestSetPickup(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	id := f.bookSeat(t, 10)

	result, err := f.service.SetPickup(context.Background(), id, true)
	require.NoError(t, err)
	assert.True(t, result.IsPickedUp)

	result, err = f.service.SetPickup(context.Background(), id, false)
	require.NoError(t, err)
	assert.False(t, result.IsPickedUp)
}

func TestMutationsPublishEvents(t *testing.T) {
	f := newFixture(t)
	f.initInventory(t, 51)
	id := f.bookSeat(t, 10)

	_, err := f.service.SetPickup(context.Background(), id, true)
	require.NoError(t, err)
	_, err = f.service.Cancel(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, []string{
		events.SeatInventoryInitialized,
		events.SeatBooked,
		events.SeatPickupChanged,
		events.SeatBookingCancelled,
	}, f.publisher.types())
}

func TestResolveDate(t *testing.T) {
	got, err := ResolveDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got)

	got, err = ResolveDate("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), got)

	_, err = ResolveDate("01/09/2026")
	var validationErr *seatDomain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
