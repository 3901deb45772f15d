package seat

import (
	"context"

	"github.com/google/uuid"
	"github.com/mannar-express/service-seats/internal/domain/route"
)

// Repository defines the persistence contract for the seat store. It treats
// the store as a document collection with equality-filtered queries and
// atomic batched writes.
type Repository interface {
	// FindByID retrieves a seat by its document id.
	FindByID(ctx context.Context, id uuid.UUID) (*Seat, error)

	// FindByRouteAndDate retrieves every seat for one (route, date) pair.
	// Order is unspecified; callers sort.
	FindByRouteAndDate(ctx context.Context, r route.Route, date string) ([]*Seat, error)

	// CreateBatch persists a fresh seat-set as one atomic batch.
	CreateBatch(ctx context.Context, seats []*Seat) error

	// Update persists the seat's current state unconditionally.
	Update(ctx context.Context, s *Seat) error

	// BookIfAvailable persists a booking only if the stored seat is still
	// unbooked, returning ConflictError when another booking won the race.
	BookIfAvailable(ctx context.Context, s *Seat) error

	// ApplyLayout commits a layout migration as one atomic batch: new seats
	// are created, retained seats get their recomputed labels, and seats
	// beyond the new layout are deleted.
	ApplyLayout(ctx context.Context, creates, relabels []*Seat, deleteIDs []uuid.UUID) error
}
