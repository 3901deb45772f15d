package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mannar-express/service-seats/internal/domain/route"
	seatDomain "github.com/mannar-express/service-seats/internal/domain/seat"
)

// SeatModel is the GORM model for the seats table. The composite unique index
// on (route, date, seat_number) guarantees at most one document per physical
// seat per day.
type SeatModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SeatNumber     int       `gorm:"not null;uniqueIndex:idx_seats_route_date_number"`
	Route          string    `gorm:"not null;size:50;uniqueIndex:idx_seats_route_date_number"`
	Date           string    `gorm:"not null;size:10;uniqueIndex:idx_seats_route_date_number"`
	IsBooked       bool      `gorm:"not null;default:false"`
	IsPickedUp     bool      `gorm:"not null;default:false"`
	PassengerName  string    `gorm:"size:100"`
	PassengerPhone string    `gorm:"size:20"`
	Gender         string    `gorm:"size:10"`
	BoardingPoint  string    `gorm:"size:100"`
	RowNumber      int       `gorm:"not null"`
	Position       string    `gorm:"not null;size:10"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SeatModel) TableName() string {
	return "seats"
}

// GormSeatRepository is the GORM-based implementation of seat.Repository.
type GormSeatRepository struct {
	db *gorm.DB
}

// NewGormSeatRepository creates a new GormSeatRepository.
func NewGormSeatRepository(db *gorm.DB) *GormSeatRepository {
	return &GormSeatRepository{db: db}
}

// FindByID retrieves a seat by its document id.
func (r *GormSeatRepository) FindByID(ctx context.Context, id uuid.UUID) (*seatDomain.Seat, error) {
	var model SeatModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, seatDomain.NewNotFoundError(id.String())
		}
		return nil, seatDomain.NewStoreError("find", err)
	}
	return toDomainSeat(&model), nil
}

// FindByRouteAndDate retrieves every seat for one (route, date) pair.
func (r *GormSeatRepository) FindByRouteAndDate(ctx context.Context, rt route.Route, date string) ([]*seatDomain.Seat, error) {
	var models []SeatModel
	if err := r.db.WithContext(ctx).
		Where("route = ? AND date = ?", rt.String(), date).
		Find(&models).Error; err != nil {
		return nil, seatDomain.NewStoreError("query", err)
	}

	seats := make([]*seatDomain.Seat, len(models))
	for i, m := range models {
		seats[i] = toDomainSeat(&m)
	}
	return seats, nil
}

// CreateBatch persists a fresh seat-set as one atomic batch.
func (r *GormSeatRepository) CreateBatch(ctx context.Context, seats []*seatDomain.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	models := make([]SeatModel, len(seats))
	for i, s := range seats {
		models[i] = toSeatModel(s)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return seatDomain.NewStoreError("create batch", err)
	}
	return nil
}

// Update persists the seat's current state unconditionally.
func (r *GormSeatRepository) Update(ctx context.Context, s *seatDomain.Seat) error {
	model := toSeatModel(s)
	result := r.db.WithContext(ctx).
		Model(&SeatModel{}).
		Where("id = ?", model.ID).
		Updates(passengerColumns(&model))

	if result.Error != nil {
		return seatDomain.NewStoreError("update", result.Error)
	}
	if result.RowsAffected == 0 {
		return seatDomain.NewNotFoundError(model.ID.String())
	}
	return nil
}

// BookIfAvailable persists a booking with a conditional write keyed on the
// booking flag, so two near-simultaneous bookings cannot both win.
func (r *GormSeatRepository) BookIfAvailable(ctx context.Context, s *seatDomain.Seat) error {
	model := toSeatModel(s)
	result := r.db.WithContext(ctx).
		Model(&SeatModel{}).
		Where("id = ? AND is_booked = ?", model.ID, false).
		Updates(passengerColumns(&model))

	if result.Error != nil {
		return seatDomain.NewStoreError("book", result.Error)
	}
	if result.RowsAffected == 0 {
		// Either the seat vanished or another booking got there first.
		var count int64
		if err := r.db.WithContext(ctx).Model(&SeatModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return seatDomain.NewStoreError("book", err)
		}
		if count == 0 {
			return seatDomain.NewNotFoundError(model.ID.String())
		}
		return seatDomain.NewConflictError("Seat is already booked")
	}
	return nil
}

// ApplyLayout commits a layout migration in a single transaction.
func (r *GormSeatRepository) ApplyLayout(ctx context.Context, creates, relabels []*seatDomain.Seat, deleteIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(creates) > 0 {
			models := make([]SeatModel, len(creates))
			for i, s := range creates {
				models[i] = toSeatModel(s)
			}
			// Upsert on the identity triple: a concurrent initialize cannot
			// produce duplicate seat documents.
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "route"}, {Name: "date"}, {Name: "seat_number"}},
				DoNothing: true,
			}).Create(&models).Error; err != nil {
				return err
			}
		}

		for _, s := range relabels {
			model := toSeatModel(s)
			if err := tx.Model(&SeatModel{}).
				Where("id = ?", model.ID).
				Updates(map[string]interface{}{
					"row_number": model.RowNumber,
					"position":   model.Position,
					"updated_at": model.UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}

		if len(deleteIDs) > 0 {
			if err := tx.Where("id IN ?", deleteIDs).Delete(&SeatModel{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return seatDomain.NewStoreError("apply layout", err)
	}
	return nil
}

// --- Conversion Helpers ---

func passengerColumns(m *SeatModel) map[string]interface{} {
	return map[string]interface{}{
		"is_booked":       m.IsBooked,
		"is_picked_up":    m.IsPickedUp,
		"passenger_name":  m.PassengerName,
		"passenger_phone": m.PassengerPhone,
		"gender":          m.Gender,
		"boarding_point":  m.BoardingPoint,
		"updated_at":      m.UpdatedAt,
	}
}

func toSeatModel(s *seatDomain.Seat) SeatModel {
	return SeatModel{
		ID:             s.ID(),
		SeatNumber:     s.SeatNumber(),
		Route:          s.Route().String(),
		Date:           s.Date(),
		IsBooked:       s.IsBooked(),
		IsPickedUp:     s.IsPickedUp(),
		PassengerName:  s.PassengerName(),
		PassengerPhone: s.PassengerPhone(),
		Gender:         string(s.Gender()),
		BoardingPoint:  s.BoardingPoint(),
		RowNumber:      s.RowNumber(),
		Position:       string(s.Position()),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func toDomainSeat(m *SeatModel) *seatDomain.Seat {
	return seatDomain.ReconstructSeat(
		m.ID,
		m.SeatNumber,
		route.Route(m.Route),
		m.Date,
		m.IsBooked,
		m.IsPickedUp,
		m.PassengerName,
		m.PassengerPhone,
		seatDomain.Gender(m.Gender),
		m.BoardingPoint,
		m.RowNumber,
		seatDomain.Position(m.Position),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
