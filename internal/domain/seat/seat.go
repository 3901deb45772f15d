package seat

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/mannar-express/service-seats/internal/domain/route"
)

// Gender is the passenger's gender as recorded on the booking.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsValid returns true if the gender is a recognized value.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Seat is the aggregate root for a single physical seat on one route and date.
type Seat struct {
	id         uuid.UUID
	seatNumber int
	route      route.Route
	date       string

	isBooked   bool
	isPickedUp bool

	passengerName  string
	passengerPhone string
	gender         Gender
	boardingPoint  string

	rowNumber int
	position  Position

	createdAt time.Time
	updatedAt time.Time
}

// DeterministicID derives the seat's document id from its identity triple so
// that re-initialization for the same (route, date, seatNumber) can never mint
// a second document.
func DeterministicID(r route.Route, date string, seatNumber int) uuid.UUID {
	key := fmt.Sprintf("seats/%s/%s/%d", r, date, seatNumber)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
}

// NewSeat creates an unbooked seat with its position and row derived from the
// layout size.
func NewSeat(r route.Route, date string, seatNumber, totalSeats int) (*Seat, error) {
	if !r.IsValid() {
		return nil, NewValidationError(fmt.Sprintf("unknown route: %s", r))
	}
	position, rowNumber, err := ComputePosition(seatNumber, totalSeats)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Seat{
		id:         DeterministicID(r, date, seatNumber),
		seatNumber: seatNumber,
		route:      r,
		date:       date,
		rowNumber:  rowNumber,
		position:   position,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructSeat rebuilds a Seat from persistence data (no validation).
func ReconstructSeat(
	id uuid.UUID,
	seatNumber int,
	r route.Route,
	date string,
	isBooked bool,
	isPickedUp bool,
	passengerName string,
	passengerPhone string,
	gender Gender,
	boardingPoint string,
	rowNumber int,
	position Position,
	createdAt time.Time,
	updatedAt time.Time,
) *Seat {
	return &Seat{
		id:             id,
		seatNumber:     seatNumber,
		route:          r,
		date:           date,
		isBooked:       isBooked,
		isPickedUp:     isPickedUp,
		passengerName:  passengerName,
		passengerPhone: passengerPhone,
		gender:         gender,
		boardingPoint:  boardingPoint,
		rowNumber:      rowNumber,
		position:       position,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

// ID returns the seat's document id.
func (s *Seat) ID() uuid.UUID { return s.id }

// SeatNumber returns the 1-based seat ordinal.
func (s *Seat) SeatNumber() int { return s.seatNumber }

// Route returns the route this seat belongs to.
func (s *Seat) Route() route.Route { return s.route }

// Date returns the booking day (YYYY-MM-DD) this seat instance belongs to.
func (s *Seat) Date() string { return s.date }

// IsBooked returns true if a passenger currently occupies the seat.
func (s *Seat) IsBooked() bool { return s.isBooked }

// IsPickedUp returns true once the passenger has boarded.
func (s *Seat) IsPickedUp() bool { return s.isPickedUp }

// PassengerName returns the passenger's name, or "" when not booked.
func (s *Seat) PassengerName() string { return s.passengerName }

// PassengerPhone returns the passenger's phone, or "" when not booked.
func (s *Seat) PassengerPhone() string { return s.passengerPhone }

// Gender returns the passenger's gender, or "" when not booked.
func (s *Seat) Gender() Gender { return s.gender }

// BoardingPoint returns the chosen boarding point, or "" when not set.
func (s *Seat) BoardingPoint() string { return s.boardingPoint }

// RowNumber returns the physical row grouping of the seat.
func (s *Seat) RowNumber() int { return s.rowNumber }

// Position returns the seat's physical position within its row.
func (s *Seat) Position() Position { return s.position }

// CreatedAt returns the creation timestamp.
func (s *Seat) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last-mutated timestamp.
func (s *Seat) UpdatedAt() time.Time { return s.updatedAt }

// --- Behavior ---

func validatePassenger(phone string, gender Gender) error {
	if phone == "" {
		return NewValidationError("Passenger phone is required")
	}
	if !phonePattern.MatchString(phone) {
		return NewValidationError("Passenger phone must be exactly 10 digits")
	}
	if gender == "" || !gender.IsValid() {
		return NewValidationError("Gender is required (male or female)")
	}
	return nil
}

// Book places a passenger on an available seat.
func (s *Seat) Book(name, phone string, gender Gender, boardingPoint string) error {
	if err := validatePassenger(phone, gender); err != nil {
		return err
	}
	if s.isBooked {
		return NewConflictError("Seat is already booked")
	}

	s.isBooked = true
	s.isPickedUp = false
	s.passengerName = name
	s.passengerPhone = phone
	s.gender = gender
	s.boardingPoint = boardingPoint
	s.updatedAt = time.Now().UTC()
	return nil
}

// UpdatePassenger overwrites the passenger fields without touching the booking
// flag. Note: like the system it replaces, this also accepts an unbooked seat
// and writes passenger data onto it without marking it booked.
func (s *Seat) UpdatePassenger(name, phone string, gender Gender, boardingPoint string) error {
	if err := validatePassenger(phone, gender); err != nil {
		return err
	}

	s.passengerName = name
	s.passengerPhone = phone
	s.gender = gender
	s.boardingPoint = boardingPoint
	s.updatedAt = time.Now().UTC()
	return nil
}

// Cancel releases the seat and clears all passenger data. Cancelling an
// already-available seat is a no-op on content and still succeeds.
func (s *Seat) Cancel() {
	s.isBooked = false
	s.isPickedUp = false
	s.passengerName = ""
	s.passengerPhone = ""
	s.gender = ""
	s.boardingPoint = ""
	s.updatedAt = time.Now().UTC()
}

// SetPickedUp records whether the passenger has boarded. The seat's booking
// state is not checked, matching the system this replaces.
func (s *Seat) SetPickedUp(pickedUp bool) {
	s.isPickedUp = pickedUp
	s.updatedAt = time.Now().UTC()
}

// Relabel recomputes the seat's position and row for a new layout size,
// preserving all booking data.
func (s *Seat) Relabel(totalSeats int) error {
	position, rowNumber, err := ComputePosition(s.seatNumber, totalSeats)
	if err != nil {
		return err
	}
	s.position = position
	s.rowNumber = rowNumber
	s.updatedAt = time.Now().UTC()
	return nil
}
