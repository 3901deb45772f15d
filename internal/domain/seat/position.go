package seat

import "fmt"

// Position is the physical placement of a seat within its row.
type Position string

const (
	PositionWindow Position = "Window"
	PositionAisle  Position = "Aisle"
	PositionMiddle Position = "Middle"
)

const (
	// MinSeatCount is the smallest valid layout: the back row alone needs 5 seats.
	MinSeatCount = 5
	// MaxSeatCount caps a layout at a sane upper bound.
	MaxSeatCount = 200

	backRowSize     = 5
	standardRowSize = 4
)

// ValidateSeatCount checks that a layout size is within the supported range.
func ValidateSeatCount(totalSeats int) error {
	if totalSeats < MinSeatCount || totalSeats > MaxSeatCount {
		return NewValidationError(fmt.Sprintf("seat count must be between %d and %d, got %d", MinSeatCount, MaxSeatCount, totalSeats))
	}
	return nil
}

// ComputePosition derives the physical position and row number for a seat in a
// layout of totalSeats. The last 5 seats form the back row (Window, Aisle,
// Middle, Aisle, Window). All seats before it are grouped into rows of 4 where
// the outer two are Window and the inner two Aisle; a trailing partial row has
// its last seat at the Window and the rest on the Aisle. The back row's row
// number sorts after every standard row.
func ComputePosition(seatNumber, totalSeats int) (Position, int, error) {
	if err := ValidateSeatCount(totalSeats); err != nil {
		return "", 0, err
	}
	if seatNumber < 1 || seatNumber > totalSeats {
		return "", 0, NewValidationError(fmt.Sprintf("seat number %d is outside layout of %d seats", seatNumber, totalSeats))
	}

	frontSeats := totalSeats - backRowSize
	backRow := (frontSeats+standardRowSize-1)/standardRowSize + 1

	if seatNumber > frontSeats {
		switch seatNumber - frontSeats {
		case 1, backRowSize:
			return PositionWindow, backRow, nil
		case 2, backRowSize - 1:
			return PositionAisle, backRow, nil
		default:
			return PositionMiddle, backRow, nil
		}
	}

	row := (seatNumber + standardRowSize - 1) / standardRowSize
	fullRowSeats := (frontSeats / standardRowSize) * standardRowSize

	if seatNumber > fullRowSeats {
		// Trailing partial row of 1-3 seats.
		if seatNumber == frontSeats {
			return PositionWindow, row, nil
		}
		return PositionAisle, row, nil
	}

	switch (seatNumber - 1) % standardRowSize {
	case 0, standardRowSize - 1:
		return PositionWindow, row, nil
	default:
		return PositionAisle, row, nil
	}
}
