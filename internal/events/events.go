package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TopicSeatEvents is the Kafka topic carrying all seat mutation events.
const TopicSeatEvents = "seat.events"

// Event types published on TopicSeatEvents.
const (
	SeatBooked               = "seat.booked"
	SeatPassengerUpdated     = "seat.passenger_updated"
	SeatBookingCancelled     = "seat.booking_cancelled"
	SeatPickupChanged        = "seat.pickup_changed"
	SeatInventoryInitialized = "seat.inventory_initialized"
)

// Event is the envelope every published message is wrapped in.
type Event struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewEvent wraps a payload in an Event envelope.
func NewEvent(source, eventType string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal event data: %w", err)
	}
	return Event{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseEvent decodes an Event envelope from raw bytes.
func ParseEvent(raw []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return Event{}, fmt.Errorf("failed to parse event: %w", err)
	}
	return evt, nil
}

// ParseData decodes the event payload into v.
func (e Event) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// SeatEvent is the payload for all per-seat mutation events.
type SeatEvent struct {
	SeatID     uuid.UUID `json:"seat_id"`
	SeatNumber int       `json:"seat_number"`
	Route      string    `json:"route"`
	Date       string    `json:"date"`
	IsBooked   bool      `json:"is_booked"`
	IsPickedUp bool      `json:"is_picked_up"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InventoryInitializedEvent is the payload published after a seat-set is
// created or migrated.
type InventoryInitializedEvent struct {
	Route      string    `json:"route"`
	Date       string    `json:"date"`
	SeatCount  int       `json:"seat_count"`
	Created    int       `json:"created"`
	Relabelled int       `json:"relabelled"`
	Deleted    int       `json:"deleted"`
	Forced     bool      `json:"forced"`
	OccurredAt time.Time `json:"occurred_at"`
}
