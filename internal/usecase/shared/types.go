package shared

import (
	"time"

	"parking-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// SlotSnapshot carries the slot together with the location fields the write side needs.
type SlotSnapshot struct {
	Slot            *slot.Slot
	LocationOwnerID uuid.UUID
	PricePerHour    float64
	LocationActive  bool
}

type LocationSnapshot struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	PricePerHour float64
	IsActive     bool
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type OutboxMessage struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Topic       string
	Payload     []byte
	Attempts    int
	RunAt       time.Time
	CreatedAt   time.Time
}
