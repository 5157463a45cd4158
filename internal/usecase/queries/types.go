package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data. Status is the effective
// status at read time.
type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	LocationID      uuid.UUID  `json:"parking_location_id"`
	LocationName    string     `json:"location_name"`
	LocationOwnerID uuid.UUID  `json:"-"`
	SlotID          uuid.UUID  `json:"slot_id"`
	SlotNumber      string     `json:"slot_number"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	Status          string     `json:"status"`
	TotalDuration   float64    `json:"total_duration"`
	TotalCost       float64    `json:"total_cost"`
	HourlyRate      float64    `json:"hourly_rate"`
	VehicleNumber   string     `json:"vehicle_number"`
	Notes           *string    `json:"notes,omitempty"`
	CancelledBy     *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelReason    *string    `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type PaymentView struct {
	ID            uuid.UUID      `json:"id"`
	BookingID     uuid.UUID      `json:"booking_id"`
	UserID        uuid.UUID      `json:"user_id"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	Method        string         `json:"payment_method"`
	Status        string         `json:"status"`
	Gateway       string         `json:"gateway"`
	TransactionID *string        `json:"transaction_id,omitempty"`
	FailureReason *string        `json:"failure_reason,omitempty"`
	Metadata      map[string]any `json:"metadata"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type SlotView struct {
	ID              uuid.UUID `json:"id"`
	LocationID      uuid.UUID `json:"parking_location_id"`
	LocationOwnerID uuid.UUID `json:"-"`
	SlotNumber      string    `json:"slot_number"`
	SlotType        string    `json:"slot_type"`
	// IsAvailable is the display hint, not an availability decision.
	IsAvailable      bool `json:"is_available"`
	IsActive         bool `json:"is_active"`
	LocationIsActive bool `json:"-"`
}

type LocationView struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	PricePerHour   float64   `json:"price_per_hour"`
	TotalSlots     int32     `json:"total_slots"`
	AvailableSlots int32     `json:"available_slots"`
	IsApproved     bool      `json:"is_approved"`
	IsActive       bool      `json:"is_active"`
}

type BookingStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type PaymentStats struct {
	TotalRevenue       float64 `json:"total_revenue"`
	SuccessfulPayments int64   `json:"successful_payments"`
	FailedPayments     int64   `json:"failed_payments"`
}

type Stats struct {
	Bookings BookingStats `json:"bookings"`
	Payments PaymentStats `json:"payments"`
}

type IntervalView struct {
	BookingID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}
