package shared

import (
	"context"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/slot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-query consistent reads (checkout replay)
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads CommandReads) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Repositories obtained from a Tx are bound to that transaction.
type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Slots() SlotRepository
	Outbox() OutboxRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
}

type CommandReads interface {
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	LocationByID(ctx context.Context, id uuid.UUID) (*LocationSnapshot, error)
	ActiveSlotsByLocation(ctx context.Context, locationID uuid.UUID) ([]*slot.Slot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// BookingByIDForUpdate locks the row until the surrounding transaction ends.
	BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ActiveIntervalsOnSlot(ctx context.Context, slotID uuid.UUID, window booking.Interval) ([]booking.Interval, error)
	HasActiveOverlap(ctx context.Context, slotID uuid.UUID, interval booking.Interval) (bool, error)
	DueActiveBookingIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	LatestPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	// Create fails with a CONFLICT repository error when an active booking on the
	// same slot overlaps.
	Create(ctx context.Context, b *booking.Booking) error
	// UpdateStatus persists a transition out of Active. It reports booking.ErrNotActive
	// when the stored row is no longer Active.
	UpdateStatus(ctx context.Context, b *booking.Booking) error
}

type PaymentRepository interface {
	// Create fails with a DUPLICATE_KEY repository error when the booking already
	// has a pending or successful payment.
	Create(ctx context.Context, p *payment.Payment) error
	// Settle writes the outcome of a Pending payment. It reports
	// payment.ErrAlreadySettled when the stored row is no longer Pending.
	Settle(ctx context.Context, p *payment.Payment) error
}

type SlotRepository interface {
	RefreshAvailability(ctx context.Context, slotID, locationID uuid.UUID, now time.Time) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) error
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, id uuid.UUID, now time.Time) error
	// MarkRetry records a failed attempt; a dead message is never claimed again.
	MarkRetry(ctx context.Context, id uuid.UUID, lastErr string, nextRunAt time.Time, dead bool, now time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when a live record for the key already exists.
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error)
	Complete(ctx context.Context, key, userID, bookingID uuid.UUID) error
	Release(ctx context.Context, key, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
