package memstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
	outboxStatusFailed    = "failed"
)

type bookingRepo struct {
	store *Store
	st    *state
}

// Create enforces the same rule as the bookings_no_active_overlap constraint.
func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.store.writes.Add(1)
	if _, exists := r.st.bookings[b.ID()]; exists {
		return infra.WrapRepoErr("failed to create booking", errs.New("duplicate booking id"), infra.KindDuplicateKey)
	}
	if b.IsActive() && hasActiveOverlap(r.st, b.SlotID(), b.Interval(), b.ID()) {
		return infra.WrapRepoErr("failed to create booking", errExclusionViolation, infra.KindConflict)
	}

	rec := toBookingRecord(b)
	rec.seq = r.st.nextSeq()
	r.st.bookings[rec.id] = rec
	return nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	r.store.writes.Add(1)
	current, ok := r.st.bookings[b.ID()]
	if !ok || current.status != booking.StatusActive {
		return booking.ErrNotActive
	}

	current.status = b.Status()
	current.cancelledBy = b.CancelledBy()
	current.cancelReason = b.CancelReason()
	current.updatedAt = b.UpdatedAt()
	r.st.bookings[current.id] = current
	return nil
}

type paymentRepo struct {
	store *Store
	st    *state
}

func (r *paymentRepo) Create(_ context.Context, p *payment.Payment) error {
	r.store.writes.Add(1)
	if _, exists := r.st.bookings[p.BookingID()]; !exists {
		return infra.WrapRepoErr("failed to create payment", errs.New("booking does not exist"), infra.KindForeignKeyViolated)
	}

	// same rule as uq_payments_booking_open
	if isOpenPayment(p.Status()) {
		for _, existing := range r.st.payments {
			if existing.bookingID == p.BookingID() && isOpenPayment(existing.status) {
				return infra.WrapRepoErr("failed to create payment", errs.New("booking already has an open payment"), infra.KindDuplicateKey)
			}
		}
	}

	rec := toPaymentRecord(p)
	rec.seq = r.st.nextSeq()
	r.st.payments[rec.id] = rec
	return nil
}

func (r *paymentRepo) Settle(_ context.Context, p *payment.Payment) error {
	r.store.writes.Add(1)
	current, ok := r.st.payments[p.ID()]
	if !ok || current.status != payment.StatusPending {
		return payment.ErrAlreadySettled
	}

	settled := toPaymentRecord(p)
	settled.createdAt = current.createdAt
	settled.seq = current.seq
	r.st.payments[settled.id] = settled
	return nil
}

func isOpenPayment(s payment.Status) bool {
	return s == payment.StatusPending || s == payment.StatusSuccess
}

type slotRepo struct {
	store *Store
	st    *state
}

func (r *slotRepo) RefreshAvailability(_ context.Context, slotID, locationID uuid.UUID, now time.Time) error {
	r.store.writes.Add(1)
	if rec, ok := r.st.slots[slotID]; ok {
		occupied := false
		for _, b := range r.st.bookings {
			if b.slotID == slotID && b.status == booking.StatusActive &&
				!now.Before(b.interval.Start()) && now.Before(b.interval.End()) {
				occupied = true
				break
			}
		}
		rec.IsAvailable = !occupied
		r.st.slots[slotID] = rec
	}

	if loc, ok := r.st.locations[locationID]; ok {
		available := 0
		for _, s := range r.st.slots {
			if s.LocationID == locationID && s.IsActive && s.IsAvailable {
				available++
			}
		}
		loc.AvailableSlots = available
		r.st.locations[locationID] = loc
	}
	return nil
}

type outboxRepo struct {
	store *Store
	st    *state
}

func (r *outboxRepo) Enqueue(_ context.Context, msg shared.OutboxMessage) error {
	r.store.writes.Add(1)
	msg.Payload = slices.Clone(msg.Payload)
	r.st.outbox[msg.ID] = OutboxRecord{OutboxMessage: msg, Status: outboxStatusPending}
	return nil
}

func (r *outboxRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]shared.OutboxMessage, error) {
	r.store.reads.Add(1)
	due := make([]OutboxRecord, 0)
	for _, rec := range r.st.outbox {
		if rec.Status == outboxStatusPending && !rec.RunAt.After(now) {
			due = append(due, rec)
		}
	}
	sortOutbox(due)
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	result := make([]shared.OutboxMessage, len(due))
	for i, rec := range due {
		result[i] = rec.OutboxMessage
	}
	return result, nil
}

func (r *outboxRepo) MarkPublished(_ context.Context, id uuid.UUID, _ time.Time) error {
	r.store.writes.Add(1)
	rec, ok := r.st.outbox[id]
	if !ok {
		return nil
	}
	rec.Status = outboxStatusPublished
	rec.Attempts++
	rec.LastError = ""
	r.st.outbox[id] = rec
	return nil
}

func (r *outboxRepo) MarkRetry(_ context.Context, id uuid.UUID, lastErr string, nextRunAt time.Time, dead bool, _ time.Time) error {
	r.store.writes.Add(1)
	rec, ok := r.st.outbox[id]
	if !ok {
		return nil
	}
	rec.Status = outboxStatusPending
	if dead {
		rec.Status = outboxStatusFailed
	}
	rec.Attempts++
	rec.LastError = lastErr
	rec.RunAt = nextRunAt
	r.st.outbox[id] = rec
	return nil
}

type idempotencyRepo struct {
	store *Store
	st    *state
}

func (r *idempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt, now time.Time) (bool, error) {
	r.store.writes.Add(1)
	k := idempotencyKey{key: key, userID: userID}
	if existing, ok := r.st.idempotency[k]; ok && !existing.ExpiresAt.Before(now) {
		return false, nil
	}

	r.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idempotencyRepo) Complete(_ context.Context, key, userID, bookingID uuid.UUID) error {
	r.store.writes.Add(1)
	k := idempotencyKey{key: key, userID: userID}
	rec, ok := r.st.idempotency[k]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyStatusCompleted
	rec.ResultBookingID = &bookingID
	r.st.idempotency[k] = rec
	return nil
}

func (r *idempotencyRepo) Release(_ context.Context, key, userID uuid.UUID) error {
	r.store.writes.Add(1)
	k := idempotencyKey{key: key, userID: userID}
	if rec, ok := r.st.idempotency[k]; ok && rec.Status == shared.IdempotencyStatusProcessing {
		delete(r.st.idempotency, k)
	}
	return nil
}

func (r *idempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.store.writes.Add(1)
	var deleted int64
	maps.DeleteFunc(r.st.idempotency, func(_ idempotencyKey, rec shared.IdempotencyRecord) bool {
		if rec.ExpiresAt.Before(now) {
			deleted++
			return true
		}
		return false
	})
	return deleted, nil
}

func sortOutbox(records []OutboxRecord) {
	slices.SortFunc(records, func(a, b OutboxRecord) int {
		if c := a.RunAt.Compare(b.RunAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

func sortPaymentsAsc(records []paymentRecord) {
	slices.SortFunc(records, func(a, b paymentRecord) int {
		return int(a.seq - b.seq)
	})
}
