package memstore

import (
	"context"
	"slices"
	"strings"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/infra"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	work := u.store.state.clone()
	if err := fn(ctx, &memTx{store: u.store, st: work}); err != nil {
		return err
	}
	if err := u.store.commitErr(); err != nil {
		return infra.WrapRepoErr("failed to commit", err)
	}

	u.store.state = work
	return nil
}

func (u *UnitOfWork) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, reads shared.CommandReads) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.RLock()
	defer u.store.mu.RUnlock()

	return fn(ctx, &memReads{store: u.store, st: u.store.state})
}

// CommandReads serves each call from the committed state at the time of the call.
func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return &lockedReads{store: u.store}
}

type memTx struct {
	store *Store
	st    *state
}

func (t *memTx) Bookings() shared.BookingRepository {
	return &bookingRepo{store: t.store, st: t.st}
}

func (t *memTx) Payments() shared.PaymentRepository {
	return &paymentRepo{store: t.store, st: t.st}
}

func (t *memTx) Slots() shared.SlotRepository {
	return &slotRepo{store: t.store, st: t.st}
}

func (t *memTx) Outbox() shared.OutboxRepository {
	return &outboxRepo{store: t.store, st: t.st}
}

func (t *memTx) Idempotency() shared.IdempotencyRepository {
	return &idempotencyRepo{store: t.store, st: t.st}
}

func (t *memTx) Reads() shared.CommandReads {
	return &memReads{store: t.store, st: t.st}
}

// memReads reads a state the caller already holds the lock for.
type memReads struct {
	store *Store
	st    *state
}

func (r *memReads) SlotByID(_ context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	r.store.reads.Add(1)
	rec, ok := r.st.slots[id]
	if !ok {
		return nil, notFound("slot")
	}
	loc := r.st.locations[rec.LocationID]
	return &shared.SlotSnapshot{
		Slot:            slotToDomain(rec),
		LocationOwnerID: loc.OwnerID,
		PricePerHour:    loc.PricePerHour,
		LocationActive:  loc.IsActive,
	}, nil
}

func (r *memReads) LocationByID(_ context.Context, id uuid.UUID) (*shared.LocationSnapshot, error) {
	r.store.reads.Add(1)
	loc, ok := r.st.locations[id]
	if !ok {
		return nil, notFound("location")
	}
	return &shared.LocationSnapshot{
		ID:           loc.ID,
		OwnerID:      loc.OwnerID,
		PricePerHour: loc.PricePerHour,
		IsActive:     loc.IsActive,
	}, nil
}

func (r *memReads) ActiveSlotsByLocation(_ context.Context, locationID uuid.UUID) ([]*slot.Slot, error) {
	r.store.reads.Add(1)
	records := make([]SlotRecord, 0)
	for _, rec := range r.st.slots {
		if rec.LocationID == locationID && rec.IsActive {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, func(a, b SlotRecord) int {
		return strings.Compare(a.Number, b.Number)
	})

	result := make([]*slot.Slot, len(records))
	for i, rec := range records {
		result[i] = slotToDomain(rec)
	}
	return result, nil
}

func (r *memReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.store.reads.Add(1)
	rec, ok := r.st.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return rec.toDomain(), nil
}

// The unit-of-work lock already excludes concurrent writers.
func (r *memReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.BookingByID(ctx, id)
}

func (r *memReads) ActiveIntervalsOnSlot(_ context.Context, slotID uuid.UUID, window booking.Interval) ([]booking.Interval, error) {
	r.store.reads.Add(1)
	result := make([]booking.Interval, 0)
	for _, rec := range r.st.bookings {
		if rec.slotID == slotID && rec.status == booking.StatusActive && rec.interval.Overlaps(window) {
			result = append(result, rec.interval)
		}
	}
	slices.SortFunc(result, func(a, b booking.Interval) int {
		return a.Start().Compare(b.Start())
	})
	return result, nil
}

func (r *memReads) HasActiveOverlap(_ context.Context, slotID uuid.UUID, interval booking.Interval) (bool, error) {
	r.store.reads.Add(1)
	return hasActiveOverlap(r.st, slotID, interval, uuid.Nil), nil
}

func (r *memReads) DueActiveBookingIDs(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	r.store.reads.Add(1)
	due := make([]bookingRecord, 0)
	for _, rec := range r.st.bookings {
		if rec.status == booking.StatusActive && rec.interval.HasEndedAt(now) {
			due = append(due, rec)
		}
	}
	slices.SortFunc(due, func(a, b bookingRecord) int {
		return a.interval.End().Compare(b.interval.End())
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	ids := make([]uuid.UUID, len(due))
	for i, rec := range due {
		ids[i] = rec.id
	}
	return ids, nil
}

func (r *memReads) LatestPaymentByBooking(_ context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	r.store.reads.Add(1)
	var (
		latest paymentRecord
		found  bool
	)
	for _, rec := range r.st.payments {
		if rec.bookingID == bookingID && (!found || rec.seq > latest.seq) {
			latest = rec
			found = true
		}
	}
	if !found {
		return nil, notFound("payment")
	}
	return latest.toDomain(), nil
}

func (r *memReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.store.reads.Add(1)
	rec, ok := r.st.idempotency[idempotencyKey{key: key, userID: userID}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}

// lockedReads takes the read lock around every call.
type lockedReads struct {
	store *Store
}

func (r *lockedReads) with(fn func(reads *memReads) error) error {
	if r.store.readsFailing() {
		return infra.WrapRepoErr("failed to read", errUnavailable)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return fn(&memReads{store: r.store, st: r.store.state})
}

func (r *lockedReads) SlotByID(ctx context.Context, id uuid.UUID) (snap *shared.SlotSnapshot, err error) {
	err = r.with(func(m *memReads) error { snap, err = m.SlotByID(ctx, id); return err })
	return snap, err
}

func (r *lockedReads) LocationByID(ctx context.Context, id uuid.UUID) (snap *shared.LocationSnapshot, err error) {
	err = r.with(func(m *memReads) error { snap, err = m.LocationByID(ctx, id); return err })
	return snap, err
}

func (r *lockedReads) ActiveSlotsByLocation(ctx context.Context, locationID uuid.UUID) (slots []*slot.Slot, err error) {
	err = r.with(func(m *memReads) error { slots, err = m.ActiveSlotsByLocation(ctx, locationID); return err })
	return slots, err
}

func (r *lockedReads) BookingByID(ctx context.Context, id uuid.UUID) (b *booking.Booking, err error) {
	err = r.with(func(m *memReads) error { b, err = m.BookingByID(ctx, id); return err })
	return b, err
}

func (r *lockedReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.BookingByID(ctx, id)
}

func (r *lockedReads) ActiveIntervalsOnSlot(ctx context.Context, slotID uuid.UUID, window booking.Interval) (intervals []booking.Interval, err error) {
	err = r.with(func(m *memReads) error { intervals, err = m.ActiveIntervalsOnSlot(ctx, slotID, window); return err })
	return intervals, err
}

func (r *lockedReads) HasActiveOverlap(ctx context.Context, slotID uuid.UUID, interval booking.Interval) (overlaps bool, err error) {
	err = r.with(func(m *memReads) error { overlaps, err = m.HasActiveOverlap(ctx, slotID, interval); return err })
	return overlaps, err
}

func (r *lockedReads) DueActiveBookingIDs(ctx context.Context, now time.Time, limit int) (ids []uuid.UUID, err error) {
	err = r.with(func(m *memReads) error { ids, err = m.DueActiveBookingIDs(ctx, now, limit); return err })
	return ids, err
}

func (r *lockedReads) LatestPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (p *payment.Payment, err error) {
	err = r.with(func(m *memReads) error { p, err = m.LatestPaymentByBooking(ctx, bookingID); return err })
	return p, err
}

func (r *lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (rec *shared.IdempotencyRecord, err error) {
	err = r.with(func(m *memReads) error { rec, err = m.IdempotencyByKey(ctx, key, userID); return err })
	return rec, err
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", errNoRecord, infra.KindNotFound)
}

func hasActiveOverlap(st *state, slotID uuid.UUID, interval booking.Interval, except uuid.UUID) bool {
	for _, rec := range st.bookings {
		if rec.id == except || rec.slotID != slotID || rec.status != booking.StatusActive {
			continue
		}
		if rec.interval.Overlaps(interval) {
			return true
		}
	}
	return false
}

func slotToDomain(rec SlotRecord) *slot.Slot {
	return slot.ReconstructSlot(
		rec.ID, rec.LocationID,
		rec.Number,
		rec.Type,
		rec.IsActive, rec.IsAvailable,
		time.Time{}, time.Time{},
	)
}
