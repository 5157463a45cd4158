// Package memstore is an in-memory implementation of the unit of work and read
// stores. Units of work are serialized under one lock and each runs against a
// private copy of the data that replaces the committed state on success.
package memstore

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	errExclusionViolation = errs.New("conflicting active booking on slot")
	errUnavailable        = errs.New("memstore unavailable")
	errNoRecord           = errs.New("no record")
)

type LocationRecord struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Address        string
	City           string
	PricePerHour   float64
	TotalSlots     int
	AvailableSlots int
	IsApproved     bool
	IsActive       bool
}

type SlotRecord struct {
	ID          uuid.UUID
	LocationID  uuid.UUID
	Number      string
	Type        slot.Type
	IsActive    bool
	IsAvailable bool
}

type OutboxRecord struct {
	shared.OutboxMessage
	Status    string
	LastError string
}

type bookingRecord struct {
	id           uuid.UUID
	userID       uuid.UUID
	locationID   uuid.UUID
	slotID       uuid.UUID
	interval     booking.Interval
	status       booking.Status
	quote        booking.Quote
	vehicle      booking.VehicleNumber
	notes        booking.Note
	cancelledBy  *uuid.UUID
	cancelReason booking.CancelReason
	createdAt    time.Time
	updatedAt    time.Time
	seq          int64
}

type paymentRecord struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	userID        uuid.UUID
	amount        float64
	currency      string
	method        payment.Method
	status        payment.Status
	gateway       string
	transactionID string
	failureReason string
	metadata      map[string]any
	createdAt     time.Time
	updatedAt     time.Time
	seq           int64
}

type idempotencyKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type state struct {
	locations   map[uuid.UUID]LocationRecord
	slots       map[uuid.UUID]SlotRecord
	bookings    map[uuid.UUID]bookingRecord
	payments    map[uuid.UUID]paymentRecord
	outbox      map[uuid.UUID]OutboxRecord
	idempotency map[idempotencyKey]shared.IdempotencyRecord
	seq         int64
}

func newState() *state {
	return &state{
		locations:   map[uuid.UUID]LocationRecord{},
		slots:       map[uuid.UUID]SlotRecord{},
		bookings:    map[uuid.UUID]bookingRecord{},
		payments:    map[uuid.UUID]paymentRecord{},
		outbox:      map[uuid.UUID]OutboxRecord{},
		idempotency: map[idempotencyKey]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	return &state{
		locations:   maps.Clone(s.locations),
		slots:       maps.Clone(s.slots),
		bookings:    maps.Clone(s.bookings),
		payments:    maps.Clone(s.payments),
		outbox:      maps.Clone(s.outbox),
		idempotency: maps.Clone(s.idempotency),
		seq:         s.seq,
	}
}

func (s *state) nextSeq() int64 {
	s.seq++
	return s.seq
}

type Store struct {
	mu    sync.RWMutex
	state *state

	reads  atomic.Int64
	writes atomic.Int64

	failMu     sync.Mutex
	failCommit func() error
	failReads  bool
}

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) AddLocation(l LocationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.locations[l.ID] = l
}

func (s *Store) AddSlot(r SlotRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.slots[r.ID] = r
}

// Reads and Writes count store calls, committed or not.
func (s *Store) Reads() int64  { return s.reads.Load() }
func (s *Store) Writes() int64 { return s.writes.Load() }

// FailCommits installs a hook consulted before every commit; a non-nil error
// aborts the unit of work. Pass nil to remove it.
func (s *Store) FailCommits(hook func() error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failCommit = hook
}

// FailReads makes every read outside a unit of work report the store as unavailable.
func (s *Store) FailReads(fail bool) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failReads = fail
}

func (s *Store) commitErr() error {
	s.failMu.Lock()
	hook := s.failCommit
	s.failMu.Unlock()
	if hook == nil {
		return nil
	}
	return hook()
}

func (s *Store) readsFailing() bool {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failReads
}

func (s *Store) Location(id uuid.UUID) (LocationRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.state.locations[id]
	return l, ok
}

func (s *Store) Slot(id uuid.UUID) (SlotRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.slots[id]
	return r, ok
}

// Bookings returns every committed booking.
func (s *Store) Bookings() []*booking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*booking.Booking, 0, len(s.state.bookings))
	for _, r := range s.state.bookings {
		result = append(result, r.toDomain())
	}
	return result
}

// Payments returns every committed payment for the booking, oldest first.
func (s *Store) Payments(bookingID uuid.UUID) []*payment.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]paymentRecord, 0)
	for _, r := range s.state.payments {
		if r.bookingID == bookingID {
			records = append(records, r)
		}
	}
	sortPaymentsAsc(records)
	result := make([]*payment.Payment, len(records))
	for i, r := range records {
		result[i] = r.toDomain()
	}
	return result
}

func (s *Store) Outbox() []OutboxRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]OutboxRecord, 0, len(s.state.outbox))
	for _, r := range s.state.outbox {
		result = append(result, r)
	}
	sortOutbox(result)
	return result
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.state.idempotency[idempotencyKey{key: key, userID: userID}]
	return r, ok
}

func toBookingRecord(b *booking.Booking) bookingRecord {
	return bookingRecord{
		id:           b.ID(),
		userID:       b.UserID(),
		locationID:   b.LocationID(),
		slotID:       b.SlotID(),
		interval:     b.Interval(),
		status:       b.Status(),
		quote:        b.Quote(),
		vehicle:      b.Vehicle(),
		notes:        b.Notes(),
		cancelledBy:  b.CancelledBy(),
		cancelReason: b.CancelReason(),
		createdAt:    b.CreatedAt(),
		updatedAt:    b.UpdatedAt(),
	}
}

func (r bookingRecord) toDomain() *booking.Booking {
	return booking.ReconstructBooking(
		r.id, r.userID, r.locationID, r.slotID,
		r.interval,
		r.status,
		r.quote,
		r.vehicle,
		r.notes,
		nil,
		r.cancelledBy,
		r.cancelReason,
		r.createdAt,
		r.updatedAt,
	)
}

func toPaymentRecord(p *payment.Payment) paymentRecord {
	return paymentRecord{
		id:            p.ID(),
		bookingID:     p.BookingID(),
		userID:        p.UserID(),
		amount:        p.Amount(),
		currency:      p.Currency(),
		method:        p.Method(),
		status:        p.Status(),
		gateway:       p.Gateway(),
		transactionID: p.TransactionID(),
		failureReason: p.FailureReason(),
		metadata:      p.Metadata(),
		createdAt:     p.CreatedAt(),
		updatedAt:     p.UpdatedAt(),
	}
}

func (r paymentRecord) toDomain() *payment.Payment {
	return payment.ReconstructPayment(
		r.id, r.bookingID, r.userID,
		r.amount,
		r.currency,
		r.method,
		r.status,
		r.gateway, r.transactionID, r.failureReason,
		maps.Clone(r.metadata),
		r.createdAt, r.updatedAt,
	)
}
