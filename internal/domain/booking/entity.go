package booking

import (
	"time"

	"parking-booking/internal/domain/user"

	"github.com/google/uuid"
)

type CancelReason string

const (
	CancelReasonRequested     CancelReason = "requested"
	CancelReasonPaymentFailed CancelReason = "payment_failed"
)

type Booking struct {
	id             uuid.UUID
	userID         uuid.UUID
	locationID     uuid.UUID
	slotID         uuid.UUID
	interval       Interval
	status         Status
	quote          Quote
	vehicle        VehicleNumber
	notes          Note
	idempotencyKey *uuid.UUID
	cancelledBy    *uuid.UUID
	cancelReason   CancelReason
	createdAt      time.Time
	updatedAt      time.Time
}

type NewBookingParams struct {
	UserID         uuid.UUID
	LocationID     uuid.UUID
	SlotID         uuid.UUID
	Interval       Interval
	Quote          Quote
	Vehicle        VehicleNumber
	Notes          Note
	IdempotencyKey *uuid.UUID
	Now            time.Time
}

func NewBooking(p NewBookingParams) *Booking {
	return &Booking{
		id:             uuid.New(),
		userID:         p.UserID,
		locationID:     p.LocationID,
		slotID:         p.SlotID,
		interval:       p.Interval,
		status:         StatusActive,
		quote:          p.Quote,
		vehicle:        p.Vehicle,
		notes:          p.Notes,
		idempotencyKey: p.IdempotencyKey,
		createdAt:      p.Now,
		updatedAt:      p.Now,
	}
}

func ReconstructBooking(
	id, userID, locationID, slotID uuid.UUID,
	interval Interval,
	status Status,
	quote Quote,
	vehicle VehicleNumber,
	notes Note,
	idempotencyKey, cancelledBy *uuid.UUID,
	cancelReason CancelReason,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		userID:         userID,
		locationID:     locationID,
		slotID:         slotID,
		interval:       interval,
		status:         status,
		quote:          quote,
		vehicle:        vehicle,
		notes:          notes,
		idempotencyKey: idempotencyKey,
		cancelledBy:    cancelledBy,
		cancelReason:   cancelReason,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) UserID() uuid.UUID          { return b.userID }
func (b *Booking) LocationID() uuid.UUID      { return b.locationID }
func (b *Booking) SlotID() uuid.UUID          { return b.slotID }
func (b *Booking) Interval() Interval         { return b.interval }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) Quote() Quote               { return b.quote }
func (b *Booking) TotalDuration() float64     { return b.quote.Hours }
func (b *Booking) TotalCost() float64         { return b.quote.Cost }
func (b *Booking) HourlyRate() float64        { return b.quote.Rate }
func (b *Booking) Vehicle() VehicleNumber     { return b.vehicle }
func (b *Booking) Notes() Note                { return b.notes }
func (b *Booking) IdempotencyKey() *uuid.UUID { return b.idempotencyKey }
func (b *Booking) CancelledBy() *uuid.UUID    { return b.cancelledBy }
func (b *Booking) CancelReason() CancelReason { return b.cancelReason }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status == StatusActive
}

// EffectiveStatus reports Completed for an Active booking whose interval has
// elapsed, even before the sweep has persisted the transition.
func (b *Booking) EffectiveStatus(now time.Time) Status {
	if b.status == StatusActive && b.interval.HasEndedAt(now) {
		return StatusCompleted
	}
	return b.status
}

// CanBeCancelledBy allows the booking's user, the owner of its location, admins and the system.
func (b *Booking) CanBeCancelledBy(actor user.Actor, locationOwnerID uuid.UUID) bool {
	if actor.IsPrivileged() {
		return true
	}
	if actor.ID == b.userID {
		return true
	}
	return actor.IsOwner() && locationOwnerID != uuid.Nil && actor.ID == locationOwnerID
}

func (b *Booking) Cancel(actor user.Actor, locationOwnerID uuid.UUID, reason CancelReason, now time.Time) error {
	if !b.CanBeCancelledBy(actor, locationOwnerID) {
		return ErrNotCancelable
	}
	if !b.status.CanTransitionTo(StatusCancelled) {
		return ErrNotActive
	}
	// An elapsed booking already reads as Completed. Only payment compensation
	// may still cancel it.
	if reason != CancelReasonPaymentFailed && b.interval.HasEndedAt(now) {
		return ErrNotActive
	}

	b.status = StatusCancelled
	b.cancelReason = reason
	if !actor.IsSystem() {
		id := actor.ID
		b.cancelledBy = &id
	}
	b.updatedAt = now
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return ErrNotActive
	}
	if !b.interval.HasEndedAt(now) {
		return ErrNotYetEnded
	}

	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}
