package commands

import (
	"context"
	"log/slog"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrLocationInactive = errs.Mark(errs.New("parking location is not active"), errs.ErrSlotInactive)

type CreateBookingInput struct {
	SlotID  uuid.UUID
	Start   time.Time
	End     time.Time
	Vehicle string
	Notes   string
	// HourlyRate overrides the location's price when set.
	HourlyRate     *float64
	IdempotencyKey *uuid.UUID
}

type BookingCommands interface {
	Create(ctx context.Context, actor user.Actor, in CreateBookingInput) (*booking.Booking, error)
	Cancel(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error)
	Complete(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, factory *booking.Factory, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		factory: factory,
		clock:   clk,
	}
}

type validatedBooking struct {
	interval booking.Interval
	vehicle  booking.VehicleNumber
	notes    booking.Note
}

// validateCreate runs every check that needs no store access.
func validateCreate(in CreateBookingInput) (validatedBooking, error) {
	interval, err := booking.NewInterval(in.Start, in.End)
	if err != nil {
		return validatedBooking{}, err
	}
	if in.HourlyRate != nil {
		if _, err := booking.Cost(interval.Duration().Hours(), *in.HourlyRate); err != nil {
			return validatedBooking{}, err
		}
	}
	vehicle, err := booking.NewVehicleNumber(in.Vehicle)
	if err != nil {
		return validatedBooking{}, err
	}
	notes, err := booking.NewNote(in.Notes)
	if err != nil {
		return validatedBooking{}, err
	}
	return validatedBooking{interval: interval, vehicle: vehicle, notes: notes}, nil
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actor user.Actor, in CreateBookingInput) (*booking.Booking, error) {
	v, err := validateCreate(in)
	if err != nil {
		return nil, err
	}

	var created *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().SlotByID(ctx, in.SlotID)
		if err != nil {
			return err
		}
		if !snapshot.LocationActive {
			return ErrLocationInactive
		}

		rate := snapshot.PricePerHour
		if in.HourlyRate != nil {
			rate = *in.HourlyRate
		}

		b, err := c.factory.CreateBooking(snapshot.Slot, booking.CreateInput{
			UserID:         actor.ID,
			Interval:       v.interval,
			Vehicle:        v.vehicle,
			Notes:          v.notes,
			HourlyRate:     rate,
			IdempotencyKey: in.IdempotencyKey,
		})
		if err != nil {
			return err
		}

		// Fast path only; the exclusion constraint decides under concurrency.
		taken, err := tx.Reads().HasActiveOverlap(ctx, b.SlotID(), b.Interval())
		if err != nil {
			return err
		}
		if taken {
			return errs.Mark(errs.Newf("slot %s is booked during %s", b.SlotID(), b.Interval()), errs.ErrSlotUnavailable)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		if err := enqueueBookingEvent(ctx, tx, TopicBookingCreated, b, b.CreatedAt()); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, shared.StoreError(err, "create booking")
	}

	slog.Info("booking created",
		"booking_id", created.ID(),
		"slot_id", created.SlotID(),
		"interval", created.Interval().String(),
		"total_cost", created.TotalCost())
	return created, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	reason := booking.CancelReasonRequested
	if actor.IsSystem() {
		reason = booking.CancelReasonPaymentFailed
	}
	return c.cancel(ctx, actor, bookingID, reason)
}

func (c *bookingCommandsImpl) cancel(ctx context.Context, actor user.Actor, bookingID uuid.UUID, reason booking.CancelReason) (*booking.Booking, error) {
	var cancelled *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		var ownerID uuid.UUID
		if actor.IsOwner() {
			location, err := tx.Reads().LocationByID(ctx, b.LocationID())
			if err != nil {
				return err
			}
			ownerID = location.OwnerID
		}

		now := c.clock.Now()
		if err := b.Cancel(actor, ownerID, reason, now); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			return err
		}
		if err := enqueueBookingEvent(ctx, tx, TopicBookingCancelled, b, now); err != nil {
			return err
		}

		cancelled = b
		return nil
	})
	if err != nil {
		return nil, shared.StoreError(err, "cancel booking")
	}

	slog.Info("booking cancelled",
		"booking_id", cancelled.ID(),
		"actor_role", actor.Role.String(),
		"reason", string(reason))
	return cancelled, nil
}

func (c *bookingCommandsImpl) Complete(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	var completed *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		if err := b.Complete(now); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, b); err != nil {
			return err
		}
		if err := enqueueBookingEvent(ctx, tx, TopicBookingCompleted, b, now); err != nil {
			return err
		}

		completed = b
		return nil
	})
	if err != nil {
		return nil, shared.StoreError(err, "complete booking")
	}
	return completed, nil
}
