package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	checkoutEndpoint  = "POST /api/bookings"
	idempotencyKeyTTL = 24 * time.Hour
)

var (
	ErrIdempotencyInProgress = errs.Mark(errs.New("request with this idempotency key is in progress"), errs.ErrConflict)
	ErrIdempotencyKeyReused  = errs.Mark(errs.New("idempotency key was used with a different request"), errs.ErrConflict)
)

type CheckoutInput struct {
	CreateBookingInput
	PaymentMethod string
}

type CheckoutResult struct {
	Booking    *booking.Booking
	Payment    *payment.Payment
	IsReplayed bool
}

type CheckoutCommands interface {
	// Book creates a booking and charges it. With an idempotency key a repeated
	// request returns the stored outcome instead of charging again.
	Book(ctx context.Context, actor user.Actor, in CheckoutInput) (*CheckoutResult, error)
}

type checkoutCommandsImpl struct {
	uow      shared.UnitOfWork
	bookings BookingCommands
	payments PaymentCommands
	clock    clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, bookings BookingCommands, payments PaymentCommands, clk clock.Clock) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:      uow,
		bookings: bookings,
		payments: payments,
		clock:    clk,
	}
}

func (c *checkoutCommandsImpl) Book(ctx context.Context, actor user.Actor, in CheckoutInput) (*CheckoutResult, error) {
	if _, err := validateCreate(in.CreateBookingInput); err != nil {
		return nil, err
	}
	if _, err := payment.ParseMethod(in.PaymentMethod); err != nil {
		return nil, err
	}

	key := in.IdempotencyKey
	if key == nil {
		return c.execute(ctx, actor, in)
	}

	replayed, err := c.claimKey(ctx, actor.ID, *key, requestHash(in))
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return replayed, nil
	}

	result, err := c.execute(ctx, actor, in)
	switch {
	case err != nil && result != nil && errs.Is(err, ErrPaymentNotRecorded):
		// The card was charged for this booking; a retry must replay it.
		c.completeKey(ctx, actor.ID, *key, result.Booking.ID())
		return nil, err
	case err != nil:
		c.releaseKey(ctx, actor.ID, *key)
		return nil, err
	}

	c.completeKey(ctx, actor.ID, *key, result.Booking.ID())
	return result, nil
}

func (c *checkoutCommandsImpl) execute(ctx context.Context, actor user.Actor, in CheckoutInput) (*CheckoutResult, error) {
	created, err := c.bookings.Create(ctx, actor, in.CreateBookingInput)
	if err != nil {
		return nil, err
	}

	charged, err := c.payments.Charge(ctx, actor, created.ID(), in.PaymentMethod)
	if errs.Is(err, ErrPaymentNotRecorded) {
		return &CheckoutResult{Booking: created}, err
	}
	if err != nil {
		c.compensate(ctx, created.ID())
		return nil, err
	}

	return &CheckoutResult{
		Booking: charged.Booking,
		Payment: charged.Payment,
	}, nil
}

// compensate cancels a booking whose charge never reached a recorded outcome.
func (c *checkoutCommandsImpl) compensate(ctx context.Context, bookingID uuid.UUID) {
	_, err := c.bookings.Cancel(ctx, user.SystemActor(), bookingID)
	if err != nil && !errs.Is(err, errs.ErrInvalidTransition) {
		slog.Error("failed to compensate booking after charge error",
			"booking_id", bookingID,
			"error", err.Error())
	}
}

// claimKey returns a replayed result when the key has already completed.
func (c *checkoutCommandsImpl) claimKey(ctx context.Context, userID, key uuid.UUID, hash string) (*CheckoutResult, error) {
	now := c.clock.Now()

	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		inserted, err = tx.Idempotency().TryInsert(ctx, key, userID, checkoutEndpoint, hash, now.Add(idempotencyKeyTTL), now)
		return err
	})
	if err != nil {
		return nil, shared.StoreError(err, "claim idempotency key")
	}
	if inserted {
		return nil, nil
	}

	reads := c.uow.CommandReads()
	record, err := reads.IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, shared.StoreError(err, "load idempotency key")
	}
	if record.RequestHash != hash {
		return nil, ErrIdempotencyKeyReused
	}

	switch record.Status {
	case shared.IdempotencyStatusCompleted:
		if record.ResultBookingID == nil {
			return nil, errs.Mark(errs.New("completed idempotency key has no booking"), errs.ErrStoreUnavailable)
		}
		return c.replay(ctx, *record.ResultBookingID)
	case shared.IdempotencyStatusProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.Newf("unknown idempotency status %q", record.Status), errs.ErrStoreUnavailable)
	}
}

// replay reads the booking and its latest payment from one snapshot.
func (c *checkoutCommandsImpl) replay(ctx context.Context, bookingID uuid.UUID) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, reads shared.CommandReads) error {
		b, err := reads.BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		p, err := reads.LatestPaymentByBooking(ctx, bookingID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		result = &CheckoutResult{
			Booking:    b,
			Payment:    p,
			IsReplayed: true,
		}
		return nil
	})
	if err != nil {
		return nil, shared.StoreError(err, "load replayed checkout")
	}
	return result, nil
}

func (c *checkoutCommandsImpl) completeKey(ctx context.Context, userID, key, bookingID uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Complete(ctx, key, userID, bookingID)
	})
	if err != nil {
		slog.Warn("failed to complete idempotency key",
			"key", key.String(),
			"booking_id", bookingID,
			"error", err.Error())
	}
}

func (c *checkoutCommandsImpl) releaseKey(ctx context.Context, userID, key uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key, userID)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key.String(), "error", err.Error())
	}
}

func requestHash(in CheckoutInput) string {
	data, _ := json.Marshal(struct {
		SlotID     uuid.UUID `json:"slot_id"`
		Start      time.Time `json:"start"`
		End        time.Time `json:"end"`
		Vehicle    string    `json:"vehicle"`
		Notes      string    `json:"notes"`
		HourlyRate *float64  `json:"hourly_rate"`
		Method     string    `json:"method"`
	}{
		SlotID:     in.SlotID,
		Start:      in.Start.UTC(),
		End:        in.End.UTC(),
		Vehicle:    in.Vehicle,
		Notes:      in.Notes,
		HourlyRate: in.HourlyRate,
		Method:     in.PaymentMethod,
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
