package commands

import (
	"context"
	"log/slog"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAlreadyPaid = errs.Mark(errs.New("booking already has a successful payment"), errs.ErrInvalidTransition)
	// ErrChargeInProgress rejects a charge while another attempt on the same
	// booking is still waiting for the gateway.
	ErrChargeInProgress = errs.Mark(errs.New("a payment for this booking is already in progress"), errs.ErrConflict)
	// ErrPaymentNotRecorded is the ledger gap: the gateway authorized the charge
	// but the payment could not be stored. The charge is not rolled back.
	ErrPaymentNotRecorded = errs.Mark(errs.New("payment authorized but not recorded"), errs.ErrStoreUnavailable)
)

type ChargeResult struct {
	Booking *booking.Booking
	Payment *payment.Payment
}

// Succeeded reports whether the charge was captured.
func (r *ChargeResult) Succeeded() bool {
	return r.Payment != nil && r.Payment.IsSuccessful()
}

// NeedsRefund reports a captured charge whose booking was cancelled while the
// gateway call was in flight.
func (r *ChargeResult) NeedsRefund() bool {
	return r.Succeeded() && r.Booking != nil && !r.Booking.IsActive()
}

type PaymentCommands interface {
	// Charge authorizes the booking's cost. A Failed outcome is not an error: the
	// booking comes back compensated (Cancelled) with the Failed payment.
	Charge(ctx context.Context, actor user.Actor, bookingID uuid.UUID, method string) (*ChargeResult, error)
}

type paymentCommandsImpl struct {
	uow      shared.UnitOfWork
	gateway  payment.Gateway
	bookings BookingCommands
	clock    clock.Clock
	currency string
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	gateway payment.Gateway,
	bookingCommands BookingCommands,
	clk clock.Clock,
	currency string,
) PaymentCommands {
	return &paymentCommandsImpl{
		uow:      uow,
		gateway:  gateway,
		bookings: bookingCommands,
		clock:    clk,
		currency: currency,
	}
}

func (c *paymentCommandsImpl) Charge(ctx context.Context, actor user.Actor, bookingID uuid.UUID, method string) (*ChargeResult, error) {
	m, err := payment.ParseMethod(method)
	if err != nil {
		return nil, err
	}

	b, p, err := c.claim(ctx, actor, bookingID, m)
	if err != nil {
		return nil, err
	}

	result := c.authorize(ctx, p)
	if err := p.Settle(c.gateway.Name(), result, c.clock.Now()); err != nil {
		return nil, err
	}

	if p.IsSuccessful() {
		return c.recordSuccess(ctx, b, p)
	}
	return c.recordFailure(ctx, b, p)
}

// claim stores a Pending payment under the booking's row lock. Only one attempt
// per booking can be pending or successful, so a concurrent charge is rejected
// before it reaches the gateway.
func (c *paymentCommandsImpl) claim(ctx context.Context, actor user.Actor, bookingID uuid.UUID, m payment.Method) (*booking.Booking, *payment.Payment, error) {
	var (
		b *booking.Booking
		p *payment.Payment
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Reads().BookingByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if !actor.IsPrivileged() && actor.ID != locked.UserID() {
			return errs.Mark(errs.New("booking belongs to another user"), errs.ErrForbidden)
		}
		if !locked.IsActive() {
			return booking.ErrNotActive
		}

		latest, err := tx.Reads().LatestPaymentByBooking(ctx, bookingID)
		switch {
		case err == nil && latest.IsSuccessful():
			return ErrAlreadyPaid
		case err == nil && latest.Status() == payment.StatusPending:
			return ErrChargeInProgress
		case err != nil && !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		attempt := payment.NewPayment(locked.ID(), locked.UserID(), locked.TotalCost(), c.currency, m, c.clock.Now())
		if err := tx.Payments().Create(ctx, attempt); err != nil {
			return err
		}

		b, p = locked, attempt
		return nil
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return nil, nil, errs.Wrap(ErrChargeInProgress, err.Error())
	}
	if err != nil {
		return nil, nil, shared.StoreError(err, "claim payment attempt")
	}
	return b, p, nil
}

// authorize never returns an error: an unknown outcome counts as Failed.
func (c *paymentCommandsImpl) authorize(ctx context.Context, p *payment.Payment) payment.AuthorizeResult {
	result, err := c.gateway.Authorize(ctx, payment.AuthorizeRequest{
		AttemptID: p.ID(),
		BookingID: p.BookingID(),
		UserID:    p.UserID(),
		Amount:    p.Amount(),
		Currency:  p.Currency(),
		Method:    p.Method(),
	})
	if err != nil {
		slog.Warn("payment gateway error treated as failure",
			"gateway", c.gateway.Name(),
			"payment_id", p.ID(),
			"booking_id", p.BookingID(),
			"error", err.Error())
		return payment.AuthorizeResult{
			Outcome: payment.OutcomeFailed,
			Reason:  "gateway error: " + err.Error(),
		}
	}
	return result
}

func (c *paymentCommandsImpl) recordSuccess(ctx context.Context, b *booking.Booking, p *payment.Payment) (*ChargeResult, error) {
	var current *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Reads().BookingByIDForUpdate(ctx, b.ID())
		if err != nil {
			return err
		}
		if err := tx.Payments().Settle(ctx, p); err != nil {
			return err
		}
		if err := enqueuePaymentEvent(ctx, tx, p, p.UpdatedAt()); err != nil {
			return err
		}
		current = locked
		return nil
	})
	if err != nil {
		slog.Error("payment authorized but not recorded",
			"payment_id", p.ID(),
			"booking_id", b.ID(),
			"gateway", p.Gateway(),
			"transaction_id", p.TransactionID(),
			"amount", p.Amount(),
			"error", err.Error())
		return nil, errs.Wrap(ErrPaymentNotRecorded, err.Error())
	}

	result := &ChargeResult{Booking: current, Payment: p}
	if result.NeedsRefund() {
		slog.Error("payment captured for a booking that is no longer active, refund required",
			"payment_id", p.ID(),
			"booking_id", b.ID(),
			"booking_status", current.Status().String(),
			"gateway", p.Gateway(),
			"transaction_id", p.TransactionID(),
			"amount", p.Amount())
		return result, nil
	}

	slog.Info("payment succeeded",
		"payment_id", p.ID(),
		"booking_id", b.ID(),
		"transaction_id", p.TransactionID())
	return result, nil
}

// recordFailure settles the Failed payment and cancels the booking in one unit of
// work. If that fails, compensation is retried on its own so the booking never
// stays Active without a successful payment.
func (c *paymentCommandsImpl) recordFailure(ctx context.Context, b *booking.Booking, p *payment.Payment) (*ChargeResult, error) {
	var cancelled *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Reads().BookingByIDForUpdate(ctx, b.ID())
		if err != nil {
			return err
		}
		if err := tx.Payments().Settle(ctx, p); err != nil {
			return err
		}
		if err := enqueuePaymentEvent(ctx, tx, p, p.UpdatedAt()); err != nil {
			return err
		}
		cancelled = locked
		// Cancelled concurrently; the failed payment is still recorded.
		if !locked.IsActive() {
			return nil
		}

		now := c.clock.Now()
		if err := locked.Cancel(user.SystemActor(), uuid.Nil, booking.CancelReasonPaymentFailed, now); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, locked); err != nil {
			return err
		}
		return enqueueBookingEvent(ctx, tx, TopicBookingCancelled, locked, now)
	})
	if err == nil {
		slog.Info("payment failed, booking compensated",
			"payment_id", p.ID(),
			"booking_id", b.ID(),
			"reason", p.FailureReason())
		return &ChargeResult{Booking: cancelled, Payment: p}, nil
	}

	slog.Error("failed to record payment failure",
		"payment_id", p.ID(),
		"booking_id", b.ID(),
		"error", err.Error())

	compensated, cancelErr := c.bookings.Cancel(ctx, user.SystemActor(), b.ID())
	if cancelErr != nil && !errs.Is(cancelErr, errs.ErrInvalidTransition) {
		slog.Error("compensating cancellation failed",
			"booking_id", b.ID(),
			"error", cancelErr.Error())
	}
	if compensated != nil {
		return nil, errs.Wrap(shared.StoreError(err, "record failed payment"), "booking cancelled without payment record")
	}
	return nil, shared.StoreError(err, "record failed payment")
}
