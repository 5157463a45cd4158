package queries

import (
	"context"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentReadStore interface {
	FindLatestByBooking(ctx context.Context, bookingID uuid.UUID) (*PaymentView, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*PaymentView, error)
	FindAll(ctx context.Context, limit int32) ([]*PaymentView, error)
	Stats(ctx context.Context) (*PaymentStats, error)
}

type PaymentQueries interface {
	// GetByBooking returns the booking's current payment, which is the most recent attempt.
	GetByBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*PaymentView, error)
	ListByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, limit int) ([]*PaymentView, error)
	ListAll(ctx context.Context, actor user.Actor, limit int) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	payments PaymentReadStore
	bookings BookingReadStore
}

func NewPaymentQueries(payments PaymentReadStore, bookings BookingReadStore) PaymentQueries {
	return &paymentQueriesImpl{
		payments: payments,
		bookings: bookings,
	}
}

func (q *paymentQueriesImpl) GetByBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*PaymentView, error) {
	b, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, shared.StoreError(err, "find booking")
	}
	if !canViewBooking(actor, b) {
		return nil, errs.Mark(errs.New("booking belongs to another user"), errs.ErrForbidden)
	}

	view, err := q.payments.FindLatestByBooking(ctx, bookingID)
	if err != nil {
		return nil, shared.StoreError(err, "find payment")
	}
	return view, nil
}

func (q *paymentQueriesImpl) ListByUser(ctx context.Context, actor user.Actor, userID uuid.UUID, limit int) ([]*PaymentView, error) {
	if actor.ID != userID && !actor.IsPrivileged() {
		return nil, errs.Mark(errs.New("cannot list another user's payments"), errs.ErrForbidden)
	}

	views, err := q.payments.FindByUser(ctx, userID, int32(ValidateLimit(limit)))
	if err != nil {
		return nil, shared.StoreError(err, "list payments by user")
	}
	return views, nil
}

func (q *paymentQueriesImpl) ListAll(ctx context.Context, actor user.Actor, limit int) ([]*PaymentView, error) {
	if !actor.IsAdmin() {
		return nil, errs.Mark(errs.New("admin role required"), errs.ErrForbidden)
	}

	views, err := q.payments.FindAll(ctx, int32(ValidateLimit(limit)))
	if err != nil {
		return nil, shared.StoreError(err, "list payments")
	}
	return views, nil
}
