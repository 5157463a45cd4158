package queries

import (
	"context"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"
)

type StatsQueries interface {
	Get(ctx context.Context, actor user.Actor) (*Stats, error)
}

type statsQueriesImpl struct {
	bookings BookingReadStore
	payments PaymentReadStore
	clock    clock.Clock
}

func NewStatsQueries(bookings BookingReadStore, payments PaymentReadStore, clk clock.Clock) StatsQueries {
	return &statsQueriesImpl{
		bookings: bookings,
		payments: payments,
		clock:    clk,
	}
}

// Booking counts use effective status; revenue counts successful payments only.
func (q *statsQueriesImpl) Get(ctx context.Context, actor user.Actor) (*Stats, error) {
	if !actor.IsAdmin() {
		return nil, errs.Mark(errs.New("admin role required"), errs.ErrForbidden)
	}

	bookingStats, err := q.bookings.Stats(ctx, q.clock.Now())
	if err != nil {
		return nil, shared.StoreError(err, "booking stats")
	}
	paymentStats, err := q.payments.Stats(ctx)
	if err != nil {
		return nil, shared.StoreError(err, "payment stats")
	}

	return &Stats{
		Bookings: *bookingStats,
		Payments: *paymentStats,
	}, nil
}
