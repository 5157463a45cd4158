package commands

import (
	"context"
	"log/slog"

	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"
)

type SweepResult struct {
	Completed   int
	Skipped     int
	Failed      int
	ExpiredKeys int64
}

// Sweeper persists Completed for Active bookings whose end time has passed and
// drops expired idempotency keys.
type Sweeper interface {
	Run(ctx context.Context) (SweepResult, error)
}

type sweeperImpl struct {
	uow       shared.UnitOfWork
	bookings  BookingCommands
	clock     clock.Clock
	batchSize int
}

func NewSweeper(uow shared.UnitOfWork, bookings BookingCommands, clk clock.Clock, batchSize int) Sweeper {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &sweeperImpl{
		uow:       uow,
		bookings:  bookings,
		clock:     clk,
		batchSize: batchSize,
	}
}

func (s *sweeperImpl) Run(ctx context.Context) (SweepResult, error) {
	var result SweepResult
	now := s.clock.Now()

	ids, err := s.uow.CommandReads().DueActiveBookingIDs(ctx, now, s.batchSize)
	if err != nil {
		return result, shared.StoreError(err, "list due bookings")
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		_, err := s.bookings.Complete(ctx, id)
		switch {
		case err == nil:
			result.Completed++
		case errs.Is(err, errs.ErrInvalidTransition):
			// Cancelled between listing and locking.
			result.Skipped++
		default:
			result.Failed++
			slog.Warn("failed to complete booking", "booking_id", id, "error", err.Error())
		}
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		result.ExpiredKeys, err = tx.Idempotency().DeleteExpired(ctx, now)
		return err
	})
	if err != nil {
		slog.Warn("failed to delete expired idempotency keys", "error", err.Error())
	}

	return result, nil
}
