//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	commandsmock "parking-booking/internal/mock/commands"
	"parking-booking/internal/testutil/builder"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSweeper_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("completes elapsed active bookings only", func(t *testing.T) {
		f := newFixture(t, nil)
		elapsed, err := f.bookings.Create(ctx, f.user, f.input(builder.At(9, 0), builder.At(10, 0)))
		require.NoError(t, err)
		cancelled, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(11, 0)))
		require.NoError(t, err)
		_, err = f.bookings.Cancel(ctx, f.user, cancelled.ID())
		require.NoError(t, err)
		upcoming, err := f.bookings.Create(ctx, f.user, f.input(builder.At(13, 0), builder.At(14, 0)))
		require.NoError(t, err)

		f.clock.Set(builder.At(11, 30))
		sweeper := commands.NewSweeper(f.uow, f.bookings, f.clock, 10)

		result, err := sweeper.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.SweepResult{Completed: 1}, result)
		assert.Equal(t, booking.StatusCompleted, f.booking(t, elapsed.ID()).Status())
		assert.Equal(t, booking.StatusCancelled, f.booking(t, cancelled.ID()).Status())
		assert.Equal(t, booking.StatusActive, f.booking(t, upcoming.ID()).Status())

		again, err := sweeper.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, again.Completed)
	})

	t.Run("respects the batch size", func(t *testing.T) {
		f := newFixture(t, nil)
		for h := 0; h < 3; h++ {
			_, err := f.bookings.Create(ctx, f.user, f.input(builder.At(8+h, 0), builder.At(9+h, 0)))
			require.NoError(t, err)
		}
		f.clock.Set(builder.At(20, 0))

		result, err := commands.NewSweeper(f.uow, f.bookings, f.clock, 2).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Completed)
	})

	t.Run("counts lost races as skipped and other errors as failed", func(t *testing.T) {
		f := newFixture(t, nil)
		first, err := f.bookings.Create(ctx, f.user, f.input(builder.At(8, 0), builder.At(9, 0)))
		require.NoError(t, err)
		second, err := f.bookings.Create(ctx, f.user, f.input(builder.At(9, 0), builder.At(10, 0)))
		require.NoError(t, err)
		f.clock.Set(builder.At(12, 0))

		ctrl := gomock.NewController(t)
		bookings := commandsmock.NewMockBookingCommands(ctrl)
		bookings.EXPECT().Complete(gomock.Any(), first.ID()).Return(nil, booking.ErrNotActive)
		bookings.EXPECT().Complete(gomock.Any(), second.ID()).Return(nil, errors.New("store down"))

		result, err := commands.NewSweeper(f.uow, bookings, f.clock, 10).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.SweepResult{Skipped: 1, Failed: 1}, result)
	})

	t.Run("drops expired idempotency keys", func(t *testing.T) {
		f := newFixture(t, nil)
		key := uuid.New()
		err := f.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Idempotency().TryInsert(ctx, key, f.user.ID, "POST /api/bookings", "hash", builder.At(9, 0), builder.At(8, 0))
			return err
		})
		require.NoError(t, err)
		f.clock.Set(builder.At(9, 0).Add(time.Second))

		result, err := commands.NewSweeper(f.uow, f.bookings, f.clock, 10).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.ExpiredKeys)
		_, ok := f.store.Idempotency(key, f.user.ID)
		assert.False(t, ok)
	})

	t.Run("error: listing failure is StoreUnavailable", func(t *testing.T) {
		f := newFixture(t, nil)
		f.store.FailReads(true)

		_, err := commands.NewSweeper(f.uow, f.bookings, f.clock, 10).Run(ctx)

		require.Error(t, err)
	})
}
