//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	commandsmock "parking-booking/internal/mock/commands"
	"parking-booking/internal/testutil/builder"
	"parking-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOutboxRelay_Run(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *commandsmock.MockEventPublisher) {
		f := newFixture(t, nil)
		ctrl := gomock.NewController(t)
		return f, commandsmock.NewMockEventPublisher(ctrl)
	}

	t.Run("publishes pending messages and refreshes the availability hint", func(t *testing.T) {
		f, publisher := setup(t)
		f.clock.Set(builder.At(10, 0))
		created, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		f.clock.Set(builder.At(10, 30))

		publisher.EXPECT().
			Publish(gomock.Any(), commands.TopicBookingCreated, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ uuid.UUID, payload []byte) error {
				var event commands.BookingEvent
				require.NoError(t, json.Unmarshal(payload, &event))
				assert.Equal(t, created.ID(), event.BookingID)
				assert.Equal(t, "active", event.Status)
				return nil
			})

		result, err := commands.NewOutboxRelay(f.uow, publisher, f.clock, 10, 3).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Published: 1}, result)

		outbox := f.store.Outbox()
		require.Len(t, outbox, 1)
		assert.Equal(t, "published", outbox[0].Status)
		assert.Equal(t, created.ID(), outbox[0].AggregateID)

		slotRecord, ok := f.store.Slot(f.slotID)
		require.True(t, ok)
		assert.False(t, slotRecord.IsAvailable)
		location, ok := f.store.Location(f.location.ID)
		require.True(t, ok)
		assert.Zero(t, location.AvailableSlots)

		// nothing left to publish
		again, err := commands.NewOutboxRelay(f.uow, publisher, f.clock, 10, 3).Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, again.Published)
	})

	t.Run("a failed publish is retried later with backoff", func(t *testing.T) {
		f, publisher := setup(t)
		_, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("channel closed")).Times(1)
		relay := commands.NewOutboxRelay(f.uow, publisher, f.clock, 10, 3)

		result, err := relay.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Retried: 1}, result)
		outbox := f.store.Outbox()
		require.Len(t, outbox, 1)
		assert.Equal(t, "pending", outbox[0].Status)
		assert.Equal(t, 1, outbox[0].Attempts)
		assert.Equal(t, "channel closed", outbox[0].LastError)
		assert.Equal(t, f.clock.Now().Add(5*time.Second), outbox[0].RunAt)

		// not due yet
		result, err = relay.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{}, result)

		f.clock.Add(5 * time.Second)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err = relay.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Published: 1}, result)
		assert.Equal(t, "published", f.store.Outbox()[0].Status)
	})

	t.Run("a message is dead-lettered after the last attempt", func(t *testing.T) {
		f, publisher := setup(t)
		_, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("exchange not found"))

		result, err := commands.NewOutboxRelay(f.uow, publisher, f.clock, 10, 1).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, commands.RelayResult{Dead: 1}, result)
		assert.Equal(t, "failed", f.store.Outbox()[0].Status)
	})
}
