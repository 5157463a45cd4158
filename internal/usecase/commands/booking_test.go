//go:build unit

package commands_test

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/testutil/builder"
	"parking-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Create
// =============================================================================

func TestBookingCommands_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success: books a free interval at the location's rate", func(t *testing.T) {
		f := newFixture(t, nil)

		b, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))

		require.NoError(t, err)
		assert.Equal(t, booking.StatusActive, b.Status())
		assert.InDelta(t, 2.0, b.TotalDuration(), 1e-9)
		assert.InDelta(t, 10.0, b.TotalCost(), 1e-9)
		assert.InDelta(t, 5.0, b.HourlyRate(), 1e-9)
		assert.Equal(t, f.location.ID, b.LocationID())
		assert.Equal(t, f.user.ID, b.UserID())
		assert.Len(t, f.store.Bookings(), 1)
		assert.Equal(t, []string{commands.TopicBookingCreated}, f.outboxTopics())
	})

	t.Run("success: an explicit hourly rate overrides the location price", func(t *testing.T) {
		f := newFixture(t, nil)
		rate := 7.5
		in := f.input(builder.At(10, 0), builder.At(11, 30))
		in.HourlyRate = &rate

		b, err := f.bookings.Create(ctx, f.user, in)

		require.NoError(t, err)
		assert.InDelta(t, 11.25, b.TotalCost(), 1e-9)
		assert.InDelta(t, 7.5, b.HourlyRate(), 1e-9)
	})

	t.Run("success: adjacent intervals do not overlap", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		_, err = f.bookings.Create(ctx, f.user, f.input(builder.At(12, 0), builder.At(13, 0)))
		require.NoError(t, err)
		_, err = f.bookings.Create(ctx, f.user, f.input(builder.At(9, 0), builder.At(10, 0)))
		require.NoError(t, err)

		assert.Len(t, f.store.Bookings(), 3)
	})

	t.Run("error: overlapping an active booking is SlotUnavailable", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)

		_, err = f.bookings.Create(ctx, f.user, f.input(builder.At(11, 0), builder.At(13, 0)))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSlotUnavailable), "got %v", err)
		assert.Len(t, f.store.Bookings(), 1)
	})

	t.Run("success: rebooking a cancelled interval", func(t *testing.T) {
		f := newFixture(t, nil)
		first, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		_, err = f.bookings.Cancel(ctx, f.user, first.ID())
		require.NoError(t, err)

		second, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))

		require.NoError(t, err)
		assert.NotEqual(t, first.ID(), second.ID())
		assert.Equal(t, booking.StatusActive, second.Status())
	})

	t.Run("error: rejected input never touches the store", func(t *testing.T) {
		negative := -1.0
		nan := math.NaN()

		testCases := []struct {
			name   string
			mutate func(*commands.CreateBookingInput)
			marker error
		}{
			{
				name:   "end equals start",
				mutate: func(in *commands.CreateBookingInput) { in.End = in.Start },
				marker: errs.ErrInvalidInterval,
			},
			{
				name:   "end before start",
				mutate: func(in *commands.CreateBookingInput) { in.End = in.Start.Add(-1) },
				marker: errs.ErrInvalidInterval,
			},
			{
				name:   "negative rate",
				mutate: func(in *commands.CreateBookingInput) { in.HourlyRate = &negative },
				marker: errs.ErrInvalidRate,
			},
			{
				name:   "NaN rate",
				mutate: func(in *commands.CreateBookingInput) { in.HourlyRate = &nan },
				marker: errs.ErrInvalidRate,
			},
			{
				name:   "missing vehicle",
				mutate: func(in *commands.CreateBookingInput) { in.Vehicle = "  " },
				marker: errs.ErrInvalidArgument,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newFixture(t, nil)
				in := f.input(builder.At(10, 0), builder.At(12, 0))
				tc.mutate(&in)

				_, err := f.bookings.Create(ctx, f.user, in)

				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.marker), "expected %v, got %v", tc.marker, err)
				assert.Zero(t, f.store.Writes())
				assert.Zero(t, f.store.Reads())
			})
		}
	})

	t.Run("error: unknown slot is NotFound", func(t *testing.T) {
		f := newFixture(t, nil)
		in := f.input(builder.At(10, 0), builder.At(12, 0))
		in.SlotID = uuid.New()

		_, err := f.bookings.Create(ctx, f.user, in)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrNotFound), "got %v", err)
	})

	t.Run("error: inactive slot is SlotInactive", func(t *testing.T) {
		f := newFixture(t, nil)
		in := f.input(builder.At(10, 0), builder.At(12, 0))
		in.SlotID = f.addSlot(t, false)

		_, err := f.bookings.Create(ctx, f.user, in)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSlotInactive), "got %v", err)
		assert.Empty(t, f.store.Bookings())
	})

	t.Run("error: inactive location is SlotInactive", func(t *testing.T) {
		f := newFixture(t, nil)
		loc := f.location
		loc.IsActive = false
		f.store.AddLocation(loc)

		_, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSlotInactive), "got %v", err)
	})

	t.Run("error: failed commit is StoreUnavailable and leaves no booking", func(t *testing.T) {
		f := newFixture(t, nil)
		f.store.FailCommits(func() error { return errors.New("connection reset") })

		_, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrStoreUnavailable), "got %v", err)
		f.store.FailCommits(nil)
		assert.Empty(t, f.store.Bookings())
		assert.Empty(t, f.store.Outbox())
	})
}

func TestBookingCommands_ConcurrentOverlappingCreates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	const workers = 24
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
		other     []error
	)

	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := user.NewActor(uuid.New(), user.RoleUser)
			// every window overlaps [10:30, 11:00)
			in := f.input(builder.At(10, i%30), builder.At(11, i%30))
			<-start

			_, err := f.bookings.Create(ctx, actor, in)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.Is(err, errs.ErrSlotUnavailable):
				rejected++
			default:
				other = append(other, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
	assert.Len(t, f.store.Bookings(), 1)
}

func TestBookingCommands_RandomSequencesKeepActiveBookingsDisjoint(t *testing.T) {
	ctx := context.Background()

	for seed := uint64(1); seed <= 5; seed++ {
		f := newFixture(t, nil)
		second := f.addSlot(t, true)
		slots := []uuid.UUID{f.slotID, second}
		rng := rand.New(rand.NewPCG(seed, seed*31))

		var created []uuid.UUID
		for step := 0; step < 200; step++ {
			if len(created) > 0 && rng.IntN(3) == 0 {
				id := created[rng.IntN(len(created))]
				_, err := f.bookings.Cancel(ctx, f.admin, id)
				if err != nil {
					require.True(t, errs.Is(err, errs.ErrInvalidTransition), "seed %d: %v", seed, err)
				}
			} else {
				startMin := rng.IntN(24 * 60)
				length := 15 + rng.IntN(180)
				in := f.input(builder.At(0, startMin), builder.At(0, startMin+length))
				in.SlotID = slots[rng.IntN(len(slots))]

				b, err := f.bookings.Create(ctx, f.user, in)
				if err != nil {
					require.True(t, errs.Is(err, errs.ErrSlotUnavailable), "seed %d: %v", seed, err)
				} else {
					created = append(created, b.ID())
				}
			}

			assertActiveDisjoint(t, f.store.Bookings())
		}
	}
}

func assertActiveDisjoint(t *testing.T, all []*booking.Booking) {
	t.Helper()
	active := make(map[uuid.UUID][]booking.Interval)
	for _, b := range all {
		if !b.IsActive() {
			continue
		}
		for _, other := range active[b.SlotID()] {
			require.False(t, other.Overlaps(b.Interval()), "active %s overlaps %s", b.Interval(), other)
		}
		active[b.SlotID()] = append(active[b.SlotID()], b.Interval())
	}
}

// =============================================================================
// Cancel
// =============================================================================

func TestBookingCommands_Cancel(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *booking.Booking) {
		f := newFixture(t, nil)
		b, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		return f, b
	}

	t.Run("success: the booking's user cancels", func(t *testing.T) {
		f, b := setup(t)

		cancelled, err := f.bookings.Cancel(ctx, f.user, b.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		assert.Equal(t, booking.CancelReasonRequested, cancelled.CancelReason())
		require.NotNil(t, cancelled.CancelledBy())
		assert.Equal(t, f.user.ID, *cancelled.CancelledBy())
		assert.Equal(t, booking.StatusCancelled, f.booking(t, b.ID()).Status())
		assert.ElementsMatch(t, []string{commands.TopicBookingCreated, commands.TopicBookingCancelled}, f.outboxTopics())
	})

	t.Run("success: the location owner cancels", func(t *testing.T) {
		f, b := setup(t)

		cancelled, err := f.bookings.Cancel(ctx, f.owner, b.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
	})

	t.Run("success: an admin cancels", func(t *testing.T) {
		f, b := setup(t)

		_, err := f.bookings.Cancel(ctx, f.admin, b.ID())

		require.NoError(t, err)
	})

	t.Run("success: the system cancels for a failed payment", func(t *testing.T) {
		f, b := setup(t)

		cancelled, err := f.bookings.Cancel(ctx, user.SystemActor(), b.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.CancelReasonPaymentFailed, cancelled.CancelReason())
		assert.Nil(t, cancelled.CancelledBy())
	})

	t.Run("error: another user is Forbidden", func(t *testing.T) {
		f, b := setup(t)
		stranger := user.NewActor(uuid.New(), user.RoleUser)

		_, err := f.bookings.Cancel(ctx, stranger, b.ID())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
		assert.Equal(t, booking.StatusActive, f.booking(t, b.ID()).Status())
	})

	t.Run("error: an owner of another location is Forbidden", func(t *testing.T) {
		f, b := setup(t)
		otherOwner := user.NewActor(uuid.New(), user.RoleOwner)

		_, err := f.bookings.Cancel(ctx, otherOwner, b.ID())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})

	t.Run("error: cancelling twice is InvalidTransition", func(t *testing.T) {
		f, b := setup(t)
		_, err := f.bookings.Cancel(ctx, f.user, b.ID())
		require.NoError(t, err)
		before := f.booking(t, b.ID())

		_, err = f.bookings.Cancel(ctx, f.user, b.ID())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "got %v", err)
		after := f.booking(t, b.ID())
		assert.Equal(t, before.Status(), after.Status())
		assert.Equal(t, before.UpdatedAt(), after.UpdatedAt())
	})

	t.Run("error: cancelling a completed booking is InvalidTransition", func(t *testing.T) {
		f, b := setup(t)
		f.clock.Set(builder.At(12, 0))
		_, err := f.bookings.Complete(ctx, b.ID())
		require.NoError(t, err)

		_, err = f.bookings.Cancel(ctx, f.user, b.ID())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "got %v", err)
		assert.Equal(t, booking.StatusCompleted, f.booking(t, b.ID()).Status())
	})

	t.Run("error: an elapsed booking not yet swept is InvalidTransition", func(t *testing.T) {
		f, b := setup(t)
		f.clock.Set(builder.At(13, 0))
		require.Equal(t, booking.StatusCompleted, f.booking(t, b.ID()).EffectiveStatus(f.clock.Now()))

		for _, actor := range []user.Actor{f.user, f.owner, f.admin} {
			_, err := f.bookings.Cancel(ctx, actor, b.ID())

			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "role %s: got %v", actor.Role, err)
		}
		assert.Equal(t, booking.StatusActive, f.booking(t, b.ID()).Status())
		assert.Equal(t, []string{commands.TopicBookingCreated}, f.outboxTopics())

		completed, err := f.bookings.Complete(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, completed.Status())
	})

	t.Run("error: unknown booking is NotFound", func(t *testing.T) {
		f, _ := setup(t)

		_, err := f.bookings.Cancel(ctx, f.user, uuid.New())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrNotFound), "got %v", err)
	})
}

// =============================================================================
// Complete
// =============================================================================

func TestBookingCommands_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("error: before the interval ends", func(t *testing.T) {
		f := newFixture(t, nil)
		b, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		f.clock.Set(builder.At(11, 59))

		_, err = f.bookings.Complete(ctx, b.ID())

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "got %v", err)
		assert.Equal(t, booking.StatusActive, f.booking(t, b.ID()).Status())
	})

	t.Run("success: at the end of the interval", func(t *testing.T) {
		f := newFixture(t, nil)
		b, err := f.bookings.Create(ctx, f.user, f.input(builder.At(10, 0), builder.At(12, 0)))
		require.NoError(t, err)
		f.clock.Set(builder.At(12, 0))

		completed, err := f.bookings.Complete(ctx, b.ID())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, completed.Status())
		assert.ElementsMatch(t, []string{commands.TopicBookingCreated, commands.TopicBookingCompleted}, f.outboxTopics())
	})
}
