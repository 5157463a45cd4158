//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name    string
	mutate  func(*builder.BookingBuilder)
	errMark error
}

func TestBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusActive, actual.Status())
		assert.Equal(t, builder.At(8, 0), actual.CreatedAt())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
		assert.InDelta(t, 2.0, actual.TotalDuration(), 1e-9)
		assert.InDelta(t, 10.0, actual.TotalCost(), 1e-9)
		assert.InDelta(t, 5.0, actual.HourlyRate(), 1e-9)
		assert.Equal(t, "KA01AB1234", actual.Vehicle().String())
		assert.Nil(t, actual.CancelledBy())
	})

	t.Run("interval validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:    "end before start",
				mutate:  func(b *builder.BookingBuilder) { b.WithInterval(builder.At(12, 0), builder.At(10, 0)) },
				errMark: errs.ErrInvalidInterval,
			},
			{
				name:    "zero length",
				mutate:  func(b *builder.BookingBuilder) { b.WithInterval(builder.At(10, 0), builder.At(10, 0)) },
				errMark: errs.ErrInvalidInterval,
			},
			{
				name:   "one minute",
				mutate: func(b *builder.BookingBuilder) { b.WithInterval(builder.At(10, 0), builder.At(10, 1)) },
			},
		})
	})

	t.Run("rate validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:    "negative rate",
				mutate:  func(b *builder.BookingBuilder) { b.WithRate(-0.01) },
				errMark: errs.ErrInvalidRate,
			},
			{
				name:   "free parking",
				mutate: func(b *builder.BookingBuilder) { b.WithRate(0) },
			},
		})
	})

	t.Run("vehicle and notes validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:    "blank vehicle",
				mutate:  func(b *builder.BookingBuilder) { b.WithVehicle("   ") },
				errMark: errs.ErrInvalidArgument,
			},
			{
				name:    "vehicle too long",
				mutate:  func(b *builder.BookingBuilder) { b.WithVehicle(strings.Repeat("X", booking.MaxVehicleNumberLength+1)) },
				errMark: errs.ErrInvalidArgument,
			},
			{
				name:    "notes too long",
				mutate:  func(b *builder.BookingBuilder) { b.WithNotes(strings.Repeat("n", booking.MaxNotesLength+1)) },
				errMark: errs.ErrInvalidArgument,
			},
			{
				name:   "empty notes",
				mutate: func(b *builder.BookingBuilder) { b.WithNotes("") },
			},
		})
	})

	t.Run("inactive slot", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.SlotActive = false }).BuildDomain()
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrSlotInactive))
	})

	t.Run("vehicle is normalized", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithVehicle("  ka01 ab 1234 ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "KA01 AB 1234", actual.Vehicle().String())
	})
}

func TestBooking_Cancel(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		actor   func(b *booking.Booking) user.Actor
		errMark error
	}{
		{
			name:  "booking user",
			actor: func(b *booking.Booking) user.Actor { return user.NewActor(b.UserID(), user.RoleUser) },
		},
		{
			name:  "location owner",
			actor: func(*booking.Booking) user.Actor { return user.NewActor(ownerID, user.RoleOwner) },
		},
		{
			name:  "admin",
			actor: func(*booking.Booking) user.Actor { return user.NewActor(uuid.New(), user.RoleAdmin) },
		},
		{
			name:  "system",
			actor: func(*booking.Booking) user.Actor { return user.SystemActor() },
		},
		{
			name:    "another user",
			actor:   func(*booking.Booking) user.Actor { return user.NewActor(uuid.New(), user.RoleUser) },
			errMark: errs.ErrForbidden,
		},
		{
			name:    "owner of another location",
			actor:   func(*booking.Booking) user.Actor { return user.NewActor(uuid.New(), user.RoleOwner) },
			errMark: errs.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().MustBuildDomain()
			actor := tt.actor(b)

			err := b.Cancel(actor, ownerID, booking.CancelReasonRequested, builder.At(9, 0))

			if tt.errMark != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.errMark))
				assert.Equal(t, booking.StatusActive, b.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, booking.StatusCancelled, b.Status())
			assert.Equal(t, booking.CancelReasonRequested, b.CancelReason())
			assert.Equal(t, builder.At(9, 0), b.UpdatedAt())
			if actor.IsSystem() {
				assert.Nil(t, b.CancelledBy())
			} else {
				require.NotNil(t, b.CancelledBy())
				assert.Equal(t, actor.ID, *b.CancelledBy())
			}
		})
	}

	t.Run("terminal states are immutable", func(t *testing.T) {
		cancelled := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, cancelled.Cancel(user.SystemActor(), uuid.Nil, booking.CancelReasonPaymentFailed, builder.At(9, 0)))

		err := cancelled.Cancel(user.SystemActor(), uuid.Nil, booking.CancelReasonRequested, builder.At(9, 30))
		require.ErrorIs(t, err, booking.ErrNotActive)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, booking.CancelReasonPaymentFailed, cancelled.CancelReason())
		assert.Equal(t, builder.At(9, 0), cancelled.UpdatedAt())

		completed := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, completed.Complete(builder.At(12, 0)))

		err = completed.Cancel(user.SystemActor(), uuid.Nil, booking.CancelReasonRequested, builder.At(13, 0))
		require.ErrorIs(t, err, booking.ErrNotActive)
		assert.Equal(t, booking.StatusCompleted, completed.Status())
	})

	t.Run("an elapsed booking is effectively completed", func(t *testing.T) {
		for _, at := range []time.Time{builder.At(12, 0), builder.At(13, 0)} {
			b := builder.NewBookingBuilder().MustBuildDomain()
			actor := user.NewActor(b.UserID(), user.RoleUser)
			require.Equal(t, booking.StatusCompleted, b.EffectiveStatus(at))

			err := b.Cancel(actor, ownerID, booking.CancelReasonRequested, at)

			require.ErrorIs(t, err, booking.ErrNotActive, "at %s", at)
			assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
			assert.Equal(t, booking.StatusActive, b.Status())
			assert.Nil(t, b.CancelledBy())
		}
	})

	t.Run("payment compensation still applies after the end", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()

		require.NoError(t, b.Cancel(user.SystemActor(), uuid.Nil, booking.CancelReasonPaymentFailed, builder.At(13, 0)))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})
}

func TestBooking_Complete(t *testing.T) {
	t.Run("before end", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		err := b.Complete(builder.At(11, 59))
		require.ErrorIs(t, err, booking.ErrNotYetEnded)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, booking.StatusActive, b.Status())
	})

	t.Run("exactly at end", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.Complete(builder.At(12, 0)))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("twice", func(t *testing.T) {
		b := builder.NewBookingBuilder().MustBuildDomain()
		require.NoError(t, b.Complete(builder.At(13, 0)))
		require.ErrorIs(t, b.Complete(builder.At(14, 0)), booking.ErrNotActive)
	})
}

func TestBooking_EffectiveStatus(t *testing.T) {
	b := builder.NewBookingBuilder().MustBuildDomain()

	assert.Equal(t, booking.StatusActive, b.EffectiveStatus(builder.At(11, 0)))
	assert.Equal(t, booking.StatusCompleted, b.EffectiveStatus(builder.At(12, 0)))
	assert.Equal(t, booking.StatusActive, b.Status())

	require.NoError(t, b.Cancel(user.SystemActor(), uuid.Nil, booking.CancelReasonRequested, builder.At(11, 0)))
	assert.Equal(t, booking.StatusCancelled, b.EffectiveStatus(builder.At(13, 0)))
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errMark == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				assert.True(t, errs.Is(err, c.errMark), "expected %v, got %v", c.errMark, err)
			}
		})
	}
}
