//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra/gateway"
	"parking-booking/internal/infra/memstore"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/testutil/builder"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *memstore.Store
	clock    *clock.MockClock
	bookings commands.BookingCommands

	availability queries.AvailabilityQueries
	bookingQ     queries.BookingQueries
	paymentQ     queries.PaymentQueries
	stats        queries.StatsQueries

	locationID uuid.UUID
	slotA      uuid.UUID
	slotB      uuid.UUID
	user       user.Actor
	owner      user.Actor
	admin      user.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memstore.New()
	owner := user.NewActor(uuid.New(), user.RoleOwner)
	locationID := uuid.New()
	store.AddLocation(memstore.LocationRecord{
		ID:           locationID,
		OwnerID:      owner.ID,
		Name:         "Riverside",
		PricePerHour: 4,
		TotalSlots:   2,
		IsApproved:   true,
		IsActive:     true,
	})
	addSlot := func(number string) uuid.UUID {
		id := uuid.New()
		store.AddSlot(memstore.SlotRecord{ID: id, LocationID: locationID, Number: number, Type: slot.TypeStandard, IsActive: true, IsAvailable: true})
		return id
	}

	clk := clock.NewMockClock(builder.At(8, 0))
	uow := memstore.NewUnitOfWork(store)
	bookingReads := memstore.NewBookingReadStore(store)
	paymentReads := memstore.NewPaymentReadStore(store)
	slotReads := memstore.NewSlotReadStore(store)

	return &fixture{
		store:        store,
		clock:        clk,
		bookings:     commands.NewBookingCommands(uow, booking.NewFactory(clk, booking.NewLinearPriceCalculator()), clk),
		availability: queries.NewAvailabilityQueries(slotReads),
		bookingQ:     queries.NewBookingQueries(bookingReads, slotReads, clk),
		paymentQ:     queries.NewPaymentQueries(paymentReads, bookingReads),
		stats:        queries.NewStatsQueries(bookingReads, paymentReads, clk),
		locationID:   locationID,
		slotA:        addSlot("A-01"),
		slotB:        addSlot("A-02"),
		user:         user.NewActor(uuid.New(), user.RoleUser),
		owner:        owner,
		admin:        user.NewActor(uuid.New(), user.RoleAdmin),
	}
}

func (f *fixture) book(t *testing.T, actor user.Actor, slotID uuid.UUID, start, end time.Time) *booking.Booking {
	t.Helper()
	b, err := f.bookings.Create(context.Background(), actor, commands.CreateBookingInput{
		SlotID:  slotID,
		Start:   start,
		End:     end,
		Vehicle: "MH12DE1433",
	})
	require.NoError(t, err)
	// distinct creation times keep newest-first ordering deterministic
	f.clock.Add(time.Minute)
	return b
}

func TestAvailabilityQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("IsAvailable follows active bookings with half-open intervals", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(12, 0))

		testCases := []struct {
			name       string
			start, end time.Time
			want       bool
		}{
			{"overlapping start", builder.At(9, 0), builder.At(10, 30), false},
			{"inside", builder.At(10, 30), builder.At(11, 0), false},
			{"covering", builder.At(9, 0), builder.At(13, 0), false},
			{"ends at start", builder.At(9, 0), builder.At(10, 0), true},
			{"starts at end", builder.At(12, 0), builder.At(13, 0), true},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := f.availability.IsAvailable(ctx, f.slotA, tc.start, tc.end)
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			})
		}
	})

	t.Run("cancelled bookings free the interval", func(t *testing.T) {
		f := newFixture(t)
		b := f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(12, 0))
		_, err := f.bookings.Cancel(ctx, f.user, b.ID())
		require.NoError(t, err)

		got, err := f.availability.IsAvailable(ctx, f.slotA, builder.At(10, 0), builder.At(12, 0))

		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("the display hint is ignored", func(t *testing.T) {
		f := newFixture(t)
		rec, _ := f.store.Slot(f.slotA)
		rec.IsAvailable = false
		f.store.AddSlot(rec)

		got, err := f.availability.IsAvailable(ctx, f.slotA, builder.At(10, 0), builder.At(12, 0))

		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("an inactive slot is never available", func(t *testing.T) {
		f := newFixture(t)
		rec, _ := f.store.Slot(f.slotA)
		rec.IsActive = false
		f.store.AddSlot(rec)

		got, err := f.availability.IsAvailable(ctx, f.slotA, builder.At(10, 0), builder.At(12, 0))

		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("errors", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.availability.IsAvailable(ctx, f.slotA, builder.At(12, 0), builder.At(12, 0))
		assert.True(t, errs.Is(err, errs.ErrInvalidInterval), "got %v", err)

		_, err = f.availability.IsAvailable(ctx, uuid.New(), builder.At(10, 0), builder.At(12, 0))
		assert.True(t, errs.Is(err, errs.ErrNotFound), "got %v", err)

		f.store.FailReads(true)
		_, err = f.availability.IsAvailable(ctx, f.slotA, builder.At(10, 0), builder.At(12, 0))
		assert.True(t, errs.Is(err, errs.ErrStoreUnavailable), "got %v", err)
	})

	t.Run("AvailableSlots lists free active slots of the location", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(12, 0))

		slots, err := f.availability.AvailableSlots(ctx, f.locationID, builder.At(11, 0), builder.At(13, 0))

		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, f.slotB, slots[0].ID)
		assert.Equal(t, f.owner.ID, slots[0].LocationOwnerID)

		slots, err = f.availability.AvailableSlots(ctx, f.locationID, builder.At(12, 0), builder.At(13, 0))
		require.NoError(t, err)
		assert.Len(t, slots, 2)
	})

	t.Run("AvailableSlots is empty for an inactive location", func(t *testing.T) {
		f := newFixture(t)
		loc, _ := f.store.Location(f.locationID)
		loc.IsActive = false
		f.store.AddLocation(loc)

		slots, err := f.availability.AvailableSlots(ctx, f.locationID, builder.At(10, 0), builder.At(12, 0))

		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestBookingQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID reports elapsed active bookings as completed", func(t *testing.T) {
		f := newFixture(t)
		b := f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(12, 0))

		view, err := f.bookingQ.GetByID(ctx, f.user, b.ID())
		require.NoError(t, err)
		assert.Equal(t, "active", view.Status)
		assert.Equal(t, "A-01", view.SlotNumber)
		assert.InDelta(t, 8.0, view.TotalCost, 1e-9)

		f.clock.Set(builder.At(12, 0))
		view, err = f.bookingQ.GetByID(ctx, f.user, b.ID())
		require.NoError(t, err)
		assert.Equal(t, "completed", view.Status)
		// nothing was written
		assert.Equal(t, booking.StatusActive, f.store.Bookings()[0].Status())
	})

	t.Run("GetByID access", func(t *testing.T) {
		f := newFixture(t)
		b := f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(12, 0))

		for _, actor := range []user.Actor{f.user, f.owner, f.admin} {
			_, err := f.bookingQ.GetByID(ctx, actor, b.ID())
			assert.NoError(t, err, "role %s", actor.Role)
		}

		_, err := f.bookingQ.GetByID(ctx, user.NewActor(uuid.New(), user.RoleUser), b.ID())
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

		_, err = f.bookingQ.GetByID(ctx, user.NewActor(uuid.New(), user.RoleOwner), b.ID())
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

		_, err = f.bookingQ.GetByID(ctx, f.admin, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrNotFound), "got %v", err)
	})

	t.Run("ListByUser pages newest first", func(t *testing.T) {
		f := newFixture(t)
		var created []uuid.UUID
		for h := 0; h < 5; h++ {
			created = append(created, f.book(t, f.user, f.slotA, builder.At(10+h, 0), builder.At(11+h, 0)).ID())
		}
		f.book(t, f.admin, f.slotB, builder.At(10, 0), builder.At(11, 0))

		var (
			seen   []uuid.UUID
			cursor *queries.Cursor
			pages  int
		)
		for {
			views, next, err := f.bookingQ.ListByUser(ctx, f.user, f.user.ID, cursor, 2)
			require.NoError(t, err)
			for _, v := range views {
				seen = append(seen, v.ID)
			}
			pages++
			if next == nil {
				break
			}
			cursor = next
		}

		assert.Equal(t, 3, pages)
		want := make([]uuid.UUID, len(created))
		for i, id := range created {
			want[len(created)-1-i] = id
		}
		assert.Equal(t, want, seen)
	})

	t.Run("ListByUser rejects other users and bad cursors", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.bookingQ.ListByUser(ctx, f.user, uuid.New(), nil, 10)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

		_, _, err = f.bookingQ.ListByUser(ctx, f.user, f.user.ID, &queries.Cursor{After: "not-a-cursor"}, 10)
		assert.True(t, errs.Is(err, errs.ErrInvalidArgument), "got %v", err)

		_, _, err = f.bookingQ.ListByUser(ctx, f.admin, f.user.ID, nil, 10)
		assert.NoError(t, err)
	})

	t.Run("ListBySlot and ListByLocation are for the owner and admins", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(11, 0))
		f.book(t, f.user, f.slotA, builder.At(14, 0), builder.At(15, 0))
		f.book(t, f.user, f.slotB, builder.At(10, 0), builder.At(11, 0))

		bySlot, err := f.bookingQ.ListBySlot(ctx, f.owner, f.slotA, 0)
		require.NoError(t, err)
		require.Len(t, bySlot, 2)
		assert.True(t, bySlot[0].StartTime.After(bySlot[1].StartTime))

		byLocation, err := f.bookingQ.ListByLocation(ctx, f.admin, f.locationID, 0)
		require.NoError(t, err)
		assert.Len(t, byLocation, 3)

		_, err = f.bookingQ.ListBySlot(ctx, f.user, f.slotA, 0)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
		_, err = f.bookingQ.ListByLocation(ctx, user.NewActor(uuid.New(), user.RoleOwner), f.locationID, 0)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})

	t.Run("ListAll is admin only", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(11, 0))

		all, err := f.bookingQ.ListAll(ctx, f.admin, 10)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		_, err = f.bookingQ.ListAll(ctx, f.owner, 10)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})
}

func TestPaymentAndStatsQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	uow := memstore.NewUnitOfWork(f.store)
	approve := commands.NewPaymentCommands(uow, gateway.NewSimulated(0, f.clock, nil), f.bookings, f.clock, "usd")
	decline := commands.NewPaymentCommands(uow, gateway.NewSimulated(1, f.clock, nil), f.bookings, f.clock, "usd")

	paid := f.book(t, f.user, f.slotA, builder.At(10, 0), builder.At(12, 0))
	_, err := approve.Charge(ctx, f.user, paid.ID(), "card")
	require.NoError(t, err)

	failed := f.book(t, f.user, f.slotB, builder.At(10, 0), builder.At(11, 0))
	_, err = decline.Charge(ctx, f.user, failed.ID(), "upi")
	require.NoError(t, err)

	f.book(t, f.admin, f.slotA, builder.At(6, 0), builder.At(7, 0))

	t.Run("GetByBooking returns the latest attempt", func(t *testing.T) {
		view, err := f.paymentQ.GetByBooking(ctx, f.user, paid.ID())
		require.NoError(t, err)
		assert.Equal(t, payment.StatusSuccess.String(), view.Status)
		require.NotNil(t, view.TransactionID)

		view, err = f.paymentQ.GetByBooking(ctx, f.owner, failed.ID())
		require.NoError(t, err)
		assert.Equal(t, payment.StatusFailed.String(), view.Status)
		require.NotNil(t, view.FailureReason)

		_, err = f.paymentQ.GetByBooking(ctx, user.NewActor(uuid.New(), user.RoleUser), paid.ID())
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})

	t.Run("ListByUser and ListAll", func(t *testing.T) {
		mine, err := f.paymentQ.ListByUser(ctx, f.user, f.user.ID, 0)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		_, err = f.paymentQ.ListByUser(ctx, f.owner, f.user.ID, 0)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)

		all, err := f.paymentQ.ListAll(ctx, f.admin, 1)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("Stats use effective status and successful revenue", func(t *testing.T) {
		got, err := f.stats.Get(ctx, f.admin)
		require.NoError(t, err)

		// the 06:00-07:00 booking has already elapsed at 08:xx
		assert.Equal(t, queries.BookingStats{Total: 3, Active: 1, Completed: 1, Cancelled: 1}, got.Bookings)
		assert.InDelta(t, 8.0, got.Payments.TotalRevenue, 1e-9)
		assert.Equal(t, int64(1), got.Payments.SuccessfulPayments)
		assert.Equal(t, int64(1), got.Payments.FailedPayments)

		_, err = f.stats.Get(ctx, f.user)
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})
}
