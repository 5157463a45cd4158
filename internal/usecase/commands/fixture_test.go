//go:build unit

package commands_test

import (
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra/memstore"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/testutil/builder"
	"parking-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type fixture struct {
	store    *memstore.Store
	uow      *memstore.UnitOfWork
	clock    *clock.MockClock
	bookings commands.BookingCommands
	payments commands.PaymentCommands
	checkout commands.CheckoutCommands

	location memstore.LocationRecord
	slotID   uuid.UUID
	user     user.Actor
	owner    user.Actor
	admin    user.Actor
}

func newFixture(t *testing.T, gw payment.Gateway) *fixture {
	t.Helper()

	store := memstore.New()
	owner := user.NewActor(uuid.New(), user.RoleOwner)
	location := memstore.LocationRecord{
		ID:             uuid.New(),
		OwnerID:        owner.ID,
		Name:           "Central Plaza",
		Address:        "1 MG Road",
		City:           "Pune",
		PricePerHour:   5,
		TotalSlots:     1,
		AvailableSlots: 1,
		IsApproved:     true,
		IsActive:       true,
	}
	store.AddLocation(location)

	slotID := uuid.New()
	store.AddSlot(memstore.SlotRecord{
		ID:          slotID,
		LocationID:  location.ID,
		Number:      "A-01",
		Type:        slot.TypeStandard,
		IsActive:    true,
		IsAvailable: true,
	})

	clk := clock.NewMockClock(builder.At(8, 0))
	uow := memstore.NewUnitOfWork(store)
	factory := booking.NewFactory(clk, booking.NewLinearPriceCalculator())
	bookings := commands.NewBookingCommands(uow, factory, clk)
	payments := commands.NewPaymentCommands(uow, gw, bookings, clk, "usd")

	return &fixture{
		store:    store,
		uow:      uow,
		clock:    clk,
		bookings: bookings,
		payments: payments,
		checkout: commands.NewCheckoutCommands(uow, bookings, payments, clk),
		location: location,
		slotID:   slotID,
		user:     user.NewActor(uuid.New(), user.RoleUser),
		owner:    owner,
		admin:    user.NewActor(uuid.New(), user.RoleAdmin),
	}
}

func (f *fixture) addSlot(t *testing.T, active bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	f.store.AddSlot(memstore.SlotRecord{
		ID:          id,
		LocationID:  f.location.ID,
		Number:      "B-" + id.String()[:4],
		Type:        slot.TypeStandard,
		IsActive:    active,
		IsAvailable: true,
	})
	return id
}

func (f *fixture) input(start, end time.Time) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		SlotID:  f.slotID,
		Start:   start,
		End:     end,
		Vehicle: "KA01AB1234",
	}
}

func (f *fixture) checkoutInput(start, end time.Time, method string) commands.CheckoutInput {
	return commands.CheckoutInput{
		CreateBookingInput: f.input(start, end),
		PaymentMethod:      method,
	}
}

func (f *fixture) booking(t *testing.T, id uuid.UUID) *booking.Booking {
	t.Helper()
	for _, b := range f.store.Bookings() {
		if b.ID() == id {
			return b
		}
	}
	t.Fatalf("booking %s not in store", id)
	return nil
}

func (f *fixture) outboxTopics() []string {
	records := f.store.Outbox()
	topics := make([]string, len(records))
	for i, r := range records {
		topics[i] = r.Topic
	}
	return topics
}

func success(txn string) payment.AuthorizeResult {
	return payment.AuthorizeResult{Outcome: payment.OutcomeSuccess, TransactionID: txn}
}

func declined(reason string) payment.AuthorizeResult {
	return payment.AuthorizeResult{Outcome: payment.OutcomeFailed, Reason: reason}
}
