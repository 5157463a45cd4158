//go:build unit || integration || e2e

package builder

import (
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var BaseTime = time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)

// At returns BaseTime plus the given hour/minute offset.
func At(hour, minute int) time.Time {
	return BaseTime.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type BookingBuilder struct {
	UserID         uuid.UUID
	SlotID         uuid.UUID
	LocationID     uuid.UUID
	SlotActive     bool
	Start          time.Time
	End            time.Time
	Rate           float64
	Vehicle        string
	Notes          string
	IdempotencyKey *uuid.UUID
	Now            time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		UserID:     uuid.New(),
		SlotID:     uuid.New(),
		LocationID: uuid.New(),
		SlotActive: true,
		Start:      At(10, 0),
		End:        At(12, 0),
		Rate:       5,
		Vehicle:    "KA01AB1234",
		Notes:      "near the lift",
		Now:        At(8, 0),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithInterval(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithRate(rate float64) *BookingBuilder {
	b.Rate = rate
	return b
}

func (b *BookingBuilder) WithVehicle(v string) *BookingBuilder {
	b.Vehicle = v
	return b
}

func (b *BookingBuilder) WithNotes(n string) *BookingBuilder {
	b.Notes = n
	return b
}

func (b *BookingBuilder) WithSlot(slotID, locationID uuid.UUID) *BookingBuilder {
	b.SlotID = slotID
	b.LocationID = locationID
	return b
}

func (b *BookingBuilder) WithUser(userID uuid.UUID) *BookingBuilder {
	b.UserID = userID
	return b
}

func (b *BookingBuilder) BuildSlot() *slot.Slot {
	return slot.ReconstructSlot(b.SlotID, b.LocationID, "A-01", slot.TypeStandard, b.SlotActive, true, b.Now, b.Now)
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	interval, err := booking.NewInterval(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	vehicle, err := booking.NewVehicleNumber(b.Vehicle)
	if err != nil {
		return nil, err
	}
	notes, err := booking.NewNote(b.Notes)
	if err != nil {
		return nil, err
	}

	factory := booking.NewFactory(clock.NewMockClock(b.Now), booking.NewLinearPriceCalculator())
	return factory.CreateBooking(b.BuildSlot(), booking.CreateInput{
		UserID:         b.UserID,
		Interval:       interval,
		Vehicle:        vehicle,
		Notes:          notes,
		HourlyRate:     b.Rate,
		IdempotencyKey: b.IdempotencyKey,
	})
}

func (b *BookingBuilder) MustBuildDomain() *booking.Booking {
	bk, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return bk
}
