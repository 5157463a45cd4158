package booking

import (
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

type CreateInput struct {
	UserID         uuid.UUID
	Interval       Interval
	Vehicle        VehicleNumber
	Notes          Note
	HourlyRate     float64
	IdempotencyKey *uuid.UUID
}

// CreateBooking builds an Active booking with its cost frozen at the given rate.
// It does not check availability; that is decided atomically by the store.
func (f *Factory) CreateBooking(slotEntity *slot.Slot, in CreateInput) (*Booking, error) {
	if err := slotEntity.CanBeBooked(); err != nil {
		return nil, err
	}

	quote, err := f.PriceCalculator.Quote(in.Interval, in.HourlyRate)
	if err != nil {
		return nil, err
	}

	return NewBooking(NewBookingParams{
		UserID:         in.UserID,
		LocationID:     slotEntity.LocationID(),
		SlotID:         slotEntity.ID(),
		Interval:       in.Interval,
		Quote:          quote,
		Vehicle:        in.Vehicle,
		Notes:          in.Notes,
		IdempotencyKey: in.IdempotencyKey,
		Now:            f.Clock.Now(),
	}), nil
}
