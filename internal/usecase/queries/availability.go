package queries

import (
	"context"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	FindSlotByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	FindLocationByID(ctx context.Context, id uuid.UUID) (*LocationView, error)
	FindActiveSlotsByLocation(ctx context.Context, locationID uuid.UUID) ([]*SlotView, error)
	FindActiveIntervals(ctx context.Context, slotID uuid.UUID, windowStart, windowEnd time.Time) ([]IntervalView, error)
}

// AvailabilityQueries answer from Active bookings only. The slot's is_available
// hint never takes part in the decision.
type AvailabilityQueries interface {
	IsAvailable(ctx context.Context, slotID uuid.UUID, start, end time.Time) (bool, error)
	AvailableSlots(ctx context.Context, locationID uuid.UUID, start, end time.Time) ([]*SlotView, error)
}

type availabilityQueriesImpl struct {
	store SlotReadStore
}

func NewAvailabilityQueries(store SlotReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store}
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, slotID uuid.UUID, start, end time.Time) (bool, error) {
	interval, err := booking.NewInterval(start, end)
	if err != nil {
		return false, err
	}

	s, err := q.store.FindSlotByID(ctx, slotID)
	if err != nil {
		return false, shared.StoreError(err, "load slot")
	}
	if !s.IsActive || !s.LocationIsActive {
		return false, nil
	}

	return q.isFree(ctx, slotID, interval)
}

func (q *availabilityQueriesImpl) AvailableSlots(ctx context.Context, locationID uuid.UUID, start, end time.Time) ([]*SlotView, error) {
	interval, err := booking.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	location, err := q.store.FindLocationByID(ctx, locationID)
	if err != nil {
		return nil, shared.StoreError(err, "load location")
	}
	if !location.IsActive {
		return []*SlotView{}, nil
	}

	slots, err := q.store.FindActiveSlotsByLocation(ctx, locationID)
	if err != nil {
		return nil, shared.StoreError(err, "list active slots")
	}

	available := make([]*SlotView, 0, len(slots))
	for _, s := range slots {
		free, err := q.isFree(ctx, s.ID, interval)
		if err != nil {
			return nil, err
		}
		if free {
			s.LocationOwnerID = location.OwnerID
			s.LocationIsActive = location.IsActive
			available = append(available, s)
		}
	}
	return available, nil
}

func (q *availabilityQueriesImpl) isFree(ctx context.Context, slotID uuid.UUID, interval booking.Interval) (bool, error) {
	existing, err := q.store.FindActiveIntervals(ctx, slotID, interval.Start(), interval.End())
	if err != nil {
		return false, shared.StoreError(err, "list active bookings")
	}

	for _, e := range existing {
		other, err := booking.NewInterval(e.StartTime, e.EndTime)
		if err != nil {
			return false, shared.StoreError(err, "stored booking interval")
		}
		if interval.Overlaps(other) {
			return false, nil
		}
	}
	return true, nil
}
