package repository

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SlotWriteQueries interface {
	RefreshSlotAvailability(ctx context.Context, db sqlc.DBTX, arg sqlc.RefreshSlotAvailabilityParams) error
	RefreshLocationAvailableSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.RefreshLocationAvailableSlotsParams) error
}

type SlotRepository struct {
	queries SlotWriteQueries
	db      sqlc.DBTX
}

func NewSlotRepository(queries SlotWriteQueries, db sqlc.DBTX) *SlotRepository {
	return &SlotRepository{
		queries: queries,
		db:      db,
	}
}

// RefreshAvailability recomputes the display hints for a slot and its location.
// Nothing on the booking path reads these columns.
func (r *SlotRepository) RefreshAvailability(ctx context.Context, slotID, locationID uuid.UUID, now time.Time) error {
	err := r.queries.RefreshSlotAvailability(ctx, r.db, sqlc.RefreshSlotAvailabilityParams{
		Now:    pgconv.TimeToPgtype(now),
		SlotID: slotID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to refresh slot availability", err)
	}

	err = r.queries.RefreshLocationAvailableSlots(ctx, r.db, sqlc.RefreshLocationAvailableSlotsParams{
		Now:        pgconv.TimeToPgtype(now),
		LocationID: locationID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to refresh location available slots", err)
	}

	return nil
}
