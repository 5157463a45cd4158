package readstore

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotViewQueries interface {
	GetSlotWithLocation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetSlotWithLocationRow, error)
	GetLocationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.ParkingLocations, error)
	ListActiveSlotsByLocation(ctx context.Context, db sqlc.DBTX, parkingLocationID uuid.UUID) ([]sqlc.ParkingSlots, error)
	ListActiveBookingsBySlotInWindow(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveBookingsBySlotInWindowParams) ([]sqlc.ListActiveBookingsBySlotInWindowRow, error)
}

type SlotReadStore struct {
	queries SlotViewQueries
	db      sqlc.DBTX
}

func NewSlotReadStore(queries SlotViewQueries, db sqlc.DBTX) *SlotReadStore {
	return &SlotReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *SlotReadStore) FindSlotByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	row, err := r.queries.GetSlotWithLocation(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}

	return &queries.SlotView{
		ID:               row.ID,
		LocationID:       row.ParkingLocationID,
		LocationOwnerID:  row.LocationOwnerID,
		SlotNumber:       row.SlotNumber,
		SlotType:         row.SlotType,
		IsAvailable:      row.IsAvailable,
		IsActive:         row.IsActive,
		LocationIsActive: row.LocationIsActive,
	}, nil
}

func (r *SlotReadStore) FindLocationByID(ctx context.Context, id uuid.UUID) (*queries.LocationView, error) {
	row, err := r.queries.GetLocationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find location by ID", err)
	}

	return &queries.LocationView{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		Name:           row.Name,
		Address:        row.Address,
		City:           row.City,
		PricePerHour:   row.PricePerHour,
		TotalSlots:     row.TotalSlots,
		AvailableSlots: row.AvailableSlots,
		IsApproved:     row.IsApproved,
		IsActive:       row.IsActive,
	}, nil
}

func (r *SlotReadStore) FindActiveSlotsByLocation(ctx context.Context, locationID uuid.UUID) ([]*queries.SlotView, error) {
	rows, err := r.queries.ListActiveSlotsByLocation(ctx, r.db, locationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active slots", err)
	}

	result := make([]*queries.SlotView, len(rows))
	for i, row := range rows {
		result[i] = &queries.SlotView{
			ID:          row.ID,
			LocationID:  row.ParkingLocationID,
			SlotNumber:  row.SlotNumber,
			SlotType:    row.SlotType,
			IsAvailable: row.IsAvailable,
			IsActive:    row.IsActive,
		}
	}
	return result, nil
}

func (r *SlotReadStore) FindActiveIntervals(ctx context.Context, slotID uuid.UUID, windowStart, windowEnd time.Time) ([]queries.IntervalView, error) {
	rows, err := r.queries.ListActiveBookingsBySlotInWindow(ctx, r.db, sqlc.ListActiveBookingsBySlotInWindowParams{
		SlotID:      slotID,
		WindowStart: pgconv.TimeToPgtype(windowStart),
		WindowEnd:   pgconv.TimeToPgtype(windowEnd),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings on slot", err)
	}

	result := make([]queries.IntervalView, len(rows))
	for i, row := range rows {
		result[i] = queries.IntervalView{
			BookingID: row.ID,
			StartTime: pgconv.TimeFromPgtype(row.StartTime),
			EndTime:   pgconv.TimeFromPgtype(row.EndTime),
		}
	}
	return result, nil
}
