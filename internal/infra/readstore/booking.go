package readstore

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewQueries interface {
	GetBookingView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingViewRow, error)
	ListBookingsByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserFirstPageParams) ([]sqlc.ListBookingsByUserFirstPageRow, error)
	ListBookingsByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserKeysetParams) ([]sqlc.ListBookingsByUserKeysetRow, error)
	ListBookingsBySlot(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsBySlotParams) ([]sqlc.ListBookingsBySlotRow, error)
	ListBookingsByLocation(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByLocationParams) ([]sqlc.ListBookingsByLocationRow, error)
	ListBookings(ctx context.Context, db sqlc.DBTX, rowLimit int32) ([]sqlc.ListBookingsRow, error)
	GetBookingStats(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (sqlc.GetBookingStatsRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view := toBookingView(row.Bookings, row.SlotNumber, row.LocationName)
	view.LocationOwnerID = row.LocationOwnerID
	return view, nil
}

func (r *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByUserFirstPage(ctx, r.db, sqlc.ListBookingsByUserFirstPageParams{
		UserID:   userID,
		RowLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = toBookingView(row.Bookings, row.SlotNumber, row.LocationName)
	}
	return result, nil
}

func (r *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByUserKeyset(ctx, r.db, sqlc.ListBookingsByUserKeysetParams{
		UserID:    userID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		RowLimit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings with keyset", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = toBookingView(row.Bookings, row.SlotNumber, row.LocationName)
	}
	return result, nil
}

func (r *BookingReadStore) FindBySlot(ctx context.Context, slotID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsBySlot(ctx, r.db, sqlc.ListBookingsBySlotParams{
		SlotID:   slotID,
		RowLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by slot", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = toBookingView(row.Bookings, row.SlotNumber, row.LocationName)
	}
	return result, nil
}

func (r *BookingReadStore) FindByLocation(ctx context.Context, locationID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByLocation(ctx, r.db, sqlc.ListBookingsByLocationParams{
		ParkingLocationID: locationID,
		RowLimit:          limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by location", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = toBookingView(row.Bookings, row.SlotNumber, row.LocationName)
	}
	return result, nil
}

func (r *BookingReadStore) FindAll(ctx context.Context, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookings(ctx, r.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = toBookingView(row.Bookings, row.SlotNumber, row.LocationName)
	}
	return result, nil
}

func (r *BookingReadStore) Stats(ctx context.Context, now time.Time) (*queries.BookingStats, error) {
	row, err := r.queries.GetBookingStats(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate booking stats", err)
	}
	return &queries.BookingStats{
		Total:     row.Total,
		Active:    row.Active,
		Completed: row.Completed,
		Cancelled: row.Cancelled,
	}, nil
}

func toBookingView(b sqlc.Bookings, slotNumber, locationName string) *queries.BookingView {
	return &queries.BookingView{
		ID:            b.ID,
		UserID:        b.UserID,
		LocationID:    b.ParkingLocationID,
		LocationName:  locationName,
		SlotID:        b.SlotID,
		SlotNumber:    slotNumber,
		StartTime:     pgconv.TimeFromPgtype(b.StartTime),
		EndTime:       pgconv.TimeFromPgtype(b.EndTime),
		Status:        b.Status,
		TotalDuration: b.TotalDuration,
		TotalCost:     b.TotalCost,
		HourlyRate:    b.HourlyRate,
		VehicleNumber: b.VehicleNumber,
		Notes:         pgconv.StringPtrFromPgtype(b.Notes),
		CancelledBy:   pgconv.UUIDPtrFromPgtype(b.CancelledBy),
		CancelReason:  pgconv.StringPtrFromPgtype(b.CancelReason),
		CreatedAt:     pgconv.TimeFromPgtype(b.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(b.UpdatedAt),
	}
}
