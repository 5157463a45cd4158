package repository

import (
	"context"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/repository/converter"
	sqlc "parking-booking/internal/infra/sqlc/generated"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	UpdateBookingStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

// Create relies on the bookings_no_active_overlap exclusion constraint; a
// conflicting insert surfaces as KindConflict.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	params := converter.BookingToCreateParams(b)

	if err := r.queries.CreateBooking(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	params := converter.BookingToStatusParams(b)

	affected, err := r.queries.UpdateBookingStatus(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if affected == 0 {
		return booking.ErrNotActive
	}

	return nil
}
