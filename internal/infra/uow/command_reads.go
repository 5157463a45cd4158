package uow

import (
	"context"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/repository/converter"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type commandReads struct {
	q    *sqlc.Queries
	dbtx sqlc.DBTX
}

func (r *commandReads) SlotByID(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	row, err := r.q.GetSlotWithLocation(ctx, r.dbtx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load slot", err)
	}

	return &shared.SlotSnapshot{
		Slot:            converter.SlotFromLocationRow(row),
		LocationOwnerID: row.LocationOwnerID,
		PricePerHour:    row.PricePerHour,
		LocationActive:  row.LocationIsActive,
	}, nil
}

func (r *commandReads) LocationByID(ctx context.Context, id uuid.UUID) (*shared.LocationSnapshot, error) {
	row, err := r.q.GetLocationByID(ctx, r.dbtx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("location not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load location", err)
	}

	return &shared.LocationSnapshot{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		PricePerHour: row.PricePerHour,
		IsActive:     row.IsActive,
	}, nil
}

func (r *commandReads) ActiveSlotsByLocation(ctx context.Context, locationID uuid.UUID) ([]*slot.Slot, error) {
	rows, err := r.q.ListActiveSlotsByLocation(ctx, r.dbtx, locationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active slots", err)
	}

	slots := make([]*slot.Slot, len(rows))
	for i, row := range rows {
		slots[i] = converter.SlotFromRow(row)
	}
	return slots, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.q.GetBookingByID(ctx, r.dbtx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking", err)
	}
	return converter.BookingFromRow(row)
}

func (r *commandReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.q.GetBookingByIDForUpdate(ctx, r.dbtx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return converter.BookingFromRow(row)
}

func (r *commandReads) ActiveIntervalsOnSlot(ctx context.Context, slotID uuid.UUID, window booking.Interval) ([]booking.Interval, error) {
	rows, err := r.q.ListActiveBookingsBySlotInWindow(ctx, r.dbtx, sqlc.ListActiveBookingsBySlotInWindowParams{
		SlotID:      slotID,
		WindowStart: pgconv.TimeToPgtype(window.Start()),
		WindowEnd:   pgconv.TimeToPgtype(window.End()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active intervals", err)
	}

	intervals := make([]booking.Interval, 0, len(rows))
	for _, row := range rows {
		interval, err := booking.NewInterval(pgconv.TimeFromPgtype(row.StartTime), pgconv.TimeFromPgtype(row.EndTime))
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has an invalid interval", err)
		}
		intervals = append(intervals, interval)
	}
	return intervals, nil
}

func (r *commandReads) HasActiveOverlap(ctx context.Context, slotID uuid.UUID, interval booking.Interval) (bool, error) {
	overlaps, err := r.q.HasActiveOverlap(ctx, r.dbtx, sqlc.HasActiveOverlapParams{
		SlotID:      slotID,
		WindowStart: pgconv.TimeToPgtype(interval.Start()),
		WindowEnd:   pgconv.TimeToPgtype(interval.End()),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot overlap", err)
	}
	return overlaps, nil
}

func (r *commandReads) DueActiveBookingIDs(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	ids, err := r.q.ListDueActiveBookingIDs(ctx, r.dbtx, sqlc.ListDueActiveBookingIDsParams{
		Now:       pgconv.TimeToPgtype(now),
		BatchSize: pgconv.IntToInt32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due bookings", err)
	}
	return ids, nil
}

func (r *commandReads) LatestPaymentByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	row, err := r.q.GetLatestPaymentByBooking(ctx, r.dbtx, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load payment", err)
	}
	return converter.PaymentFromRow(row)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.q.GetIdempotencyKey(ctx, r.dbtx, sqlc.GetIdempotencyKeyParams{
		Key:    key,
		UserID: userID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:             row.Key,
		UserID:          row.UserID,
		Endpoint:        row.Endpoint,
		Status:          row.Status,
		RequestHash:     row.RequestHash,
		ResultBookingID: pgconv.UUIDPtrFromPgtype(row.ResultBookingID),
		ExpiresAt:       pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}
