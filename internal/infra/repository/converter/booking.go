package converter

import (
	"parking-booking/internal/domain/booking"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func BookingToCreateParams(b *booking.Booking) sqlc.CreateBookingParams {
	interval := b.Interval()
	return sqlc.CreateBookingParams{
		ID:                b.ID(),
		UserID:            b.UserID(),
		ParkingLocationID: b.LocationID(),
		SlotID:            b.SlotID(),
		StartTime:         pgconv.TimeToPgtype(interval.Start()),
		EndTime:           pgconv.TimeToPgtype(interval.End()),
		Status:            b.Status().String(),
		TotalDuration:     b.TotalDuration(),
		TotalCost:         b.TotalCost(),
		HourlyRate:        b.HourlyRate(),
		VehicleNumber:     b.Vehicle().String(),
		Notes:             pgconv.StringToPgtype(b.Notes().String()),
		CreatedAt:         pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:         pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingToStatusParams(b *booking.Booking) sqlc.UpdateBookingStatusParams {
	params := sqlc.UpdateBookingStatusParams{
		ID:           b.ID(),
		Status:       b.Status().String(),
		CancelledBy:  pgconv.UUIDPtrToPgtype(b.CancelledBy()),
		CancelReason: pgtype.Text{Valid: false},
		UpdatedAt:    pgconv.TimeToPgtype(b.UpdatedAt()),
	}
	if reason := b.CancelReason(); reason != "" {
		params.CancelReason = pgtype.Text{String: string(reason), Valid: true}
	}
	return params
}

// BookingFromRow rebuilds the aggregate. Rows are trusted to satisfy the table
// constraints, so a failure here means corrupted data.
func BookingFromRow(row sqlc.Bookings) (*booking.Booking, error) {
	interval, err := booking.NewInterval(pgconv.TimeFromPgtype(row.StartTime), pgconv.TimeFromPgtype(row.EndTime))
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s has an invalid interval", row.ID)
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	vehicle, err := booking.NewVehicleNumber(row.VehicleNumber)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	notes, err := booking.NewNote(pgconv.StringFromPgtype(row.Notes))
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}

	return booking.ReconstructBooking(
		row.ID, row.UserID, row.ParkingLocationID, row.SlotID,
		interval,
		status,
		booking.Quote{Hours: row.TotalDuration, Rate: row.HourlyRate, Cost: row.TotalCost},
		vehicle,
		notes,
		nil,
		pgconv.UUIDPtrFromPgtype(row.CancelledBy),
		booking.CancelReason(pgconv.StringFromPgtype(row.CancelReason)),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
