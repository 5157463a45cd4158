package converter

import (
	"parking-booking/internal/domain/slot"
	sqlc "parking-booking/internal/infra/sqlc/generated"
	"parking-booking/internal/pkg/pgconv"
)

func SlotFromRow(row sqlc.ParkingSlots) *slot.Slot {
	return slot.ReconstructSlot(
		row.ID, row.ParkingLocationID,
		row.SlotNumber,
		slot.Type(row.SlotType),
		row.IsActive, row.IsAvailable,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func SlotFromLocationRow(row sqlc.GetSlotWithLocationRow) *slot.Slot {
	return slot.ReconstructSlot(
		row.ID, row.ParkingLocationID,
		row.SlotNumber,
		slot.Type(row.SlotType),
		row.IsActive, row.IsAvailable,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
