package response

import (
	"time"

	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AvailabilityResponse struct {
	SlotID    uuid.UUID `json:"slot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Available bool      `json:"available"`
}

type SlotResponse struct {
	ID          uuid.UUID `json:"id"`
	LocationID  uuid.UUID `json:"parking_location_id"`
	SlotNumber  string    `json:"slot_number"`
	SlotType    string    `json:"slot_type"`
	IsAvailable bool      `json:"is_available"`
	IsActive    bool      `json:"is_active"`
}

func FromSlotViews(views []*queries.SlotView) []*SlotResponse {
	res := make([]*SlotResponse, len(views))
	for i, v := range views {
		var s SlotResponse
		_ = copier.Copy(&s, v)
		res[i] = &s
	}
	return res
}

type StatsResponse struct {
	Bookings queries.BookingStats `json:"bookings"`
	Payments queries.PaymentStats `json:"payments"`
}

func FromStats(s *queries.Stats) *StatsResponse {
	return &StatsResponse{Bookings: s.Bookings, Payments: s.Payments}
}
