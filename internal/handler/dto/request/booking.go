package request

import (
	"strings"
	"time"

	"parking-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID        uuid.UUID `json:"slot_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	VehicleNumber string    `json:"vehicle_number" binding:"required,max=32"`
	Notes         *string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
}

// ToInput never carries an hourly rate: HTTP bookings are priced from the slot's location.
func (r CreateBookingRequest) ToInput(idempotencyKey *uuid.UUID) commands.CheckoutInput {
	notes := ""
	if r.Notes != nil {
		notes = strings.TrimSpace(*r.Notes)
	}
	return commands.CheckoutInput{
		CreateBookingInput: commands.CreateBookingInput{
			SlotID:         r.SlotID,
			Start:          r.StartTime,
			End:            r.EndTime,
			Vehicle:        r.VehicleNumber,
			Notes:          notes,
			IdempotencyKey: idempotencyKey,
		},
		PaymentMethod: strings.ToLower(strings.TrimSpace(r.PaymentMethod)),
	}
}

type ChargeRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type WindowQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type ListQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
