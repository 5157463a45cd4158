package response

import (
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	LocationID    uuid.UUID  `json:"parking_location_id"`
	LocationName  string     `json:"location_name,omitempty"`
	SlotID        uuid.UUID  `json:"slot_id"`
	SlotNumber    string     `json:"slot_number,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	Status        string     `json:"status"`
	TotalDuration float64    `json:"total_duration"`
	TotalCost     float64    `json:"total_cost"`
	HourlyRate    float64    `json:"hourly_rate"`
	VehicleNumber string     `json:"vehicle_number"`
	Notes         *string    `json:"notes,omitempty"`
	CancelledBy   *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelReason  *string    `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PaymentResponse struct {
	ID            uuid.UUID      `json:"id"`
	BookingID     uuid.UUID      `json:"booking_id"`
	UserID        uuid.UUID      `json:"user_id"`
	Amount        float64        `json:"amount"`
	Currency      string         `json:"currency"`
	Method        string         `json:"payment_method"`
	Status        string         `json:"status"`
	Gateway       string         `json:"gateway"`
	TransactionID *string        `json:"transaction_id,omitempty"`
	FailureReason *string        `json:"failure_reason,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type CheckoutResponse struct {
	Booking  *BookingResponse `json:"booking"`
	Payment  *PaymentResponse `json:"payment,omitempty"`
	Replayed bool             `json:"replayed"`
}

type ChargeResponse struct {
	Booking *BookingResponse `json:"booking"`
	Payment *PaymentResponse `json:"payment"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var res BookingResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}

func FromBooking(b *booking.Booking) *BookingResponse {
	res := &BookingResponse{
		ID:            b.ID(),
		UserID:        b.UserID(),
		LocationID:    b.LocationID(),
		SlotID:        b.SlotID(),
		StartTime:     b.Interval().Start(),
		EndTime:       b.Interval().End(),
		Status:        b.Status().String(),
		TotalDuration: b.TotalDuration(),
		TotalCost:     b.TotalCost(),
		HourlyRate:    b.HourlyRate(),
		VehicleNumber: b.Vehicle().String(),
		CancelledBy:   b.CancelledBy(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
	if notes := b.Notes().String(); notes != "" {
		res.Notes = &notes
	}
	if reason := string(b.CancelReason()); reason != "" {
		res.CancelReason = &reason
	}
	return res
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	var res PaymentResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromPaymentViews(views []*queries.PaymentView) []*PaymentResponse {
	res := make([]*PaymentResponse, len(views))
	for i, v := range views {
		res[i] = FromPaymentView(v)
	}
	return res
}

func FromPayment(p *payment.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	res := &PaymentResponse{
		ID:        p.ID(),
		BookingID: p.BookingID(),
		UserID:    p.UserID(),
		Amount:    p.Amount(),
		Currency:  p.Currency(),
		Method:    p.Method().String(),
		Status:    p.Status().String(),
		Gateway:   p.Gateway(),
		Metadata:  p.Metadata(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
	if txn := p.TransactionID(); txn != "" {
		res.TransactionID = &txn
	}
	if reason := p.FailureReason(); reason != "" {
		res.FailureReason = &reason
	}
	return res
}

func FromCheckout(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Booking:  FromBooking(r.Booking),
		Payment:  FromPayment(r.Payment),
		Replayed: r.IsReplayed,
	}
}

func FromCharge(r *commands.ChargeResult) *ChargeResponse {
	return &ChargeResponse{
		Booking: FromBooking(r.Booking),
		Payment: FromPayment(r.Payment),
	}
}
