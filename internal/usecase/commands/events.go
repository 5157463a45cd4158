package commands

import (
	"context"
	"encoding/json"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	TopicBookingCreated   = "booking.created"
	TopicBookingCancelled = "booking.cancelled"
	TopicBookingCompleted = "booking.completed"
	TopicPaymentSucceeded = "payment.succeeded"
	TopicPaymentFailed    = "payment.failed"
)

type BookingEvent struct {
	BookingID    uuid.UUID  `json:"booking_id"`
	UserID       uuid.UUID  `json:"user_id"`
	SlotID       uuid.UUID  `json:"slot_id"`
	LocationID   uuid.UUID  `json:"parking_location_id"`
	Status       string     `json:"status"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	TotalCost    float64    `json:"total_cost"`
	CancelledBy  *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

type PaymentEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	BookingID     uuid.UUID `json:"booking_id"`
	UserID        uuid.UUID `json:"user_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Method        string    `json:"payment_method"`
	Status        string    `json:"status"`
	Gateway       string    `json:"gateway"`
	TransactionID string    `json:"transaction_id,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func enqueueBookingEvent(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, now time.Time) error {
	payload, err := json.Marshal(BookingEvent{
		BookingID:    b.ID(),
		UserID:       b.UserID(),
		SlotID:       b.SlotID(),
		LocationID:   b.LocationID(),
		Status:       b.Status().String(),
		StartTime:    b.Interval().Start(),
		EndTime:      b.Interval().End(),
		TotalCost:    b.TotalCost(),
		CancelledBy:  b.CancelledBy(),
		CancelReason: string(b.CancelReason()),
		OccurredAt:   now,
	})
	if err != nil {
		return err
	}

	return tx.Outbox().Enqueue(ctx, shared.OutboxMessage{
		ID:          uuid.New(),
		AggregateID: b.ID(),
		Topic:       topic,
		Payload:     payload,
		RunAt:       now,
		CreatedAt:   now,
	})
}

func enqueuePaymentEvent(ctx context.Context, tx shared.Tx, p *payment.Payment, now time.Time) error {
	topic := TopicPaymentFailed
	if p.IsSuccessful() {
		topic = TopicPaymentSucceeded
	}

	payload, err := json.Marshal(PaymentEvent{
		PaymentID:     p.ID(),
		BookingID:     p.BookingID(),
		UserID:        p.UserID(),
		Amount:        p.Amount(),
		Currency:      p.Currency(),
		Method:        p.Method().String(),
		Status:        p.Status().String(),
		Gateway:       p.Gateway(),
		TransactionID: p.TransactionID(),
		FailureReason: p.FailureReason(),
		OccurredAt:    now,
	})
	if err != nil {
		return err
	}

	return tx.Outbox().Enqueue(ctx, shared.OutboxMessage{
		ID:          uuid.New(),
		AggregateID: p.BookingID(),
		Topic:       topic,
		Payload:     payload,
		RunAt:       now,
		CreatedAt:   now,
	})
}
