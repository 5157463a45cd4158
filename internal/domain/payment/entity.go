package payment

import (
	"maps"
	"time"

	"parking-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAlreadySettled = errs.Mark(errs.New("payment is already settled"), errs.ErrInvalidTransition)

// Payment is one authorization attempt. Retries create new records.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	userID        uuid.UUID
	amount        float64
	currency      string
	method        Method
	status        Status
	gateway       string
	transactionID string
	failureReason string
	metadata      map[string]any
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPayment(bookingID, userID uuid.UUID, amount float64, currency string, method Method, now time.Time) *Payment {
	return &Payment{
		id:        uuid.New(),
		bookingID: bookingID,
		userID:    userID,
		amount:    amount,
		currency:  currency,
		method:    method,
		status:    StatusPending,
		metadata:  map[string]any{},
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructPayment(
	id, bookingID, userID uuid.UUID,
	amount float64,
	currency string,
	method Method,
	status Status,
	gateway, transactionID, failureReason string,
	metadata map[string]any,
	createdAt, updatedAt time.Time,
) *Payment {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		userID:        userID,
		amount:        amount,
		currency:      currency,
		method:        method,
		status:        status,
		gateway:       gateway,
		transactionID: transactionID,
		failureReason: failureReason,
		metadata:      metadata,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Payment) ID() uuid.UUID         { return p.id }
func (p *Payment) BookingID() uuid.UUID  { return p.bookingID }
func (p *Payment) UserID() uuid.UUID     { return p.userID }
func (p *Payment) Amount() float64       { return p.amount }
func (p *Payment) Currency() string      { return p.currency }
func (p *Payment) Method() Method        { return p.method }
func (p *Payment) Status() Status        { return p.status }
func (p *Payment) Gateway() string       { return p.gateway }
func (p *Payment) TransactionID() string { return p.transactionID }
func (p *Payment) FailureReason() string { return p.failureReason }
func (p *Payment) CreatedAt() time.Time  { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time  { return p.updatedAt }

func (p *Payment) Metadata() map[string]any {
	return maps.Clone(p.metadata)
}

func (p *Payment) IsSuccessful() bool {
	return p.status == StatusSuccess
}

func (p *Payment) IsFailed() bool {
	return p.status == StatusFailed
}

// Settle records the gateway outcome. Only a Pending payment can be settled.
func (p *Payment) Settle(gateway string, result AuthorizeResult, now time.Time) error {
	if p.status != StatusPending {
		return ErrAlreadySettled
	}

	p.gateway = gateway
	p.transactionID = result.TransactionID
	if result.Metadata != nil {
		p.metadata = maps.Clone(result.Metadata)
	}
	switch result.Outcome {
	case OutcomeSuccess:
		p.status = StatusSuccess
	default:
		p.status = StatusFailed
		p.failureReason = result.Reason
	}
	p.updatedAt = now
	return nil
}
