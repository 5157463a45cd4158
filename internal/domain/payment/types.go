package payment

import (
	"context"

	"parking-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type Method string

const (
	MethodCard   Method = "card"
	MethodWallet Method = "wallet"
	MethodUPI    Method = "upi"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCard, MethodWallet, MethodUPI:
		return true
	default:
		return false
	}
}

func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if !m.IsValid() {
		return "", errs.Mark(errs.Wrapf(errs.New("unsupported method"), "method %q", s), errs.ErrInvalidPaymentMethod)
	}
	return m, nil
}

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed:
		return true
	default:
		return false
	}
}

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// AuthorizeRequest is one charge attempt. AttemptID doubles as the gateway
// idempotency key, so a retry of the same attempt can never charge twice.
type AuthorizeRequest struct {
	AttemptID uuid.UUID
	BookingID uuid.UUID
	UserID    uuid.UUID
	Amount    float64
	Currency  string
	Method    Method
}

type AuthorizeResult struct {
	Outcome       Outcome
	TransactionID string
	Reason        string
	Metadata      map[string]any
}

// Gateway is the external payment contract. An error return means the outcome
// is unknown; callers treat it as Failed.
type Gateway interface {
	Name() string
	Authorize(ctx context.Context, req AuthorizeRequest) (AuthorizeResult, error)
}
