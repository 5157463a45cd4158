package gateway

import (
	"context"
	"errors"
	"math"
	"strings"

	"parking-booking/internal/domain/payment"
	"parking-booking/internal/pkg/errs"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const StripeName = "stripe"

type paymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Stripe confirms a PaymentIntent synchronously. Only card payments are supported.
type Stripe struct {
	intents       paymentIntents
	paymentMethod string
}

func NewStripe(secretKey, paymentMethod string) *Stripe {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Stripe{
		intents:       sc.PaymentIntents,
		paymentMethod: paymentMethod,
	}
}

func (s *Stripe) Name() string {
	return StripeName
}

func (s *Stripe) Authorize(ctx context.Context, req payment.AuthorizeRequest) (payment.AuthorizeResult, error) {
	if req.Method != payment.MethodCard {
		return payment.AuthorizeResult{
			Outcome: payment.OutcomeFailed,
			Reason:  "payment method " + req.Method.String() + " is not supported by stripe",
		}, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(minorUnits(req.Amount, req.Currency)),
		Currency:           stripe.String(req.Currency),
		PaymentMethod:      stripe.String(s.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.AttemptID.String())
	params.AddMetadata("booking_id", req.BookingID.String())
	params.AddMetadata("user_id", req.UserID.String())
	params.AddMetadata("payment_id", req.AttemptID.String())

	pi, err := s.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return payment.AuthorizeResult{
				Outcome: payment.OutcomeFailed,
				Reason:  stripeErr.Msg,
				Metadata: map[string]any{
					"decline_code": string(stripeErr.DeclineCode),
				},
			}, nil
		}
		return payment.AuthorizeResult{}, errs.Mark(errs.Wrap(err, "stripe payment intent"), errs.ErrGatewayUnavailable)
	}

	result := payment.AuthorizeResult{
		TransactionID: pi.ID,
		Metadata: map[string]any{
			"payment_intent_status": string(pi.Status),
		},
	}
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		result.Outcome = payment.OutcomeSuccess
	} else {
		result.Outcome = payment.OutcomeFailed
		result.Reason = "payment intent ended in status " + string(pi.Status)
	}
	return result, nil
}

// Stripe charges these in whole units.
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {}, "krw": {}, "mga": {},
	"pyg": {}, "rwf": {}, "ugx": {}, "vnd": {}, "vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// Stripe takes these in thousandths but requires the last digit to be zero.
var threeDecimalCurrencies = map[string]struct{}{
	"bhd": {}, "jod": {}, "kwd": {}, "omr": {}, "tnd": {},
}

// minorUnits converts an amount to the smallest unit Stripe accepts for currency.
func minorUnits(amount float64, currency string) int64 {
	c := strings.ToLower(currency)
	if _, ok := zeroDecimalCurrencies[c]; ok {
		return int64(math.Round(amount))
	}
	if _, ok := threeDecimalCurrencies[c]; ok {
		return int64(math.Round(amount*100)) * 10
	}
	return int64(math.Round(amount * 100))
}
