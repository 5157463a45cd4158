// Package gateway holds the payment.Gateway adapters.
package gateway

import (
	"math/rand/v2"

	"parking-booking/internal/domain/payment"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/pkg/errs"
)

func New(cfg config.PaymentConfig, clk clock.Clock) (payment.Gateway, error) {
	var gw payment.Gateway
	switch cfg.Provider {
	case SimulatedName, "":
		gw = NewSimulated(cfg.SimulatedFailureRate, clk, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	case StripeName:
		if cfg.StripeSecretKey == "" {
			return nil, errs.Mark(errs.New("STRIPE_SECRET_KEY is required for the stripe provider"), errs.ErrGatewayUnavailable)
		}
		gw = NewStripe(cfg.StripeSecretKey, cfg.StripePaymentMethod)
	default:
		return nil, errs.Mark(errs.Newf("unknown payment provider %q", cfg.Provider), errs.ErrGatewayUnavailable)
	}
	return WithTimeout(gw, cfg.Timeout), nil
}
