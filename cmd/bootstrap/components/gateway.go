package components

import (
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/infra/gateway"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		func(cfg config.Config, clk clock.Clock) (payment.Gateway, error) {
			return gateway.New(cfg.Payment, clk)
		},
	),
)
