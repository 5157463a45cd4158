package bootstrap

import (
	"context"
	"log/slog"

	"parking-booking/internal/infra/messaging"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (commands.EventPublisher, error) {
	if cfg.Broker.URL == "" {
		logger.Warn("AMQP_URL not set, outbox events are not published")
		return messaging.NopPublisher{}, nil
	}

	pub, err := messaging.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
