package components

import (
	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/payment"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"
	"parking-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewLinearPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	booking.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		func(uow shared.UnitOfWork, gw payment.Gateway, bookings commands.BookingCommands, clk clock.Clock, cfg config.Config) commands.PaymentCommands {
			return commands.NewPaymentCommands(uow, gw, bookings, clk, cfg.Payment.Currency)
		},
		commands.NewCheckoutCommands,
		func(uow shared.UnitOfWork, bookings commands.BookingCommands, clk clock.Clock, cfg config.Config) commands.Sweeper {
			return commands.NewSweeper(uow, bookings, clk, cfg.Worker.SweepBatchSize)
		},
		func(uow shared.UnitOfWork, publisher commands.EventPublisher, clk clock.Clock, cfg config.Config) commands.OutboxRelay {
			return commands.NewOutboxRelay(uow, publisher, clk, cfg.Worker.RelayBatchSize, cfg.Worker.RelayMaxAttempts)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewPaymentQueries,
		queries.NewStatsQueries,
	),
)
