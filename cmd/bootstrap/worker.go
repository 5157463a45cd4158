package bootstrap

import (
	"context"
	"log/slog"

	"parking-booking/internal/infra/lock"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		StartWorker,
	),
)

func StartWorker(
	lc fx.Lifecycle,
	cfg config.Config,
	locker lock.Locker,
	sweeper commands.Sweeper,
	relay commands.OutboxRelay,
	logger *slog.Logger,
) error {
	if !cfg.Worker.Enabled {
		logger.Info("worker disabled")
		return nil
	}

	scheduler, err := worker.NewScheduler(cfg.Worker, locker, sweeper, relay, logger)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop(ctx)
		},
	})
	return nil
}
