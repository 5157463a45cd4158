package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"parking-booking/internal/infra/lock"
	"parking-booking/internal/pkg/config"
	"parking-booking/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewLocker,
	),
)

// NewLocker falls back to a local lock when no Redis address is configured,
// which is only safe with a single instance.
func NewLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (lock.Locker, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, worker jobs use a local lock")
		return lock.LocalLocker{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "ping redis")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return lock.NewRedisLocker(client), nil
}
