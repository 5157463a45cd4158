// Package lock provides the leader lock background jobs take before each run,
// so a sweep or relay pass executes on one instance at a time.
package lock

import (
	"context"
	"time"

	"parking-booking/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPrefix = "parking-booking:lock:"

type Locker interface {
	// TryAcquire returns ok=false when another holder owns the lock.
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}

// only the token owner may delete the key
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	key := keyPrefix + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, errs.Wrapf(err, "acquire lock %s", name)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// the job context may already be done
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, true, nil
}

// LocalLocker always grants the lock. Used when no Redis address is configured.
type LocalLocker struct{}

func (LocalLocker) TryAcquire(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}
