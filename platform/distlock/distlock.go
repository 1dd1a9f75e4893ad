// Package distlock provides a Redis-backed run lock used to serialize
// opportunity distribution runs across processes.
// This is part of the platform layer and contains no business logic.
package distlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only if it still holds our token, so a
// run that outlives its TTL cannot release a lock acquired by a newer run.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// Lock is a single named lock backed by Redis SET NX.
type Lock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// New creates a lock with the given key and TTL. The TTL bounds how long a
// crashed holder can block other runs.
func New(client *redis.Client, key string, ttl time.Duration) *Lock {
	return &Lock{client: client, key: key, ttl: ttl}
}

// Acquire tries to take the lock. On success it returns a release function
// and true. If the lock is already held it returns false with no error.
func (l *Lock) Acquire(ctx context.Context) (func(context.Context) error, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", l.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(rctx context.Context) error {
		if err := l.client.Eval(rctx, releaseScript, []string{l.key}, token).Err(); err != nil {
			return fmt.Errorf("release lock %s: %w", l.key, err)
		}
		return nil
	}

	return release, true, nil
}
