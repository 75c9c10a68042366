package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "lock:"

// ErrLockHeld is returned when another holder owns the lock.
var ErrLockHeld = errors.New("lock held by another request")

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a held advisory lock.
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

// Lock acquires an advisory lock on name for at most ttl. It returns
// ErrLockHeld when the lock is taken, or the redis error when redis fails.
// A nil Client hands out a no-op lock.
func (c *Client) Lock(ctx context.Context, name string, ttl time.Duration) (*Lock, error) {
	if c == nil || c.client == nil {
		return &Lock{}, nil
	}
	lock := &Lock{client: c.client, key: lockKeyPrefix + name, token: uuid.NewString()}
	ok, err := c.client.SetNX(ctx, lock.key, lock.token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	return lock, nil
}

// Release drops the lock if it is still ours. Releasing twice is harmless.
func (l *Lock) Release(ctx context.Context) error {
	if l == nil || l.client == nil {
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
