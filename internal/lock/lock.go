package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLockHeld is returned when a lock could not be acquired before giving up.
var ErrLockHeld = errors.New("lock is held by another request")

const retryInterval = 50 * time.Millisecond

// Locker serialises work on a key. The returned release func is safe to call once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// compare-and-delete so a request never releases a lock it lost to expiry
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds locks as SET NX PX keys, shared by every instance
// pointed at the same redis.
type RedisLocker struct {
	rdb    *redis.Client
	prefix string
	logger *zap.Logger
}

func NewRedisLocker(rdb *redis.Client, prefix string, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{rdb: rdb, prefix: prefix, logger: logger}
}

// Acquire retries until the lock is free, ctx is done, or ttl has elapsed.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := l.prefix + key
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(ttl)
	for {
		ok, err := l.rdb.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(fullKey, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockHeld
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// release deletes the key if it still carries token. A failed release leaves
// the key held until its TTL runs out.
func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	deleted, err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Int64()
	if err != nil {
		l.logger.Warn("Failed to release lock", zap.String("key", key), zap.Error(err))
		return
	}
	if deleted == 0 {
		l.logger.Warn("Lock expired before release", zap.String("key", key))
	}
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// LocalLocker is an in-process keyed mutex, used when no redis is configured.
// It only serialises requests handled by this process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	timer := time.NewTimer(ttl)
	defer timer.Stop()

	for {
		l.mu.Lock()
		held, busy := l.locks[key]
		if !busy {
			done := make(chan struct{})
			l.locks[key] = done
			l.mu.Unlock()

			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.locks, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, ErrLockHeld
		}
	}
}
