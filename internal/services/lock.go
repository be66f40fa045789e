package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"neighborhub/pkg/logger"

	"github.com/google/uuid"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

const lockRetryInterval = 25 * time.Millisecond

// UserLocker serialises work on a key across goroutines (and, for the redis
// implementation, across processes).
type UserLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LockStore is implemented by cache.RedisCache.
type LockStore interface {
	AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, token string) (bool, error)
}

type redisLocker struct {
	store  LockStore
	ttl    time.Duration
	wait   time.Duration
	logger *logger.Logger
}

func NewRedisLocker(store LockStore, ttl, wait time.Duration, log *logger.Logger) UserLocker {
	return &redisLocker{store: store, ttl: ttl, wait: wait, logger: log}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.store.AcquireLock(waitCtx, key, token, l.ttl)
		if err != nil && waitCtx.Err() == nil {
			return nil, err
		}
		if ok {
			return func() {
				// Released on a fresh context so a cancelled request still
				// frees the key.
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if _, err := l.store.ReleaseLock(releaseCtx, key, token); err != nil {
					l.logger.WithError(err).WithField("lock_key", key).Warn("Failed to release lock")
				}
			}, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}

type localLock struct {
	sem  chan struct{}
	refs int
}

type localLocker struct {
	mu    sync.Mutex
	locks map[string]*localLock
}

// NewLocalLocker returns an in-process keyed mutex.
func NewLocalLocker() UserLocker {
	return &localLocker{locks: make(map[string]*localLock)}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &localLock{sem: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			l.release(key, entry)
		})
	}, nil
}

func (l *localLocker) release(key string, entry *localLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}
