package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"neighborhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLockStore struct {
	mu       sync.Mutex
	holders  map[string]string
	released []string
	err      error
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{holders: make(map[string]string)}
}

func (s *fakeLockStore) AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if _, held := s.holders[key]; held {
		return false, nil
	}
	s.holders[key] = token
	return true, nil
}

func (s *fakeLockStore) ReleaseLock(ctx context.Context, key, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holders[key] != token {
		return false, nil
	}
	delete(s.holders, key)
	s.released = append(s.released, key)
	return true, nil
}

func TestLocalLockerSerializesSameKey(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		active  int32
		maxSeen int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, "user")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, maxSeen)
	assert.Empty(t, locker.(*localLocker).locks)
}

func TestLocalLockerHonoursContext(t *testing.T) {
	locker := NewLocalLocker()

	unlock, err := locker.Lock(context.Background(), "user")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "user")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locker.Lock(context.Background(), "someone-else")
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	again, err := locker.Lock(context.Background(), "user")
	require.NoError(t, err)
	again()
}

func TestRedisLockerAcquireAndRelease(t *testing.T) {
	store := newFakeLockStore()
	locker := NewRedisLocker(store, time.Second, 100*time.Millisecond, logger.NewNopLogger())

	unlock, err := locker.Lock(context.Background(), "lock:a")
	require.NoError(t, err)

	start := time.Now()
	_, err = locker.Lock(context.Background(), "lock:a")
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	unlock()
	assert.Equal(t, []string{"lock:a"}, store.released)

	unlock, err = locker.Lock(context.Background(), "lock:a")
	require.NoError(t, err)
	unlock()
}

func TestRedisLockerWaitsForRelease(t *testing.T) {
	store := newFakeLockStore()
	locker := NewRedisLocker(store, time.Second, time.Second, logger.NewNopLogger())

	unlock, err := locker.Lock(context.Background(), "lock:b")
	require.NoError(t, err)

	go func() {
		time.Sleep(60 * time.Millisecond)
		unlock()
	}()

	second, err := locker.Lock(context.Background(), "lock:b")
	require.NoError(t, err)
	second()
}

func TestRedisLockerStoreError(t *testing.T) {
	store := newFakeLockStore()
	store.err = errors.New("connection refused")
	locker := NewRedisLocker(store, time.Second, time.Second, logger.NewNopLogger())

	_, err := locker.Lock(context.Background(), "lock:c")
	assert.EqualError(t, err, "connection refused")
}

func TestAggregatorSerializeMapsTimeoutToConflict(t *testing.T) {
	store := newFakeLockStore()
	locker := NewRedisLocker(store, time.Second, 30*time.Millisecond, logger.NewNopLogger())
	env := newTestEnv(t, CompletionByOwner)
	aggregator := NewRatingAggregator(env.ratings, env.users, nil, locker, 0, logger.NewNopLogger())
	bob := env.createUser(t, "bob")

	done := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = aggregator.Serialize(context.Background(), bob.ID, func() error {
			close(held)
			<-done
			return nil
		})
	}()
	<-held

	err := aggregator.Serialize(context.Background(), bob.ID, func() error { return nil })
	close(done)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry")
}
