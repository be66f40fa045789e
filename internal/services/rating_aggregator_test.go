package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/validators"
	"neighborhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mapCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{items: make(map[string][]byte)}
}

func (c *mapCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *mapCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

// gatedRatingRepository holds its first GetStarDistribution call until
// release is closed.
type gatedRatingRepository struct {
	interfaces.RatingRepository
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (r *gatedRatingRepository) GetStarDistribution(ctx context.Context, userID primitive.ObjectID) (*models.StarDistribution, error) {
	r.once.Do(func() {
		close(r.started)
		<-r.release
	})
	return r.RatingRepository.GetStarDistribution(ctx, userID)
}

func TestStatsReadDoesNotCacheOverConcurrentRating(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	request := env.completedRequest(t, alice, bob)

	log := logger.NewNopLogger()
	ratings := &gatedRatingRepository{
		RatingRepository: env.ratings,
		started:          make(chan struct{}),
		release:          make(chan struct{}),
	}
	aggregator := NewRatingAggregator(ratings, env.users, newMapCache(), NewLocalLocker(), time.Minute, log)
	svc := NewRatingService(ratings, env.requests, env.users, aggregator, NewPassthroughTxRunner(),
		NewNotificationService(env.sink, log), env.activity, 5, log)

	readDone := make(chan error, 1)
	go func() {
		_, err := aggregator.Stats(env.ctx, bob.ID)
		readDone <- err
	}()
	<-ratings.started

	submitDone := make(chan error, 1)
	go func() {
		_, err := svc.SubmitRating(env.ctx, alice.ID, &validators.SubmitRatingInput{
			RequestID: request.ID.Hex(),
			Stars:     5,
		})
		submitDone <- err
	}()

	close(ratings.release)
	require.NoError(t, <-readDone)
	require.NoError(t, <-submitDone)

	user, err := env.users.GetByID(env.ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), user.Rating.TotalRatings)

	stats, err := aggregator.Stats(env.ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Rating.TotalRatings, stats.TotalRatings)
	assert.Equal(t, user.Rating.Average, stats.AverageRating)
	assert.Equal(t, 5.0, stats.AverageRating)
}

func TestStatsServedFromCacheUntilInvalidated(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	cache := newMapCache()
	aggregator := NewRatingAggregator(env.ratings, env.users, cache, NewLocalLocker(), time.Minute, logger.NewNopLogger())

	stats, err := aggregator.Stats(env.ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRatings)

	env.rate(t, env.completedRequest(t, alice, bob), 4)

	stats, err = aggregator.Stats(env.ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRatings, "cached entry survives until invalidated")

	aggregator.Invalidate(env.ctx, bob.ID)

	stats, err = aggregator.Stats(env.ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalRatings)
	assert.Equal(t, 4.0, stats.AverageRating)
}

type writeLog struct {
	mu     sync.Mutex
	events []string
}

func (l *writeLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *writeLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type loggingTxRunner struct {
	log *writeLog
}

func (r loggingTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		r.log.add("abort")
		return err
	}
	r.log.add("commit")
	return nil
}

type evictionLoggingUsers struct {
	interfaces.UserRepository
	log     *writeLog
	evicted []primitive.ObjectID
}

func (r *evictionLoggingUsers) SetRatingAggregate(ctx context.Context, id primitive.ObjectID, aggregate models.RatingAggregate) error {
	r.log.add("set")
	return r.UserRepository.SetRatingAggregate(ctx, id, aggregate)
}

func (r *evictionLoggingUsers) EvictCached(ctx context.Context, ids ...primitive.ObjectID) {
	r.log.add("evict")
	r.evicted = append(r.evicted, ids...)
	r.UserRepository.EvictCached(ctx, ids...)
}

func TestUserCacheEvictedAfterAggregateCommit(t *testing.T) {
	env := newTestEnv(t, CompletionByOwner)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	request := env.completedRequest(t, alice, bob)

	log := logger.NewNopLogger()
	events := &writeLog{}
	users := &evictionLoggingUsers{UserRepository: env.users, log: events}
	aggregator := NewRatingAggregator(env.ratings, users, nil, NewLocalLocker(), 0, log)
	svc := NewRatingService(env.ratings, env.requests, users, aggregator, loggingTxRunner{log: events},
		NewNotificationService(env.sink, log), env.activity, 5, log)

	rating, err := svc.SubmitRating(env.ctx, alice.ID, &validators.SubmitRatingInput{
		RequestID: request.ID.Hex(),
		Stars:     3,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"set", "commit", "evict"}, events.snapshot())
	assert.Equal(t, []primitive.ObjectID{bob.ID}, users.evicted)

	stars := 5
	_, err = svc.UpdateRating(env.ctx, rating.ID, alice.ID, &validators.UpdateRatingInput{Stars: &stars})
	require.NoError(t, err)
	assert.Equal(t, []string{"set", "commit", "evict", "set", "commit", "evict"}, events.snapshot())
}
