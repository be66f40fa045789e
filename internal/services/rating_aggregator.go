package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"
	"neighborhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingAggregator owns the per-user rating rollup. Every write path rebuilds
// the aggregate from the rating store, so the cached copy on the user document
// and the live statistics are computed by the same function.
type RatingAggregator struct {
	ratingRepo interfaces.RatingRepository
	userRepo   interfaces.UserRepository
	cache      CacheService
	locker     UserLocker
	statsTTL   time.Duration
	logger     *logger.Logger
}

func NewRatingAggregator(
	ratingRepo interfaces.RatingRepository,
	userRepo interfaces.UserRepository,
	cache CacheService,
	locker UserLocker,
	statsTTL time.Duration,
	log *logger.Logger,
) *RatingAggregator {
	if statsTTL <= 0 {
		statsTTL = utils.RatingStatsCacheTTL
	}
	return &RatingAggregator{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
		cache:      cache,
		locker:     locker,
		statsTTL:   statsTTL,
		logger:     log,
	}
}

// Serialize runs fn while holding the aggregate lock for userID.
func (a *RatingAggregator) Serialize(ctx context.Context, userID primitive.ObjectID, fn func() error) error {
	unlock, err := a.locker.Lock(ctx, aggregateLockKey(userID))
	if err != nil {
		if errors.Is(err, ErrLockTimeout) {
			return utils.NewConflictError("another rating update for this user is in progress, retry")
		}
		return utils.NewInternalError(fmt.Errorf("failed to lock rating aggregate: %w", err))
	}
	defer unlock()

	return fn()
}

// Recompute rebuilds and stores the aggregate for userID. A rated user
// without a user document is tolerated: the ratings remain authoritative.
func (a *RatingAggregator) Recompute(ctx context.Context, userID primitive.ObjectID) (models.RatingAggregate, error) {
	dist, err := a.ratingRepo.GetStarDistribution(ctx, userID)
	if err != nil {
		return models.RatingAggregate{}, err
	}

	aggregate := models.NewRatingAggregate(dist)

	if err := a.userRepo.SetRatingAggregate(ctx, userID, aggregate); err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return models.RatingAggregate{}, err
		}
		a.logger.WithUserID(userID).Warn("Rated user has no profile, aggregate not stored")
	}

	return aggregate, nil
}

// Stats returns live statistics for userID, served from cache when present.
// A miss is filled while holding the aggregate lock, so a read that started
// before a rating write cannot store its result after that write's Invalidate.
func (a *RatingAggregator) Stats(ctx context.Context, userID primitive.ObjectID) (*models.RatingStats, error) {
	if a.cache == nil {
		return a.liveStats(ctx, userID)
	}

	key := statsCacheKey(userID)
	if stats, ok := a.cachedStats(ctx, key); ok {
		return stats, nil
	}

	unlock, err := a.locker.Lock(ctx, aggregateLockKey(userID))
	if err != nil {
		a.logger.WithUserID(userID).WithError(err).Warn("Rating stats served uncached")
		return a.liveStats(ctx, userID)
	}
	defer unlock()

	if stats, ok := a.cachedStats(ctx, key); ok {
		return stats, nil
	}

	stats, err := a.liveStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := a.cache.Set(ctx, key, stats, a.statsTTL); err != nil {
		a.logger.WithError(err).Warn("Rating stats cache write failed")
	}

	return stats, nil
}

func (a *RatingAggregator) cachedStats(ctx context.Context, key string) (*models.RatingStats, bool) {
	var cached models.RatingStats
	err := a.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, true
	}
	if !errors.Is(err, ErrCacheMiss) {
		a.logger.WithError(err).Warn("Rating stats cache read failed")
	}
	return nil, false
}

func (a *RatingAggregator) liveStats(ctx context.Context, userID primitive.ObjectID) (*models.RatingStats, error) {
	dist, err := a.ratingRepo.GetStarDistribution(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.NewRatingAggregate(dist).Stats(), nil
}

// Invalidate drops cached user documents and statistics for the given users.
// It runs after the aggregate write has committed.
func (a *RatingAggregator) Invalidate(ctx context.Context, userIDs ...primitive.ObjectID) {
	if len(userIDs) == 0 {
		return
	}

	ids := utils.UniqueObjectIDs(userIDs...)
	a.userRepo.EvictCached(ctx, ids...)

	if a.cache == nil {
		return
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, statsCacheKey(id))
	}

	if err := a.cache.Delete(ctx, keys...); err != nil {
		a.logger.WithError(err).Warn("Rating stats cache invalidation failed")
	}
}

func aggregateLockKey(userID primitive.ObjectID) string {
	return utils.CacheLockPrefix + "rating_aggregate:" + userID.Hex()
}

func statsCacheKey(userID primitive.ObjectID) string {
	return utils.CacheRatingStatsPrefix + userID.Hex()
}
