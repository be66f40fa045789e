package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhub/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

// CacheService is the subset of the redis cache the repositories use. A nil
// CacheService disables caching.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// translateError maps driver errors onto the repository sentinels.
func translateError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return interfaces.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return interfaces.ErrDuplicateKey
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
