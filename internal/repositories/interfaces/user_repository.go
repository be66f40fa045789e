package interfaces

import (
	"context"

	"neighborhub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Batch lookup for name annotation; missing ids are absent from the map
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	List(ctx context.Context) ([]*models.User, error)

	// Rating aggregate cache
	SetRatingAggregate(ctx context.Context, id primitive.ObjectID, aggregate models.RatingAggregate) error
	// EvictCached drops cached user documents. Call it after the aggregate
	// write has committed.
	EvictCached(ctx context.Context, ids ...primitive.ObjectID)
}
