package interfaces

import (
	"context"

	"neighborhub/internal/models"
	"neighborhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingFilter struct {
	Stars *int
}

type RatingRepository interface {
	// Basic CRUD operations. Create returns ErrDuplicateKey when the request
	// already has a rating.
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Rating, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Request ratings
	GetByRequestID(ctx context.Context, requestID primitive.ObjectID) (*models.Rating, error)
	DeleteByRequestID(ctx context.Context, requestID primitive.ObjectID) (*models.Rating, error)

	// User ratings
	GetByRatedUserID(ctx context.Context, ratedUserID primitive.ObjectID, filter RatingFilter, params *utils.PaginationParams) ([]*models.Rating, int64, error)
	GetRecentByRatedUserID(ctx context.Context, ratedUserID primitive.ObjectID, limit int) ([]*models.Rating, error)

	// Rating statistics
	GetStarDistribution(ctx context.Context, ratedUserID primitive.ObjectID) (*models.StarDistribution, error)

	// Helpful votes; ErrConditionFailed when voterID already voted
	AddHelpfulVote(ctx context.Context, id, voterID primitive.ObjectID) (int64, error)
}
