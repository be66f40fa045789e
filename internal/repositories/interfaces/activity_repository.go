package interfaces

import (
	"context"

	"neighborhub/internal/models"
	"neighborhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Activity, int64, error)
}
