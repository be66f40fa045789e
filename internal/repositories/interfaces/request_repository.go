package interfaces

import (
	"context"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Request, int64, error)
	GetByRequesterID(ctx context.Context, requesterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Request, int64, error)

	// Lifecycle transitions. Each is a single conditional write and returns
	// ErrConditionFailed when the document is not in the expected state.
	AssignHelper(ctx context.Context, id, helperID primitive.ObjectID) (*models.Request, error)
	MarkCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.Request, error)
	Cancel(ctx context.Context, id, requesterID primitive.ObjectID, at time.Time) (*models.Request, error)
	UpdateDetails(ctx context.Context, id, requesterID primitive.ObjectID, updates map[string]interface{}) (*models.Request, error)

	// Rating snapshot; nil clears it
	SetRatingSnapshot(ctx context.Context, id primitive.ObjectID, snapshot *models.RatingSnapshot) error
}
