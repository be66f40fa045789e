package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var openStatuses = []models.RequestStatus{models.RequestStatusPending, models.RequestStatusInProgress}

type requestRepository struct {
	collection *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) interfaces.RequestRepository {
	return &requestRepository{
		collection: db.Collection("requests"),
	}
}

// Basic CRUD operations
func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return translateError(err, "create request")
	}

	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	var request models.Request
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, translateError(err, "get request")
	}

	return &request, nil
}

func (r *requestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}

	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

// Listing
func (r *requestRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Request, int64, error) {
	return r.findRequestsWithFilter(ctx, bson.M{}, params)
}

func (r *requestRepository) GetByRequesterID(ctx context.Context, requesterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Request, int64, error) {
	return r.findRequestsWithFilter(ctx, bson.M{"requester_id": requesterID}, params)
}

// Lifecycle transitions
func (r *requestRepository) AssignHelper(ctx context.Context, id, helperID primitive.ObjectID) (*models.Request, error) {
	filter := bson.M{
		"_id":          id,
		"status":       models.RequestStatusPending,
		"completed_by": nil,
		"requester_id": bson.M{"$ne": helperID},
	}
	update := bson.M{"$set": bson.M{
		"completed_by": helperID,
		"status":       models.RequestStatusInProgress,
		"updated_at":   time.Now(),
	}}

	return r.transition(ctx, filter, update, "assign helper")
}

func (r *requestRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.Request, error) {
	filter := bson.M{
		"_id":          id,
		"status":       models.RequestStatusInProgress,
		"completed_by": bson.M{"$ne": nil},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.RequestStatusCompleted,
		"completed_at": at,
		"updated_at":   at,
	}}

	return r.transition(ctx, filter, update, "complete request")
}

func (r *requestRepository) Cancel(ctx context.Context, id, requesterID primitive.ObjectID, at time.Time) (*models.Request, error) {
	filter := bson.M{
		"_id":          id,
		"requester_id": requesterID,
		"status":       bson.M{"$in": openStatuses},
	}
	update := bson.M{"$set": bson.M{
		"status":       models.RequestStatusCancelled,
		"completed_by": nil,
		"cancelled_at": at,
		"updated_at":   at,
	}}

	return r.transition(ctx, filter, update, "cancel request")
}

func (r *requestRepository) UpdateDetails(ctx context.Context, id, requesterID primitive.ObjectID, updates map[string]interface{}) (*models.Request, error) {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}

	filter := bson.M{
		"_id":          id,
		"requester_id": requesterID,
		"status":       bson.M{"$in": openStatuses},
	}

	return r.transition(ctx, filter, bson.M{"$set": set}, "update request")
}

func (r *requestRepository) SetRatingSnapshot(ctx context.Context, id primitive.ObjectID, snapshot *models.RatingSnapshot) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$unset": bson.M{"rating_snapshot": ""}}
	if snapshot != nil {
		filter["status"] = models.RequestStatusCompleted
		filter["completed_by"] = bson.M{"$ne": nil}
		update = bson.M{"$set": bson.M{"rating_snapshot": snapshot}}
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update rating snapshot: %w", err)
	}

	if result.MatchedCount == 0 {
		if snapshot != nil {
			return interfaces.ErrConditionFailed
		}
		return interfaces.ErrNotFound
	}

	return nil
}

// transition applies a conditional update and returns the updated document.
func (r *requestRepository) transition(ctx context.Context, filter, update bson.M, op string) (*models.Request, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var request models.Request
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, interfaces.ErrConditionFailed
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	return &request, nil
}

func (r *requestRepository) findRequestsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Request, int64, error) {
	// Add search filter if provided
	if params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"description", "address_note"})
		if len(searchFilter) > 0 {
			filter = bson.M{
				"$and": []bson.M{filter, searchFilter},
			}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.Request
	for cursor.Next(ctx) {
		var request models.Request
		if err := cursor.Decode(&request); err != nil {
			return nil, 0, fmt.Errorf("failed to decode request: %w", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, cursor.Err()
}
