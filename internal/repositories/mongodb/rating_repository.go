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

type ratingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) interfaces.RatingRepository {
	return &ratingRepository{
		collection: db.Collection("ratings"),
	}
}

// Basic CRUD operations
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	rating.ID = primitive.NewObjectID()
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = rating.CreatedAt
	if rating.HelpfulVoters == nil {
		rating.HelpfulVoters = []primitive.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, rating)
	if err != nil {
		return translateError(err, "create rating")
	}

	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rating)
	if err != nil {
		return nil, translateError(err, "get rating")
	}

	return &rating, nil
}

func (r *ratingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Rating, error) {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rating models.Rating
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&rating)
	if err != nil {
		return nil, translateError(err, "update rating")
	}

	return &rating, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	if result.DeletedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

// Request ratings
func (r *ratingRepository) GetByRequestID(ctx context.Context, requestID primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&rating)
	if err != nil {
		return nil, translateError(err, "get rating by request")
	}

	return &rating, nil
}

func (r *ratingRepository) DeleteByRequestID(ctx context.Context, requestID primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOneAndDelete(ctx, bson.M{"request_id": requestID}).Decode(&rating)
	if err != nil {
		return nil, translateError(err, "delete rating by request")
	}

	return &rating, nil
}

// User ratings
func (r *ratingRepository) GetByRatedUserID(ctx context.Context, ratedUserID primitive.ObjectID, filter interfaces.RatingFilter, params *utils.PaginationParams) ([]*models.Rating, int64, error) {
	query := bson.M{"rated_user_id": ratedUserID}
	if filter.Stars != nil {
		query["stars"] = *filter.Stars
	}
	return r.findRatingsWithFilter(ctx, query, params)
}

func (r *ratingRepository) GetRecentByRatedUserID(ctx context.Context, ratedUserID primitive.ObjectID, limit int) ([]*models.Rating, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"rated_user_id": ratedUserID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find recent ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*models.Rating
	for cursor.Next(ctx) {
		var rating models.Rating
		if err := cursor.Decode(&rating); err != nil {
			return nil, fmt.Errorf("failed to decode rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, cursor.Err()
}

// Rating statistics
func (r *ratingRepository) GetStarDistribution(ctx context.Context, ratedUserID primitive.ObjectID) (*models.StarDistribution, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"rated_user_id": ratedUserID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$stars",
			"count":         bson.M{"$sum": 1},
			"last_rated_at": bson.M{"$max": "$created_at"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get star distribution: %w", err)
	}
	defer cursor.Close(ctx)

	dist := &models.StarDistribution{Counts: make(map[int]int64)}
	for cursor.Next(ctx) {
		var result struct {
			Stars       int       `bson:"_id"`
			Count       int64     `bson:"count"`
			LastRatedAt time.Time `bson:"last_rated_at"`
		}

		if err := cursor.Decode(&result); err != nil {
			return nil, fmt.Errorf("failed to decode star distribution: %w", err)
		}

		dist.Counts[result.Stars] = result.Count
		if dist.LastRatedAt == nil || result.LastRatedAt.After(*dist.LastRatedAt) {
			last := result.LastRatedAt
			dist.LastRatedAt = &last
		}
	}

	return dist, cursor.Err()
}

// Helpful votes
func (r *ratingRepository) AddHelpfulVote(ctx context.Context, id, voterID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"_id":            id,
		"rater_id":       bson.M{"$ne": voterID},
		"helpful_voters": bson.M{"$ne": voterID},
	}
	update := bson.M{
		"$inc":      bson.M{"helpful_count": 1},
		"$addToSet": bson.M{"helpful_voters": voterID},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rating models.Rating
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rating)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, interfaces.ErrConditionFailed
		}
		return 0, fmt.Errorf("failed to add helpful vote: %w", err)
	}

	return rating.HelpfulCount, nil
}

// Helper methods
func (r *ratingRepository) findRatingsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Rating, int64, error) {
	// Add search filter if provided
	if params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"review"})
		if len(searchFilter) > 0 {
			filter = bson.M{
				"$and": []bson.M{filter, searchFilter},
			}
		}
	}

	// Get total count
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	// Get paginated results
	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []*models.Rating
	for cursor.Next(ctx) {
		var rating models.Rating
		if err := cursor.Decode(&rating); err != nil {
			return nil, 0, fmt.Errorf("failed to decode rating: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return ratings, total, nil
}
