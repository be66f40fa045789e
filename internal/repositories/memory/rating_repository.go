package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ratingRepository struct {
	mu        sync.RWMutex
	ratings   map[primitive.ObjectID]*models.Rating
	byRequest map[primitive.ObjectID]primitive.ObjectID
}

func NewRatingRepository() interfaces.RatingRepository {
	return &ratingRepository{
		ratings:   make(map[primitive.ObjectID]*models.Rating),
		byRequest: make(map[primitive.ObjectID]primitive.ObjectID),
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byRequest[rating.RequestID]; exists {
		return interfaces.ErrDuplicateKey
	}

	rating.ID = primitive.NewObjectID()
	rating.CreatedAt = time.Now()
	rating.UpdatedAt = rating.CreatedAt
	if rating.HelpfulVoters == nil {
		rating.HelpfulVoters = []primitive.ObjectID{}
	}

	r.ratings[rating.ID] = cloneRating(rating)
	r.byRequest[rating.RequestID] = rating.ID
	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rating, ok := r.ratings[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return cloneRating(rating), nil
}

func (r *ratingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.ratings[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}

	rating := cloneRating(stored)
	for field, value := range updates {
		switch field {
		case "stars":
			rating.Stars = value.(int)
		case "review":
			rating.Review = value.(string)
		case "category":
			rating.Category = value.(models.ServiceCategory)
		case "quality_of_work":
			rating.QualityOfWork = utils.IntPtr(value.(int))
		case "communication":
			rating.Communication = utils.IntPtr(value.(int))
		case "professionalism":
			rating.Professionalism = utils.IntPtr(value.(int))
		case "is_anonymous":
			rating.IsAnonymous = value.(bool)
		}
	}
	rating.UpdatedAt = time.Now()

	r.ratings[id] = rating
	return cloneRating(rating), nil
}

func (r *ratingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	delete(r.byRequest, rating.RequestID)
	delete(r.ratings, id)
	return nil
}

func (r *ratingRepository) GetByRequestID(ctx context.Context, requestID primitive.ObjectID) (*models.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byRequest[requestID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return cloneRating(r.ratings[id]), nil
}

func (r *ratingRepository) DeleteByRequestID(ctx context.Context, requestID primitive.ObjectID) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byRequest[requestID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	rating := r.ratings[id]
	delete(r.byRequest, requestID)
	delete(r.ratings, id)
	return rating, nil
}

func (r *ratingRepository) GetByRatedUserID(ctx context.Context, ratedUserID primitive.ObjectID, filter interfaces.RatingFilter, params *utils.PaginationParams) ([]*models.Rating, int64, error) {
	r.mu.RLock()
	var items []*models.Rating
	for _, rating := range r.ratings {
		if rating.RatedUserID != ratedUserID {
			continue
		}
		if filter.Stars != nil && rating.Stars != *filter.Stars {
			continue
		}
		if !matchesSearch(params.Search, rating.Review) {
			continue
		}
		items = append(items, cloneRating(rating))
	}
	r.mu.RUnlock()

	result, total := page(items, params, ratingSortKey, func(rating *models.Rating) primitive.ObjectID { return rating.ID })
	return result, total, nil
}

func (r *ratingRepository) GetRecentByRatedUserID(ctx context.Context, ratedUserID primitive.ObjectID, limit int) ([]*models.Rating, error) {
	r.mu.RLock()
	var items []*models.Rating
	for _, rating := range r.ratings {
		if rating.RatedUserID == ratedUserID {
			items = append(items, cloneRating(rating))
		}
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.Hex() > items[j].ID.Hex()
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *ratingRepository) GetStarDistribution(ctx context.Context, ratedUserID primitive.ObjectID) (*models.StarDistribution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dist := &models.StarDistribution{Counts: make(map[int]int64)}
	for _, rating := range r.ratings {
		if rating.RatedUserID != ratedUserID {
			continue
		}
		dist.Counts[rating.Stars]++
		if dist.LastRatedAt == nil || rating.CreatedAt.After(*dist.LastRatedAt) {
			last := rating.CreatedAt
			dist.LastRatedAt = &last
		}
	}
	return dist, nil
}

func (r *ratingRepository) AddHelpfulVote(ctx context.Context, id, voterID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok || rating.RaterID == voterID {
		return 0, interfaces.ErrConditionFailed
	}
	for _, v := range rating.HelpfulVoters {
		if v == voterID {
			return 0, interfaces.ErrConditionFailed
		}
	}

	rating.HelpfulVoters = append(rating.HelpfulVoters, voterID)
	rating.HelpfulCount++
	return rating.HelpfulCount, nil
}

func ratingSortKey(rating *models.Rating, field string) (float64, bool) {
	switch field {
	case "created_at":
		return unixNano(rating.CreatedAt), true
	case "stars":
		return float64(rating.Stars), true
	case "helpful_count":
		return float64(rating.HelpfulCount), true
	}
	return 0, false
}

func cloneRating(rating *models.Rating) *models.Rating {
	c := *rating
	c.QualityOfWork = copyInt(rating.QualityOfWork)
	c.Communication = copyInt(rating.Communication)
	c.Professionalism = copyInt(rating.Professionalism)
	c.ResponseTime = nil
	if rating.ResponseTime != nil {
		rt := *rating.ResponseTime
		c.ResponseTime = &rt
	}
	c.HelpfulVoters = append([]primitive.ObjectID(nil), rating.HelpfulVoters...)
	return &c
}
