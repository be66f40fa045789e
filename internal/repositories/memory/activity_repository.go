package memory

import (
	"context"
	"sync"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type activityRepository struct {
	mu         sync.RWMutex
	activities []*models.Activity
}

func NewActivityRepository() interfaces.ActivityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity.ID = primitive.NewObjectID()
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}
	c := *activity
	r.activities = append(r.activities, &c)
	return nil
}

func (r *activityRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Activity, int64, error) {
	r.mu.RLock()
	var items []*models.Activity
	for _, a := range r.activities {
		if a.UserID == userID {
			c := *a
			items = append(items, &c)
		}
	}
	r.mu.RUnlock()

	result, total := page(items, params, func(a *models.Activity, field string) (float64, bool) {
		if field == "timestamp" {
			return unixNano(a.Timestamp), true
		}
		return 0, false
	}, func(a *models.Activity) primitive.ObjectID { return a.ID })
	return result, total, nil
}
