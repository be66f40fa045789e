package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() interfaces.UserRepository {
	return &userRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, exists := r.users[user.ID]; exists {
		return interfaces.ErrDuplicateKey
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return interfaces.ErrDuplicateKey
		}
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Rating.Breakdown == nil {
		user.Rating = models.NewRatingAggregate(nil)
	}

	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[primitive.ObjectID]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result[id] = cloneUser(u)
		}
	}
	return result, nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) SetRatingAggregate(ctx context.Context, id primitive.ObjectID, aggregate models.RatingAggregate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.Rating = cloneAggregate(aggregate)
	user.UpdatedAt = time.Now()
	return nil
}

// EvictCached is a no-op: the memory store has no read cache.
func (r *userRepository) EvictCached(ctx context.Context, ids ...primitive.ObjectID) {}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Rating = cloneAggregate(u.Rating)
	return &c
}

func cloneAggregate(a models.RatingAggregate) models.RatingAggregate {
	c := a
	if a.Breakdown != nil {
		c.Breakdown = make(map[string]int64, len(a.Breakdown))
		for k, v := range a.Breakdown {
			c.Breakdown[k] = v
		}
	}
	c.LastRatedAt = copyTime(a.LastRatedAt)
	return c
}
