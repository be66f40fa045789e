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

type requestRepository struct {
	mu       sync.RWMutex
	requests map[primitive.ObjectID]*models.Request
}

func NewRequestRepository() interfaces.RequestRepository {
	return &requestRepository{requests: make(map[primitive.ObjectID]*models.Request)}
}

func (r *requestRepository) Create(ctx context.Context, request *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	r.requests[request.ID] = cloneRequest(request)
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return cloneRequest(request), nil
}

func (r *requestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *requestRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Request, int64, error) {
	return r.find(func(*models.Request) bool { return true }, params)
}

func (r *requestRepository) GetByRequesterID(ctx context.Context, requesterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Request, int64, error) {
	return r.find(func(req *models.Request) bool { return req.RequesterID == requesterID }, params)
}

func (r *requestRepository) AssignHelper(ctx context.Context, id, helperID primitive.ObjectID) (*models.Request, error) {
	return r.transition(id, func(req *models.Request) bool {
		if req.Status != models.RequestStatusPending || req.CompletedBy != nil || req.RequesterID == helperID {
			return false
		}
		req.CompletedBy = &helperID
		req.Status = models.RequestStatusInProgress
		req.UpdatedAt = time.Now()
		return true
	})
}

func (r *requestRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) (*models.Request, error) {
	return r.transition(id, func(req *models.Request) bool {
		if req.Status != models.RequestStatusInProgress || req.CompletedBy == nil {
			return false
		}
		req.Status = models.RequestStatusCompleted
		req.CompletedAt = &at
		req.UpdatedAt = at
		return true
	})
}

func (r *requestRepository) Cancel(ctx context.Context, id, requesterID primitive.ObjectID, at time.Time) (*models.Request, error) {
	return r.transition(id, func(req *models.Request) bool {
		if req.RequesterID != requesterID || req.Status.IsTerminal() {
			return false
		}
		req.Status = models.RequestStatusCancelled
		req.CompletedBy = nil
		req.CancelledAt = &at
		req.UpdatedAt = at
		return true
	})
}

func (r *requestRepository) UpdateDetails(ctx context.Context, id, requesterID primitive.ObjectID, updates map[string]interface{}) (*models.Request, error) {
	return r.transition(id, func(req *models.Request) bool {
		if req.RequesterID != requesterID || req.Status.IsTerminal() {
			return false
		}
		for field, value := range updates {
			switch field {
			case "category":
				req.Category = value.(models.ServiceCategory)
			case "description":
				req.Description = value.(string)
			case "urgency":
				req.Urgency = value.(models.Urgency)
			case "preferred_time":
				req.PreferredTime = value.(string)
			case "address_note":
				req.AddressNote = value.(string)
			}
		}
		req.UpdatedAt = time.Now()
		return true
	})
}

func (r *requestRepository) SetRatingSnapshot(ctx context.Context, id primitive.ObjectID, snapshot *models.RatingSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		if snapshot != nil {
			return interfaces.ErrConditionFailed
		}
		return interfaces.ErrNotFound
	}

	if snapshot == nil {
		req.RatingSnapshot = nil
		return nil
	}
	if req.Status != models.RequestStatusCompleted || req.CompletedBy == nil {
		return interfaces.ErrConditionFailed
	}
	s := *snapshot
	req.RatingSnapshot = &s
	return nil
}

// transition applies apply under the write lock; apply reports whether the
// stored document matched the expected state.
func (r *requestRepository) transition(id primitive.ObjectID, apply func(*models.Request) bool) (*models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, interfaces.ErrConditionFailed
	}

	working := cloneRequest(req)
	if !apply(working) {
		return nil, interfaces.ErrConditionFailed
	}
	r.requests[id] = working
	return cloneRequest(working), nil
}

func (r *requestRepository) find(match func(*models.Request) bool, params *utils.PaginationParams) ([]*models.Request, int64, error) {
	r.mu.RLock()
	var items []*models.Request
	for _, req := range r.requests {
		if match(req) && matchesSearch(params.Search, req.Description, req.AddressNote) {
			items = append(items, cloneRequest(req))
		}
	}
	r.mu.RUnlock()

	result, total := page(items, params, requestSortKey, func(req *models.Request) primitive.ObjectID { return req.ID })
	return result, total, nil
}

func requestSortKey(req *models.Request, field string) (float64, bool) {
	switch field {
	case "created_at":
		return unixNano(req.CreatedAt), true
	case "updated_at":
		return unixNano(req.UpdatedAt), true
	}
	return 0, false
}

func cloneRequest(req *models.Request) *models.Request {
	c := *req
	c.TargetHelperID = copyID(req.TargetHelperID)
	c.CompletedBy = copyID(req.CompletedBy)
	c.CompletedAt = copyTime(req.CompletedAt)
	c.CancelledAt = copyTime(req.CancelledAt)
	if req.RatingSnapshot != nil {
		s := *req.RatingSnapshot
		c.RatingSnapshot = &s
	}
	return &c
}
