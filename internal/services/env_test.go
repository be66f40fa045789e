package services

import (
	"context"
	"sync"
	"testing"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/repositories/memory"
	"neighborhub/internal/validators"
	"neighborhub/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingSink struct {
	mu     sync.Mutex
	events []*models.NotificationEvent
	err    error
}

func (s *recordingSink) Emit(ctx context.Context, event *models.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) Kinds() []models.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]models.EventKind, len(s.events))
	for i, e := range s.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (s *recordingSink) Last() *models.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil
	}
	return s.events[len(s.events)-1]
}

type testEnv struct {
	ctx        context.Context
	users      interfaces.UserRepository
	requests   interfaces.RequestRepository
	ratings    interfaces.RatingRepository
	activities interfaces.ActivityRepository
	sink       *recordingSink
	aggregator *RatingAggregator
	activity   ActivityService
	requestSvc RequestService
	ratingSvc  RatingService
}

func newTestEnv(t *testing.T, policy CompletionPolicy) *testEnv {
	t.Helper()

	log := logger.NewNopLogger()
	env := &testEnv{
		ctx:        context.Background(),
		users:      memory.NewUserRepository(),
		requests:   memory.NewRequestRepository(),
		ratings:    memory.NewRatingRepository(),
		activities: memory.NewActivityRepository(),
		sink:       &recordingSink{},
	}

	env.aggregator = NewRatingAggregator(env.ratings, env.users, nil, NewLocalLocker(), 0, log)
	env.activity = NewActivityService(env.activities, log)
	notifications := NewNotificationService(env.sink, log)
	tx := NewPassthroughTxRunner()

	env.requestSvc = NewRequestService(env.requests, env.ratings, env.users, env.aggregator, tx, notifications, env.activity, policy, log)
	env.ratingSvc = NewRatingService(env.ratings, env.requests, env.users, env.aggregator, tx, notifications, env.activity, 5, log)

	return env
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  models.RoleResident,
	}
	require.NoError(t, e.users.Create(e.ctx, user))
	return user
}

func (e *testEnv) createRequest(t *testing.T, requester *models.User) *models.Request {
	t.Helper()
	request, err := e.requestSvc.CreateRequest(e.ctx, requester.ID, &validators.CreateRequestInput{
		Category:      "plumbing",
		Description:   "Leak",
		Urgency:       "high",
		PreferredTime: "14:00",
	})
	require.NoError(t, err)
	return request
}

func (e *testEnv) inProgressRequest(t *testing.T, requester, helper *models.User) *models.Request {
	t.Helper()
	request := e.createRequest(t, requester)
	request, err := e.requestSvc.OfferHelp(e.ctx, request.ID, helper.ID)
	require.NoError(t, err)
	return request
}

func (e *testEnv) completedRequest(t *testing.T, requester, helper *models.User) *models.Request {
	t.Helper()
	request := e.inProgressRequest(t, requester, helper)
	result, err := e.requestSvc.MarkCompleted(e.ctx, request.ID, requester.ID)
	require.NoError(t, err)
	return result.Request
}

func (e *testEnv) rate(t *testing.T, request *models.Request, stars int) *models.Rating {
	t.Helper()
	rating, err := e.ratingSvc.SubmitRating(e.ctx, request.RequesterID, &validators.SubmitRatingInput{
		RequestID: request.ID.Hex(),
		Stars:     stars,
	})
	require.NoError(t, err)
	return rating
}

func (e *testEnv) requireAggregateConsistent(t *testing.T, userID primitive.ObjectID) {
	t.Helper()

	user, err := e.users.GetByID(e.ctx, userID)
	require.NoError(t, err)

	stats, err := e.ratingSvc.GetUserRatingStats(e.ctx, userID)
	require.NoError(t, err)

	var sum int64
	for _, n := range user.Rating.Breakdown {
		sum += n
	}
	require.Equal(t, user.Rating.TotalRatings, sum, "breakdown must sum to total")
	require.Equal(t, stats.TotalRatings, user.Rating.TotalRatings)
	require.Equal(t, stats.AverageRating, user.Rating.Average)
	require.Equal(t, stats.RatingBreakdown, user.Rating.Breakdown)
}
