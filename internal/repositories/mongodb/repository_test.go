package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"
	"neighborhub/pkg/database"
	"neighborhub/pkg/logger"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RepositoryTestSuite runs against a real MongoDB when
// NEIGHBORHUB_TEST_MONGO_URI is set.
type RepositoryTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database

	users    interfaces.UserRepository
	requests interfaces.RequestRepository
	ratings  interfaces.RatingRepository
}

func TestRepositorySuite(t *testing.T) {
	uri := os.Getenv("NEIGHBORHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("NEIGHBORHUB_TEST_MONGO_URI not set")
	}
	suite.Run(t, &RepositoryTestSuite{connURI: uri, testDBName: "neighborhub_test"})
}

func (s *RepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.connURI))
	s.Require().NoError(err)
	s.mongoClient = client
	s.testDatabase = client.Database(s.testDBName)

	// make sure the suite starts from a clean database
	s.Require().NoError(s.testDatabase.Drop(ctx))

	enums := database.SchemaEnums{
		Categories: models.CategoryValues(),
		Urgencies:  models.UrgencyValues(),
		Statuses:   models.StatusValues(),
		MinStars:   models.MinStars,
		MaxStars:   models.MaxStars,
	}
	s.Require().NoError(database.NewMigrator(s.testDatabase, logger.NewNopLogger(), enums).Up(ctx))

	s.users = NewUserRepository(s.testDatabase, nil)
	s.requests = NewRequestRepository(s.testDatabase)
	s.ratings = NewRatingRepository(s.testDatabase)
}

func (s *RepositoryTestSuite) TearDownSuite() {
	ctx := context.Background()
	_ = s.testDatabase.Drop(ctx)
	_ = s.mongoClient.Disconnect(ctx)
}

func (s *RepositoryTestSuite) newUser(name string) *models.User {
	user := &models.User{Name: name, Email: primitive.NewObjectID().Hex() + "@example.com", Role: models.RoleResident}
	s.Require().NoError(s.users.Create(context.Background(), user))
	return user
}

func (s *RepositoryTestSuite) newRequest(owner primitive.ObjectID) *models.Request {
	request := &models.Request{
		RequesterID:   owner,
		Category:      models.CategoryPlumbing,
		Description:   "Leak",
		Urgency:       models.UrgencyHigh,
		PreferredTime: "14:00",
		Status:        models.RequestStatusPending,
	}
	s.Require().NoError(s.requests.Create(context.Background(), request))
	return request
}

func (s *RepositoryTestSuite) TestAssignHelperIsConditional() {
	ctx := context.Background()
	owner := s.newUser("owner")
	helper := s.newUser("helper")
	request := s.newRequest(owner.ID)

	_, err := s.requests.AssignHelper(ctx, request.ID, owner.ID)
	s.ErrorIs(err, interfaces.ErrConditionFailed)

	assigned, err := s.requests.AssignHelper(ctx, request.ID, helper.ID)
	s.Require().NoError(err)
	s.Equal(models.RequestStatusInProgress, assigned.Status)
	s.True(assigned.IsHelpedBy(helper.ID))

	_, err = s.requests.AssignHelper(ctx, request.ID, s.newUser("late").ID)
	s.ErrorIs(err, interfaces.ErrConditionFailed)
}

func (s *RepositoryTestSuite) TestRatingUniquePerRequest() {
	ctx := context.Background()
	owner := s.newUser("owner")
	helper := s.newUser("helper")
	request := s.newRequest(owner.ID)

	first := &models.Rating{RequestID: request.ID, RaterID: owner.ID, RatedUserID: helper.ID, Category: models.CategoryPlumbing, Stars: 4}
	s.Require().NoError(s.ratings.Create(ctx, first))

	second := &models.Rating{RequestID: request.ID, RaterID: owner.ID, RatedUserID: helper.ID, Category: models.CategoryPlumbing, Stars: 2}
	s.ErrorIs(s.ratings.Create(ctx, second), interfaces.ErrDuplicateKey)

	dist, err := s.ratings.GetStarDistribution(ctx, helper.ID)
	s.Require().NoError(err)
	s.EqualValues(1, dist.Counts[4])

	agg := models.NewRatingAggregate(dist)
	s.Require().NoError(s.users.SetRatingAggregate(ctx, helper.ID, agg))

	stored, err := s.users.GetByID(ctx, helper.ID)
	s.Require().NoError(err)
	s.Equal(4.0, stored.Rating.Average)
	s.EqualValues(1, stored.Rating.Breakdown["4"])
}

func (s *RepositoryTestSuite) TestHelpfulVotesOncePerUser() {
	ctx := context.Background()
	owner := s.newUser("owner")
	helper := s.newUser("helper")
	voter := s.newUser("voter")
	request := s.newRequest(owner.ID)

	rating := &models.Rating{RequestID: request.ID, RaterID: owner.ID, RatedUserID: helper.ID, Category: models.CategoryPlumbing, Stars: 5}
	s.Require().NoError(s.ratings.Create(ctx, rating))

	count, err := s.ratings.AddHelpfulVote(ctx, rating.ID, voter.ID)
	s.Require().NoError(err)
	s.EqualValues(1, count)

	_, err = s.ratings.AddHelpfulVote(ctx, rating.ID, voter.ID)
	s.ErrorIs(err, interfaces.ErrConditionFailed)

	_, err = s.ratings.AddHelpfulVote(ctx, rating.ID, owner.ID)
	s.ErrorIs(err, interfaces.ErrConditionFailed)
}

func (s *RepositoryTestSuite) TestSnapshotRequiresCompletedRequest() {
	ctx := context.Background()
	owner := s.newUser("owner")
	helper := s.newUser("helper")
	request := s.newRequest(owner.ID)

	snapshot := &models.RatingSnapshot{RatingID: primitive.NewObjectID(), Stars: 5, RatedBy: owner.ID, RatedAt: time.Now()}
	s.ErrorIs(s.requests.SetRatingSnapshot(ctx, request.ID, snapshot), interfaces.ErrConditionFailed)

	_, err := s.requests.AssignHelper(ctx, request.ID, helper.ID)
	s.Require().NoError(err)
	_, err = s.requests.MarkCompleted(ctx, request.ID, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(s.requests.SetRatingSnapshot(ctx, request.ID, snapshot))

	stored, err := s.requests.GetByID(ctx, request.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.RatingSnapshot)
	s.Equal(5, stored.RatingSnapshot.Stars)

	mine, total, err := s.requests.GetByRequesterID(ctx, owner.ID, utils.NewPaginationParams(10))
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Len(mine, 1)
}
