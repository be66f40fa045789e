package mongodb

import (
	"context"
	"testing"

	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestListRatingsReportsCursorFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get more fails", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".ratings"
		ratedUserID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(2)}}),
			mtest.CreateCursorResponse(42, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "rated_user_id", Value: ratedUserID},
				{Key: "stars", Value: 5},
			}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    11601,
				Name:    "Interrupted",
				Message: "operation was interrupted",
			}),
			mtest.CreateSuccessResponse(),
		)

		repo := NewRatingRepository(mt.DB)
		ratings, total, err := repo.GetByRatedUserID(context.Background(), ratedUserID, interfaces.RatingFilter{}, utils.NewPaginationParams(20))

		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to iterate ratings")
		assert.Nil(mt, ratings)
		assert.Zero(mt, total)
	})
}
