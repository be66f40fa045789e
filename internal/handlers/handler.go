package handlers

import (
	"neighborhub/internal/middleware"
	"neighborhub/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUser writes a 401 and returns false when the auth middleware did not
// set a user.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// objectIDParam parses the named path parameter, writing a validation error
// when it is not a valid id.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
			name: "must be a valid id",
		}))
		return primitive.NilObjectID, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func paginationMeta(params *utils.PaginationParams, total int64) *utils.Meta {
	return &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
	}
}
