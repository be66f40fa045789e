package handlers

import (
	"neighborhub/internal/services"
	"neighborhub/internal/utils"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// GetMyActivities returns the caller's activity log, newest first
func (h *ActivityHandler) GetMyActivities(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	params.Sort = "timestamp"

	activities, total, err := h.activityService.ListForUser(c.Request.Context(), userID, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Activities retrieved successfully", gin.H{"activities": activities}, paginationMeta(params, total))
}
