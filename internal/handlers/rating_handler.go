package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"neighborhub/internal/services"
	"neighborhub/internal/utils"
	"neighborhub/internal/validators"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// SubmitRating rates the helper of a completed request
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	var input validators.SubmitRatingInput
	if !bindJSON(c, &input) {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rating, err := h.ratingService.SubmitRating(c.Request.Context(), userID, &input)
	if err != nil {
		if isRatingPreconditionError(err) {
			utils.HandleErrorWithStatus(c, err, http.StatusBadRequest)
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, "Rating submitted successfully", gin.H{"rating": rating})
}

func (h *RatingHandler) UpdateRating(c *gin.Context) {
	ratingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var input validators.UpdateRatingInput
	if !bindJSON(c, &input) {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rating, err := h.ratingService.UpdateRating(c.Request.Context(), ratingID, userID, &input)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating updated successfully", gin.H{"rating": rating})
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	ratingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), ratingID, userID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating deleted successfully", nil)
}

func (h *RatingHandler) MarkHelpful(c *gin.Context) {
	ratingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := h.ratingService.MarkHelpful(c.Request.Context(), ratingID, userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating marked as helpful", gin.H{"helpful_count": count})
}

// ListUserRatings pages through the ratings a user received. The optional
// stars query parameter filters to one star value.
func (h *RatingHandler) ListUserRatings(c *gin.Context) {
	userID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	var stars *int
	if raw := c.Query("stars"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			utils.HandleError(c, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
				"stars": "must be a number",
			}))
			return
		}
		stars = &value
	}

	params := utils.GetPaginationParams(c)
	ratings, page, err := h.ratingService.ListUserRatings(c.Request.Context(), userID, stars, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ratings retrieved successfully", gin.H{
		"ratings":    ratings,
		"pagination": page,
	})
}

// GetUserRatingStats returns live statistics plus the newest ratings
func (h *RatingHandler) GetUserRatingStats(c *gin.Context) {
	userID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	summary, err := h.ratingService.GetUserRatingSummary(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating statistics retrieved successfully", summary)
}

func (h *RatingHandler) GetRequestRating(c *gin.Context) {
	requestID, ok := objectIDParam(c, "requestId")
	if !ok {
		return
	}

	rating, err := h.ratingService.GetRequestRating(c.Request.Context(), requestID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating retrieved successfully", gin.H{"rating": rating})
}

// ReconcileUserAggregate rebuilds a user's cached aggregate from their ratings
func (h *RatingHandler) ReconcileUserAggregate(c *gin.Context) {
	userID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}

	aggregate, err := h.ratingService.ReconcileUserAggregate(c.Request.Context(), userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating aggregate reconciled", gin.H{"rating": aggregate})
}

// isRatingPreconditionError reports whether err rejects a submission because
// of the request's state: not completed yet, or already rated. A lock timeout
// is also a conflict but stays retryable.
func isRatingPreconditionError(err error) bool {
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Kind {
	case utils.KindInvalidState:
		return true
	case utils.KindConflict:
		return appErr.Message == utils.ErrAlreadyRated
	}
	return false
}
