package handlers

import (
	"neighborhub/internal/services"
	"neighborhub/internal/utils"
	"neighborhub/internal/validators"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService services.RequestService
}

func NewRequestHandler(requestService services.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

// CreateRequest posts a new help request for the caller
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input validators.CreateRequestInput
	if !bindJSON(c, &input) {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), userID, &input)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.CreatedResponse(c, "Request created successfully", gin.H{"request": request})
}

// ListAllRequests returns every request annotated with participant names
func (h *RequestHandler) ListAllRequests(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	requests, total, err := h.requestService.ListAll(c.Request.Context(), params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Requests retrieved successfully", gin.H{"requests": requests}, paginationMeta(params, total))
}

// ListMyRequests returns the caller's own requests
func (h *RequestHandler) ListMyRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	requests, total, err := h.requestService.ListMine(c.Request.Context(), userID, params)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Requests retrieved successfully", gin.H{"requests": requests}, paginationMeta(params, total))
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	request, err := h.requestService.GetRequest(c.Request.Context(), requestID, userID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Request retrieved successfully", gin.H{"request": request})
}

// UpdateRequest handles status transitions and owner edits
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	requestID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var input validators.UpdateRequestInput
	if !bindJSON(c, &input) {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.requestService.ApplyUpdate(c.Request.Context(), requestID, userID, &input)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Request updated successfully", result)
}

func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	requestID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.requestService.DeleteRequest(c.Request.Context(), requestID, userID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Request deleted successfully", nil)
}
