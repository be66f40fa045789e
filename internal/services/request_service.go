package services

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks neighborhub/internal/services RequestService,RatingService,ActivityService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"
	"neighborhub/internal/validators"
	"neighborhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompletionPolicy decides who may mark an in-progress request completed.
type CompletionPolicy string

const (
	CompletionByOwner         CompletionPolicy = "owner"
	CompletionByOwnerOrHelper CompletionPolicy = "owner_or_helper"
	CompletionByAnyUser       CompletionPolicy = "any_authenticated"
)

func ParseCompletionPolicy(s string) (CompletionPolicy, error) {
	switch p := CompletionPolicy(s); p {
	case CompletionByOwner, CompletionByOwnerOrHelper, CompletionByAnyUser:
		return p, nil
	case "":
		return CompletionByOwner, nil
	default:
		return "", fmt.Errorf("unknown completion policy %q", s)
	}
}

func (p CompletionPolicy) Allows(request *models.Request, userID primitive.ObjectID) bool {
	switch p {
	case CompletionByAnyUser:
		return true
	case CompletionByOwnerOrHelper:
		return request.IsOwnedBy(userID) || request.IsHelpedBy(userID)
	default:
		return request.IsOwnedBy(userID)
	}
}

type RequestService interface {
	CreateRequest(ctx context.Context, requesterID primitive.ObjectID, input *validators.CreateRequestInput) (*models.Request, error)
	OfferHelp(ctx context.Context, requestID, helperID primitive.ObjectID) (*models.Request, error)
	MarkCompleted(ctx context.Context, requestID, userID primitive.ObjectID) (*models.RequestUpdateResult, error)
	CancelRequest(ctx context.Context, requestID, requesterID primitive.ObjectID) (*models.Request, error)
	UpdateRequestDetails(ctx context.Context, requestID, requesterID primitive.ObjectID, input *validators.UpdateRequestInput) (*models.Request, error)
	ApplyUpdate(ctx context.Context, requestID, userID primitive.ObjectID, input *validators.UpdateRequestInput) (*models.RequestUpdateResult, error)
	DeleteRequest(ctx context.Context, requestID, requesterID primitive.ObjectID) error

	ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.RequestView, int64, error)
	ListMine(ctx context.Context, requesterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Request, int64, error)
	GetRequest(ctx context.Context, requestID, userID primitive.ObjectID) (*models.RequestView, error)
}

type requestService struct {
	requestRepo   interfaces.RequestRepository
	ratingRepo    interfaces.RatingRepository
	userRepo      interfaces.UserRepository
	aggregator    *RatingAggregator
	tx            TxRunner
	notifications NotificationService
	activity      ActivityService
	policy        CompletionPolicy
	logger        *logger.Logger
}

func NewRequestService(
	requestRepo interfaces.RequestRepository,
	ratingRepo interfaces.RatingRepository,
	userRepo interfaces.UserRepository,
	aggregator *RatingAggregator,
	tx TxRunner,
	notifications NotificationService,
	activity ActivityService,
	policy CompletionPolicy,
	log *logger.Logger,
) RequestService {
	return &requestService{
		requestRepo:   requestRepo,
		ratingRepo:    ratingRepo,
		userRepo:      userRepo,
		aggregator:    aggregator,
		tx:            tx,
		notifications: notifications,
		activity:      activity,
		policy:        policy,
		logger:        log,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, requesterID primitive.ObjectID, input *validators.CreateRequestInput) (*models.Request, error) {
	if errs := validators.ValidateCreateRequest(input); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	request := &models.Request{
		RequesterID:   requesterID,
		Category:      models.ServiceCategory(input.Category),
		Description:   input.Description,
		Urgency:       models.Urgency(input.Urgency),
		PreferredTime: input.PreferredTime,
		AddressNote:   input.AddressNote,
		Status:        models.RequestStatusPending,
	}

	var targetHelper *models.User
	if input.TargetHelperID != "" {
		targetID, _ := primitive.ObjectIDFromHex(input.TargetHelperID)
		if targetID == requesterID {
			return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
				"target_helper_id": "you cannot send a service request to yourself",
			})
		}

		helper, err := s.userRepo.GetByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
					"target_helper_id": utils.ErrUserNotFound,
				})
			}
			return nil, utils.NewInternalError(err)
		}
		targetHelper = helper
		request.TargetHelperID = &targetID
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, utils.NewInternalError(fmt.Errorf("failed to create request: %w", err))
	}

	s.logger.LogRequestEvent(request.ID, "created", map[string]interface{}{
		"requester_id": requesterID.Hex(),
		"category":     request.Category,
		"urgency":      request.Urgency,
	})

	s.activity.Record(ctx, ActivityEntry{
		UserID:     requesterID,
		Action:     models.ActivityCreateRequest,
		Resource:   models.ResourceRequest,
		ResourceID: request.ID,
		Details: map[string]interface{}{
			"category": request.Category,
			"urgency":  request.Urgency,
		},
	})

	requester := s.lookupUser(ctx, requesterID)
	s.notifications.NotifyNewHelpRequest(ctx, request, requester)
	if targetHelper != nil {
		s.notifications.NotifyDirectServiceRequest(ctx, request, requester, targetHelper)
	}

	return request, nil
}

func (s *requestService) OfferHelp(ctx context.Context, requestID, helperID primitive.ObjectID) (*models.Request, error) {
	request, err := s.requestRepo.AssignHelper(ctx, requestID, helperID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			return nil, utils.NewInternalError(err)
		}

		appErr := s.classifyOfferFailure(ctx, requestID, helperID)
		if !utils.IsKind(appErr, utils.KindNotFound) && !utils.IsKind(appErr, utils.KindInternal) {
			s.activity.Record(ctx, ActivityEntry{
				UserID:     helperID,
				Action:     models.ActivityOfferHelp,
				Resource:   models.ResourceRequest,
				ResourceID: requestID,
				Details:    map[string]interface{}{"reason": appErr.Error()},
				Failed:     true,
			})
		}
		return nil, appErr
	}

	s.logger.LogRequestEvent(request.ID, "help_offered", map[string]interface{}{
		"helper_id": helperID.Hex(),
	})

	s.activity.Record(ctx, ActivityEntry{
		UserID:     helperID,
		Action:     models.ActivityOfferHelp,
		Resource:   models.ResourceRequest,
		ResourceID: request.ID,
		Details:    map[string]interface{}{"requester_id": request.RequesterID.Hex()},
	})

	s.notifications.NotifyHelpOffered(ctx, request, s.lookupUser(ctx, helperID))

	return request, nil
}

// classifyOfferFailure re-reads a request whose assignment did not apply.
func (s *requestService) classifyOfferFailure(ctx context.Context, requestID, helperID primitive.ObjectID) error {
	current, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}

	switch {
	case current.IsOwnedBy(helperID):
		return utils.NewForbiddenError(utils.ErrSelfHelp)
	case current.CompletedBy != nil:
		return utils.NewConflictError(utils.ErrAlreadyAssigned)
	default:
		return utils.NewInvalidStateError(utils.ErrNotPending)
	}
}

func (s *requestService) MarkCompleted(ctx context.Context, requestID, userID primitive.ObjectID) (*models.RequestUpdateResult, error) {
	current, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !s.policy.Allows(current, userID) {
		return nil, utils.NewForbiddenError(utils.ErrCompletionDenied)
	}

	if current.Status != models.RequestStatusInProgress {
		return nil, utils.NewInvalidStateError(utils.ErrNotInProgress)
	}

	request, err := s.requestRepo.MarkCompleted(ctx, requestID, time.Now())
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			if _, err := s.getRequest(ctx, requestID); err != nil {
				return nil, err
			}
			return nil, utils.NewInvalidStateError(utils.ErrNotInProgress)
		}
		return nil, utils.NewInternalError(err)
	}

	s.logger.LogRequestEvent(request.ID, "completed", map[string]interface{}{
		"completed_by": targetHex(request.CompletedBy),
		"marked_by":    userID.Hex(),
	})

	s.activity.Record(ctx, ActivityEntry{
		UserID:     userID,
		Action:     models.ActivityCompleteRequest,
		Resource:   models.ResourceRequest,
		ResourceID: request.ID,
		Details:    map[string]interface{}{"helper_id": targetHex(request.CompletedBy)},
	})

	return &models.RequestUpdateResult{
		Request:      request,
		RatingPrompt: request.IsOwnedBy(userID) && request.CompletedBy != nil,
	}, nil
}

func (s *requestService) CancelRequest(ctx context.Context, requestID, requesterID primitive.ObjectID) (*models.Request, error) {
	current, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !current.IsOwnedBy(requesterID) {
		return nil, utils.NewForbiddenError(utils.ErrNotRequestOwner)
	}

	if current.Status.IsTerminal() {
		return nil, utils.NewInvalidStateError(utils.ErrRequestClosed)
	}

	request, err := s.requestRepo.Cancel(ctx, requestID, requesterID, time.Now())
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			if _, err := s.getRequest(ctx, requestID); err != nil {
				return nil, err
			}
			return nil, utils.NewInvalidStateError(utils.ErrRequestClosed)
		}
		return nil, utils.NewInternalError(err)
	}

	s.logger.LogRequestEvent(request.ID, "cancelled", map[string]interface{}{
		"previous_status": current.Status,
	})

	s.activity.Record(ctx, ActivityEntry{
		UserID:     requesterID,
		Action:     models.ActivityCancelRequest,
		Resource:   models.ResourceRequest,
		ResourceID: request.ID,
		Details:    map[string]interface{}{"previous_status": current.Status},
	})

	return request, nil
}

func (s *requestService) UpdateRequestDetails(ctx context.Context, requestID, requesterID primitive.ObjectID, input *validators.UpdateRequestInput) (*models.Request, error) {
	if errs := validators.ValidateUpdateRequest(input); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	current, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !current.IsOwnedBy(requesterID) {
		return nil, utils.NewForbiddenError(utils.ErrNotRequestOwner)
	}

	if current.Status.IsTerminal() {
		return nil, utils.NewInvalidStateError(utils.ErrRequestClosed)
	}

	updates := detailUpdates(input)
	if len(updates) == 0 {
		return current, nil
	}

	request, err := s.requestRepo.UpdateDetails(ctx, requestID, requesterID, updates)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			if _, err := s.getRequest(ctx, requestID); err != nil {
				return nil, err
			}
			return nil, utils.NewInvalidStateError(utils.ErrRequestClosed)
		}
		return nil, utils.NewInternalError(err)
	}

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:     requesterID,
		Action:     models.ActivityUpdateRequest,
		Resource:   models.ResourceRequest,
		ResourceID: request.ID,
		Details:    map[string]interface{}{"fields": fields},
	})

	return request, nil
}

func detailUpdates(input *validators.UpdateRequestInput) map[string]interface{} {
	updates := make(map[string]interface{})
	if input.Category != nil {
		updates["category"] = models.ServiceCategory(*input.Category)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Urgency != nil {
		updates["urgency"] = models.Urgency(*input.Urgency)
	}
	if input.PreferredTime != nil {
		updates["preferred_time"] = *input.PreferredTime
	}
	if input.AddressNote != nil {
		updates["address_note"] = *input.AddressNote
	}
	return updates
}

// ApplyUpdate dispatches the generic update body onto one lifecycle
// operation. Status changes cannot be combined with detail edits.
func (s *requestService) ApplyUpdate(ctx context.Context, requestID, userID primitive.ObjectID, input *validators.UpdateRequestInput) (*models.RequestUpdateResult, error) {
	if errs := validators.ValidateUpdateRequest(input); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	if input.Status == nil {
		if input.CompletedBy != nil {
			return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
				"status": "status must be in-progress when completed_by is set",
			})
		}
		if !input.HasDetailChanges() {
			return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
				"body": "no changes supplied",
			})
		}
		request, err := s.UpdateRequestDetails(ctx, requestID, userID, input)
		if err != nil {
			return nil, err
		}
		return &models.RequestUpdateResult{Request: request}, nil
	}

	if input.HasDetailChanges() {
		return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
			"status": "status changes cannot be combined with other edits",
		})
	}

	status := models.RequestStatus(*input.Status)
	if input.CompletedBy != nil && status != models.RequestStatusInProgress {
		return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
			"completed_by": "completed_by can only be set when offering help",
		})
	}

	switch status {
	case models.RequestStatusInProgress:
		if input.CompletedBy == nil {
			return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
				"completed_by": "completed_by is required",
			})
		}
		helperID, _ := primitive.ObjectIDFromHex(*input.CompletedBy)
		if helperID != userID {
			return nil, utils.NewForbiddenError(utils.ErrHelperMismatch)
		}
		request, err := s.OfferHelp(ctx, requestID, helperID)
		if err != nil {
			return nil, err
		}
		return &models.RequestUpdateResult{Request: request}, nil

	case models.RequestStatusCompleted:
		return s.MarkCompleted(ctx, requestID, userID)

	case models.RequestStatusCancelled:
		request, err := s.CancelRequest(ctx, requestID, userID)
		if err != nil {
			return nil, err
		}
		return &models.RequestUpdateResult{Request: request}, nil

	default:
		return nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
			"status": fmt.Sprintf("status cannot be set to %s", status),
		})
	}
}

// DeleteRequest removes the request and its rating, if any, and rebuilds the
// rated helper's aggregate in the same transaction.
func (s *requestService) DeleteRequest(ctx context.Context, requestID, requesterID primitive.ObjectID) error {
	current, err := s.getRequest(ctx, requestID)
	if err != nil {
		return err
	}

	if !current.IsOwnedBy(requesterID) {
		return utils.NewForbiddenError(utils.ErrNotRequestOwner)
	}

	var removed *models.Rating
	deleteFn := func() error {
		return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			removed = nil

			if err := s.requestRepo.Delete(txCtx, requestID); err != nil {
				return err
			}

			rating, err := s.ratingRepo.DeleteByRequestID(txCtx, requestID)
			if err != nil {
				if errors.Is(err, interfaces.ErrNotFound) {
					return nil
				}
				return err
			}
			removed = rating

			_, err = s.aggregator.Recompute(txCtx, rating.RatedUserID)
			return err
		})
	}

	if current.CompletedBy != nil {
		err = s.aggregator.Serialize(ctx, *current.CompletedBy, deleteFn)
	} else {
		err = deleteFn()
	}
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return utils.NewNotFoundError(utils.ErrRequestNotFound)
		}
		return asAppError(err)
	}

	details := map[string]interface{}{"status": current.Status}
	if removed != nil {
		s.aggregator.Invalidate(ctx, removed.RatedUserID)
		details["removed_rating_id"] = removed.ID.Hex()
	}

	s.logger.LogRequestEvent(requestID, "deleted", details)

	s.activity.Record(ctx, ActivityEntry{
		UserID:     requesterID,
		Action:     models.ActivityDeleteRequest,
		Resource:   models.ResourceRequest,
		ResourceID: requestID,
		Details:    details,
	})

	return nil
}

func (s *requestService) ListAll(ctx context.Context, params *utils.PaginationParams) ([]*models.RequestView, int64, error) {
	params.RestrictSort("created_at", "created_at", "updated_at")

	requests, total, err := s.requestRepo.List(ctx, params)
	if err != nil {
		return nil, 0, utils.NewInternalError(err)
	}

	views, err := s.annotate(ctx, requests)
	if err != nil {
		return nil, 0, err
	}

	return views, total, nil
}

func (s *requestService) ListMine(ctx context.Context, requesterID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Request, int64, error) {
	params.RestrictSort("created_at", "created_at", "updated_at")

	requests, total, err := s.requestRepo.GetByRequesterID(ctx, requesterID, params)
	if err != nil {
		return nil, 0, utils.NewInternalError(err)
	}
	if requests == nil {
		requests = []*models.Request{}
	}

	return requests, total, nil
}

// GetRequest is visible to the requester and the assigned helper.
func (s *requestService) GetRequest(ctx context.Context, requestID, userID primitive.ObjectID) (*models.RequestView, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsOwnedBy(userID) && !request.IsHelpedBy(userID) {
		return nil, utils.NewForbiddenError(utils.ErrRequestAccessDenied)
	}

	views, err := s.annotate(ctx, []*models.Request{request})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// annotate stamps requester and helper names using one batched lookup.
func (s *requestService) annotate(ctx context.Context, requests []*models.Request) ([]*models.RequestView, error) {
	ids := make([]primitive.ObjectID, 0, len(requests)*2)
	for _, r := range requests {
		ids = append(ids, r.RequesterID)
		if r.CompletedBy != nil {
			ids = append(ids, *r.CompletedBy)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, utils.UniqueObjectIDs(ids...))
	if err != nil {
		return nil, utils.NewInternalError(err)
	}

	views := make([]*models.RequestView, len(requests))
	for i, r := range requests {
		view := &models.RequestView{Request: r}
		if requester, ok := users[r.RequesterID]; ok {
			view.RequesterName = requester.Name
			view.RequesterRole = string(requester.Role)
		}
		if r.CompletedBy != nil {
			view.HelperName = users[*r.CompletedBy].DisplayName()
		}
		views[i] = view
	}

	return views, nil
}

func (s *requestService) getRequest(ctx context.Context, requestID primitive.ObjectID) (*models.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError(utils.ErrRequestNotFound)
		}
		return nil, utils.NewInternalError(err)
	}
	return request, nil
}

// lookupUser returns nil when the user cannot be loaded; names are cosmetic.
func (s *requestService) lookupUser(ctx context.Context, userID primitive.ObjectID) *models.User {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.WithError(err).WithUserID(userID).Warn("Failed to load user")
		}
		return nil
	}
	return user
}
