package services

import (
	"context"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"
	"neighborhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityEntry struct {
	UserID     primitive.ObjectID
	Action     models.ActivityAction
	Resource   models.ActivityResource
	ResourceID primitive.ObjectID
	Details    map[string]interface{}
	Failed     bool
}

type ActivityService interface {
	Record(ctx context.Context, entry ActivityEntry)
	ListForUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Activity, int64, error)
}

type activityService struct {
	activityRepo interfaces.ActivityRepository
	logger       *logger.Logger
}

func NewActivityService(activityRepo interfaces.ActivityRepository, log *logger.Logger) ActivityService {
	return &activityService{activityRepo: activityRepo, logger: log}
}

// Record stores entry with the caller's client info. Failures are logged only.
func (s *activityService) Record(ctx context.Context, entry ActivityEntry) {
	info := utils.ClientInfoFromContext(ctx)

	status := models.ActivityStatusSuccess
	if entry.Failed {
		status = models.ActivityStatusFailed
	}

	activity := &models.Activity{
		UserID:     entry.UserID,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		Details:    entry.Details,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
		Status:     status,
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.WithContext(ctx).WithError(err).
			WithField("action", entry.Action).
			Warn("Failed to record activity")
		return
	}

	s.logger.LogUserAction(entry.UserID, string(entry.Action), map[string]interface{}{
		"resource_id": entry.ResourceID.Hex(),
		"status":      status,
	})
}

func (s *activityService) ListForUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Activity, int64, error) {
	params.RestrictSort("timestamp", "timestamp")

	activities, total, err := s.activityRepo.GetByUserID(ctx, userID, params)
	if err != nil {
		return nil, 0, utils.NewInternalError(err)
	}
	if activities == nil {
		activities = []*models.Activity{}
	}
	return activities, total, nil
}
