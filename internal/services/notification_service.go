package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhub/internal/models"
	"neighborhub/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationSink delivers lifecycle events to interested users.
type NotificationSink interface {
	Emit(ctx context.Context, event *models.NotificationEvent) error
}

// MultiSink fans an event out to every sink and joins their errors.
type MultiSink []NotificationSink

func (m MultiSink) Emit(ctx context.Context, event *models.NotificationEvent) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type NotificationService interface {
	NotifyNewHelpRequest(ctx context.Context, request *models.Request, requester *models.User)
	NotifyDirectServiceRequest(ctx context.Context, request *models.Request, requester, helper *models.User)
	NotifyHelpOffered(ctx context.Context, request *models.Request, helper *models.User)
	NotifyNewRating(ctx context.Context, rating *models.Rating, rater *models.User)
}

type notificationService struct {
	sink   NotificationSink
	logger *logger.Logger
}

func NewNotificationService(sink NotificationSink, log *logger.Logger) NotificationService {
	return &notificationService{sink: sink, logger: log}
}

func (s *notificationService) NotifyNewHelpRequest(ctx context.Context, request *models.Request, requester *models.User) {
	s.emit(ctx, &models.NotificationEvent{
		Kind:     models.EventNewHelpRequest,
		EntityID: request.ID,
		Summary:  fmt.Sprintf("New %s request (%s urgency)", request.Category, request.Urgency),
		Data: map[string]interface{}{
			"request_id":     request.ID.Hex(),
			"category":       request.Category,
			"description":    request.Description,
			"urgency":        request.Urgency,
			"preferred_time": request.PreferredTime,
			"address_note":   request.AddressNote,
			"requester_id":   request.RequesterID.Hex(),
			"requester_name": requester.DisplayName(),
		},
	})
}

func (s *notificationService) NotifyDirectServiceRequest(ctx context.Context, request *models.Request, requester, helper *models.User) {
	target := *request.TargetHelperID
	s.emit(ctx, &models.NotificationEvent{
		Kind:     models.EventDirectServiceRequest,
		Target:   &target,
		EntityID: request.ID,
		Summary:  fmt.Sprintf("%s asked you directly for %s help", displayOr(requester, "A neighbour"), request.Category),
		Data: map[string]interface{}{
			"request_id":       request.ID.Hex(),
			"category":         request.Category,
			"description":      request.Description,
			"urgency":          request.Urgency,
			"preferred_time":   request.PreferredTime,
			"address_note":     request.AddressNote,
			"requester_id":     request.RequesterID.Hex(),
			"requester_name":   requester.DisplayName(),
			"target_helper_id": target.Hex(),
			"helper_name":      helper.DisplayName(),
		},
	})
}

func (s *notificationService) NotifyHelpOffered(ctx context.Context, request *models.Request, helper *models.User) {
	requester := request.RequesterID
	data := map[string]interface{}{
		"request_id":  request.ID.Hex(),
		"category":    request.Category,
		"helper_name": helper.DisplayName(),
	}
	if request.CompletedBy != nil {
		data["helper_id"] = request.CompletedBy.Hex()
	}

	s.emit(ctx, &models.NotificationEvent{
		Kind:     models.EventRequestHelp,
		Target:   &requester,
		EntityID: request.ID,
		Summary:  fmt.Sprintf("%s offered to help with your %s request", displayOr(helper, "A neighbour"), request.Category),
		Data:     data,
	})
}

func (s *notificationService) NotifyNewRating(ctx context.Context, rating *models.Rating, rater *models.User) {
	rated := rating.RatedUserID
	raterName := rater.DisplayName()
	if rating.IsAnonymous {
		raterName = ""
	}

	s.emit(ctx, &models.NotificationEvent{
		Kind:     models.EventNewRating,
		Target:   &rated,
		EntityID: rating.ID,
		Summary:  fmt.Sprintf("You received a %d-star rating", rating.Stars),
		Data: map[string]interface{}{
			"rating_id":  rating.ID.Hex(),
			"request_id": rating.RequestID.Hex(),
			"stars":      rating.Stars,
			"review":     rating.Review,
			"category":   rating.Category,
			"rater_name": raterName,
		},
	})
}

// emit is best effort: failures are logged and never reach the caller.
func (s *notificationService) emit(ctx context.Context, event *models.NotificationEvent) {
	if s.sink == nil {
		return
	}

	event.ID = uuid.NewString()
	event.OccurredAt = time.Now()

	if err := s.sink.Emit(ctx, event); err != nil {
		entry := s.logger.WithContext(ctx).WithError(err).WithField("event_kind", event.Kind)
		if event.Target != nil {
			entry = entry.WithField("target", event.Target.Hex())
		}
		entry.Warn("Failed to deliver notification")
	}
}

func displayOr(user *models.User, fallback string) string {
	if name := user.DisplayName(); name != "" {
		return name
	}
	return fallback
}

func targetHex(id *primitive.ObjectID) string {
	if id == nil {
		return ""
	}
	return id.Hex()
}
