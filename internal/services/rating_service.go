package services

import (
	"context"
	"errors"
	"fmt"

	"neighborhub/internal/models"
	"neighborhub/internal/repositories/interfaces"
	"neighborhub/internal/utils"
	"neighborhub/internal/validators"
	"neighborhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingService interface {
	SubmitRating(ctx context.Context, raterID primitive.ObjectID, input *validators.SubmitRatingInput) (*models.Rating, error)
	UpdateRating(ctx context.Context, ratingID, raterID primitive.ObjectID, input *validators.UpdateRatingInput) (*models.Rating, error)
	DeleteRating(ctx context.Context, ratingID, raterID primitive.ObjectID) error
	MarkHelpful(ctx context.Context, ratingID, userID primitive.ObjectID) (int64, error)

	GetUserRatingStats(ctx context.Context, userID primitive.ObjectID) (*models.RatingStats, error)
	GetUserRatingSummary(ctx context.Context, userID primitive.ObjectID) (*models.UserRatingSummary, error)
	GetRecentRatings(ctx context.Context, userID primitive.ObjectID) ([]*models.RatingView, error)
	ListUserRatings(ctx context.Context, userID primitive.ObjectID, stars *int, params *utils.PaginationParams) ([]*models.RatingView, *utils.PageInfo, error)
	GetRequestRating(ctx context.Context, requestID primitive.ObjectID) (*models.RatingView, error)

	ReconcileUserAggregate(ctx context.Context, userID primitive.ObjectID) (models.RatingAggregate, error)
}

type ratingService struct {
	ratingRepo    interfaces.RatingRepository
	requestRepo   interfaces.RequestRepository
	userRepo      interfaces.UserRepository
	aggregator    *RatingAggregator
	tx            TxRunner
	notifications NotificationService
	activity      ActivityService
	recentLimit   int
	logger        *logger.Logger
}

func NewRatingService(
	ratingRepo interfaces.RatingRepository,
	requestRepo interfaces.RequestRepository,
	userRepo interfaces.UserRepository,
	aggregator *RatingAggregator,
	tx TxRunner,
	notifications NotificationService,
	activity ActivityService,
	recentLimit int,
	log *logger.Logger,
) RatingService {
	if recentLimit <= 0 {
		recentLimit = utils.RecentRatingsLimit
	}
	return &ratingService{
		ratingRepo:    ratingRepo,
		requestRepo:   requestRepo,
		userRepo:      userRepo,
		aggregator:    aggregator,
		tx:            tx,
		notifications: notifications,
		activity:      activity,
		recentLimit:   recentLimit,
		logger:        log,
	}
}

func (s *ratingService) SubmitRating(ctx context.Context, raterID primitive.ObjectID, input *validators.SubmitRatingInput) (*models.Rating, error) {
	if errs := validators.ValidateSubmitRating(input); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	requestID, _ := primitive.ObjectIDFromHex(input.RequestID)
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError(utils.ErrRequestNotFound)
		}
		return nil, utils.NewInternalError(err)
	}

	if request.Status != models.RequestStatusCompleted {
		return nil, utils.NewInvalidStateError(utils.ErrRateNotCompleted)
	}

	if !request.IsOwnedBy(raterID) {
		return nil, utils.NewForbiddenError(utils.ErrRateNotOwner)
	}

	if _, err := s.ratingRepo.GetByRequestID(ctx, requestID); err == nil {
		return nil, utils.NewConflictError(utils.ErrAlreadyRated)
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, utils.NewInternalError(err)
	}

	if request.CompletedBy == nil {
		return nil, utils.NewInvalidStateError(utils.ErrRateNotCompleted)
	}
	if *request.CompletedBy == raterID {
		return nil, utils.NewValidationError(utils.ErrRateOwnWork, map[string]string{
			"request_id": utils.ErrRateOwnWork,
		})
	}

	category := request.Category
	if input.Category != "" {
		category = models.ServiceCategory(input.Category)
	}
	responseTime := request.ResponseMinutes()

	rating := &models.Rating{
		RequestID:       requestID,
		RaterID:         raterID,
		RatedUserID:     *request.CompletedBy,
		Category:        category,
		Stars:           input.Stars,
		QualityOfWork:   input.QualityOfWork,
		Communication:   input.Communication,
		Professionalism: input.Professionalism,
		Review:          input.Review,
		IsAnonymous:     input.IsAnonymous,
		ResponseTime:    &responseTime,
	}

	err = s.aggregator.Serialize(ctx, rating.RatedUserID, func() error {
		return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.ratingRepo.Create(txCtx, rating); err != nil {
				if errors.Is(err, interfaces.ErrDuplicateKey) {
					return utils.NewConflictError(utils.ErrAlreadyRated)
				}
				return err
			}

			if err := s.requestRepo.SetRatingSnapshot(txCtx, requestID, rating.Snapshot()); err != nil {
				return fmt.Errorf("failed to store rating snapshot: %w", err)
			}

			_, err := s.aggregator.Recompute(txCtx, rating.RatedUserID)
			return err
		})
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.aggregator.Invalidate(ctx, rating.RatedUserID)

	s.logger.LogRatingEvent(rating.ID, "submitted", map[string]interface{}{
		"request_id":    requestID.Hex(),
		"rated_user_id": rating.RatedUserID.Hex(),
		"stars":         rating.Stars,
	})

	s.activity.Record(ctx, ActivityEntry{
		UserID:     raterID,
		Action:     models.ActivityRateService,
		Resource:   models.ResourceRating,
		ResourceID: rating.ID,
		Details: map[string]interface{}{
			"request_id":    requestID.Hex(),
			"rated_user_id": rating.RatedUserID.Hex(),
			"stars":         rating.Stars,
		},
	})

	s.notifications.NotifyNewRating(ctx, rating, s.lookupUser(ctx, raterID))

	return rating, nil
}

// UpdateRating applies the provided fields and rebuilds the rated user's
// aggregate. An empty patch returns the rating unchanged.
func (s *ratingService) UpdateRating(ctx context.Context, ratingID, raterID primitive.ObjectID, input *validators.UpdateRatingInput) (*models.Rating, error) {
	if errs := validators.ValidateUpdateRating(input); len(errs) > 0 {
		return nil, utils.NewValidationError(utils.ErrValidationFailed, errs.Details())
	}

	current, err := s.getOwnRating(ctx, ratingID, raterID)
	if err != nil {
		return nil, err
	}

	if input.IsEmpty() {
		return current, nil
	}

	updates := ratingUpdates(input)
	mirror := input.Stars != nil || input.Review != nil

	var updated *models.Rating
	err = s.aggregator.Serialize(ctx, current.RatedUserID, func() error {
		return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			rating, err := s.ratingRepo.Update(txCtx, ratingID, updates)
			if err != nil {
				return err
			}
			updated = rating

			if mirror {
				err := s.requestRepo.SetRatingSnapshot(txCtx, rating.RequestID, rating.Snapshot())
				if err != nil && !errors.Is(err, interfaces.ErrNotFound) && !errors.Is(err, interfaces.ErrConditionFailed) {
					return fmt.Errorf("failed to mirror rating snapshot: %w", err)
				}
			}

			_, err = s.aggregator.Recompute(txCtx, rating.RatedUserID)
			return err
		})
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError(utils.ErrRatingNotFound)
		}
		return nil, asAppError(err)
	}

	s.aggregator.Invalidate(ctx, updated.RatedUserID)

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}

	s.logger.LogRatingEvent(updated.ID, "updated", map[string]interface{}{
		"fields": fields,
	})

	s.activity.Record(ctx, ActivityEntry{
		UserID:     raterID,
		Action:     models.ActivityUpdateRating,
		Resource:   models.ResourceRating,
		ResourceID: updated.ID,
		Details:    map[string]interface{}{"fields": fields},
	})

	return updated, nil
}

func ratingUpdates(input *validators.UpdateRatingInput) map[string]interface{} {
	updates := make(map[string]interface{})
	if input.Stars != nil {
		updates["stars"] = *input.Stars
	}
	if input.Review != nil {
		updates["review"] = *input.Review
	}
	if input.QualityOfWork != nil {
		updates["quality_of_work"] = *input.QualityOfWork
	}
	if input.Communication != nil {
		updates["communication"] = *input.Communication
	}
	if input.Professionalism != nil {
		updates["professionalism"] = *input.Professionalism
	}
	if input.IsAnonymous != nil {
		updates["is_anonymous"] = *input.IsAnonymous
	}
	return updates
}

func (s *ratingService) DeleteRating(ctx context.Context, ratingID, raterID primitive.ObjectID) error {
	current, err := s.getOwnRating(ctx, ratingID, raterID)
	if err != nil {
		return err
	}

	err = s.aggregator.Serialize(ctx, current.RatedUserID, func() error {
		return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.ratingRepo.Delete(txCtx, ratingID); err != nil {
				return err
			}

			if err := s.requestRepo.SetRatingSnapshot(txCtx, current.RequestID, nil); err != nil && !errors.Is(err, interfaces.ErrNotFound) {
				return fmt.Errorf("failed to clear rating snapshot: %w", err)
			}

			_, err := s.aggregator.Recompute(txCtx, current.RatedUserID)
			return err
		})
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return utils.NewNotFoundError(utils.ErrRatingNotFound)
		}
		return asAppError(err)
	}

	s.aggregator.Invalidate(ctx, current.RatedUserID)

	s.logger.LogRatingEvent(ratingID, "deleted", map[string]interface{}{
		"request_id":    current.RequestID.Hex(),
		"rated_user_id": current.RatedUserID.Hex(),
	})

	s.activity.Record(ctx, ActivityEntry{
		UserID:     raterID,
		Action:     models.ActivityDeleteRating,
		Resource:   models.ResourceRating,
		ResourceID: ratingID,
		Details:    map[string]interface{}{"request_id": current.RequestID.Hex()},
	})

	return nil
}

// MarkHelpful records one vote per user per rating.
func (s *ratingService) MarkHelpful(ctx context.Context, ratingID, userID primitive.ObjectID) (int64, error) {
	rating, err := s.getRating(ctx, ratingID)
	if err != nil {
		return 0, err
	}

	if rating.RaterID == userID {
		return 0, utils.NewValidationError(utils.ErrHelpfulOwnRating, map[string]string{
			"rating_id": utils.ErrHelpfulOwnRating,
		})
	}

	count, err := s.ratingRepo.AddHelpfulVote(ctx, ratingID, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			return 0, utils.NewInternalError(err)
		}
		if _, err := s.getRating(ctx, ratingID); err != nil {
			return 0, err
		}
		return 0, utils.NewConflictError(utils.ErrAlreadyMarked)
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:     userID,
		Action:     models.ActivityMarkHelpful,
		Resource:   models.ResourceRating,
		ResourceID: ratingID,
		Details:    map[string]interface{}{"helpful_count": count},
	})

	return count, nil
}

func (s *ratingService) GetUserRatingStats(ctx context.Context, userID primitive.ObjectID) (*models.RatingStats, error) {
	stats, err := s.aggregator.Stats(ctx, userID)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return stats, nil
}

func (s *ratingService) GetUserRatingSummary(ctx context.Context, userID primitive.ObjectID) (*models.UserRatingSummary, error) {
	stats, err := s.GetUserRatingStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.GetRecentRatings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserRatingSummary{Stats: stats, RecentRatings: recent}, nil
}

func (s *ratingService) GetRecentRatings(ctx context.Context, userID primitive.ObjectID) ([]*models.RatingView, error) {
	ratings, err := s.ratingRepo.GetRecentByRatedUserID(ctx, userID, s.recentLimit)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return s.views(ctx, ratings)
}

func (s *ratingService) ListUserRatings(ctx context.Context, userID primitive.ObjectID, stars *int, params *utils.PaginationParams) ([]*models.RatingView, *utils.PageInfo, error) {
	if stars != nil && !models.ValidStars(*stars) {
		return nil, nil, utils.NewValidationError(utils.ErrValidationFailed, map[string]string{
			"stars": fmt.Sprintf("stars must be between %d and %d", models.MinStars, models.MaxStars),
		})
	}
	params.RestrictSort("created_at", "created_at", "stars", "helpful_count")

	ratings, total, err := s.ratingRepo.GetByRatedUserID(ctx, userID, interfaces.RatingFilter{Stars: stars}, params)
	if err != nil {
		return nil, nil, utils.NewInternalError(err)
	}

	views, err := s.views(ctx, ratings)
	if err != nil {
		return nil, nil, err
	}

	return views, utils.CreatePageInfo(params, total, len(views)), nil
}

func (s *ratingService) GetRequestRating(ctx context.Context, requestID primitive.ObjectID) (*models.RatingView, error) {
	rating, err := s.ratingRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError(utils.ErrRatingNotFound)
		}
		return nil, utils.NewInternalError(err)
	}

	views, err := s.views(ctx, []*models.Rating{rating})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// ReconcileUserAggregate rebuilds the aggregate cached on the user document
// from the rating store.
func (s *ratingService) ReconcileUserAggregate(ctx context.Context, userID primitive.ObjectID) (models.RatingAggregate, error) {
	var aggregate models.RatingAggregate
	err := s.aggregator.Serialize(ctx, userID, func() error {
		var err error
		aggregate, err = s.aggregator.Recompute(ctx, userID)
		return err
	})
	if err != nil {
		return models.RatingAggregate{}, asAppError(err)
	}

	s.aggregator.Invalidate(ctx, userID)

	s.logger.WithUserID(userID).WithFields(map[string]interface{}{
		"total_ratings": aggregate.TotalRatings,
		"average":       aggregate.Average,
	}).Info("Rating aggregate reconciled")

	return aggregate, nil
}

// views attaches rater names, hidden for anonymous ratings.
func (s *ratingService) views(ctx context.Context, ratings []*models.Rating) ([]*models.RatingView, error) {
	ids := make([]primitive.ObjectID, 0, len(ratings))
	for _, r := range ratings {
		if !r.IsAnonymous {
			ids = append(ids, r.RaterID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}

	views := make([]*models.RatingView, len(ratings))
	for i, r := range ratings {
		view := &models.RatingView{Rating: r, OverallScore: r.OverallScore()}
		if !r.IsAnonymous {
			view.RaterName = users[r.RaterID].DisplayName()
		}
		views[i] = view
	}
	return views, nil
}

func (s *ratingService) getRating(ctx context.Context, ratingID primitive.ObjectID) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError(utils.ErrRatingNotFound)
		}
		return nil, utils.NewInternalError(err)
	}
	return rating, nil
}

func (s *ratingService) getOwnRating(ctx context.Context, ratingID, raterID primitive.ObjectID) (*models.Rating, error) {
	rating, err := s.getRating(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if rating.RaterID != raterID {
		return nil, utils.NewForbiddenError(utils.ErrNotRater)
	}
	return rating, nil
}

func (s *ratingService) lookupUser(ctx context.Context, userID primitive.ObjectID) *models.User {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.WithError(err).WithUserID(userID).Warn("Failed to load user")
		}
		return nil
	}
	return user
}

// asAppError passes domain errors through and wraps everything else.
func asAppError(err error) *utils.AppError {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.NewInternalError(err)
}
