package utils

import "time"

const (
	AppName = "neighborhub"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Ratings
	RecentRatingsLimit  = 5
	RatingStatsCacheTTL = 5 * time.Minute
	UserCacheTTL        = 15 * time.Minute
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidToken        = "invalid token"
	ErrInternalServer      = "internal server error"
	ErrUnauthorized        = "unauthorized"
	ErrForbidden           = "forbidden"
	ErrValidationFailed    = "validation failed"
	ErrRequestNotFound     = "request not found"
	ErrRatingNotFound      = "rating not found"
	ErrUserNotFound        = "user not found"
	ErrSelfHelp            = "you cannot offer help on your own request"
	ErrAlreadyAssigned     = "request already has a helper"
	ErrNotPending          = "request is no longer open for help"
	ErrNotInProgress       = "only in-progress requests can be completed"
	ErrRequestClosed       = "request is already closed"
	ErrNotRequestOwner     = "only the request owner can perform this action"
	ErrCompletionDenied    = "you are not allowed to complete this request"
	ErrHelperMismatch      = "completed_by must be the authenticated user"
	ErrRateNotCompleted    = "can only rate completed requests"
	ErrRateNotOwner        = "only the request owner can rate the helper"
	ErrAlreadyRated        = "already rated"
	ErrRateOwnWork         = "cannot rate your own work"
	ErrNotRater            = "only the author can modify this rating"
	ErrHelpfulOwnRating    = "cannot mark your own rating as helpful"
	ErrAlreadyMarked       = "already marked as helpful"
	ErrRequestAccessDenied = "you do not have access to this request"
)

// Cache Keys
const (
	CacheUserPrefix        = "user:"
	CacheRatingStatsPrefix = "rating_stats:"
	CacheLockPrefix        = "lock:"
)
