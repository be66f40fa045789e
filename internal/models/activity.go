package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityAction string
type ActivityStatus string

const (
	ActivityCreateRequest   ActivityAction = "create_request"
	ActivityUpdateRequest   ActivityAction = "update_request"
	ActivityOfferHelp       ActivityAction = "offer_help"
	ActivityCompleteRequest ActivityAction = "complete_request"
	ActivityCancelRequest   ActivityAction = "cancel_request"
	ActivityDeleteRequest   ActivityAction = "delete_request"
	ActivityRateService     ActivityAction = "rate_service"
	ActivityUpdateRating    ActivityAction = "update_rating"
	ActivityDeleteRating    ActivityAction = "delete_rating"
	ActivityMarkHelpful     ActivityAction = "mark_helpful"

	ActivityStatusSuccess ActivityStatus = "success"
	ActivityStatusFailed  ActivityStatus = "failed"
)

type ActivityResource string

const (
	ResourceRequest ActivityResource = "request"
	ResourceRating  ActivityResource = "rating"
)

// Activity is one entry of a user's action history.
type Activity struct {
	ID         primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID     `json:"user_id" bson:"user_id"`
	Action     ActivityAction         `json:"action" bson:"action"`
	Resource   ActivityResource       `json:"resource" bson:"resource"`
	ResourceID primitive.ObjectID     `json:"resource_id" bson:"resource_id"`
	Details    map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Status     ActivityStatus         `json:"status" bson:"status"`
	Timestamp  time.Time              `json:"timestamp" bson:"timestamp"`
}
