package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventKind string

const (
	EventNewHelpRequest       EventKind = "new-help-request"
	EventDirectServiceRequest EventKind = "direct-service-request"
	EventRequestHelp          EventKind = "request-help"
	EventNewRating            EventKind = "new-rating"
)

// NotificationEvent is a lifecycle event handed to the notification
// collaborator. A nil Target means the event is broadcast to every
// connected client.
type NotificationEvent struct {
	ID         string                 `json:"id"`
	Kind       EventKind              `json:"kind"`
	Target     *primitive.ObjectID    `json:"target,omitempty"`
	EntityID   primitive.ObjectID     `json:"entity_id"`
	Summary    string                 `json:"summary"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e *NotificationEvent) IsBroadcast() bool {
	return e.Target == nil
}
