package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in-progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

var RequestStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusInProgress,
	RequestStatusCompleted,
	RequestStatusCancelled,
}

func (s RequestStatus) IsValid() bool {
	for _, v := range RequestStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further lifecycle transition is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}

func StatusValues() []string {
	values := make([]string, len(RequestStatuses))
	for i, s := range RequestStatuses {
		values[i] = string(s)
	}
	return values
}

type Request struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	RequesterID    primitive.ObjectID  `json:"requester_id" bson:"requester_id"`
	Category       ServiceCategory     `json:"category" bson:"category"`
	Description    string              `json:"description" bson:"description"`
	Urgency        Urgency             `json:"urgency" bson:"urgency"`
	PreferredTime  string              `json:"preferred_time" bson:"preferred_time"`
	AddressNote    string              `json:"address_note,omitempty" bson:"address_note,omitempty"`
	TargetHelperID *primitive.ObjectID `json:"target_helper_id,omitempty" bson:"target_helper_id,omitempty"`

	Status      RequestStatus       `json:"status" bson:"status"`
	CompletedBy *primitive.ObjectID `json:"completed_by" bson:"completed_by"`

	RatingSnapshot *RatingSnapshot `json:"rating_snapshot,omitempty" bson:"rating_snapshot,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// RatingSnapshot is the copy of a request's canonical rating kept on the
// request document for display.
type RatingSnapshot struct {
	RatingID primitive.ObjectID `json:"rating_id" bson:"rating_id"`
	Stars    int                `json:"stars" bson:"stars"`
	Review   string             `json:"review,omitempty" bson:"review,omitempty"`
	RatedBy  primitive.ObjectID `json:"rated_by" bson:"rated_by"`
	RatedAt  time.Time          `json:"rated_at" bson:"rated_at"`
}

func (r *Request) IsOwnedBy(userID primitive.ObjectID) bool {
	return r.RequesterID == userID
}

func (r *Request) IsHelpedBy(userID primitive.ObjectID) bool {
	return r.CompletedBy != nil && *r.CompletedBy == userID
}

// ResponseMinutes is the elapsed time between creation and completion (or the
// last update when no completion time was recorded), rounded to whole minutes.
func (r *Request) ResponseMinutes() int64 {
	end := r.UpdatedAt
	if r.CompletedAt != nil {
		end = *r.CompletedAt
	}
	d := end.Sub(r.CreatedAt)
	if d < 0 {
		return 0
	}
	return int64(d.Minutes() + 0.5)
}

// RequestView annotates a request with the names of its participants.
type RequestView struct {
	*Request
	RequesterName string `json:"requester_name,omitempty"`
	RequesterRole string `json:"requester_role,omitempty"`
	HelperName    string `json:"helper_name,omitempty"`
}

type RequestUpdateResult struct {
	Request *Request `json:"request"`
	// RatingPrompt is set when the requester completed a request that has a
	// helper and should now be asked for a rating.
	RatingPrompt bool `json:"rating_prompt"`
}
