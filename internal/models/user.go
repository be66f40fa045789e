package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Role      UserRole           `json:"role" bson:"role" validate:"required,user_role"`
	Job       string             `json:"job,omitempty" bson:"job,omitempty"`
	Rating    RatingAggregate    `json:"rating" bson:"rating"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	return u.Name
}
