package validators

import (
	"strings"
)

type SubmitRatingInput struct {
	RequestID       string `json:"request_id" validate:"required,object_id"`
	Stars           int    `json:"stars" validate:"required,rating_value"`
	Review          string `json:"review" validate:"omitempty,max=500"`
	Category        string `json:"category" validate:"omitempty,service_category"`
	QualityOfWork   *int   `json:"quality_of_work" validate:"omitempty,rating_value"`
	Communication   *int   `json:"communication" validate:"omitempty,rating_value"`
	Professionalism *int   `json:"professionalism" validate:"omitempty,rating_value"`
	IsAnonymous     bool   `json:"is_anonymous"`
}

type UpdateRatingInput struct {
	Stars           *int    `json:"stars" validate:"omitempty,rating_value"`
	Review          *string `json:"review" validate:"omitempty,max=500"`
	QualityOfWork   *int    `json:"quality_of_work" validate:"omitempty,rating_value"`
	Communication   *int    `json:"communication" validate:"omitempty,rating_value"`
	Professionalism *int    `json:"professionalism" validate:"omitempty,rating_value"`
	IsAnonymous     *bool   `json:"is_anonymous"`
}

func (in *UpdateRatingInput) IsEmpty() bool {
	return in.Stars == nil && in.Review == nil && in.QualityOfWork == nil &&
		in.Communication == nil && in.Professionalism == nil && in.IsAnonymous == nil
}

func ValidateSubmitRating(in *SubmitRatingInput) ValidationErrors {
	in.RequestID = strings.TrimSpace(in.RequestID)
	in.Review = SanitizeInput(in.Review)
	in.Category = strings.TrimSpace(in.Category)

	return ValidateStruct(in)
}

func ValidateUpdateRating(in *UpdateRatingInput) ValidationErrors {
	if in.Review != nil {
		r := SanitizeInput(*in.Review)
		in.Review = &r
	}

	return ValidateStruct(in)
}
