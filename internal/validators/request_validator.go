package validators

import (
	"strings"

	"neighborhub/internal/utils"
)

type CreateRequestInput struct {
	Category       string `json:"category" validate:"required,service_category"`
	Description    string `json:"description" validate:"required,max=2000"`
	Urgency        string `json:"urgency" validate:"required,urgency_level"`
	PreferredTime  string `json:"preferred_time" validate:"required,max=100"`
	AddressNote    string `json:"address_note" validate:"omitempty,max=500"`
	TargetHelperID string `json:"target_helper_id" validate:"omitempty,object_id"`
}

// UpdateRequestInput is the body of PUT /requests/:id. Every field is
// optional; nil means "leave unchanged".
type UpdateRequestInput struct {
	Category      *string `json:"category" validate:"omitempty,service_category"`
	Description   *string `json:"description" validate:"omitempty,min=1,max=2000"`
	Urgency       *string `json:"urgency" validate:"omitempty,urgency_level"`
	PreferredTime *string `json:"preferred_time" validate:"omitempty,min=1,max=100"`
	AddressNote   *string `json:"address_note" validate:"omitempty,max=500"`
	CompletedBy   *string `json:"completed_by" validate:"omitempty,object_id"`
	Status        *string `json:"status" validate:"omitempty,request_status"`
}

func (in *UpdateRequestInput) HasDetailChanges() bool {
	return in.Category != nil || in.Description != nil || in.Urgency != nil ||
		in.PreferredTime != nil || in.AddressNote != nil
}

func ValidateCreateRequest(in *CreateRequestInput) ValidationErrors {
	in.Category = strings.TrimSpace(in.Category)
	in.Description = SanitizeInput(in.Description)
	in.Urgency = strings.TrimSpace(in.Urgency)
	in.PreferredTime = strings.TrimSpace(in.PreferredTime)
	in.AddressNote = SanitizeInput(in.AddressNote)
	in.TargetHelperID = strings.TrimSpace(in.TargetHelperID)

	return ValidateStruct(in)
}

func ValidateUpdateRequest(in *UpdateRequestInput) ValidationErrors {
	in.Category = utils.TrimStringPtr(in.Category)
	in.Urgency = utils.TrimStringPtr(in.Urgency)
	in.PreferredTime = utils.TrimStringPtr(in.PreferredTime)
	in.CompletedBy = utils.TrimStringPtr(in.CompletedBy)
	in.Status = utils.TrimStringPtr(in.Status)
	if in.Description != nil {
		d := SanitizeInput(*in.Description)
		in.Description = &d
	}
	if in.AddressNote != nil {
		a := SanitizeInput(*in.AddressNote)
		in.AddressNote = &a
	}

	return ValidateStruct(in)
}
