package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"neighborhub/internal/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("rating_value", validateRatingValue)
	validate.RegisterValidation("service_category", validateServiceCategory)
	validate.RegisterValidation("urgency_level", validateUrgencyLevel)
	validate.RegisterValidation("request_status", validateRequestStatus)
	validate.RegisterValidation("user_role", validateUserRole)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Details flattens the errors into a field -> message map for responses.
func (v ValidationErrors) Details() map[string]string {
	details := make(map[string]string, len(v))
	for _, err := range v {
		if _, exists := details[err.Field]; !exists {
			details[err.Field] = err.Message
		}
	}
	return details
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return ValidationErrors{{Field: "body", Message: err.Error()}}
		}
		for _, err := range fieldErrors {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "rating_value":
		return fmt.Sprintf("%s must be an integer between %d and %d", err.Field(), models.MinStars, models.MaxStars)
	case "service_category":
		return fmt.Sprintf("category must be one of: %s", strings.Join(models.CategoryValues(), ", "))
	case "urgency_level":
		return fmt.Sprintf("urgency must be one of: %s", strings.Join(models.UrgencyValues(), ", "))
	case "request_status":
		return fmt.Sprintf("status must be one of: %s", strings.Join(models.StatusValues(), ", "))
	case "user_role":
		return fmt.Sprintf("role must be one of: %s", strings.Join(models.RoleValues(), ", "))
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateRatingValue(fl validator.FieldLevel) bool {
	return models.ValidStars(int(fl.Field().Int()))
}

func validateServiceCategory(fl validator.FieldLevel) bool {
	return models.ServiceCategory(fl.Field().String()).IsValid()
}

func validateUrgencyLevel(fl validator.FieldLevel) bool {
	return models.Urgency(fl.Field().String()).IsValid()
}

func validateRequestStatus(fl validator.FieldLevel) bool {
	return models.RequestStatus(fl.Field().String()).IsValid()
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.UserRole(fl.Field().String()).IsValid()
}

func SanitizeInput(input string) string {
	// Remove HTML tags and trim whitespace
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}
