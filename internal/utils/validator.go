// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var hexColorPattern = regexp.MustCompile("^#[0-9A-Fa-f]{6}$")

func init() {
	validate = validator.New()
	validate.RegisterValidation("display_color", validateDisplayColor)
	validate.RegisterValidation("watchlist_type", validateWatchlistType)
	validate.RegisterValidation("gender", validateGender)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDisplayColor(fl validator.FieldLevel) bool {
	return hexColorPattern.MatchString(fl.Field().String())
}

func validateWatchlistType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "whitelist", "blacklist":
		return true
	}
	return false
}

func validateGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "male", "female", "other":
		return true
	}
	return false
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "display_color":
		return "Display color must be a hex value like #FF5733"
	case "watchlist_type":
		return "Watchlist type must be whitelist or blacklist"
	case "gender":
		return "Gender must be male, female, or other"
	default:
		return e.Field() + " is invalid"
	}
}
