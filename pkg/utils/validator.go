package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns binding/validation failures into a readable string.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, formatFieldError(e))
		}
		return strings.Join(messages, "; ")
	}

	if jsonErr, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Sprintf("field '%s' should be %s", jsonErr.Field, jsonErr.Type.String())
	}

	if _, ok := err.(*json.SyntaxError); ok {
		return "invalid JSON format"
	}

	return err.Error()
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters", field, e.Param())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("field '%s' must be a valid URL", field)
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", field, e.Param())
	default:
		return fmt.Sprintf("field '%s' validation failed on '%s' tag", field, e.Tag())
	}
}
