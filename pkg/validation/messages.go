package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldMessages maps validator tags to human-readable message templates.
// %s is the field name; templates with a second %s receive the tag param.
var fieldMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"username": "%s must be 3-39 lowercase letters, digits or hyphens, without leading, trailing or consecutive hyphens",
	"min":      "%s must be at least %s characters",
	"max":      "%s must be at most %s characters",
}

// FormatBindingError converts a gin binding error into a single readable
// message suitable for the response envelope.
func FormatBindingError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request payload"
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		template, ok := fieldMessages[fieldError.Tag()]
		if !ok {
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
			continue
		}

		if strings.Count(template, "%s") == 2 {
			messages = append(messages, fmt.Sprintf(template, field, fieldError.Param()))
		} else {
			messages = append(messages, fmt.Sprintf(template, field))
		}
	}

	return strings.Join(messages, "; ")
}
