// Package response defines the JSON error bodies returned by the HTTP API.
// Bodies carry a terse reason only; internal error details never cross the
// boundary.
package response

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

const StatusError = "error"

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: msg,
	}
}

var (
	EmptyRequestBody   = Error("empty request body")
	InvalidRequestBody = Error("invalid request body")
	URLNotFound        = Error("url not found")
	TooManyRequests    = Error("too many requests")
	ServerError        = Error("server error occurred")
)

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url", "http_url":
		return "invalid url"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

func getValidationErrors(err error) []ValidationError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	validationErrs := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   e.Field(),
			Message: messageForTag(e.Tag()),
		})
	}

	return validationErrs
}

// Validation builds the body for a request rejected by validator.
func Validation(err error) ErrorResponse {
	resp := Error("validation error")
	resp.Errors = getValidationErrors(err)

	return resp
}
