package model

import (
	"errors"
	"net/http"

	"blog-backend/internal/shared/validator"
)

var ErrPostNotFound = errors.New("post not found")

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, validator.ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrPostNotFound):
		return "POST_NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, validator.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
