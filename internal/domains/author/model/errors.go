package model

import (
	"errors"
	"net/http"

	"blog-backend/internal/shared/validator"
)

var ErrAuthorNotFound = errors.New("author not found")

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, validator.ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrAuthorNotFound):
		return "AUTHOR_NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, validator.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
