package model

import (
	"time"

	"github.com/google/uuid"
)

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// UpdateAuthorRequest - PATCH /v1/authors/:id
// All fields optional, only non-nil fields are assigned and validated
type UpdateAuthorRequest struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// AuthorResponse - Basic author information
type AuthorResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// AuthorFilter - Query parameters for list/search
type AuthorFilter struct {
	Search string `form:"search"` // Partial name search, case-insensitive
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// PaginationMeta is the page the service actually applied after clamping
type PaginationMeta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// ToResponse converts Author entity to AuthorResponse DTO
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		PhoneNumber: a.PhoneNumber,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToEntity converts CreateAuthorRequest to Author entity
func (req *CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		Name:        req.Name,
		PhoneNumber: normalizePhone(req.PhoneNumber),
	}
}

// ApplyToEntity applies UpdateAuthorRequest to existing Author entity
func (req *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		a.PhoneNumber = normalizePhone(req.PhoneNumber)
	}
}

// empty phone clears the column
func normalizePhone(phone *string) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	return phone
}
