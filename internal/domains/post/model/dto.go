package model

import (
	"time"

	"github.com/google/uuid"
)

// CreatePostRequest - POST /v1/posts
type CreatePostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Summary  *string `json:"summary,omitempty"`
}

// UpdatePostRequest - PATCH /v1/posts/:id
type UpdatePostRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
	Summary  *string `json:"summary,omitempty"`
}

type PostResponse struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	Summary   *string    `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PostFilter - Query parameters for list
type PostFilter struct {
	Categories []string `form:"category"` // Any of; empty means all
	Limit      int      `form:"limit"`
	Offset     int      `form:"offset"`
}

// PaginationMeta is the page the service actually applied after clamping
type PaginationMeta struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Summary:   p.Summary,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (req *CreatePostRequest) ToEntity() *Post {
	return &Post{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Summary:  normalizeSummary(req.Summary),
	}
}

func (req *UpdatePostRequest) ApplyToEntity(p *Post) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Summary != nil {
		p.Summary = normalizeSummary(req.Summary)
	}
}

// empty summary clears the column
func normalizeSummary(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
