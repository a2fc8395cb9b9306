// Package news provides HTTP handlers for the admin news endpoints.
package news

import (
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
)

// CreateRequest is the body of POST /api/news. There is no status or author
// field: articles start as drafts and the author is the authenticated admin.
type CreateRequest struct {
	Title    string  `json:"title" validate:"required,news_title" example:"Office closed on Friday"`
	Summary  *string `json:"summary" validate:"omitempty,news_summary" example:"Maintenance work in the building"`
	Content  *string `json:"content" example:"<p>The office will be closed.</p>"`
	Scope    *string `json:"scope" validate:"omitnil,oneof=GENERAL INTERNAL" example:"GENERAL"`
	CoverURL *string `json:"cover_url" validate:"omitempty,news_cover_url" example:"https://cdn.example.com/cover.png"`
}

// UpdateRequest is the body of PUT /api/news/{id}. Every field except scope
// replaces the stored value; an omitted scope keeps the current one.
type UpdateRequest struct {
	Title    string  `json:"title" validate:"required,news_title" example:"Office closed on Friday and Monday"`
	Summary  *string `json:"summary" validate:"omitempty,news_summary"`
	Content  *string `json:"content"`
	Scope    *string `json:"scope" validate:"omitnil,oneof=GENERAL INTERNAL" example:"INTERNAL"`
	CoverURL *string `json:"cover_url" validate:"omitempty,news_cover_url"`
}

// NewsResponse is the JSON representation of an article.
type NewsResponse struct {
	ID          uuid.UUID  `json:"id" example:"3f1e2a9c-5b7d-4e0f-9a8b-1c2d3e4f5a6b"`
	Title       string     `json:"title" example:"Office closed on Friday"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content"`
	Status      string     `json:"status" example:"DRAFT"`
	Scope       string     `json:"scope" example:"GENERAL"`
	AuthorID    uuid.UUID  `json:"author_id" example:"00000000-0000-4000-8000-000000000001"`
	CoverURL    *string    `json:"cover_url"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at" example:"2025-10-26T12:00:00Z"`
	UpdatedAt   time.Time  `json:"updated_at" example:"2025-10-26T12:00:00Z"`
}

func toResponse(n *entity.News) NewsResponse {
	return NewsResponse{
		ID:          n.ID,
		Title:       n.Title,
		Summary:     n.Summary,
		Content:     n.Content,
		Status:      n.Status.String(),
		Scope:       n.Scope.String(),
		AuthorID:    n.AuthorID,
		CoverURL:    n.CoverURL,
		PublishedAt: n.PublishedAt,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
