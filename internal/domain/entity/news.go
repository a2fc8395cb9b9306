// Package entity defines the core domain entities of the news desk.
// It contains the News article, its status and scope enumerations,
// field limits, and domain-specific errors.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Field length limits, counted in characters. The HTTP boundary enforces
// them; the rest of the core assumes they hold.
const (
	MaxTitleLength    = 255
	MaxSummaryLength  = 500
	MaxCoverURLLength = 2048
)

// NewsStatus is the lifecycle stage of a news article.
type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "DRAFT"
	NewsStatusPublished NewsStatus = "PUBLISHED"
	NewsStatusArchived  NewsStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s NewsStatus) Valid() bool {
	switch s {
	case NewsStatusDraft, NewsStatusPublished, NewsStatusArchived:
		return true
	}
	return false
}

func (s NewsStatus) String() string { return string(s) }

// NewsScope is the visibility classification of a news article.
// GENERAL is public, INTERNAL is limited to authenticated readers.
type NewsScope string

const (
	NewsScopeGeneral  NewsScope = "GENERAL"
	NewsScopeInternal NewsScope = "INTERNAL"
)

// Valid reports whether s is one of the known scopes.
func (s NewsScope) Valid() bool {
	return s == NewsScopeGeneral || s == NewsScopeInternal
}

func (s NewsScope) String() string { return string(s) }

// ParseNewsScope converts a raw value into a NewsScope.
func ParseNewsScope(raw string) (NewsScope, error) {
	s := NewsScope(raw)
	if !s.Valid() {
		return "", &ValidationError{Field: "scope", Message: "must be one of GENERAL, INTERNAL"}
	}
	return s, nil
}

// News represents an article managed by administrators.
//
// Status and PublishedAt are owned by the publishing workflow; the create and
// update operations never change them. AuthorID is fixed at creation.
type News struct {
	ID          uuid.UUID
	Title       string
	Summary     *string
	Content     *string
	Status      NewsStatus
	Scope       NewsScope
	AuthorID    uuid.UUID
	CoverURL    *string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsDeleted   bool
}

// NewNews builds a fresh article. Every article starts out as a draft.
func NewNews(title string, authorID uuid.UUID, summary, content *string, scope NewsScope, coverURL *string, now time.Time) *News {
	if scope == "" {
		scope = NewsScopeGeneral
	}
	return &News{
		ID:        uuid.New(),
		Title:     title,
		Summary:   summary,
		Content:   content,
		Status:    NewsStatusDraft,
		Scope:     scope,
		AuthorID:  authorID,
		CoverURL:  coverURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers can hand the value across layers
// without sharing pointer fields.
func (n *News) Clone() *News {
	if n == nil {
		return nil
	}
	c := *n
	c.Summary = cloneString(n.Summary)
	c.Content = cloneString(n.Content)
	c.CoverURL = cloneString(n.CoverURL)
	if n.PublishedAt != nil {
		t := *n.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
