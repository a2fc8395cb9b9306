package repository

import (
	"context"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
)

// NewsRepository is the persistence port for news articles.
// Implementations must keep storage types out of the signatures so the
// in-memory and relational variants stay interchangeable.
type NewsRepository interface {
	// Create persists a new article and returns the stored representation,
	// including the generated ID and timestamps. The argument is not mutated.
	Create(ctx context.Context, news *entity.News) (*entity.News, error)
	// GetByID returns the live article with the given ID.
	// Returns (nil, nil) when the article does not exist or is soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.News, error)
	// Update writes title, summary, content, scope and cover URL of an
	// existing live article and refreshes updated_at. Status, published_at
	// and author_id are never written, whatever the argument carries.
	// Returns entity.ErrNotFound when no live row matches.
	Update(ctx context.Context, news *entity.News) (*entity.News, error)
}
