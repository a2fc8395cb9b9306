// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
)

const newsColumns = `id, title, summary, content, status, scope, author_id, cover_url,
       published_at, created_at, updated_at, is_deleted`

// NewsRepo implements the NewsRepository interface using PostgreSQL.
type NewsRepo struct {
	db *sql.DB
}

// NewNewsRepo creates a new PostgreSQL-backed news repository.
func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNews(row rowScanner) (*entity.News, error) {
	var n entity.News
	err := row.Scan(&n.ID, &n.Title, &n.Summary, &n.Content, &n.Status, &n.Scope,
		&n.AuthorID, &n.CoverURL, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt, &n.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new row and returns the stored article.
func (repo *NewsRepo) Create(ctx context.Context, n *entity.News) (*entity.News, error) {
	defer observe("news_create", time.Now())

	const query = `
INSERT INTO news
       (id, title, summary, content, status, scope, author_id, cover_url,
        published_at, created_at, updated_at, is_deleted)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + newsColumns
	created, err := scanNews(repo.db.QueryRowContext(ctx, query,
		n.ID, n.Title, n.Summary, n.Content, string(n.Status), string(n.Scope),
		n.AuthorID, n.CoverURL, n.PublishedAt, n.CreatedAt, n.UpdatedAt, n.IsDeleted,
	))
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return created, nil
}

// GetByID returns a live article, or nil when none exists.
func (repo *NewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	defer observe("news_get_by_id", time.Now())

	const query = `
SELECT ` + newsColumns + `
FROM news
WHERE id = $1 AND is_deleted = false
LIMIT 1`
	n, err := scanNews(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return n, nil
}

// Update writes the editable columns only and returns the stored row.
// status, published_at and author_id are never part of the statement.
func (repo *NewsRepo) Update(ctx context.Context, n *entity.News) (*entity.News, error) {
	defer observe("news_update", time.Now())

	const query = `
UPDATE news SET
       title      = $1,
       summary    = $2,
       content    = $3,
       scope      = $4,
       cover_url  = $5,
       updated_at = now()
WHERE id = $6 AND is_deleted = false
RETURNING ` + newsColumns
	updated, err := scanNews(repo.db.QueryRowContext(ctx, query,
		n.Title, n.Summary, n.Content, string(n.Scope), n.CoverURL, n.ID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return updated, nil
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
