// Package sqlite provides SQLite implementations of repository interfaces.
// Enumerations are stored as TEXT guarded by CHECK constraints and UUIDs as
// their canonical string form.
package sqlite

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

// NewsRepo implements the NewsRepository interface using SQLite.
type NewsRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewNewsRepo creates a new SQLite-backed news repository.
func NewNewsRepo(db *sql.DB) repository.NewsRepository {
	return &NewsRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create inserts a new row and returns a copy of the stored article.
func (repo *NewsRepo) Create(ctx context.Context, n *entity.News) (*entity.News, error) {
	defer observe("news_create", time.Now())

	const query = `
INSERT INTO news
       (id, title, summary, content, status, scope, author_id, cover_url,
        published_at, created_at, updated_at, is_deleted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := repo.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Summary, n.Content, string(n.Status), string(n.Scope),
		n.AuthorID, n.CoverURL, n.PublishedAt, n.CreatedAt, n.UpdatedAt, n.IsDeleted,
	)
	if err != nil {
		return nil, fmt.Errorf("Create: ExecContext: %w", err)
	}
	return n.Clone(), nil
}

// GetByID returns a live article, or nil when none exists.
func (repo *NewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	defer observe("news_get_by_id", time.Now())
	return repo.get(ctx, id)
}

// Update writes the editable columns, then re-reads the row so the caller
// sees the stored status, published_at and author_id.
func (repo *NewsRepo) Update(ctx context.Context, n *entity.News) (*entity.News, error) {
	defer observe("news_update", time.Now())

	const query = `
UPDATE news SET
       title      = ?,
       summary    = ?,
       content    = ?,
       scope      = ?,
       cover_url  = ?,
       updated_at = ?
WHERE id = ? AND is_deleted = 0`
	res, err := repo.db.ExecContext(ctx, query,
		n.Title, n.Summary, n.Content, string(n.Scope), n.CoverURL, repo.now(), n.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("Update: ExecContext: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("Update: %w", entity.ErrNotFound)
	}

	updated, err := repo.get(ctx, n.ID)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("Update: %w", entity.ErrNotFound)
	}
	return updated, nil
}

func (repo *NewsRepo) get(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	const query = `
SELECT ` + newsColumns + `
FROM news
WHERE id = ? AND is_deleted = 0
LIMIT 1`
	var n entity.News
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.Title, &n.Summary, &n.Content, &n.Status, &n.Scope,
			&n.AuthorID, &n.CoverURL, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt, &n.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: QueryRowContext: %w", err)
	}
	return &n, nil
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
