// Package memory provides an in-process implementation of the repository
// interfaces, used for local runs without a database and in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// NewsRepo keeps articles in a map. Values are cloned on the way in and
// out so callers never share state with the store.
type NewsRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*entity.News
	now  func() time.Time
}

// NewNewsRepo creates an empty in-memory news repository.
func NewNewsRepo() *NewsRepo {
	return &NewsRepo{
		data: make(map[uuid.UUID]*entity.News),
		now:  time.Now,
	}
}

var _ repository.NewsRepository = (*NewsRepo)(nil)

func (r *NewsRepo) Create(ctx context.Context, n *entity.News) (*entity.News, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[n.ID] = n.Clone()
	return n.Clone(), nil
}

func (r *NewsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.data[id]
	if !ok || n.IsDeleted {
		return nil, nil
	}
	return n.Clone(), nil
}

func (r *NewsRepo) Update(ctx context.Context, n *entity.News) (*entity.News, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.data[n.ID]
	if !ok || cur.IsDeleted {
		return nil, entity.ErrNotFound
	}
	next := cur.Clone()
	next.Title = n.Title
	next.Summary = cloneString(n.Summary)
	next.Content = cloneString(n.Content)
	next.Scope = n.Scope
	next.CoverURL = cloneString(n.CoverURL)
	next.UpdatedAt = r.now()
	r.data[n.ID] = next
	return next.Clone(), nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
