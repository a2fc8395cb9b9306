package circuitbreaker

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// NewsRepository decorates a repository.NewsRepository with a breaker.
// While the circuit is open calls fail fast with gobreaker.ErrOpenState,
// which callers treat like any other storage fault.
type NewsRepository struct {
	next repository.NewsRepository
	cb   *CircuitBreaker
}

// NewNewsRepository wraps next. cfg.IsSuccessful is replaced so that
// not-found results and caller cancellations never trip the breaker.
func NewNewsRepository(next repository.NewsRepository, cfg Config) *NewsRepository {
	cfg.IsSuccessful = isHealthy
	return &NewsRepository{next: next, cb: New(cfg)}
}

var _ repository.NewsRepository = (*NewsRepository)(nil)

func (r *NewsRepository) Create(ctx context.Context, n *entity.News) (*entity.News, error) {
	return Do(r.cb, func() (*entity.News, error) { return r.next.Create(ctx, n) })
}

// GetByID passes the (nil, nil) absent result through untouched.
func (r *NewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	return Do(r.cb, func() (*entity.News, error) { return r.next.GetByID(ctx, id) })
}

func (r *NewsRepository) Update(ctx context.Context, n *entity.News) (*entity.News, error) {
	return Do(r.cb, func() (*entity.News, error) { return r.next.Update(ctx, n) })
}

// Breaker exposes the underlying breaker for health reporting.
func (r *NewsRepository) Breaker() *CircuitBreaker { return r.cb }

func isHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, entity.ErrNotFound) ||
		errors.Is(err, context.Canceled)
}
