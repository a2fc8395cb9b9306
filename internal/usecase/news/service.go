package news

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/repository"
	"newsdesk/internal/sanitize"
)

// CreateInput represents the input parameters for creating a new article.
// AuthorID comes from the authenticated administrator, never from the body.
// There is no status field: new articles are always drafts.
type CreateInput struct {
	Title    string
	AuthorID uuid.UUID
	Summary  *string
	Content  *string
	Scope    entity.NewsScope // zero value means GENERAL
	CoverURL *string
}

// UpdateInput carries the complete desired state of an article.
// Title, Summary, Content and CoverURL replace the stored values as given,
// so a nil Content clears the body. Scope is applied only when non-nil.
// ActorID is used for the audit record only.
type UpdateInput struct {
	ID       uuid.UUID
	ActorID  uuid.UUID
	Title    string
	Summary  *string
	Content  *string
	Scope    *entity.NewsScope
	CoverURL *string
}

// Service provides news management use cases.
// Zero-value optional fields fall back to the shared HTML policy, a slog
// audit recorder and time.Now.
type Service struct {
	Repo      repository.NewsRepository
	Sanitizer sanitize.Sanitizer
	Audit     AuditRecorder
	Now       func() time.Time
}

// Create stores a new draft article.
// Repository failures are returned unmodified.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.News, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "news.Create",
		trace.WithAttributes(attribute.String("news.author_id", in.AuthorID.String())))
	defer span.End()
	start := time.Now()

	n := entity.NewNews(in.Title, in.AuthorID, in.Summary, s.cleanContent(in.Content), in.Scope, in.CoverURL, s.now())

	created, err := s.Repo.Create(ctx, n)
	if err != nil {
		s.fail(span, "create", start, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("news.id", created.ID.String()))
	metrics.RecordNewsOperation("create", "success", time.Since(start))
	s.audit(ctx, AuditActionCreate, in.AuthorID, created)
	return created, nil
}

// Update replaces the editable fields of an existing article.
// Returns ErrNewsNotFound without writing when the article is absent.
// Status, published_at and author are carried over from the stored row.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.News, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "news.Update",
		trace.WithAttributes(attribute.String("news.id", in.ID.String())))
	defer span.End()
	start := time.Now()

	current, err := s.Repo.GetByID(ctx, in.ID)
	if err != nil {
		s.fail(span, "update", start, err)
		return nil, err
	}
	if current == nil {
		s.fail(span, "update", start, ErrNewsNotFound)
		return nil, ErrNewsNotFound
	}

	current.Title = in.Title
	current.Summary = in.Summary
	current.Content = s.cleanContent(in.Content)
	current.CoverURL = in.CoverURL
	if in.Scope != nil {
		current.Scope = *in.Scope
	}

	updated, err := s.Repo.Update(ctx, current)
	if err != nil {
		s.fail(span, "update", start, err)
		return nil, err
	}

	metrics.RecordNewsOperation("update", "success", time.Since(start))
	s.audit(ctx, AuditActionUpdate, in.ActorID, updated)
	return updated, nil
}

// Get returns a live article by ID, or ErrNewsNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.News, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "news.Get",
		trace.WithAttributes(attribute.String("news.id", id.String())))
	defer span.End()
	start := time.Now()

	n, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		s.fail(span, "get", start, err)
		return nil, err
	}
	if n == nil {
		s.fail(span, "get", start, ErrNewsNotFound)
		return nil, ErrNewsNotFound
	}
	metrics.RecordNewsOperation("get", "success", time.Since(start))
	return n, nil
}

// cleanContent sanitizes present, non-empty content. Absent and empty values
// pass through untouched.
func (s *Service) cleanContent(content *string) *string {
	if content == nil || *content == "" {
		return content
	}
	var clean string
	if s.Sanitizer != nil {
		clean = s.Sanitizer.Sanitize(*content)
	} else {
		clean = sanitize.String(*content)
	}
	return &clean
}

func (s *Service) audit(ctx context.Context, action AuditAction, actor uuid.UUID, n *entity.News) {
	rec := s.Audit
	if rec == nil {
		rec = SlogAuditRecorder{}
	}
	defer func() { _ = recover() }()
	rec.Record(ctx, AuditEvent{
		Action:  action,
		ActorID: actor,
		NewsID:  n.ID,
		Title:   TruncateTitle(n.Title, auditTitleLength),
		Scope:   n.Scope,
		At:      s.now(),
	})
}

func (s *Service) fail(span trace.Span, op string, start time.Time, err error) {
	result := "error"
	if err == ErrNewsNotFound {
		result = "not_found"
	} else {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	metrics.RecordNewsOperation(op, result, time.Since(start))
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
