package news

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/logging"
)

// auditTitleLength is how many characters of the title go into an audit record.
const auditTitleLength = 50

// AuditAction names what happened to an article.
type AuditAction string

const (
	AuditActionCreate AuditAction = "news.create"
	AuditActionUpdate AuditAction = "news.update"
)

// AuditEvent records who did what to which article.
type AuditEvent struct {
	Action  AuditAction
	ActorID uuid.UUID
	NewsID  uuid.UUID
	Title   string // truncated
	Scope   entity.NewsScope
	At      time.Time
}

// AuditRecorder receives audit events. Record must not block for long and has
// no error result: a failing audit sink never fails the operation.
type AuditRecorder interface {
	Record(ctx context.Context, ev AuditEvent)
}

// SlogAuditRecorder writes audit events as structured log lines.
// A nil Logger means the logger carried by the context (or slog.Default).
type SlogAuditRecorder struct {
	Logger *slog.Logger
}

// Record implements AuditRecorder.
func (r SlogAuditRecorder) Record(ctx context.Context, ev AuditEvent) {
	defer func() {
		// 監査ログの失敗で業務処理を止めない
		_ = recover()
	}()

	logger := r.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger = logging.WithRequestID(ctx, logger)

	logger.InfoContext(ctx, "news audit",
		slog.String("action", string(ev.Action)),
		slog.String("actor_id", ev.ActorID.String()),
		slog.String("news_id", ev.NewsID.String()),
		slog.String("title", ev.Title),
		slog.String("scope", ev.Scope.String()),
		slog.Time("at", ev.At),
	)
}

// TruncateTitle shortens title to at most n characters.
func TruncateTitle(title string, n int) string {
	if utf8.RuneCountInString(title) <= n {
		return title
	}
	runes := []rune(title)
	return string(runes[:n])
}
