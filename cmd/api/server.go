package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"newsdesk/internal/config"
	hhttp "newsdesk/internal/handler/http"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/middleware"
	hnews "newsdesk/internal/handler/http/news"
	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/infra/adapter/persistence/memory"
	"newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/adapter/persistence/sqlite"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/repository"
	"newsdesk/internal/resilience/circuitbreaker"
	"newsdesk/internal/resilience/retry"
	"newsdesk/internal/sanitize"
	newsUC "newsdesk/internal/usecase/news"
)

// store is the selected persistence backend. DB and Breaker are nil for the
// in-memory store.
type store struct {
	DB      *sql.DB
	Repo    repository.NewsRepository
	Breaker *circuitbreaker.CircuitBreaker
}

func (s store) Close(logger *slog.Logger) {
	if s.DB == nil {
		return
	}
	if err := s.DB.Close(); err != nil {
		logger.Error("failed to close database", slog.Any("error", err))
	}
}

// openStore connects (with retries), migrates and seeds the admin row the
// news.author_id foreign key points at, whatever the auth mode.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory news store; data is lost on restart")
		return store{Repo: memory.NewNewsRepo()}, nil
	}

	dialect := db.Dialect(cfg.Database.Driver)
	sqlDB, err := openWithRetry(ctx, cfg, dialect, logger)
	if err != nil {
		return store{}, err
	}

	if cfg.Database.AutoMigrate {
		if err := db.MigrateUp(ctx, sqlDB, dialect); err != nil {
			_ = sqlDB.Close()
			return store{}, fmt.Errorf("migrate: %w", err)
		}
	}
	// both auth modes act as this admin: the stub authenticator directly,
	// jwt through tokens minted by -issue-token
	adminID, err := cfg.StubAdminID()
	if err != nil {
		_ = sqlDB.Close()
		return store{}, err
	}
	if err := db.SeedAdmin(ctx, sqlDB, dialect, adminID, cfg.Auth.StubAdminEmail); err != nil {
		_ = sqlDB.Close()
		return store{}, fmt.Errorf("seed admin: %w", err)
	}

	var repo repository.NewsRepository
	if dialect == db.DialectSQLite {
		repo = sqlite.NewNewsRepo(sqlDB)
	} else {
		repo = postgres.NewNewsRepo(sqlDB)
	}

	st := store{DB: sqlDB, Repo: repo}
	if cfg.Database.CircuitBreakerEnabled {
		wrapped := circuitbreaker.NewNewsRepository(repo, circuitbreaker.DBConfig())
		st.Repo = wrapped
		st.Breaker = wrapped.Breaker()
	}
	return st, nil
}

// openWithRetry waits for the database to accept connections.
func openWithRetry(ctx context.Context, cfg config.Config, dialect db.Dialect, logger *slog.Logger) (*sql.DB, error) {
	pool := db.ConnectionConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}
	policy := retry.DBStartupConfig()
	policy.Logger = logger

	var sqlDB *sql.DB
	err := retry.WithBackoff(ctx, policy, func() error {
		var err error
		sqlDB, err = db.Open(ctx, dialect, cfg.Database.URL, pool)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return sqlDB, nil
}

func buildAuthenticator(cfg config.Config, logger *slog.Logger) (auth.Authenticator, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		return auth.NewJWTAuthenticator([]byte(cfg.Auth.JWTSecret)), nil
	case config.AuthModeStub:
		id, err := cfg.StubAdminID()
		if err != nil {
			return nil, err
		}
		if cfg.IsProduction() {
			logger.Warn("stub authentication is enabled in production; every request acts as the stub admin")
		}
		return auth.StubAuthenticator{Admin: auth.Actor{
			ID:    id,
			Email: cfg.Auth.StubAdminEmail,
			Role:  auth.RoleAdmin,
		}}, nil
	}
	return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
}

// buildRateLimiter returns nil when rate limiting is off.
func buildRateLimiter(cfg config.Config) (*middleware.RateLimiter, error) {
	if !cfg.RateLimit.Enabled {
		return nil, nil
	}
	var extractor middleware.IPExtractor = middleware.RemoteAddrExtractor{}
	if len(cfg.HTTP.TrustedProxies) > 0 {
		e, err := middleware.NewTrustedProxyExtractor(cfg.HTTP.TrustedProxies)
		if err != nil {
			return nil, err
		}
		extractor = e
	}
	return middleware.NewRateLimiter("write", cfg.RateLimit.RPS, cfg.RateLimit.Burst, extractor), nil
}

// buildHandler mounts every route and wraps the mux in the middleware chain.
func buildHandler(cfg config.Config, logger *slog.Logger, st store, authn auth.Authenticator, limiter *middleware.RateLimiter) http.Handler {
	svc := &newsUC.Service{
		Repo:      st.Repo,
		Sanitizer: sanitize.NewHTML(),
		Audit:     newsUC.SlogAuditRecorder{},
	}

	var writeLimit func(http.Handler) http.Handler
	if limiter != nil {
		writeLimit = limiter.Middleware
	}

	health := &hhttp.HealthHandler{DB: st.DB, Version: cfg.Version}
	if st.Breaker != nil {
		health.Breaker = st.Breaker
	}

	mux := http.NewServeMux()
	mux.Handle("GET /api/health", health)
	mux.Handle("GET /api/ready", &hhttp.ReadyHandler{DB: st.DB})
	mux.Handle("GET /api/live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	hnews.Register(mux, svc, authn, writeLimit)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.HTTP.AllowedOrigins
	cors.Logger = logger

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig()),
		middleware.CORS(cors),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
	)
}
