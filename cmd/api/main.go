package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"newsdesk/internal/config"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/tracing"

	_ "newsdesk/docs" // swagger docs
)

// @title           Newsdesk Admin API
// @version         1.0
// @description     社内ニュース記事を管理する管理者向け REST API
// @description     記事の作成・取得・更新を提供します。すべての /api/news 操作に管理者権限が必要です。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

const poolMonitorInterval = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "YAML config file (overrides CONFIG_FILE)")
	migrate := flag.String("migrate", "", `run schema migrations ("up" or "down") and exit`)
	tokenTTL := flag.Duration("issue-token", 0, "print an admin JWT valid for the given duration and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	if *tokenTTL > 0 {
		if err := issueToken(cfg, *tokenTTL, os.Stdout); err != nil {
			logger.Error("failed to issue token", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *migrate != "" {
		if err := runMigration(ctx, cfg, *migrate, logger); err != nil {
			logger.Error("migration failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// run wires the application and serves until ctx is cancelled.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	tp, err := tracing.NewProvider(ctx, tracing.Config{
		ServiceName:    "newsdesk",
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
		Exporter:       cfg.Tracing.Exporter,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close(logger)

	authn, err := buildAuthenticator(cfg, logger)
	if err != nil {
		return err
	}
	limiter, err := buildRateLimiter(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           buildHandler(cfg, logger, st, authn, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version),
			slog.String("environment", cfg.Environment),
			slog.String("database_driver", cfg.Database.Driver),
			slog.String("auth_mode", cfg.Auth.Mode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if st.DB != nil {
		g.Go(func() error {
			db.MonitorPool(gctx, st.DB, poolMonitorInterval)
			return nil
		})
	}
	if limiter != nil {
		g.Go(func() error {
			limiter.Run(gctx, time.Minute)
			return nil
		})
	}

	return g.Wait()
}
