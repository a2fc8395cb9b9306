package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/infra/db"
)

// runMigration applies ("up") or rolls back ("down") the schema and returns.
func runMigration(ctx context.Context, cfg config.Config, direction string, logger *slog.Logger) error {
	if cfg.Database.Driver == config.DriverMemory {
		return fmt.Errorf("migrations need a database driver, got %q", cfg.Database.Driver)
	}
	migrate := db.MigrateUp
	switch direction {
	case "up":
	case "down":
		migrate = db.MigrateDown
	default:
		return fmt.Errorf("unknown migration direction %q (want up or down)", direction)
	}

	dialect := db.Dialect(cfg.Database.Driver)
	conn, err := openWithRetry(ctx, cfg, dialect, logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if err := migrate(ctx, conn, dialect); err != nil {
		return err
	}
	logger.Info("migration finished", slog.String("direction", direction), slog.String("driver", cfg.Database.Driver))
	return nil
}

// issueToken prints a signed admin token for the configured stub admin. It
// only works in jwt mode, where the token can actually be verified.
func issueToken(cfg config.Config, ttl time.Duration, out io.Writer) error {
	if cfg.Auth.Mode != config.AuthModeJWT {
		return fmt.Errorf("token issuing requires AUTH_MODE=%s", config.AuthModeJWT)
	}
	id, err := cfg.StubAdminID()
	if err != nil {
		return err
	}
	token, err := auth.NewJWTAuthenticator([]byte(cfg.Auth.JWTSecret)).IssueToken(auth.Actor{
		ID:    id,
		Email: cfg.Auth.StubAdminEmail,
		Role:  auth.RoleAdmin,
	}, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
