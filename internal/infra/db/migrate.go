package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

var postgresUp = []string{
	`DO $$
BEGIN
    CREATE TYPE news_status AS ENUM ('DRAFT', 'PUBLISHED', 'ARCHIVED');
EXCEPTION
    WHEN duplicate_object THEN NULL;
END $$`,
	`DO $$
BEGIN
    CREATE TYPE news_scope AS ENUM ('GENERAL', 'INTERNAL');
EXCEPTION
    WHEN duplicate_object THEN NULL;
END $$`,
	`CREATE TABLE IF NOT EXISTS users (
    id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email           VARCHAR(255) NOT NULL UNIQUE,
    hashed_password VARCHAR(255) NOT NULL,
    full_name       VARCHAR(255),
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    is_superuser    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS news (
    id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title        VARCHAR(255) NOT NULL,
    summary      VARCHAR(500),
    content      TEXT,
    status       news_status NOT NULL DEFAULT 'DRAFT',
    scope        news_scope NOT NULL DEFAULT 'GENERAL',
    author_id    UUID NOT NULL REFERENCES users(id),
    cover_url    VARCHAR(2048),
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    is_deleted   BOOLEAN NOT NULL DEFAULT FALSE
)`,
}

var sqliteUp = []string{
	`CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    hashed_password TEXT NOT NULL,
    full_name       TEXT,
    is_active       BOOLEAN NOT NULL DEFAULT 1,
    is_superuser    BOOLEAN NOT NULL DEFAULT 0,
    created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE TABLE IF NOT EXISTS news (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL CHECK (length(title) BETWEEN 1 AND 255),
    summary      TEXT CHECK (summary IS NULL OR length(summary) <= 500),
    content      TEXT,
    status       TEXT NOT NULL DEFAULT 'DRAFT' CHECK (status IN ('DRAFT', 'PUBLISHED', 'ARCHIVED')),
    scope        TEXT NOT NULL DEFAULT 'GENERAL' CHECK (scope IN ('GENERAL', 'INTERNAL')),
    author_id    TEXT NOT NULL REFERENCES users(id),
    cover_url    TEXT CHECK (cover_url IS NULL OR length(cover_url) <= 2048),
    published_at TIMESTAMP,
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    is_deleted   BOOLEAN NOT NULL DEFAULT 0
)`,
}

// 両方の方言で共通
var newsIndexes = []string{
	`CREATE INDEX IF NOT EXISTS ix_news_status ON news(status)`,
	`CREATE INDEX IF NOT EXISTS ix_news_scope ON news(scope)`,
	`CREATE INDEX IF NOT EXISTS ix_news_is_deleted ON news(is_deleted)`,
	`CREATE INDEX IF NOT EXISTS ix_news_published_at ON news(published_at)`,
	`CREATE INDEX IF NOT EXISTS ix_news_author_id ON news(author_id)`,
}

var downStatements = map[Dialect][]string{
	DialectPostgres: {
		`DROP INDEX IF EXISTS ix_news_author_id`,
		`DROP INDEX IF EXISTS ix_news_published_at`,
		`DROP INDEX IF EXISTS ix_news_is_deleted`,
		`DROP INDEX IF EXISTS ix_news_scope`,
		`DROP INDEX IF EXISTS ix_news_status`,
		`DROP TABLE IF EXISTS news`,
		`DROP TYPE IF EXISTS news_scope`,
		`DROP TYPE IF EXISTS news_status`,
		`DROP TABLE IF EXISTS users`,
	},
	DialectSQLite: {
		`DROP INDEX IF EXISTS ix_news_author_id`,
		`DROP INDEX IF EXISTS ix_news_published_at`,
		`DROP INDEX IF EXISTS ix_news_is_deleted`,
		`DROP INDEX IF EXISTS ix_news_scope`,
		`DROP INDEX IF EXISTS ix_news_status`,
		`DROP TABLE IF EXISTS news`,
		`DROP TABLE IF EXISTS users`,
	},
}

// MigrateUp creates the users and news schema. Every statement is
// idempotent, so it runs on each startup.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var tables []string
	switch dialect {
	case DialectPostgres:
		tables = postgresUp
	case DialectSQLite:
		tables = sqliteUp
	default:
		return fmt.Errorf("MigrateUp: unsupported dialect %q", string(dialect))
	}

	for _, stmt := range append(tables, newsIndexes...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}
	return nil
}

// MigrateDown rolls back the database schema in reverse order of creation.
// Use with caution: this will delete all data in the affected tables.
func MigrateDown(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts, ok := downStatements[dialect]
	if !ok {
		return fmt.Errorf("MigrateDown: unsupported dialect %q", string(dialect))
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}

// SeedAdmin makes sure the configured administrator exists, so news written
// by it (stub auth or an issued token) satisfies the author_id foreign key.
// Existing rows are left untouched.
func SeedAdmin(ctx context.Context, db *sql.DB, dialect Dialect, id uuid.UUID, email string) error {
	var query string
	switch dialect {
	case DialectPostgres:
		query = `
INSERT INTO users (id, email, hashed_password, full_name, is_active, is_superuser)
VALUES ($1, $2, '', 'Administrator', TRUE, TRUE)
ON CONFLICT DO NOTHING`
	case DialectSQLite:
		query = `
INSERT INTO users (id, email, hashed_password, full_name, is_active, is_superuser)
VALUES (?, ?, '', 'Administrator', 1, 1)
ON CONFLICT DO NOTHING`
	default:
		return fmt.Errorf("SeedAdmin: unsupported dialect %q", string(dialect))
	}

	if _, err := db.ExecContext(ctx, query, id, email); err != nil {
		return fmt.Errorf("SeedAdmin: %w", err)
	}
	return nil
}
