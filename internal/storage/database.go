package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"repoqa/internal/errs"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errs.ErrNotFound

// Driver names accepted by New.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// New opens a database connection. For SQLite, dsn is a file path and foreign keys are enabled.
func New(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite:
		if !strings.Contains(dsn, "?") {
			dsn += "?_foreign_keys=on"
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		// Enable foreign keys (disabled by default in SQLite)
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// MigrateOptions controls optional schema parts.
type MigrateOptions struct {
	// VectorDimensions > 0 adds a pgvector column of that size to file_embeddings (Postgres only).
	VectorDimensions int
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(ctx context.Context, db *sqlx.DB, opts MigrateOptions) error {
	ts := "TIMESTAMP"
	if db.DriverName() == DriverPostgres {
		ts = "TIMESTAMPTZ"
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			github_url TEXT NOT NULL,
			branch TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			file_count INTEGER NOT NULL DEFAULT 0,
			created_at ` + ts + ` NOT NULL,
			updated_at ` + ts + ` NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS file_embeddings (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			file_name TEXT NOT NULL,
			source_code TEXT NOT NULL,
			summary TEXT NOT NULL,
			created_at ` + ts + ` NOT NULL,
			UNIQUE (project_id, file_name)
		);`,
		`CREATE TABLE IF NOT EXISTS commits (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			commit_hash TEXT NOT NULL,
			commit_message TEXT NOT NULL,
			author_name TEXT NOT NULL,
			author_avatar_url TEXT NOT NULL DEFAULT '',
			commit_date ` + ts + ` NOT NULL,
			summary TEXT NOT NULL,
			created_at ` + ts + ` NOT NULL,
			UNIQUE (project_id, commit_hash)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_commits_project_date ON commits (project_id, commit_date);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			file_references TEXT NOT NULL DEFAULT '[]',
			created_at ` + ts + ` NOT NULL
		);`,
	}

	if opts.VectorDimensions > 0 {
		if db.DriverName() != DriverPostgres {
			return fmt.Errorf("vector column requires %s, got %s", DriverPostgres, db.DriverName())
		}
		schema = append([]string{`CREATE EXTENSION IF NOT EXISTS vector;`}, schema...)
		schema = append(schema,
			fmt.Sprintf(`ALTER TABLE file_embeddings ADD COLUMN IF NOT EXISTS summary_embedding vector(%d);`, opts.VectorDimensions),
			`CREATE INDEX IF NOT EXISTS idx_file_embeddings_summary ON file_embeddings USING hnsw (summary_embedding vector_cosine_ops);`,
		)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// now returns the current time in UTC; all timestamps are stored in UTC.
func now() time.Time {
	return time.Now().UTC()
}
