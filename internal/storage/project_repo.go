package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_project_store.go -package=mocks repoqa/internal/storage ProjectStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"repoqa/internal/errs"
)

// ProjectStore defines the interface for project storage operations.
type ProjectStore interface {
	// Create inserts a project. ID, timestamps and status are filled in when empty.
	// Returns errs.ErrConflict if the name is taken.
	Create(ctx context.Context, p *Project) error
	// GetByID returns ErrNotFound if the project does not exist.
	GetByID(ctx context.Context, id string) (*Project, error)
	// GetByName returns ErrNotFound if no project has that name.
	GetByName(ctx context.Context, name string) (*Project, error)
	// List returns all projects, newest first.
	List(ctx context.Context) ([]Project, error)
	// UpdateStatus sets status and file count.
	UpdateStatus(ctx context.Context, id string, status ProjectStatus, fileCount int) error
	// Touch refreshes updated_at of a loading project so the watchdog sees it alive.
	Touch(ctx context.Context, id string) error
	// FailStale marks projects stuck in loading since before the cutoff as failed.
	FailStale(ctx context.Context, before time.Time) (int64, error)
	// Delete removes a project and, through cascades, its files, commits and questions.
	Delete(ctx context.Context, id string) error
}

// ProjectRepo implements ProjectStore.
type ProjectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new ProjectRepo.
func NewProjectRepo(db *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

func (r *ProjectRepo) Create(ctx context.Context, p *Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusLoading
	}
	ts := now()
	p.CreatedAt, p.UpdatedAt = ts, ts

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO projects (id, name, github_url, branch, status, file_count, created_at, updated_at)
		 VALUES (:id, :name, :github_url, :branch, :status, :file_count, :created_at, :updated_at)`, p)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.Kind(errs.ErrConflict, fmt.Errorf("project %q already exists", p.Name))
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*Project, error) {
	return r.get(ctx, "id", id)
}

func (r *ProjectRepo) GetByName(ctx context.Context, name string) (*Project, error) {
	return r.get(ctx, "name", name)
}

func (r *ProjectRepo) get(ctx context.Context, column, value string) (*Project, error) {
	var p Project
	query := r.db.Rebind("SELECT * FROM projects WHERE " + column + " = ?")
	if err := r.db.GetContext(ctx, &p, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	normalize(&p.CreatedAt, &p.UpdatedAt)
	return &p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := r.db.SelectContext(ctx, &out, "SELECT * FROM projects ORDER BY created_at DESC"); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	for i := range out {
		normalize(&out[i].CreatedAt, &out[i].UpdatedAt)
	}
	return out, nil
}

func (r *ProjectRepo) UpdateStatus(ctx context.Context, id string, status ProjectStatus, fileCount int) error {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE projects SET status = ?, file_count = ?, updated_at = ? WHERE id = ?"),
		status, fileCount, now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) Touch(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE projects SET updated_at = ? WHERE id = ? AND status = ?"),
		now(), id, StatusLoading,
	)
	if err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) FailStale(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE projects SET status = ?, updated_at = ? WHERE status = ? AND updated_at < ?"),
		StatusFailed, now(), StatusLoading, before.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to fail stale projects: %w", err)
	}
	return res.RowsAffected()
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM projects WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// normalize converts scanned timestamps to UTC; SQLite returns them without a location.
func normalize(ts ...*time.Time) {
	for _, t := range ts {
		*t = t.UTC()
	}
}
