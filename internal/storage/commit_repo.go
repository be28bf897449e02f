package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_commit_store.go -package=mocks repoqa/internal/storage CommitStore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CommitStore defines the interface for commit summary storage.
type CommitStore interface {
	// ExistingHashes returns which of the given hashes are already stored for the project.
	ExistingHashes(ctx context.Context, projectID string, hashes []string) (map[string]bool, error)
	// InsertMany inserts commits, skipping ones already stored. Returns the number inserted.
	InsertMany(ctx context.Context, commits []Commit) (int, error)
	// ListByProject returns commits newest first.
	ListByProject(ctx context.Context, projectID string, limit, offset int) ([]Commit, error)
}

// CommitRepo implements CommitStore.
type CommitRepo struct {
	db *sqlx.DB
}

// NewCommitRepo creates a new CommitRepo.
func NewCommitRepo(db *sqlx.DB) *CommitRepo {
	return &CommitRepo{db: db}
}

func (r *CommitRepo) ExistingHashes(ctx context.Context, projectID string, hashes []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(hashes) == 0 {
		return found, nil
	}
	query, args, err := sqlx.In(
		"SELECT commit_hash FROM commits WHERE project_id = ? AND commit_hash IN (?)", projectID, hashes)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var existing []string
	if err := r.db.SelectContext(ctx, &existing, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query commit hashes: %w", err)
	}
	for _, h := range existing {
		found[h] = true
	}
	return found, nil
}

func (r *CommitRepo) InsertMany(ctx context.Context, commits []Commit) (int, error) {
	if len(commits) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		`INSERT INTO commits (id, project_id, commit_hash, commit_message, author_name, author_avatar_url, commit_date, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (project_id, commit_hash) DO NOTHING`))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	inserted := 0
	ts := now()
	for i := range commits {
		c := &commits[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		c.CreatedAt = ts
		res, err := stmt.ExecContext(ctx, c.ID, c.ProjectID, c.CommitHash, c.CommitMessage,
			c.AuthorName, c.AuthorAvatarURL, c.CommitDate.UTC(), c.Summary, c.CreatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert commit %s: %w", c.CommitHash, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

func (r *CommitRepo) ListByProject(ctx context.Context, projectID string, limit, offset int) ([]Commit, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Commit
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(
		"SELECT * FROM commits WHERE project_id = ? ORDER BY commit_date DESC LIMIT ? OFFSET ?"),
		projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits: %w", err)
	}
	for i := range out {
		normalize(&out[i].CommitDate, &out[i].CreatedAt)
	}
	return out, nil
}
