package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_file_embedding_store.go -package=mocks repoqa/internal/storage FileEmbeddingStore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// FileEmbeddingStore defines the interface for indexed file storage.
type FileEmbeddingStore interface {
	// Upsert inserts the record or replaces the one with the same ID.
	// The ID must be set before calling this method.
	Upsert(ctx context.Context, f *FileEmbedding) error
	// Delete removes a record by ID. Missing records are not an error.
	Delete(ctx context.Context, id string) error
	// GetByIDs returns the records found, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]FileEmbedding, error)
	// CountByProject returns the number of indexed files of a project.
	CountByProject(ctx context.Context, projectID string) (int, error)
}

// FileEmbeddingRepo implements FileEmbeddingStore.
// The summary vector lives in the vector index, not here.
type FileEmbeddingRepo struct {
	db *sqlx.DB
}

// NewFileEmbeddingRepo creates a new FileEmbeddingRepo.
func NewFileEmbeddingRepo(db *sqlx.DB) *FileEmbeddingRepo {
	return &FileEmbeddingRepo{db: db}
}

func (r *FileEmbeddingRepo) Upsert(ctx context.Context, f *FileEmbedding) error {
	if f.ID == "" {
		return fmt.Errorf("file embedding ID is required")
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now()
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO file_embeddings (id, project_id, file_name, source_code, summary, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET source_code = excluded.source_code, summary = excluded.summary`),
		f.ID, f.ProjectID, f.FileName, f.SourceCode, f.Summary, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert file embedding: %w", err)
	}
	return nil
}

func (r *FileEmbeddingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM file_embeddings WHERE id = ?"), id); err != nil {
		return fmt.Errorf("failed to delete file embedding: %w", err)
	}
	return nil
}

func (r *FileEmbeddingRepo) GetByIDs(ctx context.Context, ids []string) ([]FileEmbedding, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT id, project_id, file_name, source_code, summary, created_at FROM file_embeddings WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var out []FileEmbedding
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get file embeddings: %w", err)
	}
	for i := range out {
		normalize(&out[i].CreatedAt)
	}
	return out, nil
}

func (r *FileEmbeddingRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind("SELECT COUNT(*) FROM file_embeddings WHERE project_id = ?"), projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to count file embeddings: %w", err)
	}
	return n, nil
}
