package knowledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"repoqa/internal/contextutil"
	"repoqa/internal/errs"
	"repoqa/internal/storage"
	"repoqa/internal/vectorstore"
)

// Match is a stored file ranked by similarity to a query vector.
type Match struct {
	File       storage.FileEmbedding
	Similarity float64
}

// Store persists file summaries as a row plus a vector point sharing one ID.
type Store struct {
	rows       storage.FileEmbeddingStore
	index      vectorstore.VectorStore
	collection string
}

// NewStore creates a Store. collection names the vector collection (ignored by pgvector).
func NewStore(rows storage.FileEmbeddingStore, index vectorstore.VectorStore, collection string) *Store {
	return &Store{rows: rows, index: index, collection: collection}
}

// StableID returns the record ID of a file, the same on every ingestion run.
func StableID(projectID, fileName string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(projectID+"/"+fileName)).String()
}

// Save writes the row, then the vector. If the vector write fails the row is
// removed again, so a file is either fully indexed or absent.
func (s *Store) Save(ctx context.Context, f *storage.FileEmbedding) error {
	if f.ID == "" {
		f.ID = StableID(f.ProjectID, f.FileName)
	}

	if err := s.rows.Upsert(ctx, f); err != nil {
		return errs.Kind(errs.ErrPersistenceFailed, err)
	}

	point := vectorstore.Point{
		ID:  f.ID,
		Vec: f.Embedding,
		Meta: map[string]any{
			"project_id": f.ProjectID,
			"file_name":  f.FileName,
		},
	}
	if err := s.index.Upsert(ctx, s.collection, []vectorstore.Point{point}); err != nil {
		if delErr := s.rows.Delete(ctx, f.ID); delErr != nil {
			contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to roll back file row",
				"file", f.FileName, "id", f.ID, "error", delErr)
			err = errors.Join(err, delErr)
		}
		return errs.Kind(errs.ErrPersistenceFailed, err)
	}
	return nil
}

// Search returns up to limit files of the project nearest to vec, in index order.
// Index hits without a row are dropped.
func (s *Store) Search(ctx context.Context, projectID string, vec []float32, limit int) ([]Match, error) {
	hits, err := s.index.Search(ctx, s.collection, vec, limit, map[string]any{"project_id": projectID})
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.PointID)
	}
	rows, err := s.rows.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load matched files: %w", err)
	}
	byID := make(map[string]storage.FileEmbedding, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}

	matches := make([]Match, 0, len(hits))
	for _, h := range hits {
		row, ok := byID[h.PointID]
		if !ok {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "vector without file row", "id", h.PointID)
			continue
		}
		matches = append(matches, Match{File: row, Similarity: h.Score})
	}
	return matches, nil
}

// DeleteProject removes every vector point of the project.
// Rows are removed by the project delete cascade.
func (s *Store) DeleteProject(ctx context.Context, projectID string) error {
	if err := s.index.DeleteByFilter(ctx, s.collection, map[string]any{"project_id": projectID}); err != nil {
		return fmt.Errorf("failed to delete project vectors: %w", err)
	}
	return nil
}
