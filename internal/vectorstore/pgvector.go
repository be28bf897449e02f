package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"repoqa/internal/contextutil"
)

// filterColumns maps metadata keys to file_embeddings columns.
var filterColumns = map[string]string{
	"project_id": "project_id",
	"file_name":  "file_name",
}

// PgvectorStore implements VectorStore on the summary_embedding column of the
// file_embeddings table. Points are rows: a point ID is a row ID, and the
// collection argument is ignored. Rows must exist before their vectors are set.
type PgvectorStore struct {
	db *sqlx.DB
}

// NewPgvectorStore creates a store over a Postgres database migrated with a vector column.
func NewPgvectorStore(db *sqlx.DB) *PgvectorStore {
	return &PgvectorStore{db: db}
}

// Upsert sets the vector of each existing row.
func (s *PgvectorStore) Upsert(ctx context.Context, collection string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	for _, p := range points {
		res, err := s.db.ExecContext(ctx,
			"UPDATE file_embeddings SET summary_embedding = $1 WHERE id = $2",
			pgvector.NewVector(p.Vec), p.ID,
		)
		if err != nil {
			logger.ErrorContext(ctx, "failed to store vector", "id", p.ID, "error", err)
			return fmt.Errorf("failed to upsert points: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("failed to upsert points: no row with id %s", p.ID)
		}
	}
	return nil
}

// Search ranks rows by cosine similarity, 1 - cosine distance.
func (s *PgvectorStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	where, args, err := whereClause(filters, 2)
	if err != nil {
		return nil, err
	}
	args = append([]any{pgvector.NewVector(query)}, args...)
	args = append(args, k)

	q := fmt.Sprintf(`SELECT id, project_id, file_name, 1 - (summary_embedding <=> $1) AS similarity
		FROM file_embeddings
		WHERE summary_embedding IS NOT NULL%s
		ORDER BY summary_embedding <=> $1
		LIMIT $%d`, where, len(args))

	var rows []struct {
		ID         string  `db:"id"`
		ProjectID  string  `db:"project_id"`
		FileName   string  `db:"file_name"`
		Similarity float64 `db:"similarity"`
	}
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]SearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, SearchResult{
			PointID: r.ID,
			Score:   r.Similarity,
			Meta:    map[string]any{"project_id": r.ProjectID, "file_name": r.FileName},
		})
	}
	return results, nil
}

// Delete clears the vectors of the given rows.
func (s *PgvectorStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("UPDATE file_embeddings SET summary_embedding = NULL WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}

// DeleteByFilter clears the vectors of matching rows. Deleting the rows
// themselves is left to the relational store.
func (s *PgvectorStore) DeleteByFilter(ctx context.Context, collection string, filters map[string]any) error {
	if len(filters) == 0 {
		return fmt.Errorf("refusing to delete without a filter")
	}
	where, args, err := whereClause(filters, 1)
	if err != nil {
		return err
	}
	q := "UPDATE file_embeddings SET summary_embedding = NULL WHERE summary_embedding IS NOT NULL" + where
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}

// whereClause renders filters as " AND col = $n" terms starting at placeholder first.
func whereClause(filters map[string]any, first int) (string, []any, error) {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	args := make([]any, 0, len(keys))
	for i, key := range keys {
		col, ok := filterColumns[key]
		if !ok {
			return "", nil, fmt.Errorf("unsupported filter %q", key)
		}
		fmt.Fprintf(&b, " AND %s = $%d", col, first+i)
		args = append(args, filters[key])
	}
	return b.String(), args, nil
}

// GetCollectionInfo reports how many rows carry a vector and their dimension.
func (s *PgvectorStore) GetCollectionInfo(ctx context.Context, collection string) (*CollectionInfo, error) {
	var row struct {
		Count int `db:"count"`
		Dims  int `db:"dims"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT count(*) AS count, COALESCE(max(vector_dims(summary_embedding)), 0) AS dims
		 FROM file_embeddings WHERE summary_embedding IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection info: %w", err)
	}
	return &CollectionInfo{VectorSize: row.Dims, PointsCount: row.Count, Status: "ok"}, nil
}
