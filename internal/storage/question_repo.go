package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_question_store.go -package=mocks repoqa/internal/storage QuestionStore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// QuestionStore defines the interface for saved question storage.
type QuestionStore interface {
	Create(ctx context.Context, q *Question) error
	// ListByProject returns saved questions newest first.
	ListByProject(ctx context.Context, projectID string) ([]Question, error)
	// Delete returns ErrNotFound if the question does not belong to the project.
	Delete(ctx context.Context, projectID, id string) error
}

// QuestionRepo implements QuestionStore.
type QuestionRepo struct {
	db *sqlx.DB
}

// NewQuestionRepo creates a new QuestionRepo.
func NewQuestionRepo(db *sqlx.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

func (r *QuestionRepo) Create(ctx context.Context, q *Question) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.CreatedAt = now()
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO questions (id, project_id, question, answer, file_references, created_at)
		 VALUES (:id, :project_id, :question, :answer, :file_references, :created_at)`, q)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

func (r *QuestionRepo) ListByProject(ctx context.Context, projectID string) ([]Question, error) {
	var out []Question
	err := r.db.SelectContext(ctx, &out,
		r.db.Rebind("SELECT * FROM questions WHERE project_id = ? ORDER BY created_at DESC"), projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	for i := range out {
		normalize(&out[i].CreatedAt)
	}
	return out, nil
}

func (r *QuestionRepo) Delete(ctx context.Context, projectID, id string) error {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind("DELETE FROM questions WHERE id = ? AND project_id = ?"), id, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
