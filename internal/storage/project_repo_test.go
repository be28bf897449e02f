package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"repoqa/internal/errs"
)

func createProject(t *testing.T, repo *ProjectRepo, name string) *Project {
	t.Helper()
	p := &Project{Name: name, GithubURL: "https://github.com/acme/" + name, Branch: "main"}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return p
}

func TestProjectRepo_CreateAndGet(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	ctx := context.Background()

	p := createProject(t, repo, "widgets")
	if p.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}
	if p.Status != StatusLoading {
		t.Errorf("Create() status = %v, want %v", p.Status, StatusLoading)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "widgets" || got.Branch != "main" {
		t.Errorf("GetByID() = %+v, want name widgets on main", got)
	}
	if got.CreatedAt.Location() != time.UTC {
		t.Errorf("GetByID() CreatedAt location = %v, want UTC", got.CreatedAt.Location())
	}

	byName, err := repo.GetByName(ctx, "widgets")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if byName.ID != p.ID {
		t.Errorf("GetByName() ID = %v, want %v", byName.ID, p.ID)
	}
}

func TestProjectRepo_Create_DuplicateName(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	createProject(t, repo, "widgets")

	err := repo.Create(context.Background(), &Project{Name: "widgets", GithubURL: "https://github.com/x/y"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestProjectRepo_UpdateStatus(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	ctx := context.Background()
	p := createProject(t, repo, "widgets")

	if err := repo.UpdateStatus(ctx, p.ID, StatusReady, 12); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != StatusReady || got.FileCount != 12 {
		t.Errorf("after UpdateStatus() = (%v, %d), want (ready, 12)", got.Status, got.FileCount)
	}

	if err := repo.UpdateStatus(ctx, "missing", StatusReady, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStatus() missing error = %v, want ErrNotFound", err)
	}
}

func TestProjectRepo_FailStale(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	ctx := context.Background()

	stuck := createProject(t, repo, "stuck")
	done := createProject(t, repo, "done")
	if err := repo.UpdateStatus(ctx, done.ID, StatusReady, 3); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	// Nothing is older than an hour ago.
	n, err := repo.FailStale(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("FailStale() error = %v", err)
	}
	if n != 0 {
		t.Errorf("FailStale() = %d, want 0", n)
	}

	n, err = repo.FailStale(ctx, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("FailStale() error = %v", err)
	}
	if n != 1 {
		t.Errorf("FailStale() = %d, want 1", n)
	}

	got, _ := repo.GetByID(ctx, stuck.ID)
	if got.Status != StatusFailed {
		t.Errorf("stuck project status = %v, want failed", got.Status)
	}
	got, _ = repo.GetByID(ctx, done.ID)
	if got.Status != StatusReady {
		t.Errorf("ready project status = %v, want ready", got.Status)
	}
}

func TestProjectRepo_Touch_KeepsLoadingProjectAlive(t *testing.T) {
	repo := NewProjectRepo(newTestDB(t))
	ctx := context.Background()

	running := createProject(t, repo, "running")
	crashed := createProject(t, repo, "crashed")
	old := time.Now().Add(-2 * time.Hour).UTC()
	if _, err := repo.db.ExecContext(ctx, repo.db.Rebind("UPDATE projects SET updated_at = ?"), old); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if err := repo.Touch(ctx, running.ID); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}

	n, err := repo.FailStale(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("FailStale() error = %v", err)
	}
	if n != 1 {
		t.Errorf("FailStale() = %d, want 1", n)
	}
	got, _ := repo.GetByID(ctx, running.ID)
	if got.Status != StatusLoading {
		t.Errorf("touched project status = %v, want loading", got.Status)
	}
	got, _ = repo.GetByID(ctx, crashed.ID)
	if got.Status != StatusFailed {
		t.Errorf("untouched project status = %v, want failed", got.Status)
	}
}

func TestProjectRepo_Delete_Cascades(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectRepo(db)
	files := NewFileEmbeddingRepo(db)
	questions := NewQuestionRepo(db)
	ctx := context.Background()

	p := createProject(t, projects, "widgets")
	if err := files.Upsert(ctx, &FileEmbedding{ID: "f1", ProjectID: p.ID, FileName: "main.go", SourceCode: "package main", Summary: "entry"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := questions.Create(ctx, &Question{ProjectID: p.ID, Question: "q", Answer: "a"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := projects.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	n, err := files.CountByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("CountByProject() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountByProject() after delete = %d, want 0", n)
	}
	qs, err := questions.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("ListByProject() after delete = %d, want 0", len(qs))
	}

	if err := projects.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}
