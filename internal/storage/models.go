package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusLoading ProjectStatus = "loading"
	StatusReady   ProjectStatus = "ready"
	StatusFailed  ProjectStatus = "failed"
)

// Project is a registered repository.
type Project struct {
	ID        string        `db:"id"`
	Name      string        `db:"name"`
	GithubURL string        `db:"github_url"`
	Branch    string        `db:"branch"`
	Status    ProjectStatus `db:"status"`
	FileCount int           `db:"file_count"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// FileEmbedding is one indexed file: its source, summary and summary vector.
type FileEmbedding struct {
	ID         string    `db:"id"` // UUID, same as the vector point ID
	ProjectID  string    `db:"project_id"`
	FileName   string    `db:"file_name"`
	SourceCode string    `db:"source_code"`
	Summary    string    `db:"summary"`
	Embedding  []float32 `db:"-"` // stored in the vector index
	CreatedAt  time.Time `db:"created_at"`
}

// Commit is a summarized commit.
type Commit struct {
	ID              string    `db:"id"`
	ProjectID       string    `db:"project_id"`
	CommitHash      string    `db:"commit_hash"`
	CommitMessage   string    `db:"commit_message"`
	AuthorName      string    `db:"author_name"`
	AuthorAvatarURL string    `db:"author_avatar_url"`
	CommitDate      time.Time `db:"commit_date"`
	Summary         string    `db:"summary"`
	CreatedAt       time.Time `db:"created_at"`
}

// FileReference points at a file used to answer a question.
type FileReference struct {
	FileName   string  `json:"fileName"`
	SourceCode string  `json:"sourceCode"`
	Summary    string  `json:"summary"`
	Similarity float64 `json:"similarity,omitempty"`
}

// References is stored as a JSON array.
type References []FileReference

// Value implements driver.Valuer.
func (r References) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (r *References) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into References", src)
	}
	return json.Unmarshal(raw, r)
}

// Question is a saved question and its answer.
type Question struct {
	ID             string     `db:"id"`
	ProjectID      string     `db:"project_id"`
	Question       string     `db:"question"`
	Answer         string     `db:"answer"`
	FileReferences References `db:"file_references"`
	CreatedAt      time.Time  `db:"created_at"`
}
