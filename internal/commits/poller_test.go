package commits

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"repoqa/internal/commits/mocks"
	"repoqa/internal/github"
	"repoqa/internal/storage"
	storagemocks "repoqa/internal/storage/mocks"
)

var testRef = github.RepoRef{Owner: "acme", Name: "widgets", Branch: "main"}

func newCommitStore(t *testing.T) (*storage.CommitRepo, string) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.New(storage.DriverSQLite, filepath.Join(t.TempDir(), "commits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(ctx, db, storage.MigrateOptions{}))

	p := &storage.Project{Name: "widgets", GithubURL: "https://github.com/acme/widgets", Branch: "main"}
	require.NoError(t, storage.NewProjectRepo(db).Create(ctx, p))
	return storage.NewCommitRepo(db), p.ID
}

func commitInfo(sha string) github.CommitInfo {
	return github.CommitInfo{
		SHA:        sha,
		Message:    "change " + sha,
		AuthorName: "dev",
		Date:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPoller_Poll_IsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	summarizer := mocks.NewMockDiffSummarizer(ctrl)
	store, projectID := newCommitStore(t)
	ctx := context.Background()

	page := []github.CommitInfo{commitInfo("a1"), commitInfo("b2")}
	source.EXPECT().ListCommits(gomock.Any(), testRef, "tok", 1, PageSize).Return(page, nil).Times(2)
	source.EXPECT().CommitDiff(gomock.Any(), testRef, "tok", gomock.Any()).Return("diff --git a b", nil).Times(2)
	summarizer.EXPECT().SummarizeDiff(gomock.Any(), "diff --git a b").Return("* changed things", nil).Times(2)

	p := NewPoller(source, summarizer, store)

	n, err := p.Poll(ctx, projectID, testRef, 1, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = p.Poll(ctx, projectID, testRef, 1, "tok")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	stored, err := store.ListByProject(ctx, projectID, 0, 0)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, c := range stored {
		assert.Equal(t, "* changed things", c.Summary)
	}
}

func TestPoller_Poll_Placeholders(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	summarizer := mocks.NewMockDiffSummarizer(ctrl)
	store := storagemocks.NewMockCommitStore(ctrl)

	source.EXPECT().ListCommits(gomock.Any(), testRef, "", 2, PageSize).
		Return([]github.CommitInfo{commitInfo("empty"), commitInfo("nodiff"), commitInfo("nosummary"), commitInfo("ok")}, nil)
	source.EXPECT().CommitDiff(gomock.Any(), testRef, "", "empty").Return("", nil)
	source.EXPECT().CommitDiff(gomock.Any(), testRef, "", "nodiff").Return("", errors.New("boom"))
	source.EXPECT().CommitDiff(gomock.Any(), testRef, "", "nosummary").Return("d1", nil)
	source.EXPECT().CommitDiff(gomock.Any(), testRef, "", "ok").Return("d2", nil)
	summarizer.EXPECT().SummarizeDiff(gomock.Any(), "d1").Return("", errors.New("model down"))
	summarizer.EXPECT().SummarizeDiff(gomock.Any(), "d2").Return("* fine", nil)

	store.EXPECT().ExistingHashes(gomock.Any(), "p1", []string{"empty", "nodiff", "nosummary", "ok"}).
		Return(map[string]bool{}, nil)
	store.EXPECT().InsertMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got []storage.Commit) (int, error) {
			want := map[string]string{
				"empty":     NoChanges,
				"nodiff":    SummaryUnavailable,
				"nosummary": SummaryUnavailable,
				"ok":        "* fine",
			}
			require.Len(t, got, len(want))
			for _, c := range got {
				assert.Equal(t, "p1", c.ProjectID)
				assert.Equal(t, want[c.CommitHash], c.Summary, c.CommitHash)
				assert.Equal(t, "change "+c.CommitHash, c.CommitMessage)
			}
			return len(got), nil
		})

	n, err := NewPoller(source, summarizer, store).Poll(context.Background(), "p1", testRef, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestPoller_Poll_SkipsStoredCommits(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	summarizer := mocks.NewMockDiffSummarizer(ctrl)
	store := storagemocks.NewMockCommitStore(ctrl)

	source.EXPECT().ListCommits(gomock.Any(), testRef, "", 1, PageSize).
		Return([]github.CommitInfo{commitInfo("old"), commitInfo("new")}, nil)
	source.EXPECT().CommitDiff(gomock.Any(), testRef, "", "new").Return("d", nil)
	summarizer.EXPECT().SummarizeDiff(gomock.Any(), "d").Return("s", nil)
	store.EXPECT().ExistingHashes(gomock.Any(), "p1", gomock.Any()).Return(map[string]bool{"old": true}, nil)
	store.EXPECT().InsertMany(gomock.Any(), gomock.Len(1)).Return(1, nil)

	n, err := NewPoller(source, summarizer, store).Poll(context.Background(), "p1", testRef, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPoller_Poll_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*mocks.MockSource, *storagemocks.MockCommitStore)
	}{
		{
			name: "list fails",
			setup: func(s *mocks.MockSource, _ *storagemocks.MockCommitStore) {
				s.EXPECT().ListCommits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("github down"))
			},
		},
		{
			name: "dedupe lookup fails",
			setup: func(s *mocks.MockSource, st *storagemocks.MockCommitStore) {
				s.EXPECT().ListCommits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]github.CommitInfo{commitInfo("a")}, nil)
				st.EXPECT().ExistingHashes(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
		},
		{
			name: "insert fails",
			setup: func(s *mocks.MockSource, st *storagemocks.MockCommitStore) {
				s.EXPECT().ListCommits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]github.CommitInfo{commitInfo("a")}, nil)
				s.EXPECT().CommitDiff(gomock.Any(), gomock.Any(), gomock.Any(), "a").Return("", nil)
				st.EXPECT().ExistingHashes(gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]bool{}, nil)
				st.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mocks.NewMockSource(ctrl)
			store := storagemocks.NewMockCommitStore(ctrl)
			tt.setup(source, store)

			n, err := NewPoller(source, mocks.NewMockDiffSummarizer(ctrl), store).
				Poll(context.Background(), "p1", testRef, 1, "")
			assert.Error(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestPoller_Poll_EmptyPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().ListCommits(gomock.Any(), gomock.Any(), gomock.Any(), 5, PageSize).Return(nil, nil)

	n, err := NewPoller(source, mocks.NewMockDiffSummarizer(ctrl), storagemocks.NewMockCommitStore(ctrl)).
		Poll(context.Background(), "p1", testRef, 5, "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
