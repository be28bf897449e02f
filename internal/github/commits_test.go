package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoqa/internal/errs"
)

func TestClient_ListCommits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets/commits" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "main", r.URL.Query().Get("sha"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"sha":"c2","commit":{"message":"Add router","author":{"name":"Ada","date":"2024-05-02T10:00:00Z"}},"author":{"avatar_url":"https://avatars/ada"}},
			{"sha":"c1","commit":{"message":"Initial commit","author":{"name":"Lin","date":"2024-05-01T09:00:00Z"}}}
		]`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	commits, err := client.ListCommits(context.Background(), RepoRef{Owner: "acme", Name: "widgets", Branch: "main"}, "", 2, 10)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "c2", commits[0].SHA)
	assert.Equal(t, "Add router", commits[0].Message)
	assert.Equal(t, "Ada", commits[0].AuthorName)
	assert.Equal(t, "https://avatars/ada", commits[0].AuthorAvatarURL)
	assert.True(t, commits[0].Date.Equal(time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", commits[1].AuthorAvatarURL)

	_, err = client.ListCommits(context.Background(), RepoRef{Owner: "acme", Name: "gone"}, "", 1, 10)
	assert.True(t, errors.Is(err, errs.ErrRepositoryNotFound), "error = %v", err)
}

func TestClient_CommitDiff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/repos/acme/widgets/commits/c2":
			_, _ = w.Write([]byte(`{"sha":"c2","files":[
				{"filename":"router.go","patch":"@@ -1 +1 @@\n-old\n+new"},
				{"filename":"logo.png"}
			]}`))
		case "/repos/acme/widgets/commits/empty":
			_, _ = w.Write([]byte(`{"sha":"empty","files":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
	defer srv.Close()

	client, err := NewClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	ref := RepoRef{Owner: "acme", Name: "widgets"}

	diff, err := client.CommitDiff(context.Background(), ref, "", "c2")
	require.NoError(t, err)
	assert.Equal(t, "File: router.go\n@@ -1 +1 @@\n-old\n+new\n\nFile: logo.png\n", diff)

	diff, err = client.CommitDiff(context.Background(), ref, "", "empty")
	require.NoError(t, err)
	assert.Equal(t, "", diff)

	_, err = client.CommitDiff(context.Background(), ref, "", "missing")
	assert.True(t, errors.Is(err, errs.ErrNotFound), "error = %v", err)
}
