package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repoqa/internal/errs"
)

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// fakeGitHub serves the subset of the REST API the client uses for acme/widgets.
type fakeGitHub struct {
	mu        sync.Mutex
	entries   []treeEntry
	blobs     map[string]string
	failBlobs map[string]int
	status    int // forced status for every request when non-zero
	requests  []string
	authSeen  []string
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL.Path)
	f.authSeen = append(f.authSeen, r.Header.Get("Authorization"))
	status := f.status
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"message":"forced %d"}`, status)
		return
	}

	switch {
	case r.URL.Path == "/repos/acme/widgets":
		_, _ = w.Write([]byte(`{"full_name":"acme/widgets","default_branch":"trunk"}`))
	case r.URL.Path == "/repos/acme/widgets/branches/trunk" || r.URL.Path == "/repos/acme/widgets/branches/main":
		_, _ = w.Write([]byte(`{"name":"trunk","commit":{"sha":"head123"}}`))
	case strings.HasPrefix(r.URL.Path, "/repos/acme/widgets/branches/"):
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Branch not found"}`))
	case r.URL.Path == "/repos/acme/widgets/git/trees/head123":
		if r.URL.Query().Get("recursive") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"sha": "head123", "tree": f.entries, "truncated": false})
	case strings.HasPrefix(r.URL.Path, "/repos/acme/widgets/git/blobs/"):
		sha := strings.TrimPrefix(r.URL.Path, "/repos/acme/widgets/git/blobs/")
		f.mu.Lock()
		failStatus := f.failBlobs[sha]
		f.mu.Unlock()
		if failStatus != 0 {
			w.WriteHeader(failStatus)
			_, _ = w.Write([]byte(`{"message":"blob failure"}`))
			return
		}
		content, ok := f.blobs[sha]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/vnd.github.raw")
		_, _ = w.Write([]byte(content))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}
}

func (f *fakeGitHub) seen() (paths, auth []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...), append([]string(nil), f.authSeen...)
}

func newTestClient(t *testing.T, fake *fakeGitHub) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{BaseURL: srv.URL, Token: "configured-token"})
	require.NoError(t, err)
	return client
}

func blobEntries(n int) []treeEntry {
	entries := make([]treeEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, treeEntry{Path: fmt.Sprintf("pkg/file%02d.go", i), Type: "blob", SHA: fmt.Sprintf("b%02d", i)})
	}
	return entries
}

func TestClient_Resolve(t *testing.T) {
	client := newTestClient(t, &fakeGitHub{})
	ctx := context.Background()

	t.Run("fills default branch", func(t *testing.T) {
		got, err := client.Resolve(ctx, RepoRef{Owner: "acme", Name: "widgets"}, "")
		require.NoError(t, err)
		assert.Equal(t, "trunk", got.Branch)
	})

	t.Run("existing branch", func(t *testing.T) {
		got, err := client.Resolve(ctx, RepoRef{Owner: "acme", Name: "widgets", Branch: "main"}, "")
		require.NoError(t, err)
		assert.Equal(t, "main", got.Branch)
	})

	t.Run("missing branch", func(t *testing.T) {
		_, err := client.Resolve(ctx, RepoRef{Owner: "acme", Name: "widgets", Branch: "nope"}, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrBranchNotFound), "error = %v", err)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("missing repository", func(t *testing.T) {
		_, err := client.Resolve(ctx, RepoRef{Owner: "acme", Name: "gone"}, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrRepositoryNotFound), "error = %v", err)
	})

	t.Run("missing repository with branch", func(t *testing.T) {
		_, err := client.Resolve(ctx, RepoRef{Owner: "acme", Name: "gone", Branch: "main"}, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrRepositoryNotFound), "error = %v", err)
	})
}

func TestClient_Resolve_AccessDenied(t *testing.T) {
	client := newTestClient(t, &fakeGitHub{status: http.StatusForbidden})

	_, err := client.Resolve(context.Background(), RepoRef{Owner: "acme", Name: "widgets"}, "bad-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrAccessDenied), "error = %v", err)
}

func TestClient_TokenPrecedence(t *testing.T) {
	fake := &fakeGitHub{}
	client := newTestClient(t, fake)

	_, err := client.Resolve(context.Background(), RepoRef{Owner: "acme", Name: "widgets"}, "request-token")
	require.NoError(t, err)
	_, err = client.Resolve(context.Background(), RepoRef{Owner: "acme", Name: "widgets"}, "")
	require.NoError(t, err)

	_, auth := fake.seen()
	require.Len(t, auth, 2)
	assert.Equal(t, "Bearer request-token", auth[0])
	assert.Equal(t, "Bearer configured-token", auth[1])
}

func TestClient_CheckSize(t *testing.T) {
	ctx := context.Background()
	ref := RepoRef{Owner: "acme", Name: "widgets"}

	t.Run("within limit", func(t *testing.T) {
		entries := append(blobEntries(12), treeEntry{Path: "pkg", Type: "tree", SHA: "t1"})
		client := newTestClient(t, &fakeGitHub{entries: entries})

		count, err := client.CheckSize(ctx, ref, "", 60)
		require.NoError(t, err)
		assert.Equal(t, 12, count)
	})

	t.Run("too large is stable across calls", func(t *testing.T) {
		client := newTestClient(t, &fakeGitHub{entries: blobEntries(75)})

		for i := 0; i < 2; i++ {
			_, err := client.CheckSize(ctx, ref, "", 60)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrRepositoryTooLarge))
			assert.Equal(t, "repository is too large (75 files found, maximum 60 allowed)", err.Error())

			var tooLarge *errs.TooLargeError
			require.True(t, errors.As(err, &tooLarge))
			assert.Equal(t, 75, tooLarge.Count)
			assert.Equal(t, 60, tooLarge.Max)
		}
	})

	t.Run("missing repository", func(t *testing.T) {
		client := newTestClient(t, &fakeGitHub{})
		_, err := client.CheckSize(ctx, RepoRef{Owner: "acme", Name: "gone"}, "", 60)
		assert.True(t, errors.Is(err, errs.ErrRepositoryNotFound), "error = %v", err)
	})

	t.Run("server failure", func(t *testing.T) {
		client := newTestClient(t, &fakeGitHub{status: http.StatusInternalServerError})
		_, err := client.CheckSize(ctx, ref, "", 60)
		assert.True(t, errors.Is(err, errs.ErrSizeCheckFailed), "error = %v", err)
	})
}

func TestClient_FetchFiles(t *testing.T) {
	fake := &fakeGitHub{
		entries: []treeEntry{
			{Path: "README.md", Type: "blob", SHA: "readme"},
			{Path: "node_modules/x/index.js", Type: "blob", SHA: "nm"},
			{Path: "cmd", Type: "tree", SHA: "tree1"},
			{Path: "cmd/main.go", Type: "blob", SHA: "main"},
			{Path: "assets/logo.png", Type: "blob", SHA: "logo"},
			{Path: "data.txt", Type: "blob", SHA: "latin1"},
			{Path: "package-lock.json", Type: "blob", SHA: "lock"},
			{Path: "internal/app.go", Type: "blob", SHA: "app"},
		},
		blobs: map[string]string{
			"readme": "# Widgets\n",
			"main":   "package main\n",
			"latin1": string([]byte{0xff, 0xfe, 0x41}),
			"app":    "package internal\n",
		},
	}
	client := newTestClient(t, fake)

	docs, err := client.FetchFiles(context.Background(), RepoRef{Owner: "acme", Name: "widgets"}, "")
	require.NoError(t, err)

	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		paths = append(paths, d.Path)
	}
	assert.Equal(t, []string{"README.md", "cmd/main.go", "internal/app.go"}, paths)
	assert.Equal(t, "package main\n", docs[1].Content)
	assert.Equal(t, len("package main\n"), docs[1].Size)

	requested, _ := fake.seen()
	for _, p := range requested {
		assert.NotContains(t, p, "/git/blobs/nm", "ignored files must not be downloaded")
		assert.NotContains(t, p, "/git/blobs/logo", "binary files must not be downloaded")
		assert.NotContains(t, p, "/git/blobs/lock", "lockfiles must not be downloaded")
	}
}

func TestClient_FetchFiles_NothingSurvives(t *testing.T) {
	fake := &fakeGitHub{
		entries: []treeEntry{
			{Path: "yarn.lock", Type: "blob", SHA: "lock"},
			{Path: "dist/bundle.js", Type: "blob", SHA: "dist"},
		},
	}
	client := newTestClient(t, fake)

	_, err := client.FetchFiles(context.Background(), RepoRef{Owner: "acme", Name: "widgets"}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrNoFilesFound), "error = %v", err)
}

func TestClient_FetchFiles_SkipsBrokenBlob(t *testing.T) {
	fake := &fakeGitHub{
		entries: []treeEntry{
			{Path: "a.go", Type: "blob", SHA: "a"},
			{Path: "b.go", Type: "blob", SHA: "b"},
		},
		blobs:     map[string]string{"a": "package a\n", "b": "package b\n"},
		failBlobs: map[string]int{"b": http.StatusInternalServerError},
	}
	client := newTestClient(t, fake)

	docs, err := client.FetchFiles(context.Background(), RepoRef{Owner: "acme", Name: "widgets"}, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a.go", docs[0].Path)
}

func TestClient_FetchFiles_AccessDeniedAborts(t *testing.T) {
	fake := &fakeGitHub{
		entries:   blobEntries(4),
		blobs:     map[string]string{"b00": "x", "b01": "x", "b02": "x", "b03": "x"},
		failBlobs: map[string]int{"b02": http.StatusForbidden},
	}
	client := newTestClient(t, fake)

	_, err := client.FetchFiles(context.Background(), RepoRef{Owner: "acme", Name: "widgets"}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrAccessDenied), "error = %v", err)
}
