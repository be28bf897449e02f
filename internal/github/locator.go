// Package github talks to the GitHub REST API: it resolves repository
// references, guards repository size, downloads file contents and lists
// commits.
package github

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"repoqa/internal/errs"
)

var (
	nameSegment = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	branchName  = regexp.MustCompile(`^[a-zA-Z0-9\-_/.]+$`)
)

// RepoRef identifies a repository branch on GitHub.
type RepoRef struct {
	Owner  string
	Name   string
	Branch string
}

// FullName returns "owner/name".
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// URL returns the canonical https URL of the repository.
func (r RepoRef) URL() string {
	return "https://github.com/" + r.FullName()
}

func (r RepoRef) String() string {
	if r.Branch == "" {
		return r.FullName()
	}
	return r.FullName() + "@" + r.Branch
}

// ParseURL parses a GitHub repository URL into a RepoRef.
// Accepted forms include https://github.com/o/r, http://, www.github.com,
// bare github.com/o/r, git@github.com:o/r, with or without a .git suffix.
// A /tree/<branch> suffix supplies the branch unless branch is non-empty.
func ParseURL(raw, branch string) (RepoRef, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return RepoRef{}, errs.Kind(errs.ErrInvalidReference, fmt.Errorf("empty repository URL"))
	}

	var path string
	switch {
	case strings.HasPrefix(s, "git@"):
		host, rest, ok := strings.Cut(strings.TrimPrefix(s, "git@"), ":")
		if !ok || !isGitHubHost(host) {
			return RepoRef{}, invalidRef(raw)
		}
		path = rest
	default:
		if !strings.Contains(s, "://") {
			s = "https://" + s
		}
		u, err := url.Parse(s)
		if err != nil {
			return RepoRef{}, errs.Kind(errs.ErrInvalidReference, err)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return RepoRef{}, invalidRef(raw)
		}
		if !isGitHubHost(u.Hostname()) {
			return RepoRef{}, invalidRef(raw)
		}
		path = u.Path
	}

	path = strings.Trim(path, "/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return RepoRef{}, invalidRef(raw)
	}

	ref := RepoRef{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}
	if !nameSegment.MatchString(ref.Owner) || !nameSegment.MatchString(ref.Name) {
		return RepoRef{}, invalidRef(raw)
	}

	if len(parts) > 3 && parts[2] == "tree" {
		ref.Branch = strings.Join(parts[3:], "/")
	}
	if b := strings.TrimSpace(branch); b != "" {
		ref.Branch = b
	}
	if ref.Branch != "" {
		if err := ValidateBranch(ref.Branch); err != nil {
			return RepoRef{}, err
		}
	}

	return ref, nil
}

// ValidateBranch reports whether name is an acceptable branch name.
func ValidateBranch(name string) error {
	if !branchName.MatchString(name) {
		return &errs.ValidationError{
			Field:   "branch",
			Message: "may only contain letters, digits, '-', '_', '/' and '.'",
		}
	}
	return nil
}

func isGitHubHost(host string) bool {
	host = strings.ToLower(host)
	return host == "github.com" || host == "www.github.com"
}

func invalidRef(raw string) error {
	return fmt.Errorf("%w: %q is not a GitHub repository URL", errs.ErrInvalidReference, raw)
}
