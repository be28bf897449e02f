package github

import (
	"path"
	"strings"
)

var defaultIgnorePatterns = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"pnpm-lock.json",
	"bun.lockb",
	"go.sum",
	"node_modules",
	".git",
	".gitignore",
	"dist",
	"build",
	".next",
	"coverage",
	".nyc_output",
	"vendor",
	"*.log",
	"*.tmp",
	"*.cache",
	"*.min.js",
	"*.min.css",
	"LICENSE*",
}

var binaryExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".svg": {}, ".ico": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".rar": {}, ".7z": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wav": {},
	".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {},
	".bin": {}, ".dat": {}, ".db": {},
}

// IsBinaryPath reports whether p has a known binary file extension.
func IsBinaryPath(p string) bool {
	_, ok := binaryExtensions[strings.ToLower(path.Ext(p))]
	return ok
}

// Filter decides which tree entries are downloaded.
// A pattern without a slash is matched against every path segment;
// a pattern with a slash is matched against the whole path or as a directory prefix.
type Filter struct {
	patterns []string
}

// NewFilter returns a Filter with the default ignore list plus extra patterns.
func NewFilter(extra ...string) *Filter {
	patterns := make([]string, 0, len(defaultIgnorePatterns)+len(extra))
	patterns = append(patterns, defaultIgnorePatterns...)
	for _, p := range extra {
		if p = strings.Trim(strings.TrimSpace(p), "/"); p != "" {
			patterns = append(patterns, p)
		}
	}
	return &Filter{patterns: patterns}
}

// Allow reports whether the file at p should be fetched.
func (f *Filter) Allow(p string) bool {
	if IsBinaryPath(p) {
		return false
	}
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for _, pattern := range f.patterns {
		if strings.Contains(pattern, "/") {
			if ok, _ := path.Match(pattern, p); ok || strings.HasPrefix(p, pattern+"/") {
				return false
			}
			continue
		}
		for _, seg := range segments {
			if ok, _ := path.Match(pattern, seg); ok {
				return false
			}
		}
	}
	return true
}
