package knowledge

import (
	"path"
	"strings"
	"unicode/utf8"
)

// continuationMarker separates the head of a file from its important lines.
const continuationMarker = "\n\n// ... (file continues with more implementation details)\n\n"

var importantPrefixes = []string{
	"import ", "export ", "package ", "func ", "class ", "function ",
	"const ", "let ", "var ", "interface ", "type ", "def ",
	"//", "/*", "*",
}

var importantSubstrings = []string{"async ", "=>"}

// scriptExtensions are languages where '#' starts a comment.
var scriptExtensions = map[string]struct{}{
	".py": {}, ".rb": {}, ".sh": {}, ".bash": {}, ".zsh": {}, ".pl": {},
	".yaml": {}, ".yml": {}, ".toml": {}, ".r": {}, ".ps1": {},
}

// Reduce fits content into budget characters. Content within budget is returned unchanged.
// Otherwise the important lines are kept; if they still do not fit, the result is the
// first 70% of the budget from content, a marker, and the first 30% from the important lines.
func Reduce(filePath, content string, budget int) string {
	if budget <= 0 || utf8.RuneCountInString(content) <= budget {
		return content
	}

	important := ImportantLines(filePath, content)
	if utf8.RuneCountInString(important) <= budget {
		return important
	}

	head := budget * 7 / 10
	tail := budget * 3 / 10
	return truncate(content, head) + continuationMarker + truncate(important, tail)
}

// ImportantLines returns the declaration, import and comment lines of content,
// and for Markdown files its headings.
func ImportantLines(filePath, content string) string {
	ext := strings.ToLower(path.Ext(filePath))
	if ext == ".md" || ext == ".markdown" {
		if headings := Outline([]byte(content)); len(headings) > 0 {
			return strings.Join(headings, "\n")
		}
	}
	_, script := scriptExtensions[ext]

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if isImportant(strings.TrimSpace(line), script) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func isImportant(line string, script bool) bool {
	for _, p := range importantPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	if script && strings.HasPrefix(line, "#") {
		return true
	}
	for _, s := range importantSubstrings {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
