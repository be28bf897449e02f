// Package knowledge turns repository content into searchable knowledge:
// file and diff summaries, summary embeddings, and their persistence.
package knowledge

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"repoqa/internal/contextutil"
	"repoqa/internal/errs"
	"repoqa/internal/llm"
)

// DefaultSummaryBudget is the number of file characters sent to the model.
const DefaultSummaryBudget = 30000

const (
	maxDiffChars      = 100000
	diffTruncatedNote = "\n... (diff truncated)"
)

const fileSystemPrompt = `You are a senior software engineer who onboards junior engineers onto unfamiliar codebases.`

const filePromptTemplate = `Explain the purpose of the file %s to a junior engineer joining the project.

Here is the code:
---
%s
---

Write a summary of no more than 1000 words covering:
- the main purpose and functionality of the file
- its key components, functions and types
- how it fits into the architecture of the application
- important implementation details
- its dependencies and interactions with other parts of the system

Help the reader understand what the code does and why it is structured this way.`

const diffSystemPrompt = `You are an expert programmer summarizing a git diff.
The diff is given per file as "File: <path>" followed by a unified patch.
Lines starting with "+" were added, lines starting with "-" were removed,
other lines are unchanged context and not part of the change.

Write short bullet comments, one per logical change, and append the affected
file paths in square brackets when one or two files are involved, for example:
* Raised the page size from 10 to 100 [server/api.go], [server/constants.go]
* Fixed a typo in the release workflow name [.github/workflows/release.yml]
Most commits need fewer comments than that. Do not repeat the example.`

// Summarizer produces natural-language summaries of files and commit diffs.
type Summarizer struct {
	gen     llm.Generator
	limiter *llm.Limiter
	retry   llm.RetryPolicy
	budget  int
}

// NewSummarizer creates a Summarizer. budget <= 0 selects DefaultSummaryBudget.
func NewSummarizer(gen llm.Generator, limiter *llm.Limiter, budget int, retry llm.RetryPolicy) *Summarizer {
	if budget <= 0 {
		budget = DefaultSummaryBudget
	}
	return &Summarizer{
		gen:     gen,
		limiter: limiter,
		retry:   retry,
		budget:  budget,
	}
}

// SummarizeFile summarizes one file. Content over the budget is reduced first.
func (s *Summarizer) SummarizeFile(ctx context.Context, filePath, content string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	code := Reduce(filePath, content, s.budget)
	if len(code) != len(content) {
		logger.DebugContext(ctx, "reduced file for summarization", "path", filePath, "chars", len(content), "reduced_chars", len(code))
	}

	summary, err := s.generate(ctx, fileSystemPrompt, fmt.Sprintf(filePromptTemplate, filePath, code))
	if err != nil {
		return "", errs.Kind(errs.ErrSummarizationFailed, fmt.Errorf("%s: %w", filePath, err))
	}
	return summary, nil
}

// SummarizeDiff summarizes a commit diff. Diffs longer than 100000 characters are truncated.
func (s *Summarizer) SummarizeDiff(ctx context.Context, diff string) (string, error) {
	if utf8.RuneCountInString(diff) > maxDiffChars {
		diff = truncate(diff, maxDiffChars) + diffTruncatedNote
	}

	summary, err := s.generate(ctx, diffSystemPrompt, "Summarize the following diff:\n\n"+diff)
	if err != nil {
		return "", errs.Kind(errs.ErrSummarizationFailed, err)
	}
	return summary, nil
}

func (s *Summarizer) generate(ctx context.Context, system, prompt string) (string, error) {
	summary, err := llm.Retry(ctx, s.retry, s.limiter, func(ctx context.Context) (string, error) {
		return s.gen.Generate(ctx, system, prompt)
	})
	if err != nil {
		return "", err
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("model returned an empty summary")
	}
	return summary, nil
}
