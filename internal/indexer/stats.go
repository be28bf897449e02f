package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"repoqa/internal/knowledge"
)

const (
	// PipelineVersion identifies the summarize-then-embed scheme.
	// Update this when prompts or reduction change significantly.
	PipelineVersion = "v1.0"
	// TokensPerRune is an approximation for token counting (4 chars per token).
	TokensPerRune = 4.0
)

// RunStats describes an ingestion run.
type RunStats struct {
	Total        int                `json:"total"`
	IndexedFiles int                `json:"indexed_files"`
	Skipped      map[SkipReason]int `json:"skipped,omitempty"`
	// SummaryTokens are estimated token counts of the stored summaries.
	SummaryTokens TokenStats `json:"summary_tokens"`
	// IndexVersion is a hash of pipeline version, embedding model and summary budget.
	IndexVersion string `json:"index_version"`
}

// TokenStats contains statistics about token counts.
type TokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// Stats summarizes the run.
func (r Result) Stats(embeddingModel string) RunStats {
	return RunStats{
		Total:         r.Total,
		IndexedFiles:  r.IndexedFiles,
		Skipped:       r.Skipped,
		SummaryTokens: computeTokenStats(r.summaryTokens),
		IndexVersion:  indexVersion(embeddingModel),
	}
}

func indexVersion(embeddingModel string) string {
	input := fmt.Sprintf("%s|%s|summaryBudget=%d", PipelineVersion, embeddingModel, knowledge.DefaultSummaryBudget)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// estimateTokens approximates the token count of s, at least 1.
func estimateTokens(s string) int {
	n := int(math.Round(float64(utf8.RuneCountInString(s)) / TokensPerRune))
	if n < 1 {
		n = 1
	}
	return n
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) TokenStats {
	if len(tokenCounts) == 0 {
		return TokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range sorted {
		sum += count
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	if p95Index < 0 {
		p95Index = 0
	}

	return TokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
