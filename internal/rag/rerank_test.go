package rag

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"repoqa/internal/knowledge"
	"repoqa/internal/storage"
)

func match(name string, similarity float64) knowledge.Match {
	return knowledge.Match{
		File:       storage.FileEmbedding{FileName: name, SourceCode: "code of " + name, Summary: "summary of " + name},
		Similarity: similarity,
	}
}

func TestRank_ThresholdAndOrder(t *testing.T) {
	got := rank([]knowledge.Match{
		match("low.go", 0.3),
		match("edge.go", 0.5),
		match("mid.go", 0.72),
		match("barely.go", 0.50000001),
		match("top.go", 0.91),
	}, "where is routing")

	if len(got) != 3 {
		t.Fatalf("rank() len = %d, want 3", len(got))
	}
	if got[0].FileName != "top.go" || got[1].FileName != "mid.go" || got[2].FileName != "barely.go" {
		t.Errorf("rank() order = %s, %s, %s, want top.go, mid.go, barely.go", got[0].FileName, got[1].FileName, got[2].FileName)
	}
	for _, r := range got {
		if r.Similarity <= SimilarityThreshold {
			t.Errorf("rank() kept %s with similarity %v", r.FileName, r.Similarity)
		}
	}
}

func TestRank_CapsAtMaxResults(t *testing.T) {
	matches := make([]knowledge.Match, 0, 15)
	for i := 0; i < 15; i++ {
		matches = append(matches, match(fmt.Sprintf("f%02d.go", i), 0.6+float64(i)/100))
	}

	got := rank(matches, "anything")
	if len(got) != MaxResults {
		t.Fatalf("rank() len = %d, want %d", len(got), MaxResults)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Similarity < got[i].Similarity {
			t.Errorf("rank() not descending at %d: %v < %v", i, got[i-1].Similarity, got[i].Similarity)
		}
	}
	if got[0].FileName != "f14.go" {
		t.Errorf("rank() first = %s, want f14.go", got[0].FileName)
	}
}

func TestRank_TiesPreferLexicalMatch(t *testing.T) {
	got := rank([]knowledge.Match{
		match("lib/utils.go", 0.8),
		match("lib/router.go", 0.8),
	}, "Which file handles the router?")

	if got[0].FileName != "lib/router.go" {
		t.Errorf("rank() first = %s, want lib/router.go", got[0].FileName)
	}
}

func TestRank_Empty(t *testing.T) {
	if got := rank(nil, "q"); len(got) != 0 {
		t.Errorf("rank(nil) = %v, want empty", got)
	}
}

func TestLexicalScoreBasicMatch(t *testing.T) {
	score := lexicalScore("Project updates", "The project timeline lists recent updates for the project.", "docs/updates.md")

	if score <= 0 {
		t.Fatalf("expected score to be positive, got %f", score)
	}
	if score > maxLexicalScore {
		t.Fatalf("score should be clamped to maxLexicalScore, got %f", score)
	}
}

func TestLexicalScoreFileNameBonus(t *testing.T) {
	score := lexicalScore("database", "General context without the keyword.", "internal/database.go")

	if math.Abs(float64(score-fileNameMatchBonus)) > 0.0001 {
		t.Fatalf("expected file name bonus only (%f), got %f", fileNameMatchBonus, score)
	}
}

func TestLexicalScoreStopwordsRemoved(t *testing.T) {
	if score := lexicalScore("the and of", "the and of", ""); score != 0 {
		t.Fatalf("expected score 0 when query tokens are only stopwords, got %f", score)
	}
}

func TestLexicalScoreNormalization(t *testing.T) {
	score := lexicalScore("project", "project "+strings.Repeat(" filler", 200), "")

	if score <= 0 {
		t.Fatalf("expected normalized score to stay positive, got %f", score)
	}
	if score > maxLexicalScore {
		t.Fatalf("expected score to be clamped to %f, got %f", maxLexicalScore, score)
	}
}
