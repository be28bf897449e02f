package rag

import (
	"path"
	"sort"
	"strings"
	"unicode"

	"repoqa/internal/knowledge"
)

const (
	// SimilarityThreshold is the exclusive lower bound for a file to be used.
	SimilarityThreshold = 0.5
	// MaxResults caps the number of files used as context.
	MaxResults = 10
)

const (
	lexicalLengthScale = float32(10.0)
	maxLexicalScore    = float32(0.4)
	fileNameMatchBonus = float32(0.1)
)

var lexicalStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {},
	"what": {}, "which": {}, "where": {}, "how": {}, "does": {}, "do": {}, "file": {},
}

// rank keeps matches above the similarity threshold, orders them by similarity
// (highest first) and caps them at MaxResults. Equal similarities are ordered by
// lexical overlap with the question, then by file name.
func rank(matches []knowledge.Match, question string) []Result {
	type scored struct {
		result  Result
		lexical float32
	}

	kept := make([]scored, 0, len(matches))
	for _, m := range matches {
		if m.Similarity <= SimilarityThreshold {
			continue
		}
		kept = append(kept, scored{
			result: Result{
				FileName:   m.File.FileName,
				SourceCode: m.File.SourceCode,
				Summary:    m.File.Summary,
				Similarity: m.Similarity,
			},
			lexical: lexicalScore(question, m.File.Summary, m.File.FileName),
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.result.Similarity != b.result.Similarity {
			return a.result.Similarity > b.result.Similarity
		}
		if a.lexical != b.lexical {
			return a.lexical > b.lexical
		}
		return a.result.FileName < b.result.FileName
	})

	if len(kept) > MaxResults {
		kept = kept[:MaxResults]
	}
	results := make([]Result, len(kept))
	for i, k := range kept {
		results[i] = k.result
	}
	return results
}

// lexicalScore computes a lightweight lexical relevance score of a file summary relative to a query.
// The score is clamped to [0, maxLexicalScore].
func lexicalScore(query, summary, fileName string) float32 {
	queryTokens := filterStopwords(tokenize(query))
	if len(queryTokens) == 0 {
		return 0
	}

	summaryTokens := tokenize(summary)
	var score float32
	if len(summaryTokens) > 0 {
		freq := make(map[string]int, len(summaryTokens))
		for _, token := range summaryTokens {
			freq[token]++
		}
		var rawMatches int
		for _, token := range queryTokens {
			rawMatches += freq[token]
		}
		score = (float32(rawMatches) / (1 + float32(len(summaryTokens)))) * lexicalLengthScale
	}

	if fileName != "" {
		nameTokens := tokenize(strings.TrimSuffix(fileName, path.Ext(fileName)))
		nameSet := make(map[string]struct{}, len(nameTokens))
		for _, token := range nameTokens {
			nameSet[token] = struct{}{}
		}
		for _, token := range queryTokens {
			if _, ok := nameSet[token]; ok {
				score += fileNameMatchBonus
			}
		}
	}

	if score > maxLexicalScore {
		return maxLexicalScore
	}
	return score
}

func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

func filterStopwords(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := lexicalStopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
