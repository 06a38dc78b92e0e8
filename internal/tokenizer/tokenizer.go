// Package tokenizer normalizes raw text into index terms.
package tokenizer

import (
	"regexp"
	"strings"
)

const minTermLength = 3

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// ExtractTerms normalizes text and returns its distinct terms in
// first-occurrence order. A term is a lowercased token of length >= 3 that is
// not a stop-word. Empty input yields nil.
func ExtractTerms(text string) []string {
	tokens := normalize(text)
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// TermCounts returns the raw occurrence count of every surviving term in
// text, along with the total number of occurrences. The total is the TF
// denominator: repeats count, unlike in ExtractTerms.
func TermCounts(text string) (map[string]int, int) {
	tokens := normalize(text)
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts, len(tokens)
}

func normalize(text string) []string {
	lower := strings.ToLower(text)
	cleaned := nonWordPattern.ReplaceAllString(lower, " ")
	fields := strings.Fields(cleaned)
	out := fields[:0]
	for _, tok := range fields {
		if len(tok) < minTermLength {
			continue
		}
		if _, isStop := stopwords[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"the", "and", "are", "was", "were", "been", "being", "for", "that",
		"this", "these", "those", "with", "from", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "over",
		"under", "again", "further", "than", "then", "else", "but", "not",
		"all", "any", "both", "each", "few", "more", "most", "other", "some",
		"such", "only", "own", "same", "too", "very", "can", "will", "just",
		"should", "could", "would", "has", "have", "had", "does", "did",
		"you", "your", "they", "their", "them", "its", "his", "her", "she",
		"him", "who", "what", "which", "when", "where", "how", "why",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
