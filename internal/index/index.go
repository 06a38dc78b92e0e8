// Package index builds an immutable TF-IDF index snapshot over a chunked
// document.
package index

import (
	"math"
	"sort"
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/tokenizer"
)

// Index is a frozen snapshot of vocabulary, IDF scores and per-chunk TF-IDF
// vectors. It is never mutated after Build returns, so concurrent reads are
// safe. Chunks from differently built indexes must not be mixed: vectors are
// only comparable against the IDF table that produced them.
type Index struct {
	chunks []domain.ProcessedChunk
	idf    map[string]float64
}

// Build computes the snapshot in one pass: document frequencies over the
// deduplicated term sets, idf = ln(N/df), then tf-idf per chunk with
// tf = rawCount/totalRawCount. An empty chunk list yields an empty but
// usable index.
func Build(chunks []domain.Chunk) *Index {
	n := len(chunks)
	counts := make([]map[string]int, n)
	totals := make([]int, n)
	df := make(map[string]int)
	for i, ch := range chunks {
		counts[i], totals[i] = tokenizer.TermCounts(ch.Text)
		for term := range counts[i] {
			df[term]++
		}
	}

	idf := make(map[string]float64, len(df))
	for term, d := range df {
		idf[term] = math.Log(float64(n) / float64(d))
	}

	processed := make([]domain.ProcessedChunk, n)
	for i, ch := range chunks {
		vec := make(domain.Vector, len(counts[i]))
		if totals[i] > 0 {
			for term, c := range counts[i] {
				vec[term] = float64(c) / float64(totals[i]) * idf[term]
			}
		}
		processed[i] = domain.ProcessedChunk{Chunk: ch, TFIDF: vec, TermCount: totals[i]}
	}
	return &Index{chunks: processed, idf: idf}
}

// Chunks returns the processed chunks in document order. Callers must not
// modify the returned slice.
func (ix *Index) Chunks() []domain.ProcessedChunk { return ix.chunks }

// IDF returns the inverse document frequency of term, or 0 for terms outside
// the vocabulary.
func (ix *Index) IDF(term string) float64 { return ix.idf[term] }

// Vectorize computes a TF-IDF vector for arbitrary text against the frozen
// IDF table. Terms outside the vocabulary are ignored.
func (ix *Index) Vectorize(text string) domain.Vector {
	counts, total := tokenizer.TermCounts(text)
	vec := make(domain.Vector, len(counts))
	if total == 0 {
		return vec
	}
	for term, c := range counts {
		idf, ok := ix.idf[term]
		if !ok {
			continue
		}
		vec[term] = float64(c) / float64(total) * idf
	}
	return vec
}

// Stats reports index-level diagnostics.
func (ix *Index) Stats() domain.IndexStats {
	total := 0
	for _, ch := range ix.chunks {
		total += len(ch.Text)
	}
	avg := 0.0
	if len(ix.chunks) > 0 {
		avg = float64(total) / float64(len(ix.chunks))
	}
	return domain.IndexStats{
		ChunkCount:         len(ix.chunks),
		VocabularySize:     len(ix.idf),
		AverageChunkLength: avg,
		Initialized:        true,
	}
}

// TopTerms returns up to limit vocabulary terms ranked by their TF-IDF score
// summed across all chunks. Ties are broken alphabetically for determinism.
func (ix *Index) TopTerms(limit int) []domain.TermScore {
	agg := make(map[string]float64, len(ix.idf))
	for _, ch := range ix.chunks {
		for term, score := range ch.TFIDF {
			agg[term] += score
		}
	}
	terms := make([]domain.TermScore, 0, len(agg))
	for term, score := range agg {
		terms = append(terms, domain.TermScore{Term: term, Score: score})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Score != terms[j].Score {
			return terms[i].Score > terms[j].Score
		}
		return terms[i].Term < terms[j].Term
	})
	if limit > 0 && limit < len(terms) {
		terms = terms[:limit]
	}
	return terms
}

// ChunksWithTerms returns the chunks whose raw text contains any of the given
// terms as a case-insensitive substring. This is a diagnostic lookup, not a
// tokenized search.
func (ix *Index) ChunksWithTerms(terms []string) []domain.ProcessedChunk {
	var out []domain.ProcessedChunk
	for _, ch := range ix.chunks {
		lower := strings.ToLower(ch.Text)
		for _, term := range terms {
			if term != "" && strings.Contains(lower, strings.ToLower(term)) {
				out = append(out, ch)
				break
			}
		}
	}
	return out
}
