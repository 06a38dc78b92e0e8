// Package retriever ranks indexed chunks against natural-language queries by
// cosine similarity and extracts the sentences that match the query best.
package retriever

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"pdfqa/internal/domain"
	"pdfqa/internal/index"
	"pdfqa/internal/tokenizer"
)

// DefaultTopK is the result count used when the caller passes topK <= 0.
const DefaultTopK = 5

const maxRelevantSentences = 3

// multiTermBonus rewards sentences containing more than one distinct query
// term, per extra term found.
const multiTermBonus = 50

var sentenceSplitRe = regexp.MustCompile(`[.!?]\s+`)

// Retriever performs similarity search over one index snapshot. It holds the
// snapshot by reference and never mutates it, so concurrent searches are
// safe.
type Retriever struct {
	ix *index.Index
}

// New creates a Retriever without an index; Search fails with
// ErrNotInitialized until SetIndex is called.
func New() *Retriever { return &Retriever{} }

// SetIndex attaches a built index snapshot, replacing any previous one.
func (r *Retriever) SetIndex(ix *index.Index) { r.ix = ix }

// Ready reports whether an index has been attached.
func (r *Retriever) Ready() bool { return r.ix != nil }

// Search ranks all chunks by cosine similarity to the query and returns the
// topK best, ties broken by original chunk order. A query with no surviving
// terms yields zero-similarity results rather than an error; filtering by a
// relevance threshold is the caller's policy.
func (r *Retriever) Search(query string, topK int) ([]domain.SearchResult, error) {
	if r.ix == nil {
		return nil, domain.ErrNotInitialized
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	qvec := r.ix.Vectorize(query)
	chunks := r.ix.Chunks()
	results := make([]domain.SearchResult, len(chunks))
	for i, ch := range chunks {
		results[i] = domain.SearchResult{
			Chunk:      ch,
			Similarity: cosine(qvec, ch.TFIDF),
		}
	}
	// Stable keeps document order on equal similarity, which makes search
	// deterministic.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if topK < len(results) {
		results = results[:topK]
	}

	queryTerms := tokenizer.ExtractTerms(query)
	for i := range results {
		results[i].RelevantSentences = relevantSentences(results[i].Chunk.Text, queryTerms)
	}
	return results, nil
}

// Stats reports diagnostics for the attached index.
func (r *Retriever) Stats() (domain.IndexStats, error) {
	if r.ix == nil {
		return domain.IndexStats{}, domain.ErrNotInitialized
	}
	return r.ix.Stats(), nil
}

// cosine computes dot(a,b) / (||a||*||b||) over sparse vectors, iterating
// the smaller map for the dot product. Zero-norm vectors have similarity 0.
func cosine(a, b domain.Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	dot := 0.0
	for term, av := range a {
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	if dot == 0 {
		return 0
	}
	na := norm(a)
	nb := norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func norm(v domain.Vector) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// relevantSentences returns up to three sentences of text containing query
// terms, best first. Sentences score occurrenceCount*len(term) per term,
// plus a bonus when more than one distinct term is present; zero-score
// sentences are excluded.
func relevantSentences(text string, queryTerms []string) []string {
	if len(queryTerms) == 0 {
		return nil
	}
	sentences := splitSentences(text)

	type scored struct {
		text  string
		score int
	}
	var matches []scored
	for _, sent := range sentences {
		lower := strings.ToLower(sent)
		score := 0
		distinct := 0
		for _, term := range queryTerms {
			n := strings.Count(lower, term)
			if n == 0 {
				continue
			}
			distinct++
			score += n * len(term)
		}
		if distinct > 1 {
			score += multiTermBonus * distinct
		}
		if score > 0 {
			matches = append(matches, scored{text: sent, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > maxRelevantSentences {
		matches = matches[:maxRelevantSentences]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.text
	}
	return out
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceSplitRe.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[start : loc[0]+1])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
