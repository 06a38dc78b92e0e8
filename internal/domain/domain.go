package domain

import (
	"context"
	"errors"
)

// ErrNotInitialized is returned by search and stats operations issued before
// an index has been built for the loaded document.
var ErrNotInitialized = errors.New("index not initialized")

// ExtractedDocument is the output of the PDF extraction step: the full plain
// text plus the character offset at which each page ends.
type ExtractedDocument struct {
	Text       string
	PageBreaks []int
	PageCount  int
}

// Chunk is one retrievable unit of the source document.
// StartOffset/EndOffset are best-effort positions into the original text;
// they drift slightly once overlap windows are re-inserted and are only used
// for page-number lookup.
type Chunk struct {
	ID          string
	DocumentID  string
	Text        string
	Index       int
	PageNumber  int
	StartOffset int
	EndOffset   int
}

// Vector is a sparse TF-IDF vector; absent terms are implicitly zero.
type Vector map[string]float64

// ProcessedChunk is a Chunk augmented with its TF-IDF vector and the raw
// term count used as the TF denominator. It is only meaningful relative to
// the index that produced it.
type ProcessedChunk struct {
	Chunk
	TFIDF     Vector
	TermCount int
}

// SearchResult is a matching chunk with its cosine similarity to the query
// and up to three key sentences containing query terms, best first.
type SearchResult struct {
	Chunk             ProcessedChunk
	Similarity        float64
	RelevantSentences []string
}

// IndexStats summarizes a built index for diagnostics and tooling.
type IndexStats struct {
	ChunkCount         int
	VocabularySize     int
	AverageChunkLength float64
	Initialized        bool
}

// TermScore is a vocabulary term with its TF-IDF score aggregated over all
// chunks.
type TermScore struct {
	Term  string
	Score float64
}

// Extractor produces the plain text of a document for indexing.
type Extractor interface {
	Extract(path string) (ExtractedDocument, error)
}

// Chunker splits extracted text into retrievable chunks.
type Chunker interface {
	Chunk(documentID, text string, pageBreaks []int) []Chunk
}

// Retriever ranks indexed chunks against a natural-language query.
type Retriever interface {
	Search(query string, topK int) ([]SearchResult, error)
	Stats() (IndexStats, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Answer is the composed response to a question: the generated or extracted
// text plus the retrieval results it was built from.
type Answer struct {
	Text      string
	Generated bool
	Results   []SearchResult
}

// QAService defines the operations exposed by the application core.
type QAService interface {
	LoadDocument(path string) (summary string, err error)
	Ask(ctx context.Context, question string) (Answer, error)
}
