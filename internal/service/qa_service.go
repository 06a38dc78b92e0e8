// Package service wires extraction, chunking, indexing and answering into
// the document question-answering pipeline.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pdfqa/internal/answer"
	"pdfqa/internal/domain"
	"pdfqa/internal/index"
	"pdfqa/internal/retriever"
)

// DocQAService implements domain.QAService for one loaded document at a
// time. Loading a new document replaces the previous index wholesale.
type DocQAService struct {
	extractor  domain.Extractor
	splitter   domain.Chunker
	composer   *answer.Composer
	summarizer domain.Summarizer

	topK            int
	summarySentence int
	log             *logrus.Logger

	mu        sync.RWMutex
	retriever *retriever.Retriever
}

// New creates the service. topK and summarySentences fall back to sensible
// defaults when non-positive.
func New(extractor domain.Extractor, splitter domain.Chunker, composer *answer.Composer,
	summarizer domain.Summarizer, topK, summarySentences int, log *logrus.Logger) *DocQAService {
	if topK <= 0 {
		topK = retriever.DefaultTopK
	}
	if summarySentences <= 0 {
		summarySentences = 3
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DocQAService{
		extractor:       extractor,
		splitter:        splitter,
		composer:        composer,
		summarizer:      summarizer,
		topK:            topK,
		summarySentence: summarySentences,
		log:             log,
		retriever:       retriever.New(),
	}
}

// LoadDocument extracts, chunks and indexes the document at path, returning
// a short summary of its content. The index is built synchronously; searches
// issued before the first successful load fail with ErrNotInitialized.
func (s *DocQAService) LoadDocument(path string) (string, error) {
	doc, err := s.extractor.Extract(path)
	if err != nil {
		return "", fmt.Errorf("extract document: %w", err)
	}

	docID := uuid.New().String()
	chunks := s.splitter.Chunk(docID, doc.Text, doc.PageBreaks)
	ix := index.Build(chunks)

	s.mu.Lock()
	s.retriever.SetIndex(ix)
	s.mu.Unlock()

	stats := ix.Stats()
	s.log.WithFields(logrus.Fields{
		"path":       path,
		"pages":      doc.PageCount,
		"chunks":     stats.ChunkCount,
		"vocabulary": stats.VocabularySize,
	}).Info("document indexed")

	summary, err := s.summarizer.Summarize(doc.Text, s.summarySentence)
	if err != nil {
		return "", fmt.Errorf("summarize document: %w", err)
	}
	return summary, nil
}

// Ask retrieves the best-matching chunks for question and composes an
// answer from them. Retrieval completes regardless of whether the generative
// step succeeds, fails or is disabled.
func (s *DocQAService) Ask(ctx context.Context, question string) (domain.Answer, error) {
	s.mu.RLock()
	r := s.retriever
	s.mu.RUnlock()

	results, err := r.Search(question, s.topK)
	if err != nil {
		return domain.Answer{}, err
	}
	return s.composer.Compose(ctx, question, results), nil
}

// Stats reports diagnostics for the currently loaded document.
func (s *DocQAService) Stats() (domain.IndexStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retriever.Stats()
}
