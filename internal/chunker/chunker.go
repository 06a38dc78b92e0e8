// Package chunker splits document text into overlapping, size-bounded chunks
// aligned to paragraph and sentence boundaries.
package chunker

import (
	"regexp"
	"strconv"
	"strings"

	"pdfqa/internal/domain"
)

// Default chunk sizing in characters.
const (
	DefaultTargetSize = 800
	DefaultMaxSize    = 1200
	DefaultMinSize    = 200
	DefaultOverlap    = 100
)

var (
	paragraphRe = regexp.MustCompile(`\n\s*\n`)
	sentenceRe  = regexp.MustCompile(`[.!?]\s`)
)

// Splitter accumulates paragraphs into chunks, breaking at sentence
// boundaries near the target size and carrying a trailing overlap window
// into the next chunk.
type Splitter struct {
	targetSize int
	maxSize    int
	minSize    int
	overlap    int
	keepTail   bool
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithSizes sets the target, max and min chunk sizes in characters.
// Non-positive values keep the defaults.
func WithSizes(target, max, min int) Option {
	return func(s *Splitter) {
		if target > 0 {
			s.targetSize = target
		}
		if max > 0 {
			s.maxSize = max
		}
		if min > 0 {
			s.minSize = min
		}
	}
}

// WithOverlap sets the overlap carried between consecutive chunks.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithKeepTail force-emits a trailing buffer smaller than the minimum size
// instead of dropping it.
func WithKeepTail(keep bool) Option {
	return func(s *Splitter) { s.keepTail = keep }
}

// New creates a Splitter with the given options applied over the defaults.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		targetSize: DefaultTargetSize,
		maxSize:    DefaultMaxSize,
		minSize:    DefaultMinSize,
		overlap:    DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.overlap >= s.minSize {
		s.overlap = s.minSize / 2
	}
	return s
}

// Chunk splits text into ordered chunks. It never fails: degenerate input
// (a single giant paragraph with no sentence breaks) simply yields chunks
// larger than the target size, and empty text yields no chunks.
func (s *Splitter) Chunk(documentID, text string, pageBreaks []int) []domain.Chunk {
	var chunks []domain.Chunk
	var buf strings.Builder
	cursor := 0
	chunkStart := 0

	emit := func(body string, start int) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		idx := len(chunks)
		chunks = append(chunks, domain.Chunk{
			ID:          documentID + ":" + strconv.Itoa(idx),
			DocumentID:  documentID,
			Text:        body,
			Index:       idx,
			PageNumber:  pageNumber(start, pageBreaks),
			StartOffset: start,
			EndOffset:   start + len(body),
		})
	}

	for _, raw := range paragraphRe.Split(text, -1) {
		para := strings.TrimSpace(raw)
		if para == "" {
			// Keep the offset cursor roughly aligned with the original text.
			cursor += len(raw) + 2
			continue
		}

		if buf.Len() > 0 && buf.Len()+len(para) > s.maxSize {
			if buf.Len() >= s.minSize {
				body := buf.String()
				emit(body, chunkStart)
				seed := overlapSeed(body, s.overlap)
				chunkStart = cursor - len(seed)
				buf.Reset()
				buf.WriteString(seed)
			}
			// Below minSize the paragraph is appended anyway rather than
			// emitting an undersized chunk.
		}

		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		} else {
			chunkStart = cursor
		}
		buf.WriteString(para)
		cursor += len(raw) + 2

		for buf.Len() >= s.targetSize {
			body := buf.String()
			bp := s.breakPoint(body)
			if bp < 0 {
				break
			}
			emit(body[:bp], chunkStart)
			rest := strings.TrimSpace(body[bp-s.overlap:])
			chunkStart += bp - s.overlap
			buf.Reset()
			buf.WriteString(rest)
		}
	}

	tail := strings.TrimSpace(buf.String())
	if len(tail) >= s.minSize || (s.keepTail && tail != "") {
		emit(tail, chunkStart)
	}
	return chunks
}

// breakPoint returns the end offset of the latest sentence boundary that
// falls within [minSize, targetSize], or -1 if no boundary qualifies.
func (s *Splitter) breakPoint(body string) int {
	best := -1
	for _, loc := range sentenceRe.FindAllStringIndex(body, -1) {
		end := loc[0] + 1
		if end < s.minSize {
			continue
		}
		if end > s.targetSize {
			break
		}
		best = end
	}
	return best
}

// overlapSeed returns the trailing overlap window of body, advanced to the
// first word boundary inside the window so chunks do not start mid-word.
func overlapSeed(body string, overlap int) string {
	if overlap <= 0 || len(body) <= overlap {
		return ""
	}
	seed := body[len(body)-overlap:]
	if i := strings.IndexByte(seed, ' '); i >= 0 {
		seed = seed[i+1:]
	}
	return strings.TrimSpace(seed)
}

// pageNumber maps a chunk start offset to its 1-indexed page: the first page
// break strictly greater than the offset wins, and offsets past every break
// belong to the last page.
func pageNumber(start int, pageBreaks []int) int {
	for i, brk := range pageBreaks {
		if brk > start {
			return i + 1
		}
	}
	if len(pageBreaks) > 0 {
		return len(pageBreaks)
	}
	return 1
}
