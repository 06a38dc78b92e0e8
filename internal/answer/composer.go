// Package answer turns retrieval results into a user-facing answer, either
// by calling a generative model or by returning extracted sentences verbatim.
package answer

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"pdfqa/internal/domain"
	"pdfqa/internal/llm"
)

// Relevance thresholds applied by the composer, not the retriever: ranking
// stays policy-free, presentation decides what counts as an answer.
const (
	DefaultMinSimilarity   = 0.05
	DefaultAnswerThreshold = 0.1
)

// Number of top chunks concatenated into the generation context.
const promptChunks = 2

// NoMatchText is returned when no chunk clears the minimum similarity.
const NoMatchText = "I couldn't find anything in the document related to your question."

// Composer chooses between generated and extractive answers.
type Composer struct {
	provider        llm.Provider
	minSimilarity   float64
	answerThreshold float64
	log             *logrus.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithProvider sets the generative backend. Without one, answers are always
// extractive.
func WithProvider(p llm.Provider) Option {
	return func(c *Composer) { c.provider = p }
}

// WithThresholds overrides the no-match and low-relevance cutoffs.
func WithThresholds(minSimilarity, answerThreshold float64) Option {
	return func(c *Composer) {
		if minSimilarity >= 0 {
			c.minSimilarity = minSimilarity
		}
		if answerThreshold >= 0 {
			c.answerThreshold = answerThreshold
		}
	}
}

// WithLogger sets the logger used for generation failures.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Composer) { c.log = log }
}

// New creates a Composer with default thresholds and no provider.
func New(opts ...Option) *Composer {
	c := &Composer{
		minSimilarity:   DefaultMinSimilarity,
		answerThreshold: DefaultAnswerThreshold,
		log:             logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the answer for question from ranked results. The results
// are always carried through unchanged: a slow or failing generative call
// never affects what was retrieved.
func (c *Composer) Compose(ctx context.Context, question string, results []domain.SearchResult) domain.Answer {
	ans := domain.Answer{Results: results}
	if len(results) == 0 || results[0].Similarity < c.minSimilarity {
		ans.Text = NoMatchText
		return ans
	}

	extracted := extractiveText(results)
	if results[0].Similarity < c.answerThreshold {
		ans.Text = "This may not fully answer your question, but here is the closest passage:\n\n" + extracted
		return ans
	}

	if c.provider != nil {
		generated, err := c.provider.Generate(ctx, c.buildPrompt(question, results))
		if err == nil && strings.TrimSpace(generated) != "" {
			ans.Text = strings.TrimSpace(generated)
			ans.Generated = true
			return ans
		}
		if err != nil {
			c.log.WithError(err).WithField("provider", c.provider.Name()).
				Warn("generation failed, falling back to extracted sentences")
		}
	}
	ans.Text = extracted
	return ans
}

func (c *Composer) buildPrompt(question string, results []domain.SearchResult) string {
	n := promptChunks
	if n > len(results) {
		n = len(results)
	}
	parts := make([]string, 0, n)
	for _, res := range results[:n] {
		parts = append(parts, res.Chunk.Text)
	}
	return llm.BuildPrompt(question, strings.Join(parts, "\n\n"))
}

// extractiveText joins the top result's relevant sentences, falling back to
// the start of its chunk when no sentence matched a query term.
func extractiveText(results []domain.SearchResult) string {
	top := results[0]
	if len(top.RelevantSentences) > 0 {
		return strings.Join(top.RelevantSentences, " ")
	}
	text := top.Chunk.Text
	const snippet = 300
	if len(text) > snippet {
		if i := strings.LastIndexByte(text[:snippet], ' '); i > 0 {
			text = text[:i]
		} else {
			text = text[:snippet]
		}
		text += "…"
	}
	return text
}
