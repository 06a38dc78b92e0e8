package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/domain"
)

// mockProvider is a test double for llm.Provider.
type mockProvider struct {
	response string
	err      error
	prompts  []string
}

func (m *mockProvider) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func (m *mockProvider) Name() string { return "mock" }

func results(sims ...float64) []domain.SearchResult {
	out := make([]domain.SearchResult, len(sims))
	for i, s := range sims {
		out[i] = domain.SearchResult{
			Chunk: domain.ProcessedChunk{
				Chunk: domain.Chunk{Text: "Chunk body number " + strings.Repeat("x", i+1) + "."},
			},
			Similarity:        s,
			RelevantSentences: []string{"Key sentence one.", "Key sentence two."},
		}
	}
	return out
}

func TestCompose_NoResults(t *testing.T) {
	c := New()
	ans := c.Compose(context.Background(), "question", nil)
	assert.Equal(t, NoMatchText, ans.Text)
	assert.False(t, ans.Generated)
}

func TestCompose_BelowMinSimilarity(t *testing.T) {
	c := New()
	ans := c.Compose(context.Background(), "question", results(0.01))
	assert.Equal(t, NoMatchText, ans.Text)
	require.Len(t, ans.Results, 1)
}

func TestCompose_LowRelevanceSkipsGeneration(t *testing.T) {
	p := &mockProvider{response: "should not be used"}
	c := New(WithProvider(p))
	ans := c.Compose(context.Background(), "question", results(0.07))

	assert.Empty(t, p.prompts)
	assert.False(t, ans.Generated)
	assert.Contains(t, ans.Text, "Key sentence one. Key sentence two.")
	assert.Contains(t, ans.Text, "may not fully answer")
}

func TestCompose_GeneratedAnswer(t *testing.T) {
	p := &mockProvider{response: " A fluent answer. "}
	c := New(WithProvider(p))
	ans := c.Compose(context.Background(), "What is it?", results(0.8, 0.5, 0.3))

	assert.True(t, ans.Generated)
	assert.Equal(t, "A fluent answer.", ans.Text)
	require.Len(t, p.prompts, 1)
	// Prompt carries the top two chunks and the question.
	assert.Contains(t, p.prompts[0], "What is it?")
	assert.Contains(t, p.prompts[0], results(0.8)[0].Chunk.Text)
}

func TestCompose_GenerationFailureFallsBack(t *testing.T) {
	p := &mockProvider{err: errors.New("model unavailable")}
	c := New(WithProvider(p))
	ans := c.Compose(context.Background(), "question", results(0.8))

	assert.False(t, ans.Generated)
	assert.Equal(t, "Key sentence one. Key sentence two.", ans.Text)
	require.Len(t, ans.Results, 1)
}

func TestCompose_NoProviderIsExtractive(t *testing.T) {
	c := New()
	ans := c.Compose(context.Background(), "question", results(0.8))
	assert.False(t, ans.Generated)
	assert.Equal(t, "Key sentence one. Key sentence two.", ans.Text)
}

func TestCompose_SnippetFallbackWithoutSentences(t *testing.T) {
	c := New()
	res := results(0.8)
	res[0].RelevantSentences = nil
	res[0].Chunk.Text = strings.Repeat("word ", 100)
	ans := c.Compose(context.Background(), "question", res)

	assert.LessOrEqual(t, len(ans.Text), 310)
	assert.True(t, strings.HasSuffix(ans.Text, "…"))
}

func TestCompose_CustomThresholds(t *testing.T) {
	c := New(WithThresholds(0.5, 0.7))
	ans := c.Compose(context.Background(), "q", results(0.4))
	assert.Equal(t, NoMatchText, ans.Text)

	ans = c.Compose(context.Background(), "q", results(0.6))
	assert.Contains(t, ans.Text, "may not fully answer")
}
