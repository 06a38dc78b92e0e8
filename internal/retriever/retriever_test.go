package retriever

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfqa/internal/domain"
	"pdfqa/internal/index"
)

func mkChunks(texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, txt := range texts {
		chunks[i] = domain.Chunk{Text: txt, Index: i}
	}
	return chunks
}

func newRetriever(texts ...string) *Retriever {
	r := New()
	r.SetIndex(index.Build(mkChunks(texts...)))
	return r
}

func TestSearch_NotInitialized(t *testing.T) {
	r := New()
	_, err := r.Search("anything", 5)
	require.ErrorIs(t, err, domain.ErrNotInitialized)

	_, err = r.Stats()
	require.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestSearch_RankingExample(t *testing.T) {
	r := newRetriever(
		"The cat sat on the mat.",
		"Dogs bark loudly at night.",
		"Cats and dogs are pets.",
	)
	results, err := r.Search("cat", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 0, results[0].Chunk.Index)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
	// "Dogs bark loudly at night." shares no query term at all.
	last := results[2]
	if results[1].Chunk.Index == 1 {
		last = results[1]
	}
	assert.Zero(t, last.Similarity)
}

func TestSearch_SimilarityBounds(t *testing.T) {
	r := newRetriever(
		"alpha beta gamma delta",
		"beta gamma epsilon zeta",
		"completely unrelated words here",
	)
	for _, q := range []string{"alpha", "beta gamma", "unrelated words", "missing"} {
		results, err := r.Search(q, 10)
		require.NoError(t, err)
		for _, res := range results {
			assert.GreaterOrEqual(t, res.Similarity, 0.0)
			assert.LessOrEqual(t, res.Similarity, 1.0+1e-12)
		}
	}
}

func TestSearch_SelfSimilarityRanksFirst(t *testing.T) {
	texts := []string{
		"Photosynthesis converts sunlight into chemical energy within plant cells.",
		"Volcanic eruptions reshape landscapes and alter regional climates.",
		"Medieval trade routes connected distant markets across continents.",
	}
	r := newRetriever(texts...)
	for i, txt := range texts {
		results, err := r.Search(txt, len(texts))
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, i, results[0].Chunk.Index, "query from chunk %d", i)
		assert.Greater(t, results[0].Similarity, results[1].Similarity)
	}
}

func TestSearch_StopwordQueryIsZeroEverywhere(t *testing.T) {
	r := newRetriever("alpha beta gamma", "delta epsilon zeta")
	results, err := r.Search("the and of", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Zero(t, res.Similarity)
		assert.Empty(t, res.RelevantSentences)
	}
	// Zero similarity everywhere keeps document order.
	assert.Equal(t, 0, results[0].Chunk.Index)
	assert.Equal(t, 1, results[1].Chunk.Index)
}

func TestSearch_Determinism(t *testing.T) {
	r := newRetriever(
		"shared words everywhere today",
		"shared words everywhere tonight",
		"shared words everywhere tomorrow",
	)
	first, err := r.Search("shared words", 3)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.Search("shared words", 3)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestSearch_TopKTruncation(t *testing.T) {
	r := newRetriever("one fish", "two fish", "red fish", "blue fish")
	for _, k := range []int{1, 2, 4, 10} {
		results, err := r.Search("fish", k)
		require.NoError(t, err)
		want := k
		if want > 4 {
			want = 4
		}
		assert.Len(t, results, want, "topK=%d", k)
	}

	results, err := r.Search("fish", 0)
	require.NoError(t, err)
	assert.Len(t, results, 4) // default topK exceeds chunk count
}

func TestSearch_EmptyIndex(t *testing.T) {
	r := New()
	r.SetIndex(index.Build(nil))
	results, err := r.Search("anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRelevantSentences(t *testing.T) {
	text := "Paris is the capital of France. It has a population of over two million. The Eiffel Tower is located there."

	t.Run("query term sentences returned", func(t *testing.T) {
		got := relevantSentences(text, []string{"paris", "population"})
		require.Len(t, got, 2)
		assert.Contains(t, got, "Paris is the capital of France.")
		assert.Contains(t, got, "It has a population of over two million.")
	})

	t.Run("multi-term sentence outranks single-term", func(t *testing.T) {
		txt := "Paris has a growing population. Paris is old. Nothing matches here."
		got := relevantSentences(txt, []string{"paris", "population"})
		require.NotEmpty(t, got)
		assert.Equal(t, "Paris has a growing population.", got[0])
	})

	t.Run("caps at three sentences", func(t *testing.T) {
		txt := "Paris one. Paris two. Paris three. Paris four. Paris five."
		got := relevantSentences(txt, []string{"paris"})
		assert.Len(t, got, 3)
	})

	t.Run("no query terms", func(t *testing.T) {
		assert.Empty(t, relevantSentences(text, nil))
	})
}

func TestCosine(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := domain.Vector{"a": 0.5, "b": 0.3}
		assert.InDelta(t, 1.0, cosine(v, v), 1e-12)
	})

	t.Run("disjoint vectors", func(t *testing.T) {
		assert.Zero(t, cosine(domain.Vector{"a": 1}, domain.Vector{"b": 1}))
	})

	t.Run("empty vectors", func(t *testing.T) {
		assert.Zero(t, cosine(domain.Vector{}, domain.Vector{}))
		assert.Zero(t, cosine(domain.Vector{"a": 1}, domain.Vector{}))
	})
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second one! Third one? Trailing fragment")
	assert.Equal(t, []string{"First one.", "Second one!", "Third one?", "Trailing fragment"}, got)

	assert.Empty(t, splitSentences(""))
	assert.Equal(t, []string{"No terminator at all"}, splitSentences("No terminator at all"))
}
