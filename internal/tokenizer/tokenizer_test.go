package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTerms(t *testing.T) {
	t.Run("lowercases and strips punctuation", func(t *testing.T) {
		terms := ExtractTerms("Cats are small mammals that purr.")
		assert.Equal(t, []string{"cats", "small", "mammals", "purr"}, terms)
	})

	t.Run("drops short tokens", func(t *testing.T) {
		terms := ExtractTerms("go is ok but golang rocks")
		assert.Equal(t, []string{"golang", "rocks"}, terms)
	})

	t.Run("deduplicates preserving first occurrence order", func(t *testing.T) {
		terms := ExtractTerms("tiger tiger burning bright tiger")
		assert.Equal(t, []string{"tiger", "burning", "bright"}, terms)
	})

	t.Run("stop-words only", func(t *testing.T) {
		assert.Empty(t, ExtractTerms("the and of"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ExtractTerms(""))
		assert.Empty(t, ExtractTerms("   \n\t  "))
	})

	t.Run("collapses mixed separators", func(t *testing.T) {
		terms := ExtractTerms("first,second;third--fourth")
		assert.Equal(t, []string{"first", "second", "third", "fourth"}, terms)
	})
}

func TestTermCounts(t *testing.T) {
	t.Run("counts raw occurrences", func(t *testing.T) {
		counts, total := TermCounts("cat cat dog")
		require.Equal(t, 3, total)
		assert.Equal(t, 2, counts["cat"])
		assert.Equal(t, 1, counts["dog"])
	})

	t.Run("total excludes stop-words and short tokens", func(t *testing.T) {
		counts, total := TermCounts("the cat is a cat")
		assert.Equal(t, 2, total)
		assert.Len(t, counts, 1)
	})

	t.Run("empty input", func(t *testing.T) {
		counts, total := TermCounts("")
		assert.Zero(t, total)
		assert.Empty(t, counts)
	})
}
