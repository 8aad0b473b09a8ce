package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Tomates  ", "tomates"},
		{"Huile de Palme 1L", "huile palme 1l"},
		{"PÂTES (500g)", "pates 500g"},
		{"le pain", "pain"},
		{"a b", ""}, // single-char tokens dropped
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, CleanText(tt.in), "CleanText(%q)", tt.in)
	}
}

func TestExpandAbbreviations(t *testing.T) {
	assert.Equal(t, "huile de palme", ExpandAbbreviations("HLE PLM"))
	assert.Equal(t, "chicken", ExpandAbbreviations("chkn"))
	assert.Equal(t, "mineral water", ExpandAbbreviations("min wtr"))
	// Unknown text passes through cleaned.
	assert.Equal(t, "riz parfume", ExpandAbbreviations("Riz Parfumé"))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, levenshteinSimilarity("tomate", "tomate"))
	assert.Equal(t, 0.0, levenshteinSimilarity("", "tomate"))
	assert.Greater(t, levenshteinSimilarity("tomates", "tomate"), 0.8)
	assert.InDelta(t, 1.0, jaccardSimilarity("palme huile", "huile palme"), 1e-9) // order-insensitive

	// Distinct single tokens have zero token overlap, so the Jaccard term
	// caps the combined score at 0.6 of the edit-distance ratio.
	assert.InDelta(t, 0.514, combinedSimilarity("tomates", "tomate"), 0.001)
	assert.Greater(t, combinedSimilarity("huile palme", "huile palme rouge"), 0.6)
}

func TestNormalizeExactAlias(t *testing.T) {
	n := NewNormalizer()

	res := n.Normalize("Tomates")
	assert.Equal(t, "tomato", res.NormalizedName)
	assert.Equal(t, "exact", res.Method)
	assert.Equal(t, 1.0, res.Confidence)
	assert.False(t, res.NeedsReview)

	res = n.Normalize("huile de palme")
	assert.Equal(t, "palm oil", res.NormalizedName)
	assert.Equal(t, "exact", res.Method)
}

func TestNormalizeAbbreviation(t *testing.T) {
	n := NewNormalizer()

	res := n.Normalize("HLE PLM")
	assert.Equal(t, "palm oil", res.NormalizedName)
	assert.Equal(t, "abbreviation", res.Method)
	assert.Equal(t, 0.95, res.Confidence)
	assert.False(t, res.NeedsReview)
}

func TestNormalizeBrandAlias(t *testing.T) {
	n := NewNormalizer()

	res := n.Normalize("Omo")
	assert.Equal(t, "detergent", res.NormalizedName)
	assert.False(t, res.NeedsReview)
}

func TestNormalizeSimilarityFallback(t *testing.T) {
	n := NewNormalizer()

	// A size suffix keeps the name off the exact index but close enough for
	// a low-confidence match flagged for review.
	res := n.Normalize("Huile de Palme 1L")
	assert.Equal(t, "palm oil", res.NormalizedName)
	assert.Equal(t, "similarity_low", res.Method)
	assert.True(t, res.NeedsReview)
	assert.NotEmpty(t, res.Suggestions)
}

func TestNormalizeTypoProducesSuggestions(t *testing.T) {
	n := NewNormalizer()

	res := n.Normalize("tomatoe")
	assert.True(t, res.NeedsReview)
	if assert.NotEmpty(t, res.Suggestions) {
		assert.Equal(t, "tomato", res.Suggestions[0].NormalizedName)
	}
}

func TestNormalizeUnknownNeedsReview(t *testing.T) {
	n := NewNormalizer()

	res := n.Normalize("zzqx widget")
	assert.True(t, res.NeedsReview)
	assert.Empty(t, res.ProductID)
	assert.Equal(t, "none", res.Method)
}

func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer()

	res := n.Normalize("")
	assert.True(t, res.NeedsReview)
	assert.Equal(t, "none", res.Method)
}
