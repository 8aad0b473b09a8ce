// Package pricing normalizes product names from OCR'd receipts and aggregates
// community price observations into per-product comparisons.
package pricing

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Match-confidence thresholds for the similarity fallback.
const (
	confidentThreshold = 0.85
	reviewThreshold    = 0.6
	suggestionCutoff   = 0.5
	maxSuggestions     = 5
)

// Similarity weights: edit-distance ratio vs token overlap.
const (
	levenshteinWeight = 0.6
	jaccardWeight     = 0.4
)

// Suggestion is a candidate product for a low-confidence match.
type Suggestion struct {
	ProductID      string  `json:"productId"`
	NormalizedName string  `json:"normalizedName"`
	Score          float64 `json:"score"`
}

// MatchResult is the outcome of normalizing one raw product name.
type MatchResult struct {
	ProductID      string       `json:"productId,omitempty"`
	NormalizedName string       `json:"normalizedName"`
	Category       string       `json:"category,omitempty"`
	Confidence     float64      `json:"confidence"`
	Method         string       `json:"method"` // "exact", "abbreviation", "similarity", "similarity_low", "none"
	NeedsReview    bool         `json:"needsReview"`
	Suggestions    []Suggestion `json:"suggestions,omitempty"`
}

// Normalizer resolves raw receipt text to catalog products.
type Normalizer struct {
	index    map[string]string // cleaned alias -> product ID
	products map[string]Product
}

// NewNormalizer builds a normalizer over the built-in master catalog.
func NewNormalizer() *Normalizer {
	n := &Normalizer{
		index:    make(map[string]string),
		products: make(map[string]Product),
	}
	for _, p := range masterProducts {
		n.products[p.ID] = p
		n.addAlias(p.NormalizedName, p.ID)
		for _, a := range p.AliasesFR {
			n.addAlias(a, p.ID)
		}
		for _, a := range p.AliasesEN {
			n.addAlias(a, p.ID)
		}
	}
	return n
}

func (n *Normalizer) addAlias(alias, productID string) {
	if cleaned := CleanText(alias); cleaned != "" {
		n.index[cleaned] = productID
	}
}

// CleanText lowercases, strips diacritics and punctuation, and drops noise
// words and single-character tokens. Returns "" for empty or all-noise input.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = stripDiacritics(text)

	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	var kept []string
	for _, w := range strings.Fields(b.String()) {
		if len(w) > 1 && !noiseWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExpandAbbreviations rewrites known receipt shorthand to full phrases,
// trying two-word abbreviations before single words.
func ExpandAbbreviations(text string) string {
	cleaned := CleanText(text)
	if full, ok := abbreviationMap[cleaned]; ok {
		return full
	}

	words := strings.Fields(cleaned)
	var expanded []string
	for i := 0; i < len(words); {
		if i+1 < len(words) {
			if full, ok := abbreviationMap[words[i]+" "+words[i+1]]; ok {
				expanded = append(expanded, full)
				i += 2
				continue
			}
		}
		if full, ok := abbreviationMap[words[i]]; ok {
			expanded = append(expanded, full)
		} else {
			expanded = append(expanded, words[i])
		}
		i++
	}
	return strings.Join(expanded, " ")
}

// levenshteinSimilarity is 1 - editDistance/maxLen, in [0,1].
func levenshteinSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0
	}
	if s1 == s2 {
		return 1
	}
	r1, r2 := []rune(s1), []rune(s2)
	prev := make([]int, len(r2)+1)
	cur := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		cur[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}
	return 1 - float64(prev[len(r2)])/float64(maxLen)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// jaccardSimilarity is token-set overlap, tolerant of word-order differences.
func jaccardSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0
	}
	set1 := make(map[string]bool)
	for _, w := range strings.Fields(s1) {
		set1[w] = true
	}
	set2 := make(map[string]bool)
	for _, w := range strings.Fields(s2) {
		set2[w] = true
	}
	inter := 0
	for w := range set1 {
		if set2[w] {
			inter++
		}
	}
	union := len(set1) + len(set2) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func combinedSimilarity(s1, s2 string) float64 {
	return levenshteinWeight*levenshteinSimilarity(s1, s2) + jaccardWeight*jaccardSimilarity(s1, s2)
}

// Normalize resolves a raw product name to the catalog. Matching order:
// exact alias lookup, abbreviation expansion, then combined similarity with
// confidence thresholds. Unmatched or low-confidence names are flagged for
// review with up to five suggestions.
func (n *Normalizer) Normalize(raw string) MatchResult {
	if raw == "" {
		return MatchResult{Method: "none", NeedsReview: true}
	}

	cleaned := CleanText(raw)
	if id, ok := n.index[cleaned]; ok {
		return n.confident(id, 1.0, "exact")
	}

	expanded := ExpandAbbreviations(raw)
	if expanded != cleaned {
		if id, ok := n.index[CleanText(expanded)]; ok {
			return n.confident(id, 0.95, "abbreviation")
		}
	}

	bestID, bestScore := "", 0.0
	var suggestions []Suggestion
	seen := make(map[string]bool)
	for alias, id := range n.index {
		score := combinedSimilarity(cleaned, alias)
		if score > bestScore {
			bestScore, bestID = score, id
		}
		if score > suggestionCutoff && !seen[id] {
			seen[id] = true
			suggestions = append(suggestions, Suggestion{
				ProductID:      id,
				NormalizedName: n.products[id].NormalizedName,
				Score:          round3(score),
			})
		}
	}
	sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].Score > suggestions[j].Score })
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	switch {
	case bestScore >= confidentThreshold:
		return n.confident(bestID, round3(bestScore), "similarity")
	case bestScore >= reviewThreshold:
		res := n.confident(bestID, round3(bestScore), "similarity_low")
		res.NeedsReview = true
		res.Suggestions = suggestions
		return res
	default:
		return MatchResult{
			NormalizedName: cleaned,
			Confidence:     round3(bestScore),
			Method:         "none",
			NeedsReview:    true,
			Suggestions:    suggestions,
		}
	}
}

func (n *Normalizer) confident(productID string, confidence float64, method string) MatchResult {
	p := n.products[productID]
	return MatchResult{
		ProductID:      productID,
		NormalizedName: p.NormalizedName,
		Category:       p.Category,
		Confidence:     confidence,
		Method:         method,
	}
}

func round3(f float64) float64 {
	return float64(int(f*1000+0.5)) / 1000
}
