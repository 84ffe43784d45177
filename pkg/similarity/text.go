// Package similarity provides text similarity primitives for the dedup engine.
package similarity

import "strings"

// SetSimilarity returns the Jaccard index of two string slices. Elements are
// lower-cased and trimmed before set construction, so duplicates and casing
// variants collapse. Returns 0 when either set is empty (including both).
func SetSimilarity(a, b []string) float64 {
	setA := normalizeSet(a)
	setB := normalizeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for item := range setA {
		if setB[item] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// StringSimilarity returns 1 minus the normalized Levenshtein distance
// between two strings, compared lower-cased and trimmed. Equal strings
// (including two empties) score 1; one empty side scores 0.
func StringSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	distance := levenshtein(a, b)
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return 1 - float64(distance)/float64(longer)
}

// SignificantWords extracts content-bearing tokens from free text: lower-case,
// split on non-alphanumeric runes, drop tokens shorter than 3 characters and
// stopwords. Order of the result is not meaningful.
func SignificantWords(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})

	result := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) >= 3 && !stopWords[word] {
			result = append(result, word)
		}
	}
	return result
}

// stopWords covers English function words plus nouns so generic in a
// digitization corpus that they carry no discriminating signal.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"were": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "this": true, "that": true, "these": true, "those": true,
	"with": true, "from": true, "into": true, "about": true, "over": true,
	"under": true, "near": true, "but": true, "not": true, "all": true,
	"its": true, "their": true, "which": true, "who": true, "what": true,
	"when": true, "where": true, "how": true, "why": true, "will": true,
	"would": true, "could": true, "should": true, "may": true, "might": true,
	// Domain-generic nouns: present in almost every record, useless for overlap.
	"document": true, "image": true, "photo": true, "picture": true,
	"collection": true, "art": true, "artwork": true, "installation": true,
	"public": true, "view": true, "item": true, "object": true,
}

// levenshtein computes the classic edit distance with the two-row DP variant.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func normalizeSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized != "" {
			set[normalized] = true
		}
	}
	return set
}
