package suggest

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// threshold is the minimum similarity score required for a string to be considered similar.
const threshold = 0.5

// subsequenceScore ranks candidates that contain the target's characters in order, like "gb" for
// "good-boy", but are too far away by edit distance.
const subsequenceScore = threshold + 0.05

type suggestion struct {
	name  string
	score float64
}

// FindSimilar returns a list of similar strings to the target string from a list of candidates,
// best match first. Duplicate candidates are reported once.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	// Early returns for invalid inputs
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	scores := make(map[string]float64, len(candidates))

	// Calculate similarity scores
	for _, name := range candidates {
		score := calculateSimilarity(target, name)
		if score > threshold && score > scores[name] {
			scores[name] = score
		}
	}
	for _, rank := range fuzzy.RankFindFold(target, candidates) {
		if _, ok := scores[rank.Target]; !ok {
			scores[rank.Target] = subsequenceScore
		}
	}

	suggestions := make([]suggestion, 0, len(scores))
	for name, score := range scores {
		suggestions = append(suggestions, suggestion{name, score})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].score == suggestions[j].score {
			return suggestions[i].name < suggestions[j].name
		}
		return suggestions[i].score > suggestions[j].score
	})

	// Get top N suggestions
	result := make([]string, 0, maxResults)
	for i := 0; i < len(suggestions) && i < maxResults; i++ {
		result = append(result, suggestions[i].name)
	}

	return result
}

func calculateSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	// Perfect match
	if a == b {
		return 1.0
	}
	// Prefix match bonus
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	ra, rb := []rune(a), []rune(b)
	distance := levenshteinDistance(ra, rb)
	maxLen := float64(max(len(ra), len(rb)))

	// Convert distance to similarity score (0 to 1)
	return 1.0 - float64(distance)/maxLen
}

func levenshteinDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows are enough: each row only depends on the one before it.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
