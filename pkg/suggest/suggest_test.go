package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSimilar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		candidates []string
		maxResults int
		expected   []string
	}{
		{"exact match first", "remote", []string{"status", "remove", "remote"}, 2, []string{"remote", "remove"}},
		{"prefix ties by name", "bra", []string{"bread", "brand", "branch"}, 2, []string{"branch", "brand"}},
		{"case insensitive", "STAT", []string{"status", "commit"}, 3, []string{"status"}},
		{"subsequence", "gb", []string{"good-boy", "name", "alive"}, 3, []string{"good-boy"}},
		{"duplicate candidates", "dogg", []string{"dog", "dog", "cat"}, 3, []string{"dog"}},
		{"ordered by score", "nme", []string{"alive", "names", "name"}, 3, []string{"name", "names"}},
		{"no matches", "xyz", []string{"branch", "commit"}, 3, []string{}},
		{"empty target", "", []string{"branch", "commit"}, 3, []string{}},
		{"no candidates", "branch", nil, 3, []string{}},
		{"zero max results", "dog", []string{"dog"}, 0, []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FindSimilar(tt.target, tt.candidates, tt.maxResults))
		})
	}
}

func TestCalculateSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected float64
	}{
		{"commit", "commit", 1.0},
		{"Commit", "commit", 1.0},
		{"com", "commit", 0.9},
		{"branch", "branches", 0.9},
		{"remote", "remove", 0.833},
		{"commit", "remote", 0.167},
		{"", "", 1.0},
		{"dog", "", 0.0},
	}
	for _, tt := range tests {
		result := calculateSimilarity(tt.a, tt.b)
		assert.InDelta(t, tt.expected, result, 0.001, "similarity mismatch for %q and %q", tt.a, tt.b)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b     string
		expected int
	}{
		{"remote", "remote", 0},
		{"remote", "remove", 1},
		{"add", "adds", 1},
		{"branch", "branc", 1},
		{"kitten", "sitting", 3},
		{"größe", "grösse", 2},
		{"", "dog", 3},
		{"dog", "", 3},
		{"", "", 0},
	}
	for _, tt := range tests {
		result := levenshteinDistance([]rune(tt.a), []rune(tt.b))
		assert.Equal(t, tt.expected, result, "distance mismatch for %q and %q", tt.a, tt.b)
	}
}
