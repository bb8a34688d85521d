package util

import (
	"math"
	"strings"

	"github.com/richard-senior/smoothcurve/internal/logger"
)

// FuzzyThreshold is the largest edit distance IsFuzzyMatch accepts
const FuzzyThreshold = 2

/**
* Returns true if the two terms are a fuzzy match
* In this case, if the 'Levenshtein distance' is <= FuzzyThreshold
 */
func IsFuzzyMatch(str1, str2 string) bool {
	ld := FuzzyMatch(str1, str2)
	logger.Debug("Levenshtein distance for "+str1+" and "+str2+" is", ld)
	return ld <= FuzzyThreshold
}

// FuzzyMatch returns the edit distance between the two strings after
// normalising case, surrounding space and separators
func FuzzyMatch(str1, str2 string) int {
	return LevenshteinDistance(normaliseName(str1), normaliseName(str2))
}

// BestFuzzyMatch returns the candidate closest to name and its distance.
// Ties go to the earlier candidate.
func BestFuzzyMatch(name string, candidates []string) (string, int) {
	best := ""
	bestDistance := math.MaxInt32
	for _, c := range candidates {
		d := FuzzyMatch(name, c)
		if d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, bestDistance
}

func normaliseName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// LevenshteinDistance calculates the Levenshtein distance between two strings
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
