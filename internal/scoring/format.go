package scoring

import (
	"math"
	"strings"
)

// RoundHalfUp rounds x to the nearest integer, halves toward +Inf
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// WithArticle prefixes a noun phrase with "a" or "an"
func WithArticle(noun string) string {
	if noun != "" && strings.ContainsRune("aeiouAEIOU", rune(noun[0])) {
		return "an " + noun
	}
	return "a " + noun
}
