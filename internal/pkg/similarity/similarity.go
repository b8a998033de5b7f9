// Package similarity scores how close two free-text descriptions are.
package similarity

import (
	"strings"
	"unicode"
)

// Compare returns the Sørensen–Dice coefficient of the character bigrams of a and b,
// ignoring all whitespace. The result is in [0, 1]; identical inputs (including two
// empty ones) score 1 and inputs shorter than two characters score 0 unless equal.
func Compare(a, b string) float64 {
	first := stripSpace(a)
	second := stripSpace(b)

	if string(first) == string(second) {
		return 1
	}
	if len(first) < 2 || len(second) < 2 {
		return 0
	}

	bigrams := make(map[[2]rune]int, len(first)-1)
	for i := 0; i < len(first)-1; i++ {
		bigrams[[2]rune{first[i], first[i+1]}]++
	}

	intersection := 0
	for i := 0; i < len(second)-1; i++ {
		key := [2]rune{second[i], second[i+1]}
		if bigrams[key] > 0 {
			bigrams[key]--
			intersection++
		}
	}

	return 2 * float64(intersection) / float64(len(first)+len(second)-2)
}

// ReportText builds the lowercased "title description" string that reports are scored on.
func ReportText(title, description string) string {
	return strings.ToLower(title) + " " + strings.ToLower(description)
}

func stripSpace(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}
