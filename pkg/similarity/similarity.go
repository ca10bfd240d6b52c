// Package similarity ranks candidates by the Ratcliff/Obershelp sequence
// ratio computed by difflib.
package similarity

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns 2*M/T where M is the number of characters in matching blocks
// and T the combined length. Two empty strings score 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

// Match is one ranked candidate.
type Match struct {
	Value string
	Score float64
}

// CloseMatches returns at most n candidates scoring at least cutoff against
// word, best first. Equal scores order by value, descending.
func CloseMatches(word string, candidates []string, n int, cutoff float64) []Match {
	if n <= 0 {
		return nil
	}
	var out []Match
	for _, c := range candidates {
		if s := Ratio(c, word); s >= cutoff {
			out = append(out, Match{Value: c, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Value > out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Best returns the highest scoring candidate at or above cutoff.
func Best(word string, candidates []string, cutoff float64) (Match, bool) {
	m := CloseMatches(word, candidates, 1, cutoff)
	if len(m) == 0 {
		return Match{}, false
	}
	return m[0], true
}
