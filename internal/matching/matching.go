// Package matching compares criteria phrases against candidate fields and
// reports how well they agree as a fraction in [0, 1].
package matching

import (
	"strings"

	"github.com/spigell/candidate-ranker/internal/tokens"
)

// Credit levels, in priority order.
const (
	ExactCredit     = 1.0
	SubstringCredit = 0.75
	// WordOverlapCredit is multiplied by the share of shared tokens.
	WordOverlapCredit = 0.6
)

// Kind tells which rule produced a match.
type Kind int

const (
	None Kind = iota
	WordOverlap
	Substring
	Exact
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Substring:
		return "substring"
	case WordOverlap:
		return "word"
	default:
		return "none"
	}
}

// Match is the outcome of comparing two phrases.
type Match struct {
	Kind   Kind
	Credit float64
}

// Equal reports case-insensitive equality of trimmed values.
func Equal(a, b string) bool {
	a, b = fold(a), fold(b)
	return a != "" && a == b
}

// Contains reports whether either value contains the other, ignoring case.
func Contains(a, b string) bool {
	a, b = fold(a), fold(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Overlap returns the share of want's normalized tokens that also appear in
// have. It is zero when want has no usable tokens.
func Overlap(want, have string) float64 {
	wantTokens := tokens.Set(want)
	if len(wantTokens) == 0 {
		return 0
	}

	haveTokens := tokens.Set(have)
	shared := 0
	for token := range wantTokens {
		if haveTokens[token] {
			shared++
		}
	}

	return float64(shared) / float64(len(wantTokens))
}

// Phrase compares a requested phrase against a candidate value using the
// exact, substring and word-overlap rules in that order.
func Phrase(want, have string) Match {
	switch {
	case Equal(want, have):
		return Match{Kind: Exact, Credit: ExactCredit}
	case Contains(want, have):
		return Match{Kind: Substring, Credit: SubstringCredit}
	}

	if share := Overlap(want, have); share > 0 {
		return Match{Kind: WordOverlap, Credit: WordOverlapCredit * share}
	}

	return Match{Kind: None}
}

// Best returns the strongest Phrase match of want against any of values.
func Best(want string, values []string) Match {
	best := Match{Kind: None}
	for _, value := range values {
		m := Phrase(want, value)
		if m.Credit > best.Credit {
			best = m
		}
		if best.Kind == Exact {
			break
		}
	}
	return best
}

// Mean averages the Best match of every wanted phrase. An empty want list
// yields zero.
func Mean(wants []string, values []string) float64 {
	if len(wants) == 0 {
		return 0
	}

	total := 0.0
	for _, want := range wants {
		total += Best(want, values).Credit
	}
	return total / float64(len(wants))
}

// AnyContains reports whether want is a substring of, or contains, any of
// labels.
func AnyContains(want string, labels []string) bool {
	for _, label := range labels {
		if Contains(want, label) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
