// Package ranking orders scored candidates and slices them into pages.
package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/scoring"
)

// ErrInvalidArgument indicates a page request that cannot be served.
var ErrInvalidArgument = errors.New("invalid argument")

// ScoredCandidate is a candidate paired with its score.
type ScoredCandidate struct {
	Candidate     candidate.Candidate       `json:"candidate"`
	Score         int                       `json:"score"`
	MatchedFields []scoring.Field           `json:"matchedFields"`
	Flagged       bool                      `json:"flagged,omitempty"`
	FlagReason    string                    `json:"flagReason,omitempty"`
	Breakdown     map[scoring.Field]float64 `json:"breakdown,omitempty"`
}

// FromEvaluation pairs a candidate with its evaluation.
func FromEvaluation(c candidate.Candidate, ev scoring.Evaluation) ScoredCandidate {
	return ScoredCandidate{
		Candidate:     c,
		Score:         ev.Score,
		MatchedFields: ev.Matched,
		Flagged:       ev.Flagged,
		FlagReason:    ev.FlagReason,
		Breakdown:     ev.Breakdown,
	}
}

// Rank returns a copy of scored ordered by descending score. Equal scores
// keep their input order.
func Rank(scored []ScoredCandidate) []ScoredCandidate {
	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// Paginate returns the 1-indexed page of ranked. A page past the end is
// empty, not an error.
func Paginate(ranked []ScoredCandidate, page, pageSize int) ([]ScoredCandidate, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidArgument, page)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("%w: page size must be at least 1, got %d", ErrInvalidArgument, pageSize)
	}

	start := (page - 1) * pageSize
	// Guard against overflow for very large page numbers.
	if start < 0 || start/pageSize != page-1 || start >= len(ranked) {
		return []ScoredCandidate{}, nil
	}

	end := start + pageSize
	if end > len(ranked) || end < start {
		end = len(ranked)
	}

	out := make([]ScoredCandidate, end-start)
	copy(out, ranked[start:end])
	return out, nil
}

// PageCount returns how many pages total items fill.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
