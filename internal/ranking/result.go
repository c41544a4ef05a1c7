package ranking

import (
	"encoding/json"
	"os"

	"github.com/spigell/candidate-ranker/internal/filtering"
)

// Result is one page of a search.
type Result struct {
	SearchID   string            `json:"searchId,omitempty"`
	Items      []ScoredCandidate `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount int               `json:"totalCount"`
	// Flagged counts candidates scored with the neutral default because
	// their record could not be evaluated.
	Flagged  int              `json:"flagged"`
	Fallback bool             `json:"fallback"`
	Steps    []filtering.Step `json:"steps,omitempty"`
}

func (r *Result) Len() int {
	return len(r.Items)
}

// Pages returns the number of pages for the result's total.
func (r *Result) Pages() int {
	return PageCount(r.TotalCount, r.PageSize)
}

// HasNext reports whether a page follows this one.
func (r *Result) HasNext() bool {
	return r.Page < r.Pages()
}

// HasPrevious reports whether a non-empty page precedes this one.
func (r *Result) HasPrevious() bool {
	return r.Page > 1 && r.TotalCount > 0
}

// IDs returns candidate IDs in rank order.
func (r *Result) IDs() []string {
	ids := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		ids = append(ids, item.Candidate.ID)
	}
	return ids
}

// DumpToTmpFile writes the result as indented JSON into a new temp file and
// returns its name.
func (r *Result) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
