package ranking

import (
	"encoding/json"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/candidate-ranker/internal/candidate"
)

func scored(pairs ...any) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, ScoredCandidate{
			Candidate: candidate.Candidate{ID: pairs[i].(string)},
			Score:     pairs[i+1].(int),
		})
	}
	return out
}

func idsOf(items []ScoredCandidate) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Candidate.ID)
	}
	return out
}

func TestRankIsStable(t *testing.T) {
	in := scored("a", 70, "b", 90, "c", 70, "d", 100, "e", 70)

	ranked := Rank(in)
	assert.Equal(t, []string{"d", "b", "a", "c", "e"}, idsOf(ranked))

	again := Rank(ranked)
	assert.Equal(t, idsOf(ranked), idsOf(again))

	// Input is left untouched.
	assert.Equal(t, "a", in[0].Candidate.ID)
}

func TestPaginate(t *testing.T) {
	ranked := Rank(scored("a", 90, "b", 80, "c", 70, "d", 60, "e", 50))

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []string
	}{
		{name: "first page", page: 1, pageSize: 2, want: []string{"a", "b"}},
		{name: "last partial page", page: 3, pageSize: 2, want: []string{"e"}},
		{name: "whole pool", page: 1, pageSize: 10, want: []string{"a", "b", "c", "d", "e"}},
		{name: "past the end", page: 99999, pageSize: 10, want: []string{}},
		{name: "huge page", page: math.MaxInt, pageSize: 10, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Paginate(ranked, tt.page, tt.pageSize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, idsOf(page))
		})
	}
}

func TestPaginateRejectsInvalidArguments(t *testing.T) {
	ranked := scored("a", 90)

	for _, args := range [][2]int{{0, 10}, {-1, 10}, {1, 0}, {1, -5}} {
		_, err := Paginate(ranked, args[0], args[1])
		assert.ErrorIs(t, err, ErrInvalidArgument, "page=%d size=%d", args[0], args[1])
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(5, 10))
	assert.Equal(t, 3, PageCount(5, 2))
	assert.Equal(t, 0, PageCount(5, 0))
}

func TestResultNavigationAndDump(t *testing.T) {
	r := &Result{Items: scored("a", 90, "b", 80), Page: 1, PageSize: 2, TotalCount: 5}

	assert.Equal(t, 3, r.Pages())
	assert.True(t, r.HasNext())
	assert.False(t, r.HasPrevious())
	assert.Equal(t, []string{"a", "b"}, r.IDs())

	name, err := r.DumpToTmpFile()
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 5, decoded.TotalCount)
	assert.Equal(t, []string{"a", "b"}, decoded.IDs())
}
