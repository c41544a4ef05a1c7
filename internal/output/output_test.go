package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
)

func result() *ranking.Result {
	return &ranking.Result{
		SearchID: "s-1",
		Items: []ranking.ScoredCandidate{
			{
				Candidate:     candidate.Candidate{ID: "c2", Title: "Senior Frontend Developer", ExperienceYears: 6},
				Score:         96,
				MatchedFields: []scoring.Field{scoring.FieldRoleTitle, scoring.FieldSkills},
				Breakdown:     map[scoring.Field]float64{scoring.FieldRoleTitle: 0.75, scoring.FieldSkills: 1},
			},
			{
				Candidate:  candidate.Candidate{ID: "bad", Title: "Frontend Developer"},
				Score:      60,
				Flagged:    true,
				FlagReason: "experience years cannot be negative",
			},
		},
		Page:       2,
		PageSize:   2,
		TotalCount: 5,
		Flagged:    1,
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": FormatTable, "TABLE": FormatTable, "json": FormatJSON, " toml ": FormatTOML} {
		got, err := ParseFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatTable, true).Write(result()))

	out := buf.String()
	assert.Contains(t, out, "Senior Frontend Developer")
	assert.Contains(t, out, "roleTitle, skills")
	assert.Contains(t, out, "page 2 of 3, 5 candidate(s) total, 1 flagged")
	assert.Contains(t, out, "0.75")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatJSON, false).Write(result()))

	var decoded ranking.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"c2", "bad"}, decoded.IDs())
	assert.Nil(t, decoded.Items[0].Breakdown)
	assert.Equal(t, 5, decoded.TotalCount)
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatTOML, true).Write(result()))

	var decoded tomlReport
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, 3, decoded.Items[0].Rank)
	assert.Equal(t, "c2", decoded.Items[0].ID)
	assert.InDelta(t, 0.75, decoded.Items[0].Breakdown["roleTitle"], 1e-9)
	assert.True(t, decoded.Items[1].Flagged)
}

func TestSummaryFallback(t *testing.T) {
	res := &ranking.Result{Page: 1, PageSize: 10, TotalCount: 3, Fallback: true}
	assert.Equal(t, "page 1 of 1, 3 candidate(s) total, filters relaxed to the full pool", Summary(res))
}
