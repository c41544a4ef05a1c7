package candidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/candidate-ranker/internal/logger"
)

const variantPool = `[
  {
    "id": "c1",
    "title": "  Frontend Developer ",
    "experience": 4,
    "skills": ["React", "react", {"name": "TypeScript"}],
    "industries": ["Fintech", "fintech"],
    "verificationBadges": ["skill", "unknown", "SKILL"]
  },
  {
    "id": "c2",
    "title": "Backend Engineer",
    "experience": {"years": 7},
    "skills": {"technical": [{"label": "Go"}], "soft": ["Mentoring"]},
    "location": {"city": "Berlin", "country": "DE", "remote": true}
  },
  {
    "id": "c3",
    "title": "Data Scientist",
    "experienceYears": "2.8"
  }
]`

func newLoader(t *testing.T, log *zap.Logger) *Loader {
	t.Helper()
	l, err := NewLoader(log)
	require.NoError(t, err)
	return l
}

func TestDecodeNormalizesVariants(t *testing.T) {
	pool, report, err := newLoader(t, nil).Decode([]byte(variantPool))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Loaded)
	assert.Empty(t, report.Skipped)
	require.Equal(t, []string{"c1", "c2", "c3"}, pool.IDs())

	c1 := pool.FindByID("c1")
	assert.Equal(t, "Frontend Developer", c1.Title)
	assert.Equal(t, 4, c1.ExperienceYears)
	assert.Equal(t, []string{"React", "TypeScript"}, c1.Skills.Labels())
	assert.Equal(t, []string{"Fintech"}, c1.Industries)
	assert.Equal(t, []BadgeKind{BadgeSkill}, c1.VerificationBadges)
	assert.NotNil(t, c1.Achievements)

	c2 := pool.FindByID("c2")
	assert.Equal(t, 7, c2.ExperienceYears)
	assert.Equal(t, []string{"Go", "Mentoring"}, c2.Skills.Labels())
	assert.Equal(t, "Berlin, DE, remote", c2.Location.String())

	assert.Equal(t, 2, pool.FindByID("c3").ExperienceYears)
	assert.Nil(t, pool.FindByID("missing"))
}

func TestDecodeSkipsBadRecords(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)

	data := `{"candidates": [
	  {"id": "ok", "title": "Designer"},
	  {"title": "No ID"},
	  {"id": "bad-exp", "experience": "lots"},
	  {"id": "ok", "title": "Duplicate"},
	  42,
	  {"id": "bad-type", "industries": "Fintech"}
	]}`

	pool, report, err := newLoader(t, zap.New(core)).Decode([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"ok"}, pool.IDs())
	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 1, report.Loaded)
	require.Len(t, report.Skipped, 5)

	indexes := make([]int, 0, len(report.Skipped))
	for _, s := range report.Skipped {
		indexes = append(indexes, s.Index)
		assert.NotEmpty(t, s.Reason)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, indexes)
	assert.Equal(t, "bad-exp", report.Skipped[1].ID)
	skippedLogs := logs.FilterMessage("skipping candidate record").All()
	require.Len(t, skippedLogs, 5)
	assert.Equal(t, "bad-exp", skippedLogs[1].ContextMap()[logger.FieldCandidateID])
}

func TestDecodeKeepsRecordsThatFailValidation(t *testing.T) {
	pool, report, err := newLoader(t, nil).Decode([]byte(`[{"id": "neg", "experience": -3}]`))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Loaded)
	c := pool.FindByID("neg")
	require.NotNil(t, c)
	assert.ErrorIs(t, c.Validate(), ErrNegativeExperience)
}

func TestDecodeMalformedDocument(t *testing.T) {
	_, _, err := newLoader(t, nil).Decode([]byte(`[{"id": `))
	assert.ErrorIs(t, err, ErrMalformedPool)

	pool, report, err := newLoader(t, nil).Decode([]byte("  "))
	require.NoError(t, err)
	assert.Zero(t, pool.Len())
	assert.Zero(t, report.Total)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	require.NoError(t, os.WriteFile(first, []byte(`[{"id": "a"}, {"id": "b"}]`), 0o600))
	require.NoError(t, os.WriteFile(second, []byte(`[{"id": "b", "title": "Later"}, {"id": "c"}, {"title": "no id"}]`), 0o600))

	pool, report, err := newLoader(t, nil).LoadFiles(first, second)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, pool.IDs())
	assert.Empty(t, pool.FindByID("b").Title)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 3, report.Loaded)
	require.Len(t, report.Skipped, 2)
	for _, s := range report.Skipped {
		assert.Equal(t, second, s.Source)
	}

	_, _, err = newLoader(t, nil).LoadFiles(first, filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
