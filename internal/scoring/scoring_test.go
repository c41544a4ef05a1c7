package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/criteria"
	"github.com/spigell/candidate-ranker/internal/logger"
)

func newCalculator(t *testing.T, opts ...Option) *Calculator {
	t.Helper()
	calc, err := NewCalculator(opts...)
	require.NoError(t, err)
	return calc
}

func frontend() *candidate.Candidate {
	return &candidate.Candidate{
		ID:              "c1",
		Title:           "Frontend Developer",
		ExperienceYears: 3,
		Skills: candidate.Skills{
			Technical: []candidate.Skill{{Label: "React"}},
		},
		Industries:   []string{"Fintech"},
		Achievements: []string{"Shipped the design system"},
	}
}

func TestNeutralScoreForEmptyCriteria(t *testing.T) {
	calc := newCalculator(t)

	for _, c := range []*candidate.Candidate{
		frontend(),
		{ID: "bare"},
		{ID: "badges", VerificationBadges: []candidate.BadgeKind{candidate.BadgeSkill}},
	} {
		ev := calc.Evaluate(c, calc.Plan(criteria.SearchCriteria{}))
		assert.Equal(t, NeutralScore, ev.Score, c.ID)
		assert.False(t, ev.Flagged)
		assert.Empty(t, ev.Matched)
	}
}

func TestContextWithoutKeywordsCountsAsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		context string
	}{
		{name: "stop words only", context: "we are on it"},
		{name: "keyword extraction off", opts: []Option{WithKeywordCount(0)}, context: "React platform engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newCalculator(t, tt.opts...)
			plan := calc.Plan(criteria.SearchCriteria{FreeTextContext: criteria.Text(tt.context)})

			assert.Empty(t, plan.Fields())
			assert.Empty(t, plan.Keywords())

			ev := calc.Evaluate(frontend(), plan)
			assert.Equal(t, NeutralScore, ev.Score)
			assert.Empty(t, ev.Matched)
		})
	}
}

func TestScoreBounds(t *testing.T) {
	calc := newCalculator(t)

	full := frontend()
	full.VerificationBadges = []candidate.BadgeKind{candidate.BadgeSkill, candidate.BadgeIdentity, candidate.BadgeRoleplay}
	assert.Equal(t, MaxScore, calc.Score(full, criteria.SearchCriteria{RoleTitle: criteria.Text("Frontend Developer")}))

	none := &candidate.Candidate{ID: "none", Title: "Accountant"}
	assert.Equal(t, MinScore, calc.Score(none, criteria.SearchCriteria{RoleTitle: criteria.Text("Pilot")}))

	level, err := criteria.Level("lead")
	require.NoError(t, err)
	wide := criteria.SearchCriteria{
		RoleTitle:       criteria.Text("Staff Engineer"),
		Industry:        criteria.Text("Fintech"),
		ExperienceLevel: level,
		Skills:          criteria.List("React", "Go"),
		FreeTextContext: criteria.Text("We need someone to own the design system"),
		CompanyStage:    criteria.Text("Series B"),
		Milestones:      criteria.List("design system"),
		Accomplishments: criteria.List("launched mobile app"),
		CulturalValues:  criteria.List("ownership"),
	}
	for _, c := range []*candidate.Candidate{frontend(), full, none} {
		score := calc.Score(c, wide)
		assert.GreaterOrEqual(t, score, MinScore)
		assert.LessOrEqual(t, score, MaxScore)
	}
}

func TestExactTitleBeatsOtherTitle(t *testing.T) {
	calc := newCalculator(t)
	c := frontend()

	exact := calc.Evaluate(c, calc.Plan(criteria.SearchCriteria{RoleTitle: criteria.Text("Frontend Developer")}))
	other := calc.Evaluate(c, calc.Plan(criteria.SearchCriteria{RoleTitle: criteria.Text("Backend Developer")}))

	assert.InDelta(t, 1.0, exact.Breakdown[FieldRoleTitle], 1e-9)
	assert.Less(t, other.Breakdown[FieldRoleTitle], 1.0)
	assert.Greater(t, exact.Score, other.Score)
	assert.Equal(t, []Field{FieldRoleTitle}, exact.Matched)
}

func TestMoreMatchingSkillsNeverLowerScore(t *testing.T) {
	calc := newCalculator(t)
	plan := calc.Plan(criteria.SearchCriteria{Skills: criteria.List("React", "Go", "PostgreSQL")})

	c := frontend()
	before := calc.Evaluate(c, plan).Score

	c.Skills.Technical = append(c.Skills.Technical, candidate.Skill{Label: "Go"})
	middle := calc.Evaluate(c, plan).Score

	c.Skills.Technical = append(c.Skills.Technical, candidate.Skill{Label: "PostgreSQL"})
	after := calc.Evaluate(c, plan).Score

	assert.GreaterOrEqual(t, middle, before)
	assert.GreaterOrEqual(t, after, middle)
	assert.Greater(t, after, before)
}

func TestMalformedCandidateIsFlagged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	calc := newCalculator(t, WithLogger(zap.New(core)))
	sc := criteria.SearchCriteria{RoleTitle: criteria.Text("Frontend Developer")}

	ev := calc.Evaluate(&candidate.Candidate{ID: "neg", ExperienceYears: -2}, calc.Plan(sc))
	assert.Equal(t, NeutralScore, ev.Score)
	assert.True(t, ev.Flagged)
	assert.NotEmpty(t, ev.FlagReason)

	ev = calc.Evaluate(nil, calc.Plan(sc))
	assert.Equal(t, NeutralScore, ev.Score)
	assert.True(t, ev.Flagged)

	entries := logs.FilterMessage("falling back to neutral score").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "neg", entries[0].ContextMap()[logger.FieldCandidateID])
}

func TestBadgesOnlyCountWithOtherCriteria(t *testing.T) {
	calc := newCalculator(t)
	plan := calc.Plan(criteria.SearchCriteria{Industry: criteria.Text("Fintech")})

	assert.Equal(t, []Field{FieldIndustry, FieldBadges}, plan.Fields())

	c := frontend()
	ev := calc.Evaluate(c, plan)
	// Industry matches, no badges: half of the trust bucket.
	assert.Equal(t, 75, ev.Score)
	assert.Equal(t, []Field{FieldIndustry}, ev.Matched)
}

func TestPlanKeywords(t *testing.T) {
	calc := newCalculator(t, WithKeywordCount(2))
	plan := calc.Plan(criteria.SearchCriteria{
		FreeTextContext: criteria.Text("We need a React developer who can scale our platform"),
	})

	assert.Equal(t, []string{"need", "react"}, plan.Keywords())
	assert.Contains(t, plan.Fields(), FieldGoals)
}

func TestWeights(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	negative := DefaultWeights()
	negative.Skills = -1
	assert.ErrorIs(t, negative.Validate(), ErrInvalidWeights)

	zero := DefaultWeights()
	zero.HiringContext, zero.SkillsExperience, zero.Trust = 0, 0, 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidWeights)

	_, err := NewCalculator(WithWeights(negative))
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = NewCalculator(WithKeywordCount(-1))
	assert.Error(t, err)

	eff := DefaultWeights().Effective()
	assert.InDelta(t, 10.0, eff[FieldRoleTitle], 1e-9)
	assert.InDelta(t, 15.0, eff[FieldSkills], 1e-9)
	assert.InDelta(t, 5.0, eff[FieldExperience], 1e-9)
	assert.InDelta(t, 10.0, eff[FieldIndustry], 1e-9)
	assert.InDelta(t, 10.0, eff[FieldBadges], 1e-9)
	assert.InDelta(t, 12.5, eff[FieldGoals], 1e-9)

	sum := 0.0
	for _, v := range eff {
		sum += v
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}
