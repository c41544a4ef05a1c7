package filtering

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/matching"
)

type industryFilter struct {
	toggle
	industry string
}

// NewIndustry keeps candidates with an industry containing, or contained
// in, the requested one.
func NewIndustry(industry string) Filter {
	return &industryFilter{industry: industry}
}

func (f *industryFilter) Name() string { return "industry" }

func (f *industryFilter) Validate() error { return nil }

func (f *industryFilter) Apply(deps Deps, pool []candidate.Candidate) ([]candidate.Candidate, Step, error) {
	if f.industry == "" {
		return passthrough(pool)
	}

	next, excluded := keep(pool, func(c *candidate.Candidate) bool {
		return matching.AnyContains(f.industry, c.Industries)
	})

	logExcluded(deps, "excluding candidates by industry", excluded, len(next),
		zap.String("industry", f.industry),
	)

	return next, counted(len(pool), next), nil
}

func (f *industryFilter) Status() Status {
	details := map[string]string{}
	if f.industry != "" {
		details["industry"] = f.industry
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type skillsFilter struct {
	toggle
	skills []string
}

// NewSkills keeps candidates that have at least one of the requested skills.
func NewSkills(skills []string) Filter {
	return &skillsFilter{skills: skills}
}

func (f *skillsFilter) Name() string { return "skills" }

func (f *skillsFilter) Validate() error { return nil }

func (f *skillsFilter) Apply(deps Deps, pool []candidate.Candidate) ([]candidate.Candidate, Step, error) {
	if len(f.skills) == 0 {
		return passthrough(pool)
	}

	next, excluded := keep(pool, func(c *candidate.Candidate) bool {
		return matching.HasAnySkill(c, f.skills)
	})

	logExcluded(deps, "excluding candidates without any required skill", excluded, len(next),
		zap.Strings("skills", f.skills),
	)

	return next, counted(len(pool), next), nil
}

func (f *skillsFilter) Status() Status {
	details := map[string]string{}
	if len(f.skills) > 0 {
		details["skills"] = strings.Join(f.skills, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type companyStageFilter struct {
	toggle
	stage string
}

// NewCompanyStage keeps candidates whose stage history mentions the
// requested stage.
func NewCompanyStage(stage string) Filter {
	return &companyStageFilter{stage: stage}
}

func (f *companyStageFilter) Name() string { return "companyStage" }

func (f *companyStageFilter) Validate() error { return nil }

func (f *companyStageFilter) Apply(deps Deps, pool []candidate.Candidate) ([]candidate.Candidate, Step, error) {
	if f.stage == "" {
		return passthrough(pool)
	}

	next, excluded := keep(pool, func(c *candidate.Candidate) bool {
		return matching.AnyContains(f.stage, c.CompanyStageHistory)
	})

	logExcluded(deps, "excluding candidates by company stage", excluded, len(next),
		zap.String("stage", f.stage),
	)

	return next, counted(len(pool), next), nil
}

func (f *companyStageFilter) Status() Status {
	details := map[string]string{}
	if f.stage != "" {
		details["stage"] = f.stage
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
