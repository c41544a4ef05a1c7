package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/criteria"
	"github.com/spigell/candidate-ranker/internal/matching"
)

type experienceFilter struct {
	toggle
	level criteria.ExperienceLevel
}

// NewExperience keeps candidates whose years fall inside the level's band.
// An empty level makes the stage a no-op.
func NewExperience(level criteria.ExperienceLevel) Filter {
	return &experienceFilter{level: level}
}

func (f *experienceFilter) Name() string { return "experience" }

func (f *experienceFilter) Validate() error {
	if f.level == "" {
		return nil
	}
	if _, err := criteria.ParseExperienceLevel(string(f.level)); err != nil {
		return err
	}
	return nil
}

func (f *experienceFilter) Apply(deps Deps, pool []candidate.Candidate) ([]candidate.Candidate, Step, error) {
	if f.level == "" {
		return passthrough(pool)
	}

	next, excluded := keep(pool, func(c *candidate.Candidate) bool {
		return matching.InBand(c, f.level)
	})

	band := f.level.Band()
	logExcluded(deps, "excluding candidates outside the experience band", excluded, len(next),
		zap.String("level", string(f.level)),
		zap.Int("min_years", band.Min),
	)

	return next, counted(len(pool), next), nil
}

func (f *experienceFilter) Status() Status {
	details := map[string]string{}
	if f.level != "" {
		band := f.level.Band()
		details["level"] = string(f.level)
		details["band"] = fmt.Sprintf("[%d,%d)", band.Min, band.Max)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
