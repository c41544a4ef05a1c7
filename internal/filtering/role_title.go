package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/matching"
)

// Role title tiers, strongest first.
const (
	TierExact     = "exact"
	TierSubstring = "substring"
	TierWord      = "word"
)

type roleTitleFilter struct {
	toggle
	title string
}

// NewRoleTitle keeps candidates whose title matches at the strongest tier
// that yields anyone: exact, then substring, then a shared word.
func NewRoleTitle(title string) Filter {
	return &roleTitleFilter{title: title}
}

func (f *roleTitleFilter) Name() string { return "roleTitle" }

func (f *roleTitleFilter) Validate() error { return nil }

func (f *roleTitleFilter) Apply(deps Deps, pool []candidate.Candidate) ([]candidate.Candidate, Step, error) {
	if f.title == "" {
		return passthrough(pool)
	}

	tiers := []struct {
		name  string
		match func(*candidate.Candidate) bool
	}{
		{TierExact, func(c *candidate.Candidate) bool { return matching.Equal(f.title, c.Title) }},
		{TierSubstring, func(c *candidate.Candidate) bool { return matching.Contains(f.title, c.Title) }},
		{TierWord, func(c *candidate.Candidate) bool { return matching.Overlap(f.title, c.Title) > 0 }},
	}

	for _, tier := range tiers {
		next, excluded := keep(pool, tier.match)
		if len(next) == 0 {
			deps.logger().Debug("no candidates at role title tier",
				zap.String("title", f.title),
				zap.String("tier", tier.name),
			)
			continue
		}

		logExcluded(deps, "excluding candidates by role title", excluded, len(next),
			zap.String("title", f.title),
			zap.String("tier", tier.name),
		)

		step := counted(len(pool), next)
		step.Tier = tier.name
		return next, step, nil
	}

	return []candidate.Candidate{}, counted(len(pool), nil), nil
}

func (f *roleTitleFilter) Status() Status {
	details := map[string]string{}
	if f.title != "" {
		details["title"] = f.title
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
