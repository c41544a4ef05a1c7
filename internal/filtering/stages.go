package filtering

import (
	"github.com/spigell/candidate-ranker/internal/criteria"
)

// Stages builds the fixed stage order for the given criteria. Absent
// dimensions produce pass-through stages so every run reports all five.
func Stages(sc criteria.SearchCriteria) []Filter {
	n := sc.Normalized()

	return []Filter{
		NewRoleTitle(n.RoleTitle.OrElse("")),
		NewIndustry(n.Industry.OrElse("")),
		NewSkills(n.Skills.OrElse(nil)),
		NewExperience(n.ExperienceLevel.OrElse("")),
		NewCompanyStage(n.CompanyStage.OrElse("")),
	}
}

// StageNames lists the stage names in pipeline order.
func StageNames() []string {
	steps := Stages(criteria.SearchCriteria{})
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		names = append(names, step.Name())
	}
	return names
}
