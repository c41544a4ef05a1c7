// Package criteria describes what a hiring team is looking for. Every
// dimension is optional; an absent dimension never narrows a search.
package criteria

import (
	"errors"
	"strings"
)

// ErrInvalidCriteria indicates criteria input could not be understood.
var ErrInvalidCriteria = errors.New("invalid criteria")

// SearchCriteria is the structured hiring intent.
type SearchCriteria struct {
	RoleTitle       Optional[string]          `json:"roleTitle"`
	Industry        Optional[string]          `json:"industry"`
	ExperienceLevel Optional[ExperienceLevel] `json:"experienceLevel"`
	Skills          Optional[[]string]        `json:"skills"`
	FreeTextContext Optional[string]          `json:"freeTextContext"`
	CompanyStage    Optional[string]          `json:"companyStage"`
	Milestones      Optional[[]string]        `json:"milestones"`
	Accomplishments Optional[[]string]        `json:"accomplishments"`
	CulturalValues  Optional[[]string]        `json:"culturalValues"`
}

// Text returns a present value for non-blank s and an absent one otherwise.
func Text(s string) Optional[string] {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return None[string]()
	}
	return Some(trimmed)
}

// List returns the non-blank, de-duplicated items of values, or an absent
// value when nothing remains.
func List(values ...string) Optional[[]string] {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return None[[]string]()
	}
	return Some(out)
}

// Level parses raw into a present level. Blank input is absent.
func Level(raw string) (Optional[ExperienceLevel], error) {
	if strings.TrimSpace(raw) == "" {
		return None[ExperienceLevel](), nil
	}

	level, err := ParseExperienceLevel(raw)
	if err != nil {
		return None[ExperienceLevel](), err
	}
	return Some(level), nil
}

// Normalized re-applies the Text/List rules to every dimension, so values
// built with Some directly or decoded from JSON obey the same absence rules.
func (c SearchCriteria) Normalized() SearchCriteria {
	return SearchCriteria{
		RoleTitle:       Text(c.RoleTitle.OrElse("")),
		Industry:        Text(c.Industry.OrElse("")),
		ExperienceLevel: normalizedLevel(c.ExperienceLevel),
		Skills:          List(c.Skills.OrElse(nil)...),
		FreeTextContext: Text(c.FreeTextContext.OrElse("")),
		CompanyStage:    Text(c.CompanyStage.OrElse("")),
		Milestones:      List(c.Milestones.OrElse(nil)...),
		Accomplishments: List(c.Accomplishments.OrElse(nil)...),
		CulturalValues:  List(c.CulturalValues.OrElse(nil)...),
	}
}

// IsEmpty reports whether no dimension is present.
func (c SearchCriteria) IsEmpty() bool {
	n := c.Normalized()
	return !n.RoleTitle.IsSet() &&
		!n.Industry.IsSet() &&
		!n.ExperienceLevel.IsSet() &&
		!n.Skills.IsSet() &&
		!n.FreeTextContext.IsSet() &&
		!n.CompanyStage.IsSet() &&
		!n.Milestones.IsSet() &&
		!n.Accomplishments.IsSet() &&
		!n.CulturalValues.IsSet()
}

// Dimensions lists the names of present dimensions, in declaration order.
func (c SearchCriteria) Dimensions() []string {
	n := c.Normalized()
	present := []struct {
		name string
		set  bool
	}{
		{"roleTitle", n.RoleTitle.IsSet()},
		{"industry", n.Industry.IsSet()},
		{"experienceLevel", n.ExperienceLevel.IsSet()},
		{"skills", n.Skills.IsSet()},
		{"freeTextContext", n.FreeTextContext.IsSet()},
		{"companyStage", n.CompanyStage.IsSet()},
		{"milestones", n.Milestones.IsSet()},
		{"accomplishments", n.Accomplishments.IsSet()},
		{"culturalValues", n.CulturalValues.IsSet()},
	}

	names := make([]string, 0, len(present))
	for _, p := range present {
		if p.set {
			names = append(names, p.name)
		}
	}
	return names
}

func normalizedLevel(o Optional[ExperienceLevel]) Optional[ExperienceLevel] {
	level, ok := o.Get()
	if !ok {
		return o
	}
	parsed, err := ParseExperienceLevel(string(level))
	if err != nil {
		return None[ExperienceLevel]()
	}
	return Some(parsed)
}

// Validate reports values that Normalized would silently drop.
func (c SearchCriteria) Validate() error {
	if level, ok := c.ExperienceLevel.Get(); ok {
		if _, err := ParseExperienceLevel(string(level)); err != nil {
			return err
		}
	}
	return nil
}
