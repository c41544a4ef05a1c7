package matching

import (
	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/criteria"
	"github.com/spigell/candidate-ranker/internal/tokens"
)

// Experience credits for a candidate above the requested band.
const OverqualifiedCredit = 0.5

// MaxBadges is the number of verification badges that earns full credit.
const MaxBadges = 3

func RoleTitle(c *candidate.Candidate, want string) Match {
	return Phrase(want, c.Title)
}

func Industry(c *candidate.Candidate, want string) Match {
	return Best(want, c.Industries)
}

func CompanyStage(c *candidate.Candidate, want string) Match {
	return Best(want, c.CompanyStageHistory)
}

func Milestones(c *candidate.Candidate, wants []string) float64 {
	return Mean(wants, c.Achievements)
}

func Accomplishments(c *candidate.Candidate, wants []string) float64 {
	return Mean(wants, c.Achievements)
}

func CulturalValues(c *candidate.Candidate, wants []string) float64 {
	return Mean(wants, c.CulturalValues)
}

// Skills returns the share of required skills found among the candidate's
// technical and soft labels, plus the matched required skills.
func Skills(c *candidate.Candidate, required []string) (float64, []string) {
	if len(required) == 0 {
		return 0, nil
	}

	labels := c.Skills.Labels()
	matched := make([]string, 0, len(required))
	for _, skill := range required {
		if AnyContains(skill, labels) {
			matched = append(matched, skill)
		}
	}

	return float64(len(matched)) / float64(len(required)), matched
}

// HasAnySkill reports whether at least one required skill matches.
func HasAnySkill(c *candidate.Candidate, required []string) bool {
	labels := c.Skills.Labels()
	for _, skill := range required {
		if AnyContains(skill, labels) {
			return true
		}
	}
	return false
}

// Experience credits the candidate's years against the requested band:
// full inside, nothing below, partial above.
func Experience(c *candidate.Candidate, level criteria.ExperienceLevel) float64 {
	switch level.Band().Position(c.ExperienceYears) {
	case 0:
		return 1
	case 1:
		return OverqualifiedCredit
	default:
		return 0
	}
}

// InBand reports band membership for the experience filter.
func InBand(c *candidate.Candidate, level criteria.ExperienceLevel) bool {
	return level.Band().Contains(c.ExperienceYears)
}

// Goals returns the share of hiring keywords the candidate covers, plus the
// covered keywords. A keyword is covered by a skill label in either
// direction or by a token of the title, achievements or industries.
func Goals(c *candidate.Candidate, keywords []string) (float64, []string) {
	if len(keywords) == 0 {
		return 0, nil
	}

	labels := c.Skills.Labels()
	texts := make([]string, 0, len(c.Achievements)+len(c.Industries)+1)
	texts = append(texts, c.Title)
	texts = append(texts, c.Achievements...)
	texts = append(texts, c.Industries...)
	vocabulary := tokens.Set(texts...)

	matched := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if vocabulary[keyword] || AnyContains(keyword, labels) {
			matched = append(matched, keyword)
		}
	}

	return float64(len(matched)) / float64(len(keywords)), matched
}

// Badges credits verification badges up to MaxBadges.
func Badges(c *candidate.Candidate) float64 {
	n := len(c.VerificationBadges)
	if n > MaxBadges {
		n = MaxBadges
	}
	return float64(n) / MaxBadges
}
