package scoring

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidWeights indicates a weight table that cannot produce a score.
var ErrInvalidWeights = errors.New("invalid scoring weights")

// Weights is the scoring table. Sub-factor weights are relative within
// their component; each component contributes its share of the total.
type Weights struct {
	HiringContext    float64 `json:"hiringContext" mapstructure:"hiring-context" validate:"gte=0"`
	SkillsExperience float64 `json:"skillsExperience" mapstructure:"skills-experience" validate:"gte=0"`
	Trust            float64 `json:"trust" mapstructure:"trust" validate:"gte=0"`

	Goals           float64 `json:"goals" mapstructure:"goals" validate:"gte=0"`
	CompanyStage    float64 `json:"companyStage" mapstructure:"company-stage" validate:"gte=0"`
	Milestones      float64 `json:"milestones" mapstructure:"milestones" validate:"gte=0"`
	Accomplishments float64 `json:"accomplishments" mapstructure:"accomplishments" validate:"gte=0"`
	CulturalValues  float64 `json:"culturalValues" mapstructure:"cultural-values" validate:"gte=0"`

	RoleTitle  float64 `json:"roleTitle" mapstructure:"role-title" validate:"gte=0"`
	Skills     float64 `json:"skills" mapstructure:"skills" validate:"gte=0"`
	Experience float64 `json:"experience" mapstructure:"experience" validate:"gte=0"`

	Industry float64 `json:"industry" mapstructure:"industry" validate:"gte=0"`
	Badges   float64 `json:"badges" mapstructure:"badges" validate:"gte=0"`
}

// DefaultWeights is the canonical table: hiring context 50, skills and
// experience 30, trust 20.
func DefaultWeights() Weights {
	return Weights{
		HiringContext:    50,
		SkillsExperience: 30,
		Trust:            20,

		Goals:           15,
		CompanyStage:    10,
		Milestones:      10,
		Accomplishments: 10,
		CulturalValues:  15,

		RoleTitle:  10,
		Skills:     15,
		Experience: 5,

		Industry: 10,
		Badges:   10,
	}
}

func (w Weights) Validate() error {
	if err := validator.New().Struct(w); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWeights, err)
	}

	if w.HiringContext+w.SkillsExperience+w.Trust <= 0 {
		return fmt.Errorf("%w: component weights sum to zero", ErrInvalidWeights)
	}

	return nil
}

// Effective returns the share of the total score each field carries.
func (w Weights) Effective() map[Field]float64 {
	out := make(map[Field]float64, len(allFields))

	spread := func(bucket float64, parts map[Field]float64) {
		sum := 0.0
		for _, v := range parts {
			sum += v
		}
		for field, v := range parts {
			if sum > 0 {
				out[field] = bucket * v / sum
			} else {
				out[field] = 0
			}
		}
	}

	spread(w.HiringContext, map[Field]float64{
		FieldGoals:           w.Goals,
		FieldCompanyStage:    w.CompanyStage,
		FieldMilestones:      w.Milestones,
		FieldAccomplishments: w.Accomplishments,
		FieldCulturalValues:  w.CulturalValues,
	})
	spread(w.SkillsExperience, map[Field]float64{
		FieldRoleTitle:  w.RoleTitle,
		FieldSkills:     w.Skills,
		FieldExperience: w.Experience,
	})
	spread(w.Trust, map[Field]float64{
		FieldIndustry: w.Industry,
		FieldBadges:   w.Badges,
	})

	return out
}
