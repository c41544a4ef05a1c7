package scoring

// Field names a scoring sub-factor.
type Field string

const (
	FieldGoals           Field = "goals"
	FieldCompanyStage    Field = "companyStage"
	FieldMilestones      Field = "milestones"
	FieldAccomplishments Field = "accomplishments"
	FieldCulturalValues  Field = "culturalValues"
	FieldRoleTitle       Field = "roleTitle"
	FieldSkills          Field = "skills"
	FieldExperience      Field = "experience"
	FieldIndustry        Field = "industry"
	FieldBadges          Field = "badges"
)

// allFields is the table order; Evaluation.Matched follows it.
var allFields = []Field{
	FieldGoals,
	FieldCompanyStage,
	FieldMilestones,
	FieldAccomplishments,
	FieldCulturalValues,
	FieldRoleTitle,
	FieldSkills,
	FieldExperience,
	FieldIndustry,
	FieldBadges,
}
