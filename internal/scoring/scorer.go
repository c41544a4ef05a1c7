// Package scoring rates how well a candidate fits the hiring criteria on a
// 50 to 100 scale.
package scoring

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/criteria"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/matching"
	"github.com/spigell/candidate-ranker/internal/tokens"
)

const (
	MinScore = 50
	MaxScore = 100
	// NeutralScore is given when no criteria are supplied and to records
	// that could not be evaluated.
	NeutralScore = 60
)

// Evaluation is the scored view of one candidate.
type Evaluation struct {
	Score      int               `json:"score"`
	Matched    []Field           `json:"matchedFields"`
	Breakdown  map[Field]float64 `json:"breakdown,omitempty"`
	Flagged    bool              `json:"flagged,omitempty"`
	FlagReason string            `json:"flagReason,omitempty"`
}

// Calculator scores candidates. It is safe for concurrent use.
type Calculator struct {
	weights      Weights
	effective    map[Field]float64
	keywordCount int
	logger       *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator) error

// WithWeights replaces the default weight table.
func WithWeights(w Weights) Option {
	return func(c *Calculator) error {
		if err := w.Validate(); err != nil {
			return err
		}
		c.weights = w
		return nil
	}
}

// WithKeywordCount sets how many keywords are taken from the hiring
// context. Default is tokens.DefaultKeywordCount.
func WithKeywordCount(n int) Option {
	return func(c *Calculator) error {
		if n < 0 {
			return fmt.Errorf("keyword count must be non-negative, got %d", n)
		}
		c.keywordCount = n
		return nil
	}
}

// WithLogger sets a custom logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Calculator) error {
		c.logger = logger.WithFields(l)
		return nil
	}
}

func NewCalculator(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		weights:      DefaultWeights(),
		keywordCount: tokens.DefaultKeywordCount,
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.effective = c.weights.Effective()
	return c, nil
}

// Plan is criteria prepared once per query: normalized values, extracted
// keywords and the populated fields.
type Plan struct {
	roleTitle       string
	industry        string
	level           criteria.ExperienceLevel
	skills          []string
	keywords        []string
	companyStage    string
	milestones      []string
	accomplishments []string
	culturalValues  []string
	fields          []Field
}

// Fields returns the populated fields in table order.
func (p *Plan) Fields() []Field {
	return append([]Field(nil), p.fields...)
}

// Keywords returns the keywords extracted from the hiring context.
func (p *Plan) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

// Plan prepares criteria for scoring.
func (c *Calculator) Plan(sc criteria.SearchCriteria) *Plan {
	n := sc.Normalized()
	p := &Plan{}
	set := make(map[Field]bool)

	if v, ok := n.RoleTitle.Get(); ok {
		p.roleTitle = v
		set[FieldRoleTitle] = true
	}
	if v, ok := n.Industry.Get(); ok {
		p.industry = v
		set[FieldIndustry] = true
	}
	if v, ok := n.ExperienceLevel.Get(); ok {
		p.level = v
		set[FieldExperience] = true
	}
	if v, ok := n.Skills.Get(); ok {
		p.skills = v
		set[FieldSkills] = true
	}
	if v, ok := n.FreeTextContext.Get(); ok {
		p.keywords = tokens.ExtractKeywords(v, c.keywordCount)
		if len(p.keywords) > 0 {
			set[FieldGoals] = true
		}
	}
	if v, ok := n.CompanyStage.Get(); ok {
		p.companyStage = v
		set[FieldCompanyStage] = true
	}
	if v, ok := n.Milestones.Get(); ok {
		p.milestones = v
		set[FieldMilestones] = true
	}
	if v, ok := n.Accomplishments.Get(); ok {
		p.accomplishments = v
		set[FieldAccomplishments] = true
	}
	if v, ok := n.CulturalValues.Get(); ok {
		p.culturalValues = v
		set[FieldCulturalValues] = true
	}

	if len(set) > 0 {
		// Trust credit has no criteria of its own; it rides along with any
		// populated dimension.
		set[FieldBadges] = true
	}

	for _, field := range allFields {
		if set[field] {
			p.fields = append(p.fields, field)
		}
	}

	return p
}

// Score is a shortcut for Evaluate(c, Plan(sc)).Score.
func (c *Calculator) Score(cand *candidate.Candidate, sc criteria.SearchCriteria) int {
	return c.Evaluate(cand, c.Plan(sc)).Score
}

// Evaluate scores one candidate. It never panics: a record that fails
// validation or breaks evaluation gets NeutralScore and is flagged.
func (c *Calculator) Evaluate(cand *candidate.Candidate, p *Plan) (ev Evaluation) {
	defer func() {
		if r := recover(); r != nil {
			ev = c.neutral(cand, fmt.Errorf("evaluation panicked: %v", r))
		}
	}()

	if err := cand.Validate(); err != nil {
		return c.neutral(cand, err)
	}

	if p == nil || len(p.fields) == 0 {
		return Evaluation{Score: NeutralScore, Matched: []Field{}}
	}

	total, possible := 0.0, 0.0
	ev.Breakdown = make(map[Field]float64, len(p.fields))
	ev.Matched = make([]Field, 0, len(p.fields))

	for _, field := range p.fields {
		weight := c.effective[field]
		credit := clamp(p.credit(field, cand), 0, 1)

		ev.Breakdown[field] = credit
		if credit > 0 {
			ev.Matched = append(ev.Matched, field)
		}

		total += weight * credit
		possible += weight
	}

	if possible <= 0 {
		ev.Score = NeutralScore
		return ev
	}

	raw := MinScore + (MaxScore-MinScore)*total/possible
	ev.Score = int(math.Round(clamp(raw, MinScore, MaxScore)))
	return ev
}

func (p *Plan) credit(field Field, cand *candidate.Candidate) float64 {
	switch field {
	case FieldGoals:
		share, _ := matching.Goals(cand, p.keywords)
		return share
	case FieldCompanyStage:
		return matching.CompanyStage(cand, p.companyStage).Credit
	case FieldMilestones:
		return matching.Milestones(cand, p.milestones)
	case FieldAccomplishments:
		return matching.Accomplishments(cand, p.accomplishments)
	case FieldCulturalValues:
		return matching.CulturalValues(cand, p.culturalValues)
	case FieldRoleTitle:
		return matching.RoleTitle(cand, p.roleTitle).Credit
	case FieldSkills:
		share, _ := matching.Skills(cand, p.skills)
		return share
	case FieldExperience:
		return matching.Experience(cand, p.level)
	case FieldIndustry:
		return matching.Industry(cand, p.industry).Credit
	case FieldBadges:
		return matching.Badges(cand)
	default:
		return 0
	}
}

func (c *Calculator) neutral(cand *candidate.Candidate, err error) Evaluation {
	id := ""
	if cand != nil {
		id = cand.ID
	}

	c.logger.Warn("falling back to neutral score",
		zap.String(logger.FieldCandidateID, id),
		zap.Int("score", NeutralScore),
		zap.Error(err),
	)

	return Evaluation{
		Score:      NeutralScore,
		Matched:    []Field{},
		Flagged:    true,
		FlagReason: err.Error(),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
