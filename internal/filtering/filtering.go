// Package filtering narrows a candidate pool through cascading stages.
// A stage that would empty the pool is relaxed, and when the whole cascade
// still ends empty the pool is restored in full.
package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/logger"
)

// FallbackStep names the terminal step that restores the full pool.
const FallbackStep = "fallback"

// Filter represents a single filtering stage applied to candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(deps Deps, pool []candidate.Candidate) ([]candidate.Candidate, Step, error)
}

// Deps aggregates dependencies shared across all filtering stages.
type Deps struct {
	Logger *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	return logger.WithFields(d.Logger)
}

// Step describes the result of executing a filtering stage.
type Step struct {
	Name    string `json:"name"`
	Initial int    `json:"initial"`
	Dropped int    `json:"dropped"`
	Left    int    `json:"left"`
	// Constraining is false when the stage had no criteria to apply.
	Constraining bool `json:"constraining"`
	// Relaxed is set when the stage emptied the pool and its input was kept.
	Relaxed bool   `json:"relaxed,omitempty"`
	Tier    string `json:"tier,omitempty"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Outcome is what a pipeline run produced.
type Outcome struct {
	Survivors []candidate.Candidate
	Steps     []Step
	// Fallback is set when the cascade ended empty and the full pool was returned.
	Fallback bool
}

type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Filtering{
		steps:  steps,
		logger: logger,
	}
}

// Steps returns the configured stages.
func (f *Filtering) Steps() []Filter {
	return f.steps
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the stages sequentially over the surviving set. For a
// non-empty pool the returned survivors are never empty.
func (f *Filtering) Run(pool []candidate.Candidate) (*Outcome, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	out := &Outcome{Steps: make([]Step, 0, len(f.steps)+1)}
	deps := Deps{Logger: f.logger}
	current := pool

	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(deps, current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
		info.Name = step.Name()

		if info.Constraining && len(next) == 0 && len(current) > 0 {
			f.logger.Info("filter would drop every candidate, skipping it",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
			)
			next = current
			info.Relaxed = true
			info.Dropped = 0
			info.Left = len(current)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
			zap.Bool("relaxed", info.Relaxed),
		)

		out.Steps = append(out.Steps, info)
		current = next
	}

	if len(current) == 0 && len(pool) > 0 {
		f.logger.Warn("filters were too strict, returning the full pool",
			zap.Int("pool", len(pool)),
		)
		current = pool
		out.Fallback = true
		out.Steps = append(out.Steps, Step{
			Name:    FallbackStep,
			Initial: 0,
			Left:    len(pool),
		})
	}

	out.Survivors = current
	return out, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// keep returns the candidates accepted by ok, preserving order, and the IDs
// of the rejected ones. The input slice is never modified.
func keep(pool []candidate.Candidate, ok func(*candidate.Candidate) bool) ([]candidate.Candidate, []string) {
	out := make([]candidate.Candidate, 0, len(pool))
	excluded := make([]string, 0)
	for i := range pool {
		if ok(&pool[i]) {
			out = append(out, pool[i])
			continue
		}
		excluded = append(excluded, pool[i].ID)
	}
	return out, excluded
}

// logExcluded reports what a stage removed. A stage that removed everyone
// is left to the driver, which relaxes it.
func logExcluded(deps Deps, msg string, excluded []string, left int, fields ...zap.Field) {
	if len(excluded) == 0 || left == 0 {
		return
	}

	fields = append(fields,
		zap.Strings("excluded_candidates", excluded),
		zap.Int("candidates_left", left),
	)
	deps.logger().Info(msg, fields...)
}

func passthrough(pool []candidate.Candidate) ([]candidate.Candidate, Step, error) {
	return pool, Step{Initial: len(pool), Left: len(pool)}, nil
}

func counted(initial int, next []candidate.Candidate) Step {
	return Step{
		Initial:      initial,
		Dropped:      initial - len(next),
		Left:         len(next),
		Constraining: true,
	}
}

// toggle carries the enable/disable bookkeeping shared by every stage.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }
