// Package engine runs a candidate search: filter the pool, score the
// survivors, rank them and return the requested page.
package engine

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/candidate"
	"github.com/spigell/candidate-ranker/internal/criteria"
	"github.com/spigell/candidate-ranker/internal/filtering"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/scoring"
)

const (
	modeSequential = "sequential"
	modeParallel   = "parallel"
)

// ErrInvalidArgument is returned for page requests that cannot be served.
var ErrInvalidArgument = ranking.ErrInvalidArgument

// pageRequest is validated before any work is done.
type pageRequest struct {
	Page     int `validate:"gte=1"`
	PageSize int `validate:"gte=1"`
}

// Engine is stateless between searches and safe for concurrent use.
type Engine struct {
	workers    int
	weights    scoring.Weights
	keywords   int
	disabled   []string
	logger     *zap.Logger
	calculator *scoring.Calculator
	validate   *validator.Validate
}

// Option configures an Engine.
type Option func(*Engine) error

// WithWorkers scores candidates on a worker pool of size n. Values of one
// or less score sequentially.
func WithWorkers(n int) Option {
	return func(e *Engine) error {
		if n < 0 {
			return fmt.Errorf("%w: workers must be non-negative, got %d", ErrInvalidArgument, n)
		}
		e.workers = n
		return nil
	}
}

// WithWeights replaces the default scoring table.
func WithWeights(w scoring.Weights) Option {
	return func(e *Engine) error {
		if err := w.Validate(); err != nil {
			return err
		}
		e.weights = w
		return nil
	}
}

// WithKeywordCount sets how many hiring context keywords are scored.
func WithKeywordCount(n int) Option {
	return func(e *Engine) error {
		if n < 0 {
			return fmt.Errorf("%w: keyword count must be non-negative, got %d", ErrInvalidArgument, n)
		}
		e.keywords = n
		return nil
	}
}

// WithDisabledStages skips the named filtering stages on every search.
// Disabled stages are left out of Result.Steps.
func WithDisabledStages(names ...string) Option {
	return func(e *Engine) error {
		known := filtering.StageNames()
		for _, name := range names {
			if !slices.Contains(known, name) {
				return fmt.Errorf("%w: unknown filtering stage %q, expected one of %v", ErrInvalidArgument, name, known)
			}
		}
		e.disabled = append(e.disabled, names...)
		return nil
	}
}

// WithLogger sets a custom logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger.WithFields(l)
		return nil
	}
}

func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		workers:  1,
		weights:  scoring.DefaultWeights(),
		keywords: -1,
		logger:   zap.NewNop(),
		validate: validator.New(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	calcOpts := []scoring.Option{
		scoring.WithWeights(e.weights),
		scoring.WithLogger(e.logger),
	}
	if e.keywords >= 0 {
		calcOpts = append(calcOpts, scoring.WithKeywordCount(e.keywords))
	}

	calc, err := scoring.NewCalculator(calcOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating calculator: %w", err)
	}
	e.calculator = calc

	return e, nil
}

// Search returns the requested 1-indexed page of pool ranked against sc.
// Malformed candidates never fail the search; they are scored with the
// neutral default and counted in Result.Flagged.
func (e *Engine) Search(pool []candidate.Candidate, sc criteria.SearchCriteria, page, pageSize int) (*ranking.Result, error) {
	if err := e.validate.Struct(pageRequest{Page: page, PageSize: pageSize}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	mode := modeSequential
	if e.workers > 1 {
		mode = modeParallel
	}
	searchID := uuid.NewString()
	log := logger.WithSearchFields(e.logger, searchID, mode)

	result := &ranking.Result{
		SearchID: searchID,
		Items:    []ranking.ScoredCandidate{},
		Page:     page,
		PageSize: pageSize,
	}

	if len(pool) == 0 {
		log.Info("empty pool, nothing to rank")
		return result, nil
	}

	log.Info("starting the search",
		zap.Int("pool", len(pool)),
		zap.Strings("dimensions", sc.Dimensions()),
	)
	if text, ok := sc.FreeTextContext.Get(); ok {
		log.Debug("hiring context", zap.String("preview", logger.TruncateForLog(text, 80)))
	}

	steps := filtering.Stages(sc)
	for _, name := range e.disabled {
		filtering.DisableByName(steps, name, "disabled by configuration")
	}

	outcome, err := filtering.New(steps, log).Run(pool)
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}

	scored, err := e.score(outcome.Survivors, e.calculator.Plan(sc), log)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	for _, item := range scored {
		if item.Flagged {
			result.Flagged++
		}
	}

	ranked := ranking.Rank(scored)
	items, err := ranking.Paginate(ranked, page, pageSize)
	if err != nil {
		return nil, err
	}

	result.Items = items
	result.TotalCount = len(ranked)
	result.Fallback = outcome.Fallback
	result.Steps = outcome.Steps

	log.Info("search completed",
		zap.Int("total", result.TotalCount),
		zap.Int("returned", len(items)),
		zap.Int("flagged", result.Flagged),
		zap.Bool("fallback", result.Fallback),
	)

	return result, nil
}

// score evaluates every survivor. Results are written by index so the
// output order matches the input regardless of the worker count.
func (e *Engine) score(survivors []candidate.Candidate, plan *scoring.Plan, log *zap.Logger) ([]ranking.ScoredCandidate, error) {
	out := make([]ranking.ScoredCandidate, len(survivors))

	evaluate := func(i int) {
		ev := e.calculator.Evaluate(&survivors[i], plan)
		out[i] = ranking.FromEvaluation(survivors[i], ev)
	}

	if e.workers <= 1 || len(survivors) < 2 {
		for i := range survivors {
			evaluate(i)
		}
		return out, nil
	}

	pool, err := ants.NewPool(e.workers)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg         sync.WaitGroup
		submitErrs []error
	)
	for i := range survivors {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			evaluate(i)
		}); err != nil {
			wg.Done()
			submitErrs = append(submitErrs, fmt.Errorf("candidate %d: %w", i, err))
		}
	}
	wg.Wait()

	if len(submitErrs) > 0 {
		return nil, errors.Join(submitErrs...)
	}

	log.Debug("scored on worker pool",
		zap.Int("workers", e.workers),
		zap.Int("candidates", len(survivors)),
	)

	return out, nil
}
