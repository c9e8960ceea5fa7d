// Package scoring computes submission scores from judge criteria.
//
// A Strategy is a pure mapping from the three judging criteria to one score.
// The Evaluator bridges a strategy to the full set of judge records for a
// submission and aggregates them into a single final score.
package scoring

import (
	"github.com/mmanav02/WeHack/internal/domain/model"
)

// Default weighted-average split across (innovation, impact, execution).
const (
	defaultInnovationWeight = 0.40
	defaultImpactWeight     = 0.35
	defaultExecutionWeight  = 0.25
)

// Criteria are one judge's three bounded scores for a submission.
type Criteria struct {
	Innovation float64
	Impact     float64
	Execution  float64
}

// Strategy maps criteria to a single score. Implementations are pure.
type Strategy interface {
	// Name identifies the strategy in logs and stats.
	Name() string

	// Score combines the three criteria into one value.
	Score(c Criteria) float64
}

// SimpleAverageStrategy is the unweighted mean of the criteria.
type SimpleAverageStrategy struct{}

// Name implements Strategy.
func (SimpleAverageStrategy) Name() string { return "simple-average" }

// Score implements Strategy.
func (SimpleAverageStrategy) Score(c Criteria) float64 {
	return (c.Innovation + c.Impact + c.Execution) / 3
}

// WeightedAverageStrategy combines the criteria with a configured split.
type WeightedAverageStrategy struct {
	innovation float64
	impact     float64
	execution  float64
}

// Option applies a configuration option to the WeightedAverageStrategy.
type Option func(*WeightedAverageStrategy)

// WithWeights sets the (innovation, impact, execution) split. A split that
// does not sum to 1 is normalized; non-positive sums are ignored.
func WithWeights(innovation, impact, execution float64) Option {
	return func(s *WeightedAverageStrategy) {
		sum := innovation + impact + execution
		if sum <= 0 {
			return
		}
		s.innovation = innovation / sum
		s.impact = impact / sum
		s.execution = execution / sum
	}
}

// NewWeightedAverage creates a weighted strategy with the default
// 0.40/0.35/0.25 split unless overridden.
func NewWeightedAverage(opts ...Option) *WeightedAverageStrategy {
	s := &WeightedAverageStrategy{
		innovation: defaultInnovationWeight,
		impact:     defaultImpactWeight,
		execution:  defaultExecutionWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Strategy.
func (*WeightedAverageStrategy) Name() string { return "weighted-average" }

// Score implements Strategy.
func (s *WeightedAverageStrategy) Score(c Criteria) float64 {
	return c.Innovation*s.innovation + c.Impact*s.impact + c.Execution*s.execution
}

// ForMethod returns the strategy an event's scoring method selects.
// Unknown methods fall back to the simple average.
func ForMethod(method model.ScoringMethod, opts ...Option) Strategy {
	if method == model.WeightedAverage {
		return NewWeightedAverage(opts...)
	}
	return SimpleAverageStrategy{}
}

// Evaluator aggregates per-judge results into one final score.
type Evaluator struct {
	strategy Strategy
}

// NewEvaluator creates an evaluator over the given strategy.
func NewEvaluator(strategy Strategy) *Evaluator {
	return &Evaluator{strategy: strategy}
}

// Evaluate applies the strategy to every judge record and returns the mean
// of the per-judge results. No records is a defined default of 0.0, not an
// error. Records are never deduped by judge; a second score from the same
// judge counts as an additional independent record.
func (e *Evaluator) Evaluate(records []model.JudgeScoreRecord) float64 {
	if len(records) == 0 {
		return 0.0
	}
	var total float64
	for _, r := range records {
		total += e.strategy.Score(Criteria{
			Innovation: r.Innovation,
			Impact:     r.Impact,
			Execution:  r.Execution,
		})
	}
	return total / float64(len(records))
}
