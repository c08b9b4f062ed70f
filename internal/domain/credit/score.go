// Package credit holds the scoring and eligibility engine. Everything except
// Service is a pure function of a customer, their loans and an evaluation date.
package credit

import (
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinScore = 0
	MaxScore = 100

	DefaultScore = 50
)

var (
	minScoreDec = decimal.NewFromInt(MinScore)
	maxScoreDec = decimal.NewFromInt(MaxScore)
)

// ScoreInput is a point-in-time snapshot of everything the scorer reads.
type ScoreInput struct {
	Customer customer.Customer
	Loans    []loan.Loan
	AsOf     time.Time
}

// ScoringRule contributes a capped number of points to the raw score.
type ScoringRule interface {
	Name() string
	Points(in ScoreInput) decimal.Decimal
}

// OverrideRule runs after the pipeline and, when it fires, replaces the
// computed score.
type OverrideRule interface {
	Name() string
	Override(in ScoreInput) (score int, fired bool)
}

type RuleContribution struct {
	Rule   string
	Points decimal.Decimal
}

type ScoreBreakdown struct {
	Score         int
	Raw           decimal.Decimal
	Contributions []RuleContribution
	OverriddenBy  string
	UsedDefault   bool
}

// RateCorrection maps a score and a requested rate to the rate charged.
type RateCorrection func(score int, requested decimal.Decimal) decimal.Decimal

type Scorer struct {
	defaultScore int
	rules        []ScoringRule
	overrides    []OverrideRule
	correct      RateCorrection
}

// NewScorer returns the standard pipeline: on-time ratio, loan count,
// current-year activity and volume, followed by the active-debt override.
func NewScorer(defaultScore int) *Scorer {
	return NewScorerWithRules(defaultScore, DefaultRules(), []OverrideRule{ActiveDebtOverride{}})
}

func NewScorerWithRules(defaultScore int, rules []ScoringRule, overrides []OverrideRule) *Scorer {
	return &Scorer{
		defaultScore: clampInt(defaultScore),
		rules:        rules,
		overrides:    overrides,
		correct:      CorrectRate,
	}
}

// WithRateCorrection replaces CorrectRate for eligibility decisions.
func (s *Scorer) WithRateCorrection(fn RateCorrection) *Scorer {
	if fn != nil {
		s.correct = fn
	}
	return s
}

func (s *Scorer) Score(in ScoreInput) int {
	return s.Evaluate(in).Score
}

func (s *Scorer) Evaluate(in ScoreInput) ScoreBreakdown {
	if len(in.Loans) == 0 {
		return ScoreBreakdown{
			Score:       s.defaultScore,
			Raw:         decimal.NewFromInt(int64(s.defaultScore)),
			UsedDefault: true,
		}
	}

	breakdown := ScoreBreakdown{Contributions: make([]RuleContribution, 0, len(s.rules))}
	raw := decimal.Zero
	for _, rule := range s.rules {
		points := rule.Points(in)
		breakdown.Contributions = append(breakdown.Contributions, RuleContribution{Rule: rule.Name(), Points: points})
		raw = raw.Add(points)
	}
	breakdown.Raw = raw
	breakdown.Score = int(decimal.Min(decimal.Max(raw, minScoreDec), maxScoreDec).Floor().IntPart())

	for _, override := range s.overrides {
		if score, fired := override.Override(in); fired {
			breakdown.Score = clampInt(score)
			breakdown.OverriddenBy = override.Name()
			break
		}
	}

	return breakdown
}

func clampInt(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
