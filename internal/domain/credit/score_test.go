package credit

import (
	"credit-engine/internal/domain/loan"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fixedRule struct {
	points decimal.Decimal
}

func (fixedRule) Name() string { return "fixed" }
func (r fixedRule) Points(ScoreInput) decimal.Decimal { return r.points }

func TestScorer_NoLoansUsesDefault(t *testing.T) {
	scorer := NewScorer(DefaultScore)

	breakdown := scorer.Evaluate(ScoreInput{Customer: testCustomer(), AsOf: asOf})

	assert.Equal(t, 50, breakdown.Score)
	assert.True(t, breakdown.UsedDefault)
	assert.Empty(t, breakdown.Contributions)

	assert.Equal(t, 65, NewScorer(65).Score(ScoreInput{Customer: testCustomer(), AsOf: asOf}))
}

func TestScorer_PerfectHistory(t *testing.T) {
	scorer := NewScorer(DefaultScore)
	in := ScoreInput{Customer: testCustomer(), Loans: []loan.Loan{closedLoan("100000")}, AsOf: asOf}

	breakdown := scorer.Evaluate(in)

	assert.Equal(t, 100, breakdown.Score)
	assert.Empty(t, breakdown.OverriddenBy)
	if assert.Len(t, breakdown.Contributions, 4) {
		assert.Equal(t, "on_time_ratio", breakdown.Contributions[0].Rule)
		assert.True(t, breakdown.Contributions[0].Points.Equal(dec("40")))
	}
}

func TestScorer_FloorsFractionalScore(t *testing.T) {
	l := closedLoan("100000")
	l.EMIsPaidOnTime = 7

	score := NewScorer(DefaultScore).Score(ScoreInput{Customer: testCustomer(), Loans: []loan.Loan{l}, AsOf: asOf})

	// 7/12*40 = 23.33 plus 60 from the capped rules
	assert.Equal(t, 83, score)
}

func TestScorer_ClampsToRange(t *testing.T) {
	loans := []loan.Loan{closedLoan("1000")}

	high := NewScorerWithRules(50, []ScoringRule{fixedRule{dec("80")}, fixedRule{dec("70")}}, nil)
	low := NewScorerWithRules(50, []ScoringRule{fixedRule{dec("-12.5")}}, nil)

	assert.Equal(t, MaxScore, high.Score(ScoreInput{Customer: testCustomer(), Loans: loans, AsOf: asOf}))
	assert.Equal(t, MinScore, low.Score(ScoreInput{Customer: testCustomer(), Loans: loans, AsOf: asOf}))
}

func TestScorer_ActiveDebtOverride(t *testing.T) {
	scorer := NewScorer(DefaultScore)

	over := scorer.Evaluate(ScoreInput{
		Customer: testCustomer(),
		Loans:    []loan.Loan{closedLoan("100000"), activeLoan("1800001", "5000")},
		AsOf:     asOf,
	})
	assert.Equal(t, 0, over.Score)
	assert.Equal(t, "active_debt_over_limit", over.OverriddenBy)

	atLimit := scorer.Evaluate(ScoreInput{
		Customer: testCustomer(),
		Loans:    []loan.Loan{activeLoan("1800000", "5000")},
		AsOf:     asOf,
	})
	assert.Empty(t, atLimit.OverriddenBy)
	assert.Positive(t, atLimit.Score)
}

func TestScorer_OverrideIgnoresEndedLoans(t *testing.T) {
	big := closedLoan("5000000")

	breakdown := NewScorer(DefaultScore).Evaluate(ScoreInput{Customer: testCustomer(), Loans: []loan.Loan{big}, AsOf: asOf})

	assert.Empty(t, breakdown.OverriddenBy)
	// volume rule still sees the lifetime total
	assert.Equal(t, 85, breakdown.Score)
}

func TestScorer_LoanEndingTodayIsActive(t *testing.T) {
	l := activeLoan("2000000", "5000")
	l.EndDate = day(2026, time.October, 17)

	score := NewScorer(DefaultScore).Score(ScoreInput{Customer: testCustomer(), Loans: []loan.Loan{l}, AsOf: asOf})
	assert.Equal(t, 0, score)

	tomorrow := asOf.AddDate(0, 0, 1)
	assert.NotEqual(t, 0, NewScorer(DefaultScore).Score(ScoreInput{Customer: testCustomer(), Loans: []loan.Loan{l}, AsOf: tomorrow}))
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer(DefaultScore)
	in := ScoreInput{
		Customer: testCustomer(),
		Loans:    []loan.Loan{closedLoan("100000"), activeLoan("250000", "5000")},
		AsOf:     asOf,
	}

	first := scorer.Evaluate(in)
	second := scorer.Evaluate(in)

	assert.Equal(t, first.Score, second.Score)
	assert.True(t, first.Raw.Equal(second.Raw))
}

func TestScorer_ScoreAlwaysInRange(t *testing.T) {
	scorer := NewScorer(DefaultScore)
	for n := 0; n <= 15; n++ {
		in := ScoreInput{Customer: testCustomer(), Loans: loansStartedOn(n, day(2026, time.March, 1)), AsOf: asOf}
		score := scorer.Score(in)
		assert.GreaterOrEqual(t, score, MinScore, "loans=%d", n)
		assert.LessOrEqual(t, score, MaxScore, "loans=%d", n)
	}
}

func TestOnTimeRule(t *testing.T) {
	rule := OnTimeRule{Weight: dec("40")}

	half := closedLoan("1000")
	half.EMIsPaidOnTime = 6
	assert.True(t, rule.Points(ScoreInput{Loans: []loan.Loan{half}}).Equal(dec("20")))

	zeroTenure := closedLoan("1000")
	zeroTenure.Tenure = 0
	zeroTenure.EMIsPaidOnTime = 0
	assert.True(t, rule.Points(ScoreInput{Loans: []loan.Loan{zeroTenure}}).IsZero())
}

func TestLoanCountRule(t *testing.T) {
	tests := []struct {
		loans int
		want  int64
	}{
		{1, 20}, {2, 20}, {3, 15}, {5, 15}, {6, 10}, {10, 10}, {11, 5}, {30, 5},
	}

	for _, tt := range tests {
		got := LoanCountRule{}.Points(ScoreInput{Loans: loansStartedOn(tt.loans, day(2018, time.May, 1)), AsOf: asOf})
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "loans=%d got %s", tt.loans, got)
	}
}

func TestCurrentYearActivityRule(t *testing.T) {
	thisYear := day(2026, time.January, 10)
	lastYear := day(2025, time.December, 31)

	tests := []struct {
		name     string
		loans    []loan.Loan
		expected int64
	}{
		{"none this year", loansStartedOn(6, lastYear), 20},
		{"two this year", loansStartedOn(2, thisYear), 20},
		{"three this year", loansStartedOn(3, thisYear), 15},
		{"four this year", loansStartedOn(4, thisYear), 15},
		{"five this year", loansStartedOn(5, thisYear), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentYearActivityRule{}.Points(ScoreInput{Loans: tt.loans, AsOf: asOf})
			assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)), "got %s", got)
		})
	}
}

func TestVolumeRule(t *testing.T) {
	tests := []struct {
		total    string
		expected int64
	}{
		{"900000", 20},
		{"900000.01", 15},
		{"1800000", 15},
		{"1800000.01", 5},
	}

	for _, tt := range tests {
		in := ScoreInput{Customer: testCustomer(), Loans: []loan.Loan{closedLoan(tt.total)}, AsOf: asOf}
		got := VolumeRule{}.Points(in)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)), "total=%s got %s", tt.total, got)
	}
}

func TestActiveDebtOverride_SumsOnlyActiveLoans(t *testing.T) {
	in := ScoreInput{
		Customer: testCustomer(),
		Loans: []loan.Loan{
			activeLoan("1000000", "100"),
			activeLoan("800001", "100"),
			closedLoan("9000000"),
		},
		AsOf: time.Date(2026, time.October, 17, 23, 59, 0, 0, time.UTC),
	}

	score, fired := ActiveDebtOverride{}.Override(in)

	assert.True(t, fired)
	assert.Equal(t, 0, score)
}
