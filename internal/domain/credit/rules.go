package credit

import (
	"github.com/shopspring/decimal"
)

// tier awards points when a count is at most upTo.
type tier struct {
	upTo   int
	points int64
}

func tieredPoints(count int, tiers []tier, otherwise int64) decimal.Decimal {
	for _, t := range tiers {
		if count <= t.upTo {
			return decimal.NewFromInt(t.points)
		}
	}
	return decimal.NewFromInt(otherwise)
}

func DefaultRules() []ScoringRule {
	return []ScoringRule{
		OnTimeRule{Weight: decimal.NewFromInt(40)},
		LoanCountRule{},
		CurrentYearActivityRule{},
		VolumeRule{},
	}
}

// OnTimeRule scores the share of all installments that were paid on time.
type OnTimeRule struct {
	Weight decimal.Decimal
}

func (OnTimeRule) Name() string { return "on_time_ratio" }

func (r OnTimeRule) Points(in ScoreInput) decimal.Decimal {
	var paidOnTime, totalTenure int64
	for _, l := range in.Loans {
		paidOnTime += int64(l.EMIsPaidOnTime)
		totalTenure += int64(l.Tenure)
	}
	if totalTenure == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(paidOnTime).Mul(r.Weight).Div(decimal.NewFromInt(totalTenure))
}

type LoanCountRule struct{}

var loanCountTiers = []tier{{upTo: 2, points: 20}, {upTo: 5, points: 15}, {upTo: 10, points: 10}}

func (LoanCountRule) Name() string { return "loan_count" }

func (LoanCountRule) Points(in ScoreInput) decimal.Decimal {
	return tieredPoints(len(in.Loans), loanCountTiers, 5)
}

// CurrentYearActivityRule counts loans started in the calendar year of AsOf.
type CurrentYearActivityRule struct{}

var currentYearTiers = []tier{{upTo: 2, points: 20}, {upTo: 4, points: 15}}

func (CurrentYearActivityRule) Name() string { return "current_year_activity" }

func (CurrentYearActivityRule) Points(in ScoreInput) decimal.Decimal {
	year := in.AsOf.Year()
	count := 0
	for _, l := range in.Loans {
		if l.StartedInYear(year) {
			count++
		}
	}
	return tieredPoints(count, currentYearTiers, 10)
}

// VolumeRule compares lifetime borrowing against the approved limit.
type VolumeRule struct{}

var half = decimal.RequireFromString("0.5")

func (VolumeRule) Name() string { return "loan_volume" }

func (VolumeRule) Points(in ScoreInput) decimal.Decimal {
	total := decimal.Zero
	for _, l := range in.Loans {
		total = total.Add(l.Amount)
	}
	limit := in.Customer.ApprovedLimit
	switch {
	case total.LessThanOrEqual(limit.Mul(half)):
		return decimal.NewFromInt(20)
	case total.LessThanOrEqual(limit):
		return decimal.NewFromInt(15)
	default:
		return decimal.NewFromInt(5)
	}
}

// ActiveDebtOverride zeroes the score when the principal of loans still
// running on AsOf exceeds the approved limit.
type ActiveDebtOverride struct{}

func (ActiveDebtOverride) Name() string { return "active_debt_over_limit" }

func (ActiveDebtOverride) Override(in ScoreInput) (int, bool) {
	active := decimal.Zero
	for _, l := range in.Loans {
		if l.IsActive(in.AsOf) {
			active = active.Add(l.Amount)
		}
	}
	if active.GreaterThan(in.Customer.ApprovedLimit) {
		return MinScore, true
	}
	return 0, false
}
