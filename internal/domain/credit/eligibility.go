package credit

import (
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"time"

	"github.com/shopspring/decimal"
)

// Outgoings on active loans plus the new installment may not exceed this
// share of monthly income.
var maxBurdenRatio = decimal.RequireFromString("0.5")

type EligibilityRequest struct {
	CustomerID   int64
	LoanAmount   decimal.Decimal
	InterestRate decimal.Decimal
	Tenure       int
}

type RejectionReason string

const (
	ReasonCustomerNotFound RejectionReason = "customer_not_found"
	ReasonScoreTooLow      RejectionReason = "score_too_low"
	ReasonRateBelowFloor   RejectionReason = "rate_below_floor"
	ReasonBurdenTooHigh    RejectionReason = "repayment_burden_too_high"
)

type EligibilityResult struct {
	CustomerID            int64
	Approval              bool
	InterestRate          decimal.Decimal
	CorrectedInterestRate decimal.Decimal
	Tenure                int
	MonthlyInstallment    decimal.Decimal
	CreditScore           int
	CustomerFound         bool
	Reasons               []RejectionReason
}

// NotFoundResult is the decision for a customer that does not exist.
func NotFoundResult(req EligibilityRequest) EligibilityResult {
	return EligibilityResult{
		CustomerID:            req.CustomerID,
		Approval:              false,
		InterestRate:          req.InterestRate,
		CorrectedInterestRate: req.InterestRate,
		Tenure:                req.Tenure,
		MonthlyInstallment:    decimal.Zero,
		CustomerFound:         false,
		Reasons:               []RejectionReason{ReasonCustomerNotFound},
	}
}

// EvaluateEligibility decides a loan request against a snapshot of the customer's loans.
// Both the band floor check and the installment use the corrected rate.
func (s *Scorer) EvaluateEligibility(cust customer.Customer, loans []loan.Loan, req EligibilityRequest, asOf time.Time) (EligibilityResult, error) {
	score := s.Score(ScoreInput{Customer: cust, Loans: loans, AsOf: asOf})
	corrected := s.correct(score, req.InterestRate)

	installment, err := Installment(req.LoanAmount, corrected, req.Tenure)
	if err != nil {
		return EligibilityResult{}, err
	}

	burden := installment
	for _, l := range loans {
		if l.IsActive(asOf) {
			burden = burden.Add(l.MonthlyRepayment)
		}
	}

	var reasons []RejectionReason
	band := BandFor(score)
	if band == BandIneligible {
		reasons = append(reasons, ReasonScoreTooLow)
	} else if floor, ok := band.RateFloor(); ok && corrected.LessThan(floor) {
		reasons = append(reasons, ReasonRateBelowFloor)
	}
	if burden.GreaterThan(cust.MonthlySalary.Mul(maxBurdenRatio)) {
		reasons = append(reasons, ReasonBurdenTooHigh)
	}

	return EligibilityResult{
		CustomerID:            req.CustomerID,
		Approval:              len(reasons) == 0,
		InterestRate:          req.InterestRate,
		CorrectedInterestRate: corrected,
		Tenure:                req.Tenure,
		MonthlyInstallment:    installment,
		CreditScore:           score,
		CustomerFound:         true,
		Reasons:               reasons,
	}, nil
}

// Evaluate runs EvaluateEligibility with the standard scorer.
func Evaluate(cust customer.Customer, loans []loan.Loan, req EligibilityRequest, asOf time.Time) (EligibilityResult, error) {
	return NewScorer(DefaultScore).EvaluateEligibility(cust, loans, req, asOf)
}
