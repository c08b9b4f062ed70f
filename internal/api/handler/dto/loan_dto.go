package dto

import (
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// LoanRequest is the body of both /check-eligibility and /create-loan.
type LoanRequest struct {
	CustomerID   int64           `json:"customer_id" validate:"gt=0"`
	LoanAmount   decimal.Decimal `json:"loan_amount" validate:"positive,max_digits=12,max_places=2"`
	InterestRate decimal.Decimal `json:"interest_rate" validate:"positive,max_digits=5,max_places=2"`
	Tenure       int             `json:"tenure" validate:"min=1,max=600"`
}

func (r *LoanRequest) Validate() error {
	return structValidate(r)
}

func (r *LoanRequest) ToEligibilityRequest() credit.EligibilityRequest {
	return credit.EligibilityRequest{
		CustomerID:   r.CustomerID,
		LoanAmount:   r.LoanAmount,
		InterestRate: r.InterestRate,
		Tenure:       r.Tenure,
	}
}

type EligibilityResponse struct {
	CustomerID            int64  `json:"customer_id"`
	Approval              bool   `json:"approval"`
	InterestRate          string `json:"interest_rate"`
	CorrectedInterestRate string `json:"corrected_interest_rate"`
	Tenure                int    `json:"tenure"`
	MonthlyInstallment    string `json:"monthly_installment"`
}

func NewEligibilityResponse(res credit.EligibilityResult) EligibilityResponse {
	return EligibilityResponse{
		CustomerID:            res.CustomerID,
		Approval:              res.Approval,
		InterestRate:          money(res.InterestRate),
		CorrectedInterestRate: money(res.CorrectedInterestRate),
		Tenure:                res.Tenure,
		MonthlyInstallment:    money(res.MonthlyInstallment),
	}
}

type CreateLoanResponse struct {
	LoanID             *int64 `json:"loan_id"`
	CustomerID         int64  `json:"customer_id"`
	LoanApproved       bool   `json:"loan_approved"`
	Message            string `json:"message"`
	MonthlyInstallment string `json:"monthly_installment"`
}

func NewCreateLoanResponse(res credit.LoanCreationResult) CreateLoanResponse {
	return CreateLoanResponse{
		LoanID:             res.LoanID,
		CustomerID:         res.CustomerID,
		LoanApproved:       res.LoanApproved,
		Message:            res.Message,
		MonthlyInstallment: money(res.MonthlyInstallment),
	}
}

type LoanDetailResponse struct {
	LoanID           int64           `json:"loan_id"`
	Customer         CustomerSummary `json:"customer"`
	LoanAmount       string          `json:"loan_amount"`
	InterestRate     string          `json:"interest_rate"`
	MonthlyRepayment string          `json:"monthly_repayment"`
	Tenure           int             `json:"tenure"`
}

func NewLoanDetailResponse(details *loan.LoanDetails) LoanDetailResponse {
	l := details.Loan
	return LoanDetailResponse{
		LoanID:           l.ID,
		Customer:         NewCustomerSummary(details.Customer),
		LoanAmount:       money(l.Amount),
		InterestRate:     money(l.InterestRate),
		MonthlyRepayment: money(l.MonthlyRepayment),
		Tenure:           l.Tenure,
	}
}

type LoanListItem struct {
	LoanID             int64  `json:"loan_id"`
	LoanAmount         string `json:"loan_amount"`
	InterestRate       string `json:"interest_rate"`
	MonthlyInstallment string `json:"monthly_installment"`
	RepaymentsLeft     int    `json:"repayments_left"`
}

func NewLoanList(loans []loan.Loan) []LoanListItem {
	items := make([]LoanListItem, len(loans))
	for i, l := range loans {
		items[i] = LoanListItem{
			LoanID:             l.ID,
			LoanAmount:         money(l.Amount),
			InterestRate:       money(l.InterestRate),
			MonthlyInstallment: money(l.MonthlyRepayment),
			RepaymentsLeft:     l.RepaymentsLeft(),
		}
	}
	return items
}

type RuleContributionResponse struct {
	Rule   string `json:"rule"`
	Points string `json:"points"`
}

type CreditScoreResponse struct {
	CustomerID    int64                      `json:"customer_id"`
	CreditScore   int                        `json:"credit_score"`
	Band          string                     `json:"band"`
	RawScore      string                     `json:"raw_score"`
	AsOf          string                     `json:"as_of"`
	DefaultScore  bool                       `json:"default_score"`
	OverriddenBy  string                     `json:"overridden_by,omitempty"`
	Contributions []RuleContributionResponse `json:"contributions"`
}

func NewCreditScoreResponse(report *credit.ScoreReport) CreditScoreResponse {
	b := report.Breakdown
	contributions := make([]RuleContributionResponse, len(b.Contributions))
	for i, c := range b.Contributions {
		contributions[i] = RuleContributionResponse{Rule: c.Rule, Points: money(c.Points)}
	}
	return CreditScoreResponse{
		CustomerID:    report.CustomerID,
		CreditScore:   b.Score,
		Band:          credit.BandFor(b.Score).String(),
		RawScore:      money(b.Raw),
		AsOf:          report.AsOf.Format("2006-01-02"),
		DefaultScore:  b.UsedDefault,
		OverriddenBy:  b.OverriddenBy,
		Contributions: contributions,
	}
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
