package dto

import (
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanRequest_Validate(t *testing.T) {
	valid := func() LoanRequest {
		return LoanRequest{
			CustomerID:   7,
			LoanAmount:   decimal.NewFromInt(100000),
			InterestRate: decimal.NewFromInt(12),
			Tenure:       12,
		}
	}
	tests := []struct {
		name      string
		mutate    func(r *LoanRequest)
		wantField string
	}{
		{"valid", func(r *LoanRequest) {}, ""},
		{"zero rate", func(r *LoanRequest) { r.InterestRate = decimal.Zero }, "interest_rate"},
		{"missing customer", func(r *LoanRequest) { r.CustomerID = 0 }, "customer_id"},
		{"zero amount", func(r *LoanRequest) { r.LoanAmount = decimal.Zero }, "loan_amount"},
		{"amount sub-cent", func(r *LoanRequest) { r.LoanAmount = decimal.RequireFromString("10.001") }, "loan_amount"},
		{"negative rate", func(r *LoanRequest) { r.InterestRate = decimal.NewFromInt(-1) }, "interest_rate"},
		{"rate too wide", func(r *LoanRequest) { r.InterestRate = decimal.RequireFromString("1000.25") }, "interest_rate"},
		{"zero tenure", func(r *LoanRequest) { r.Tenure = 0 }, "tenure"},
		{"tenure too long", func(r *LoanRequest) { r.Tenure = 601 }, "tenure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *apperrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestNewEligibilityResponse(t *testing.T) {
	res := credit.EligibilityResult{
		CustomerID:            7,
		Approval:              true,
		InterestRate:          decimal.NewFromInt(8),
		CorrectedInterestRate: decimal.NewFromInt(12),
		Tenure:                12,
		MonthlyInstallment:    decimal.RequireFromString("8884.878867834"),
	}

	resp := NewEligibilityResponse(res)

	assert.Equal(t, "8.00", resp.InterestRate)
	assert.Equal(t, "12.00", resp.CorrectedInterestRate)
	assert.Equal(t, "8884.88", resp.MonthlyInstallment)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customer_id":7,"approval":true,"interest_rate":"8.00","corrected_interest_rate":"12.00","tenure":12,"monthly_installment":"8884.88"}`, string(raw))
}

func TestNewCreateLoanResponse_NullLoanID(t *testing.T) {
	resp := NewCreateLoanResponse(credit.LoanCreationResult{CustomerID: 9, Message: credit.MessageCustomerNotFound})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"loan_id":null,"customer_id":9,"loan_approved":false,"message":"Customer not found","monthly_installment":"0.00"}`, string(raw))
}

func TestNewLoanDetailResponse(t *testing.T) {
	details := &loan.LoanDetails{
		Loan: loan.Loan{
			ID: 42, CustomerID: 7, Amount: decimal.NewFromInt(100000), InterestRate: decimal.NewFromInt(12),
			Tenure: 12, MonthlyRepayment: decimal.RequireFromString("8884.88"),
		},
		Customer: customer.Customer{CustomerID: 7, FirstName: "Asha", LastName: "Rao", PhoneNumber: 9876543210, Age: 31},
	}

	resp := NewLoanDetailResponse(details)

	assert.Equal(t, int64(42), resp.LoanID)
	assert.Equal(t, int64(7), resp.Customer.ID)
	assert.Equal(t, "Asha", resp.Customer.FirstName)
	assert.Equal(t, "100000.00", resp.LoanAmount)
	assert.Equal(t, "12.00", resp.InterestRate)
	assert.Equal(t, "8884.88", resp.MonthlyRepayment)
	assert.Equal(t, 12, resp.Tenure)
}

func TestNewLoanList(t *testing.T) {
	loans := []loan.Loan{
		{ID: 1, Amount: decimal.NewFromInt(5000), InterestRate: decimal.NewFromInt(10), MonthlyRepayment: decimal.NewFromInt(500), Tenure: 12, EMIsPaidOnTime: 4},
		{ID: 2, Amount: decimal.NewFromInt(9000), InterestRate: decimal.NewFromInt(14), MonthlyRepayment: decimal.NewFromInt(800), Tenure: 6, EMIsPaidOnTime: 9},
	}

	items := NewLoanList(loans)

	require.Len(t, items, 2)
	assert.Equal(t, 8, items[0].RepaymentsLeft)
	assert.Equal(t, "500.00", items[0].MonthlyInstallment)
	assert.Equal(t, 0, items[1].RepaymentsLeft)
	assert.Empty(t, NewLoanList(nil))
}

func TestNewCreditScoreResponse(t *testing.T) {
	report := &credit.ScoreReport{
		CustomerID: 7,
		AsOf:       time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
		Breakdown: credit.ScoreBreakdown{
			Score: 83,
			Raw:   decimal.RequireFromString("83.33"),
			Contributions: []credit.RuleContribution{
				{Rule: "on_time_ratio", Points: decimal.RequireFromString("33.333")},
			},
		},
	}

	resp := NewCreditScoreResponse(report)

	assert.Equal(t, 83, resp.CreditScore)
	assert.Equal(t, "good", resp.Band)
	assert.Equal(t, "2026-10-17", resp.AsOf)
	assert.Equal(t, "83.33", resp.RawScore)
	require.Len(t, resp.Contributions, 1)
	assert.Equal(t, "33.33", resp.Contributions[0].Points)
}
