package handler

import (
	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/pkg/apperrors"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoanHandler_ViewLoan(t *testing.T) {
	t.Run("returns loan with customer summary", func(t *testing.T) {
		svc := new(MockLoanService)
		details := &loan.LoanDetails{
			Loan: loan.Loan{ID: 42, CustomerID: 7, Amount: decimal.NewFromInt(100000), InterestRate: decimal.NewFromInt(12),
				MonthlyRepayment: decimal.RequireFromString("8884.88"), Tenure: 12},
			Customer: customer.Customer{CustomerID: 7, FirstName: "Asha", LastName: "Rao", Age: 31, PhoneNumber: 9876543210},
		}
		svc.On("GetLoan", mock.Anything, int64(42)).Return(details, nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loan/42", nil), "loanID", "42")
		rec := httptest.NewRecorder()
		NewLoanHandler(svc, testLogger()).ViewLoan(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.LoanDetailResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(42), resp.LoanID)
		assert.Equal(t, "Rao", resp.Customer.LastName)
		assert.Equal(t, "8884.88", resp.MonthlyRepayment)
		svc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockLoanService)
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loan/abc", nil), "loanID", "abc")
		rec := httptest.NewRecorder()
		NewLoanHandler(svc, testLogger()).ViewLoan(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "GetLoan", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockLoanService)
		svc.On("GetLoan", mock.Anything, int64(5)).Return(nil, fmt.Errorf("%w: loan with ID 5 not found", apperrors.ErrNotFound)).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loan/5", nil), "loanID", "5")
		rec := httptest.NewRecorder()
		NewLoanHandler(svc, testLogger()).ViewLoan(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})
}

func TestLoanHandler_ViewLoans(t *testing.T) {
	loans := []loan.Loan{
		{ID: 1, Amount: decimal.NewFromInt(5000), InterestRate: decimal.NewFromInt(10), MonthlyRepayment: decimal.NewFromInt(500), Tenure: 12, EMIsPaidOnTime: 4},
	}

	t.Run("lists all loans", func(t *testing.T) {
		svc := new(MockLoanService)
		svc.On("ListCustomerLoans", mock.Anything, int64(7), false).Return(loans, nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loans/7", nil), "customerID", "7")
		rec := httptest.NewRecorder()
		NewLoanHandler(svc, testLogger()).ViewLoans(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []dto.LoanListItem
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp, 1)
		assert.Equal(t, 8, resp[0].RepaymentsLeft)
		svc.AssertExpectations(t)
	})

	t.Run("active filter", func(t *testing.T) {
		svc := new(MockLoanService)
		svc.On("ListCustomerLoans", mock.Anything, int64(7), true).Return([]loan.Loan{}, nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loans/7?active=true", nil), "customerID", "7")
		rec := httptest.NewRecorder()
		NewLoanHandler(svc, testLogger()).ViewLoans(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("bad active flag", func(t *testing.T) {
		svc := new(MockLoanService)
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loans/7?active=maybe", nil), "customerID", "7")
		rec := httptest.NewRecorder()
		NewLoanHandler(svc, testLogger()).ViewLoans(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown customer", func(t *testing.T) {
		svc := new(MockLoanService)
		svc.On("ListCustomerLoans", mock.Anything, int64(99), false).
			Return(nil, fmt.Errorf("%w: %w", apperrors.ErrNotFound, customer.ErrNotFound)).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/view-loans/99", nil), "customerID", "99")
		rec := httptest.NewRecorder()
		NewLoanHandler(svc, testLogger()).ViewLoans(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
