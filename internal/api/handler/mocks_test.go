package handler

import (
	"bytes"
	"context"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) RegisterCustomer(ctx context.Context, req customer.Registration) (*customer.Customer, error) {
	args := m.Called(ctx, req)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) GetCustomer(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if cs, ok := args.Get(0).([]*customer.Customer); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID int64) (*loan.LoanDetails, error) {
	args := m.Called(ctx, loanID)
	if d, ok := args.Get(0).(*loan.LoanDetails); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanService) ListCustomerLoans(ctx context.Context, customerID int64, activeOnly bool) ([]loan.Loan, error) {
	args := m.Called(ctx, customerID, activeOnly)
	if ls, ok := args.Get(0).([]loan.Loan); ok {
		return ls, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) CreditScore(ctx context.Context, customerID int64) (*credit.ScoreReport, error) {
	args := m.Called(ctx, customerID)
	if r, ok := args.Get(0).(*credit.ScoreReport); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCreditService) CheckEligibility(ctx context.Context, req credit.EligibilityRequest) (credit.EligibilityResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(credit.EligibilityResult), args.Error(1)
}

func (m *MockCreditService) CreateLoan(ctx context.Context, req credit.EligibilityRequest) (credit.LoanCreationResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(credit.LoanCreationResult), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{Keys: []string{key}, Values: []string{value}},
	}))
}

func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}
