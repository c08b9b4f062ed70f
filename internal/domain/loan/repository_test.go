package loan

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

var _ Repository = (*MockRepository)(nil)

func (m *MockRepository) CreateLoan(ctx context.Context, newLoan *Loan) (*Loan, error) {
	args := m.Called(ctx, newLoan)
	if l, ok := args.Get(0).(*Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetLoanByID(ctx context.Context, loanID int64) (*Loan, error) {
	args := m.Called(ctx, loanID)
	if l, ok := args.Get(0).(*Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) FindByCustomerID(ctx context.Context, customerID int64, activeOn *time.Time) ([]Loan, error) {
	args := m.Called(ctx, customerID, activeOn)
	if ls, ok := args.Get(0).([]Loan); ok {
		return ls, args.Error(1)
	}
	return nil, args.Error(1)
}
