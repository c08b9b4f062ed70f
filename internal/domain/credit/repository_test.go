package credit

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCustomerReader struct {
	mock.Mock
}

var _ CustomerReader = (*MockCustomerReader)(nil)

func (m *MockCustomerReader) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, ok := args.Get(0).(*customer.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLoanStore struct {
	mock.Mock
}

var _ LoanStore = (*MockLoanStore)(nil)

func (m *MockLoanStore) FindByCustomerID(ctx context.Context, customerID int64, activeOn *time.Time) ([]loan.Loan, error) {
	args := m.Called(ctx, customerID, activeOn)
	if ls, ok := args.Get(0).([]loan.Loan); ok {
		return ls, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanStore) CreateLoan(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error) {
	args := m.Called(ctx, newLoan)
	if l, ok := args.Get(0).(*loan.Loan); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

var _ EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishLoanCreated(ctx context.Context, event LoanCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
