package loan

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type LoanService interface {
	GetLoan(ctx context.Context, loanID int64) (*LoanDetails, error)

	ListCustomerLoans(ctx context.Context, customerID int64, activeOnly bool) ([]Loan, error)
}

// LoanDetails pairs a loan with its owning customer for the detail view.
type LoanDetails struct {
	Loan     Loan
	Customer customer.Customer
}

type loanServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	now             func() time.Time
	logger          *slog.Logger
}

func NewLoanService(r Repository, cs customer.CustomerService, now func() time.Time, logger *slog.Logger) LoanService {
	if now == nil {
		now = time.Now
	}
	return &loanServiceImpl{
		repo:            r,
		customerService: cs,
		now:             now,
		logger:          logger.With("component", "loanService"),
	}
}

func (s *loanServiceImpl) GetLoan(ctx context.Context, loanID int64) (*LoanDetails, error) {
	logger := s.logger.With("loanID", loanID)
	logger.InfoContext(ctx, "Getting loan details")

	l, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Loan not found")
			return nil, fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
		}
		logger.ErrorContext(ctx, "Failed to get loan", "error", err)
		return nil, fmt.Errorf("failed to get loan %d: %w", loanID, err)
	}

	cust, err := s.customerService.GetCustomer(ctx, l.CustomerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load customer for loan", "customerID", l.CustomerID, "error", err)
		return nil, fmt.Errorf("failed to load customer %d for loan %d: %w", l.CustomerID, loanID, err)
	}

	return &LoanDetails{Loan: *l, Customer: *cust}, nil
}

func (s *loanServiceImpl) ListCustomerLoans(ctx context.Context, customerID int64, activeOnly bool) ([]Loan, error) {
	logger := s.logger.With("customerID", customerID, "activeOnly", activeOnly)
	logger.InfoContext(ctx, "Listing customer loans")

	if _, err := s.customerService.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	var activeOn *time.Time
	if activeOnly {
		today := s.now()
		activeOn = &today
	}

	loans, err := s.repo.FindByCustomerID(ctx, customerID, activeOn)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list loans", "error", err)
		return nil, fmt.Errorf("failed to list loans for customer %d: %w", customerID, err)
	}

	logger.InfoContext(ctx, "Listed customer loans", "count", len(loans))
	return loans, nil
}
