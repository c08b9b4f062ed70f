package loan

import (
	"context"
	"time"
)

type Repository interface {
	// CreateLoan inserts the loan and adds its amount to the owning
	// customer's current debt in one transaction.
	CreateLoan(ctx context.Context, newLoan *Loan) (*Loan, error)

	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)

	// FindByCustomerID returns all loans of a customer, or only those active
	// on activeOn when it is non-nil.
	FindByCustomerID(ctx context.Context, customerID int64, activeOn *time.Time) ([]Loan, error)
}
