package loan

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinTenure = 1
	MaxTenure = 600

	// DaysPerPeriod is the length of one installment period for loans
	// created by the engine.
	DaysPerPeriod = 30
)

type Loan struct {
	ID               int64
	CustomerID       int64
	Amount           decimal.Decimal
	InterestRate     decimal.Decimal
	Tenure           int
	MonthlyRepayment decimal.Decimal
	EMIsPaidOnTime   int
	StartDate        time.Time
	EndDate          time.Time
	// SourceLoanID is the loan id from an imported file; zero for loans
	// created by the engine.
	SourceLoanID int64
}

// NewLoan builds an engine-originated loan starting on startDate. The
// installment is stored at cent precision.
func NewLoan(customerID int64, amount, interestRate decimal.Decimal, tenure int, installment decimal.Decimal, startDate time.Time) (*Loan, error) {
	if tenure < MinTenure || tenure > MaxTenure {
		return nil, fmt.Errorf("%w: tenure must be between %d and %d", apperrors.ErrInvalidArgument, MinTenure, MaxTenure)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: loan amount must be positive", apperrors.ErrInvalidArgument)
	}
	start := DateOf(startDate)

	return &Loan{
		CustomerID:       customerID,
		Amount:           amount,
		InterestRate:     interestRate,
		Tenure:           tenure,
		MonthlyRepayment: installment.Round(2),
		EMIsPaidOnTime:   0,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, DaysPerPeriod*tenure),
	}, nil
}

// IsActive reports whether the loan has not yet ended on asOf. The end date
// itself counts as active.
func (l Loan) IsActive(asOf time.Time) bool {
	return calendarDay(l.EndDate) >= calendarDay(asOf)
}

func (l Loan) StartedInYear(year int) bool {
	return l.StartDate.Year() == year
}

func (l Loan) RepaymentsLeft() int {
	left := l.Tenure - l.EMIsPaidOnTime
	if left < 0 {
		return 0
	}
	return left
}

// calendarDay compares dates by their wall-clock Y/M/D, so a DATE column
// scanned as UTC midnight lines up with a local "today".
func calendarDay(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
