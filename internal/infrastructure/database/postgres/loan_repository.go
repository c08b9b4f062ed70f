package postgres

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
)

const loanColumns = `loan_id, customer_id, loan_amount, interest_rate, tenure, monthly_repayment, emis_paid_on_time, start_date, end_date`

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ loan.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func scanLoan(row pgx.Row, l *loan.Loan) error {
	return row.Scan(
		&l.ID, &l.CustomerID, &l.Amount, &l.InterestRate, &l.Tenure,
		&l.MonthlyRepayment, &l.EMIsPaidOnTime, &l.StartDate, &l.EndDate,
	)
}

// CreateLoan locks the owning customer row, inserts the loan and raises the
// customer's current debt by the loan amount, all in one transaction.
func (r *LoanRepository) CreateLoan(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error) {
	if newLoan == nil {
		return nil, fmt.Errorf("%w: loan cannot be nil", apperrors.ErrInvalidArgument)
	}
	logger := r.logger.With("customer_id", newLoan.CustomerID)
	start := time.Now()

	tx, err := beginTx(ctx, r.db, logger)
	if err != nil {
		return nil, err
	}
	defer rollbackTx(ctx, tx, logger)

	lockSQL := `SELECT customer_id FROM customers WHERE customer_id = $1 FOR UPDATE`
	var lockedID int64
	if err := tx.QueryRow(ctx, lockSQL, newLoan.CustomerID).Scan(&lockedID); err != nil {
		observe("CreateLoan", start, err)
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Customer not found while creating loan")
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrNotFound, customer.ErrNotFound)
		}
		logger.ErrorContext(ctx, "Failed to lock customer row", "error", err)
		return nil, fmt.Errorf("%w: failed to lock customer: %w", apperrors.ErrDatabase, err)
	}

	loanSQL := `
        INSERT INTO loans (customer_id, loan_amount, interest_rate, tenure, monthly_repayment, emis_paid_on_time, start_date, end_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
        RETURNING ` + loanColumns

	var created loan.Loan
	err = scanLoan(tx.QueryRow(ctx, loanSQL,
		newLoan.CustomerID, newLoan.Amount, newLoan.InterestRate, newLoan.Tenure,
		newLoan.MonthlyRepayment, newLoan.EMIsPaidOnTime, newLoan.StartDate, newLoan.EndDate,
	), &created)
	if err != nil {
		observe("CreateLoan", start, err)
		logger.ErrorContext(ctx, "Failed to insert loan", "error", err)
		return nil, fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}

	debtSQL := `
        UPDATE customers
        SET current_debt = current_debt + $1, updated_at = NOW()
        WHERE customer_id = $2`

	if _, err := tx.Exec(ctx, debtSQL, newLoan.Amount, newLoan.CustomerID); err != nil {
		observe("CreateLoan", start, err)
		logger.ErrorContext(ctx, "Failed to update customer debt", "error", err)
		return nil, fmt.Errorf("%w: failed to update customer debt: %w", apperrors.ErrDatabase, err)
	}

	if err := observe("CreateLoan", start, commitTx(ctx, tx, logger)); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Loan created in DB", "loan_id", created.ID)
	return &created, nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1`

	var l loan.Loan
	start := time.Now()
	err := observe("GetLoanByID", start, scanLoan(r.db.QueryRow(ctx, query, loanID), &l))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &l, nil
}

func (r *LoanRepository) FindByCustomerID(ctx context.Context, customerID int64, activeOn *time.Time) ([]loan.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1`
	args := []any{customerID}
	if activeOn != nil {
		query += ` AND end_date >= $2`
		args = append(args, loan.DateOf(*activeOn))
	}
	query += ` ORDER BY start_date ASC, loan_id ASC`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, args...)
	if observe("FindLoansByCustomerID", start, err) != nil {
		r.logger.ErrorContext(ctx, "Failed to query customer loans", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	loans := make([]loan.Loan, 0)
	for rows.Next() {
		var l loan.Loan
		if err := scanLoan(rows, &l); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan row", "customer_id", customerID, "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		loans = append(loans, l)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan rows", "customer_id", customerID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return loans, nil
}

// ImportLoan stores a historical loan as it appears in a bulk file. The
// customer's current debt is taken from the customer file and left alone.
// It reports false when the customer already has a loan with the same
// source loan id.
func (r *LoanRepository) ImportLoan(ctx context.Context, l *loan.Loan) (bool, error) {
	if l == nil || l.SourceLoanID <= 0 {
		return false, fmt.Errorf("%w: imported loan needs a positive source loan id", apperrors.ErrInvalidArgument)
	}

	query := `
        INSERT INTO loans (customer_id, loan_amount, interest_rate, tenure, monthly_repayment, emis_paid_on_time, start_date, end_date, source_loan_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        ON CONFLICT (customer_id, source_loan_id) DO NOTHING
        RETURNING loan_id`

	start := time.Now()
	err := observe("ImportLoan", start, r.db.QueryRow(ctx, query,
		l.CustomerID, l.Amount, l.InterestRate, l.Tenure,
		l.MonthlyRepayment, l.EMIsPaidOnTime, l.StartDate, l.EndDate, l.SourceLoanID,
	).Scan(&l.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.DebugContext(ctx, "Loan already imported", "customer_id", l.CustomerID, "source_loan_id", l.SourceLoanID)
		return false, nil
	}
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to import loan", "customer_id", l.CustomerID, "source_loan_id", l.SourceLoanID, "error", err)
		return false, translateDBError(err, r.logger)
	}
	return true, nil
}
