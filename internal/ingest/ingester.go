// Package ingest loads the historical customer and loan workbooks into the
// store. Rows are keyed by the customer id written in the files.
package ingest

import (
	"context"
	"credit-engine/internal/config"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
)

// DefaultAge is used when the customer file has no age column value.
const DefaultAge = 30

type Dataset string

const (
	DatasetCustomers Dataset = "customers"
	DatasetLoans     Dataset = "loans"
	DatasetAll       Dataset = "all"
)

func ParseDataset(s string) (Dataset, error) {
	switch d := Dataset(s); d {
	case DatasetCustomers, DatasetLoans, DatasetAll:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown dataset %q, expected customers, loans or all", apperrors.ErrInvalidArgument, s)
}

type CustomerStore interface {
	// ImportCustomer reports false when the customer is already present.
	ImportCustomer(ctx context.Context, cust *customer.Customer) (bool, error)
	ResetCustomerSequence(ctx context.Context) error
}

type LoanStore interface {
	// ImportLoan reports false when the customer already has a loan with
	// the same source loan id.
	ImportLoan(ctx context.Context, l *loan.Loan) (bool, error)
}

type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Report summarises one dataset run. Rows counts non-blank data rows.
type Report struct {
	Dataset  Dataset
	File     string
	Rows     int
	Inserted int
	Skipped  int
	Failed   int
	Errors   []RowError
}

func (r Report) String() string {
	return fmt.Sprintf("%s: %d rows, %d inserted, %d skipped, %d failed", r.Dataset, r.Rows, r.Inserted, r.Skipped, r.Failed)
}

func (r *Report) fail(row int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Row: row, Err: err})
}

func (r Report) record() {
	monitoring.RecordIngestedRows(string(r.Dataset), "inserted", r.Inserted)
	monitoring.RecordIngestedRows(string(r.Dataset), "skipped", r.Skipped)
	monitoring.RecordIngestedRows(string(r.Dataset), "failed", r.Failed)
}

type Ingester struct {
	customers CustomerStore
	loans     LoanStore
	cfg       config.IngestConfig
	logger    *slog.Logger
}

func NewIngester(customers CustomerStore, loans LoanStore, cfg config.IngestConfig, logger *slog.Logger) *Ingester {
	return &Ingester{
		customers: customers,
		loans:     loans,
		cfg:       cfg,
		logger:    logger.With("component", "ingester"),
	}
}

// Run ingests the requested dataset. For DatasetAll customers go first so
// that loans can reference them.
func (i *Ingester) Run(ctx context.Context, dataset Dataset) ([]Report, error) {
	var reports []Report

	if dataset == DatasetCustomers || dataset == DatasetAll {
		report, err := i.IngestCustomers(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	if dataset == DatasetLoans || dataset == DatasetAll {
		report, err := i.IngestLoans(ctx)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

var customerColumns = []column{
	{name: "customer_id", aliases: []string{"customerid", "id"}},
	{name: "first_name", aliases: []string{"firstname"}},
	{name: "last_name", aliases: []string{"lastname"}},
	{name: "phone_number", aliases: []string{"phonenumber", "phone"}},
	{name: "monthly_salary", aliases: []string{"monthlysalary", "monthlyincome"}},
	{name: "approved_limit", aliases: []string{"approvedlimit"}, optional: true},
	{name: "current_debt", aliases: []string{"currentdebt"}, optional: true},
	{name: "age", aliases: []string{"age"}, optional: true, headerOnly: true},
}

func (i *Ingester) IngestCustomers(ctx context.Context) (Report, error) {
	report := Report{Dataset: DatasetCustomers, File: i.cfg.CustomerFile}
	logger := i.logger.With("dataset", report.Dataset, "file", report.File)

	if err := checkFile(report.File); err != nil {
		logger.ErrorContext(ctx, "Customer data file unavailable", "error", err)
		return report, err
	}

	s, err := readSheet(report.File, i.cfg.Sheet, customerColumns)
	if err != nil {
		return report, err
	}

	logger.InfoContext(ctx, "Ingesting customers", "rows", len(s.rows))
	for n, row := range s.rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rowNo := n + 2
		if isBlank(row) || s.cell(row, "customer_id") == "" {
			continue
		}
		report.Rows++

		cust, err := customerFromRow(s, row)
		if err != nil {
			logger.WarnContext(ctx, "Skipping invalid customer row", "row", rowNo, "error", err)
			report.fail(rowNo, err)
			continue
		}

		inserted, err := i.customers.ImportCustomer(ctx, cust)
		if err != nil {
			logger.WarnContext(ctx, "Failed to store customer row", "row", rowNo, "customerID", cust.CustomerID, "error", err)
			report.fail(rowNo, err)
			continue
		}
		if inserted {
			report.Inserted++
		} else {
			report.Skipped++
		}
	}

	if err := i.customers.ResetCustomerSequence(ctx); err != nil {
		return report, err
	}

	report.record()
	logger.InfoContext(ctx, "Customer ingestion finished", "inserted", report.Inserted, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

func customerFromRow(s *sheet, row []string) (*customer.Customer, error) {
	id, err := parseInt("customer_id", s.cell(row, "customer_id"))
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("customer_id must be positive, got %d", id)
	}
	phone, err := parseInt("phone_number", s.cell(row, "phone_number"))
	if err != nil {
		return nil, err
	}
	salary, err := parseDecimal("monthly_salary", s.cell(row, "monthly_salary"))
	if err != nil {
		return nil, err
	}

	limit := customer.ApprovedLimitFor(salary)
	if raw := s.cell(row, "approved_limit"); raw != "" {
		if limit, err = parseDecimal("approved_limit", raw); err != nil {
			return nil, err
		}
	}

	debt := decimal.Zero
	if raw := s.cell(row, "current_debt"); raw != "" {
		if debt, err = parseDecimal("current_debt", raw); err != nil {
			return nil, err
		}
	}

	age := int64(DefaultAge)
	if raw := s.cell(row, "age"); raw != "" {
		if age, err = parseInt("age", raw); err != nil {
			return nil, err
		}
	}

	return &customer.Customer{
		CustomerID:    id,
		FirstName:     s.cell(row, "first_name"),
		LastName:      s.cell(row, "last_name"),
		Age:           int(age),
		PhoneNumber:   phone,
		MonthlySalary: salary,
		ApprovedLimit: limit,
		CurrentDebt:   debt,
	}, nil
}

var loanColumns = []column{
	{name: "customer_id", aliases: []string{"customerid"}},
	{name: "loan_id", aliases: []string{"loanid"}},
	{name: "loan_amount", aliases: []string{"loanamount"}},
	{name: "tenure", aliases: []string{"tenure"}},
	{name: "interest_rate", aliases: []string{"interestrate"}},
	{name: "monthly_repayment", aliases: []string{"monthlyrepayment", "monthlypayment", "monthlyrepaymentemi", "emi"}},
	{name: "emis_paid_on_time", aliases: []string{"emispaidontime"}, optional: true},
	{name: "start_date", aliases: []string{"startdate", "dateofapproval"}},
	{name: "end_date", aliases: []string{"enddate"}, optional: true},
}

func (i *Ingester) IngestLoans(ctx context.Context) (Report, error) {
	report := Report{Dataset: DatasetLoans, File: i.cfg.LoanFile}
	logger := i.logger.With("dataset", report.Dataset, "file", report.File)

	if err := checkFile(report.File); err != nil {
		logger.ErrorContext(ctx, "Loan data file unavailable", "error", err)
		return report, err
	}

	s, err := readSheet(report.File, i.cfg.Sheet, loanColumns)
	if err != nil {
		return report, err
	}

	logger.InfoContext(ctx, "Ingesting loans", "rows", len(s.rows))
	for n, row := range s.rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rowNo := n + 2
		if isBlank(row) || s.cell(row, "customer_id") == "" {
			continue
		}
		report.Rows++

		l, err := loanFromRow(s, row)
		if err != nil {
			logger.WarnContext(ctx, "Skipping invalid loan row", "row", rowNo, "error", err)
			report.fail(rowNo, err)
			continue
		}

		inserted, err := i.loans.ImportLoan(ctx, l)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.DebugContext(ctx, "Skipping loan of unknown customer", "row", rowNo, "customerID", l.CustomerID)
				report.Skipped++
				continue
			}
			logger.WarnContext(ctx, "Failed to store loan row", "row", rowNo, "customerID", l.CustomerID, "error", err)
			report.fail(rowNo, err)
			continue
		}
		if !inserted {
			report.Skipped++
			continue
		}
		report.Inserted++
	}

	report.record()
	logger.InfoContext(ctx, "Loan ingestion finished", "inserted", report.Inserted, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

func loanFromRow(s *sheet, row []string) (*loan.Loan, error) {
	customerID, err := parseInt("customer_id", s.cell(row, "customer_id"))
	if err != nil {
		return nil, err
	}
	sourceID, err := parseInt("loan_id", s.cell(row, "loan_id"))
	if err != nil {
		return nil, err
	}
	if sourceID <= 0 {
		return nil, fmt.Errorf("loan_id must be positive, got %d", sourceID)
	}
	amount, err := parseDecimal("loan_amount", s.cell(row, "loan_amount"))
	if err != nil {
		return nil, err
	}
	tenure, err := parseInt("tenure", s.cell(row, "tenure"))
	if err != nil {
		return nil, err
	}
	if tenure < 0 {
		return nil, fmt.Errorf("tenure must not be negative, got %d", tenure)
	}
	rate, err := parseDecimal("interest_rate", s.cell(row, "interest_rate"))
	if err != nil {
		return nil, err
	}
	repayment, err := parseDecimal("monthly_repayment", s.cell(row, "monthly_repayment"))
	if err != nil {
		return nil, err
	}

	var paidOnTime int64
	if raw := s.cell(row, "emis_paid_on_time"); raw != "" {
		if paidOnTime, err = parseInt("emis_paid_on_time", raw); err != nil {
			return nil, err
		}
	}

	start, err := parseDate("start_date", s.cell(row, "start_date"))
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, loan.DaysPerPeriod*int(tenure))
	if raw := s.cell(row, "end_date"); raw != "" {
		if end, err = parseDate("end_date", raw); err != nil {
			return nil, err
		}
	}

	return &loan.Loan{
		CustomerID:       customerID,
		Amount:           amount,
		InterestRate:     rate,
		Tenure:           int(tenure),
		MonthlyRepayment: repayment,
		EMIsPaidOnTime:   int(paidOnTime),
		StartDate:        start,
		EndDate:          end,
		SourceLoanID:     sourceID,
	}, nil
}

func checkFile(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no file configured", apperrors.ErrIngestion)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: data file not found at %s: %w", apperrors.ErrIngestion, path, err)
	}
	return nil
}
