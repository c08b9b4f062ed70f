package credit

import (
	"context"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MessageLoanApproved     = "Loan approved successfully"
	MessageCustomerNotFound = "Customer not found"
	MessageLoanNotApproved  = "Loan not approved due to low credit score or high EMI ratio"
)

// CustomerReader is the read side of the customer store.
type CustomerReader interface {
	FindByID(ctx context.Context, customerID int64) (*customer.Customer, error)
}

// LoanStore is the part of the loan repository the engine needs.
type LoanStore interface {
	FindByCustomerID(ctx context.Context, customerID int64, activeOn *time.Time) ([]loan.Loan, error)
	CreateLoan(ctx context.Context, newLoan *loan.Loan) (*loan.Loan, error)
}

// LoanCreatedEvent is emitted after a loan and its debt update are committed.
type LoanCreatedEvent struct {
	Timestamp   time.Time
	Loan        loan.Loan
	CreditScore int
}

type EventPublisher interface {
	PublishLoanCreated(ctx context.Context, event LoanCreatedEvent) error
}

type Service interface {
	CreditScore(ctx context.Context, customerID int64) (*ScoreReport, error)
	CheckEligibility(ctx context.Context, req EligibilityRequest) (EligibilityResult, error)
	CreateLoan(ctx context.Context, req EligibilityRequest) (LoanCreationResult, error)
}

type ScoreReport struct {
	CustomerID int64
	AsOf       time.Time
	Breakdown  ScoreBreakdown
}

type LoanCreationResult struct {
	LoanID             *int64
	CustomerID         int64
	LoanApproved       bool
	Message            string
	MonthlyInstallment decimal.Decimal
	Eligibility        EligibilityResult
}

var _ Service = (*service)(nil)

type service struct {
	customers CustomerReader
	loans     LoanStore
	scorer    *Scorer
	pub       EventPublisher
	now       func() time.Time
	loc       *time.Location
	logger    *slog.Logger
}

type Option func(*service)

// WithClock fixes the evaluation clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithPublisher enables loan.created events. A nil publisher is ignored.
func WithPublisher(pub EventPublisher) Option {
	return func(s *service) { s.pub = pub }
}

func NewService(customers CustomerReader, loans LoanStore, scorer *Scorer, logger *slog.Logger, opts ...Option) Service {
	if customers == nil || loans == nil {
		panic("credit service requires customer and loan stores")
	}
	if scorer == nil {
		scorer = NewScorer(DefaultScore)
	}

	s := &service{
		customers: customers,
		loans:     loans,
		scorer:    scorer,
		now:       time.Now,
		loc:       time.UTC,
		logger:    logger.With("component", "creditService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() time.Time {
	return s.now().In(s.loc)
}

// snapshot loads the customer and all of their loans. A nil customer with a
// nil error means the customer does not exist.
func (s *service) snapshot(ctx context.Context, customerID int64) (*customer.Customer, []loan.Loan, error) {
	cust, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, customer.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load customer %d: %w", customerID, err)
	}

	loans, err := s.loans.FindByCustomerID(ctx, customerID, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load loans for customer %d: %w", customerID, err)
	}
	return cust, loans, nil
}

func (s *service) CreditScore(ctx context.Context, customerID int64) (*ScoreReport, error) {
	logger := s.logger.With("customerID", customerID)

	cust, loans, err := s.snapshot(ctx, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load scoring snapshot", "error", err)
		return nil, err
	}
	if cust == nil {
		logger.WarnContext(ctx, "Customer not found for scoring")
		return nil, fmt.Errorf("%w: customer with ID %d not found", apperrors.ErrNotFound, customerID)
	}

	asOf := s.today()
	breakdown := s.scorer.Evaluate(ScoreInput{Customer: *cust, Loans: loans, AsOf: asOf})
	monitoring.RecordCreditScore(breakdown.Score)
	logger.InfoContext(ctx, "Computed credit score", "score", breakdown.Score, "loans", len(loans))

	return &ScoreReport{CustomerID: customerID, AsOf: asOf, Breakdown: breakdown}, nil
}

func (s *service) CheckEligibility(ctx context.Context, req EligibilityRequest) (EligibilityResult, error) {
	logger := s.logger.With("customerID", req.CustomerID)
	logger.InfoContext(ctx, "Checking loan eligibility", "amount", req.LoanAmount.String(), "tenure", req.Tenure)

	result, err := s.evaluate(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "Eligibility check failed", "error", err)
		return EligibilityResult{}, err
	}

	monitoring.RecordEligibilityDecision(result.Approval)
	logger.InfoContext(ctx, "Eligibility decided",
		"approval", result.Approval,
		"score", result.CreditScore,
		"correctedRate", result.CorrectedInterestRate.String(),
		"reasons", result.Reasons,
	)
	return result, nil
}

func (s *service) evaluate(ctx context.Context, req EligibilityRequest) (EligibilityResult, error) {
	if req.Tenure < loan.MinTenure || req.Tenure > loan.MaxTenure {
		return EligibilityResult{}, apperrors.NewValidationError("tenure", fmt.Sprintf("must be between %d and %d", loan.MinTenure, loan.MaxTenure))
	}

	cust, loans, err := s.snapshot(ctx, req.CustomerID)
	if err != nil {
		return EligibilityResult{}, err
	}
	if cust == nil {
		return NotFoundResult(req), nil
	}

	result, err := s.scorer.EvaluateEligibility(*cust, loans, req, s.today())
	if err != nil {
		return EligibilityResult{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidArgument, err)
	}
	return result, nil
}

func (s *service) CreateLoan(ctx context.Context, req EligibilityRequest) (LoanCreationResult, error) {
	logger := s.logger.With("customerID", req.CustomerID)
	logger.InfoContext(ctx, "Attempting to create loan", "amount", req.LoanAmount.String(), "tenure", req.Tenure)

	eligibility, err := s.evaluate(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "Eligibility check for loan creation failed", "error", err)
		return LoanCreationResult{}, err
	}
	monitoring.RecordEligibilityDecision(eligibility.Approval)

	result := LoanCreationResult{
		CustomerID:         req.CustomerID,
		MonthlyInstallment: eligibility.MonthlyInstallment,
		Eligibility:        eligibility,
	}

	if !eligibility.CustomerFound {
		logger.WarnContext(ctx, "Loan not created: customer not found")
		result.Message = MessageCustomerNotFound
		return result, nil
	}
	if !eligibility.Approval {
		logger.InfoContext(ctx, "Loan not created: not approved", "score", eligibility.CreditScore, "reasons", eligibility.Reasons)
		result.Message = MessageLoanNotApproved
		return result, nil
	}

	newLoan, err := loan.NewLoan(req.CustomerID, req.LoanAmount, eligibility.CorrectedInterestRate, req.Tenure, eligibility.MonthlyInstallment, s.today())
	if err != nil {
		logger.WarnContext(ctx, "Invalid loan parameters", "error", err)
		return LoanCreationResult{}, err
	}

	created, err := s.loans.CreateLoan(ctx, newLoan)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, "Customer disappeared before loan insert")
			result.Message = MessageCustomerNotFound
			return result, nil
		}
		logger.ErrorContext(ctx, "Failed to persist loan", "error", err)
		return LoanCreationResult{}, fmt.Errorf("failed to create loan for customer %d: %w", req.CustomerID, err)
	}

	monitoring.RecordLoanCreated()
	logger.InfoContext(ctx, "Loan created successfully", "loanID", created.ID, "monthlyRepayment", created.MonthlyRepayment.String())

	loanID := created.ID
	result.LoanID = &loanID
	result.LoanApproved = true
	result.Message = MessageLoanApproved
	result.MonthlyInstallment = created.MonthlyRepayment

	if s.pub != nil {
		event := LoanCreatedEvent{Timestamp: s.now(), Loan: *created, CreditScore: eligibility.CreditScore}
		if err := s.pub.PublishLoanCreated(ctx, event); err != nil {
			logger.WarnContext(ctx, "Failed to publish loan created event", "loanID", created.ID, "error", err)
		}
	}

	return result, nil
}
