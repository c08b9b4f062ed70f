package customer

import (
	"context"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const customerNotFound = "Customer not found by repository"

type CustomerService interface {
	RegisterCustomer(ctx context.Context, req Registration) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
}

// Registration carries already validated registration input.
type Registration struct {
	FirstName     string
	LastName      string
	Age           int
	PhoneNumber   int64
	MonthlySalary decimal.Decimal
}

// RegisteredEvent is emitted after a customer is persisted.
type RegisteredEvent struct {
	Timestamp time.Time
	Customer  Customer
}

// EventPublisher is satisfied by the event package. Publishing is best-effort.
type EventPublisher interface {
	PublishCustomerRegistered(ctx context.Context, event RegisteredEvent) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, pub EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) RegisterCustomer(ctx context.Context, req Registration) (*Customer, error) {
	logger := s.logger.With(slog.Int64("phone_number", req.PhoneNumber))
	logger.InfoContext(ctx, "Attempting to register new customer")

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" {
		logger.WarnContext(ctx, "Validation failed: first name is empty")
		return nil, apperrors.NewValidationError("first_name", "cannot be empty")
	}
	if !req.MonthlySalary.IsPositive() {
		logger.WarnContext(ctx, "Validation failed: monthly income must be positive")
		return nil, apperrors.NewValidationError("monthly_income", "must be greater than zero")
	}

	cust := NewCustomer(firstName, lastName, req.Age, req.PhoneNumber, req.MonthlySalary)
	logger.InfoContext(ctx, "Customer domain object created", slog.String("approved_limit", cust.ApprovedLimit.String()))

	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, ErrDuplicatePhoneNumber) || errors.Is(err, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Phone number already registered")
			return nil, fmt.Errorf("%w: %w", apperrors.ErrAlreadyExists, ErrDuplicatePhoneNumber)
		}
		logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}
	logger = logger.With(slog.Int64("customerID", cust.CustomerID))
	monitoring.RecordCustomerRegistered()

	if s.pub != nil {
		evt := RegisteredEvent{Timestamp: time.Now(), Customer: *cust}
		if pubErr := s.pub.PublishCustomerRegistered(ctx, evt); pubErr != nil {
			logger.ErrorContext(ctx, "Customer registered, but FAILED to publish registration event", slog.Any("error", pubErr))
		}
	}

	logger.InfoContext(ctx, "Successfully registered new customer")
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", customerID))
	logger.DebugContext(ctx, "Attempting to get customer by ID")

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, fmt.Errorf("%w: %w", apperrors.ErrNotFound, ErrNotFound)
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}
