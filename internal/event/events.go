package event

import (
	"context"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"time"

	"github.com/shopspring/decimal"
)

var (
	_ customer.EventPublisher = (*RabbitMQEventPublisher)(nil)
	_ credit.EventPublisher   = (*RabbitMQEventPublisher)(nil)
)

type CustomerRegisteredMessage struct {
	CustomerID    int64           `json:"customer_id"`
	Name          string          `json:"name"`
	PhoneNumber   int64           `json:"phone_number"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	Timestamp     time.Time       `json:"timestamp"`
}

type LoanCreatedMessage struct {
	LoanID             int64           `json:"loan_id"`
	CustomerID         int64           `json:"customer_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	Tenure             int             `json:"tenure"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	CreditScore        int             `json:"credit_score"`
	StartDate          string          `json:"start_date"`
	EndDate            string          `json:"end_date"`
	Timestamp          time.Time       `json:"timestamp"`
}

const dateLayout = "2006-01-02"

func (p *RabbitMQEventPublisher) PublishCustomerRegistered(ctx context.Context, evt customer.RegisteredEvent) error {
	msg := CustomerRegisteredMessage{
		CustomerID:    evt.Customer.CustomerID,
		Name:          evt.Customer.Name(),
		PhoneNumber:   evt.Customer.PhoneNumber,
		MonthlyIncome: evt.Customer.MonthlySalary,
		ApprovedLimit: evt.Customer.ApprovedLimit,
		Timestamp:     evt.Timestamp,
	}
	return p.publish(ctx, RoutingKeyCustomerRegistered, msg)
}

func (p *RabbitMQEventPublisher) PublishLoanCreated(ctx context.Context, evt credit.LoanCreatedEvent) error {
	msg := LoanCreatedMessage{
		LoanID:             evt.Loan.ID,
		CustomerID:         evt.Loan.CustomerID,
		LoanAmount:         evt.Loan.Amount,
		InterestRate:       evt.Loan.InterestRate,
		Tenure:             evt.Loan.Tenure,
		MonthlyInstallment: evt.Loan.MonthlyRepayment,
		CreditScore:        evt.CreditScore,
		StartDate:          evt.Loan.StartDate.Format(dateLayout),
		EndDate:            evt.Loan.EndDate.Format(dateLayout),
		Timestamp:          evt.Timestamp,
	}
	return p.publish(ctx, RoutingKeyLoanCreated, msg)
}
