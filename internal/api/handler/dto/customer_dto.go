package dto

import (
	"credit-engine/internal/domain/customer"
	"strings"

	"github.com/shopspring/decimal"
)

type RegisterCustomerRequest struct {
	FirstName     string          `json:"first_name" validate:"required,max=100"`
	LastName      string          `json:"last_name" validate:"required,max=100"`
	Age           int             `json:"age" validate:"gt=0,lte=150"`
	MonthlyIncome decimal.Decimal `json:"monthly_income" validate:"positive,max_digits=12,max_places=2"`
	PhoneNumber   int64           `json:"phone_number" validate:"gt=0"`
}

func (r *RegisterCustomerRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return structValidate(r)
}

func (r *RegisterCustomerRequest) ToRegistration() customer.Registration {
	return customer.Registration{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Age:           r.Age,
		PhoneNumber:   r.PhoneNumber,
		MonthlySalary: r.MonthlyIncome,
	}
}

type CustomerResponse struct {
	CustomerID    int64  `json:"customer_id"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	MonthlyIncome string `json:"monthly_income"`
	ApprovedLimit string `json:"approved_limit"`
	PhoneNumber   int64  `json:"phone_number"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		CustomerID:    cust.CustomerID,
		Name:          cust.Name(),
		Age:           cust.Age,
		MonthlyIncome: money(cust.MonthlySalary),
		ApprovedLimit: money(cust.ApprovedLimit),
		PhoneNumber:   cust.PhoneNumber,
	}
}

// CustomerSummary is the customer block embedded in the loan detail view.
type CustomerSummary struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber int64  `json:"phone_number"`
	Age         int    `json:"age"`
}

func NewCustomerSummary(cust customer.Customer) CustomerSummary {
	return CustomerSummary{
		ID:          cust.CustomerID,
		FirstName:   cust.FirstName,
		LastName:    cust.LastName,
		PhoneNumber: cust.PhoneNumber,
		Age:         cust.Age,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
