package customer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	limitMultiplier = decimal.NewFromInt(36)
	limitRoundUnit  = decimal.NewFromInt(100_000)
)

type Customer struct {
	CustomerID    int64           `json:"customerId"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Age           int             `json:"age"`
	PhoneNumber   int64           `json:"phoneNumber"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	ApprovedLimit decimal.Decimal `json:"approvedLimit"`
	CurrentDebt   decimal.Decimal `json:"currentDebt"`
	CreateDate    time.Time       `json:"createDate"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewCustomer builds a customer at registration time. The approved limit is
// derived here once and never recomputed.
func NewCustomer(firstName, lastName string, age int, phoneNumber int64, monthlySalary decimal.Decimal) *Customer {
	now := time.Now()
	return &Customer{
		FirstName:     firstName,
		LastName:      lastName,
		Age:           age,
		PhoneNumber:   phoneNumber,
		MonthlySalary: monthlySalary,
		ApprovedLimit: ApprovedLimitFor(monthlySalary),
		CurrentDebt:   decimal.Zero,
		CreateDate:    now,
		UpdatedAt:     now,
	}
}

// ApprovedLimitFor returns 36 months of income rounded to the nearest lakh
// (100,000). Ties round half to even.
func ApprovedLimitFor(monthlySalary decimal.Decimal) decimal.Decimal {
	lakhs := monthlySalary.Mul(limitMultiplier).Div(limitRoundUnit).RoundBank(0)
	return lakhs.Mul(limitRoundUnit)
}

func (c *Customer) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
