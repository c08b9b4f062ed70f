package credit

import (
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/domain/loan"
	"time"

	"github.com/shopspring/decimal"
)

var asOf = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testCustomer earns 50000 a month, which gives an approved limit of 1800000.
func testCustomer() customer.Customer {
	return customer.Customer{
		CustomerID:    7,
		FirstName:     "Ada",
		LastName:      "Obi",
		Age:           34,
		PhoneNumber:   9876543210,
		MonthlySalary: dec("50000"),
		ApprovedLimit: dec("1800000"),
		CurrentDebt:   decimal.Zero,
	}
}

// closedLoan is a fully repaid loan that ended years before asOf.
func closedLoan(amount string) loan.Loan {
	return loan.Loan{
		ID:               1,
		CustomerID:       7,
		Amount:           dec(amount),
		InterestRate:     dec("10"),
		Tenure:           12,
		MonthlyRepayment: dec("1000"),
		EMIsPaidOnTime:   12,
		StartDate:        day(2019, time.January, 1),
		EndDate:          day(2020, time.January, 1),
	}
}

func activeLoan(amount, repayment string) loan.Loan {
	return loan.Loan{
		ID:               2,
		CustomerID:       7,
		Amount:           dec(amount),
		InterestRate:     dec("10"),
		Tenure:           12,
		MonthlyRepayment: dec(repayment),
		EMIsPaidOnTime:   10,
		StartDate:        day(2026, time.February, 1),
		EndDate:          day(2027, time.February, 1),
	}
}

func loansStartedOn(n int, start time.Time) []loan.Loan {
	loans := make([]loan.Loan, n)
	for i := range loans {
		loans[i] = loan.Loan{
			ID:               int64(i + 1),
			Amount:           dec("1000"),
			Tenure:           12,
			MonthlyRepayment: dec("100"),
			StartDate:        start,
			EndDate:          start.AddDate(1, 0, 0),
		}
	}
	return loans
}
