package credit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallment_Amortised(t *testing.T) {
	got, err := Installment(dec("100000"), dec("12"), 12)

	require.NoError(t, err)
	assert.Equal(t, "8884.88", got.StringFixed(2))
}

func TestInstallment_ZeroRateSplitsEvenly(t *testing.T) {
	got, err := Installment(dec("120000"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("10000")))

	odd, err := Installment(dec("1000000"), decimal.Zero, 7)
	require.NoError(t, err)
	assert.True(t, odd.Equal(dec("1000000").Div(decimal.NewFromInt(7))))
}

func TestInstallment_InvalidTenure(t *testing.T) {
	for _, tenure := range []int{0, -1} {
		_, err := Installment(dec("1000"), dec("10"), tenure)
		assert.ErrorIs(t, err, ErrInvalidTenure)
	}
}

func TestInstallment_RepaysAtLeastPrincipal(t *testing.T) {
	principal := dec("250000")
	for _, tenure := range []int{1, 6, 36, 120, 600} {
		for _, rate := range []string{"0.5", "8", "16", "35"} {
			emi, err := Installment(principal, dec(rate), tenure)
			require.NoError(t, err)
			total := emi.Mul(decimal.NewFromInt(int64(tenure)))
			assert.True(t, total.GreaterThanOrEqual(principal), "tenure=%d rate=%s total=%s", tenure, rate, total)
		}
	}
}

func TestInstallment_LongTenureStaysFinite(t *testing.T) {
	emi, err := Installment(dec("100000"), dec("10"), 600)

	require.NoError(t, err)
	// just above the pure interest of 833.33 per month
	assert.True(t, emi.GreaterThan(dec("833.33")), "got %s", emi)
	assert.True(t, emi.LessThan(dec("840")), "got %s", emi)
}

func TestInstallment_SinglePeriod(t *testing.T) {
	emi, err := Installment(dec("1200"), dec("12"), 1)

	require.NoError(t, err)
	assert.Equal(t, "1212.00", emi.StringFixed(2))
}
