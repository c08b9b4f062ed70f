package credit

import "github.com/shopspring/decimal"

// Band groups scores that share a rate floor and approval policy.
type Band int

const (
	BandIneligible Band = iota // score <= 10
	BandPoor                   // 10 < score <= 30
	BandFair                   // 30 < score <= 50
	BandGood                   // score > 50
)

var (
	FairRateFloor = decimal.NewFromInt(12)
	PoorRateFloor = decimal.NewFromInt(16)
)

func BandFor(score int) Band {
	switch {
	case score > 50:
		return BandGood
	case score > 30:
		return BandFair
	case score > 10:
		return BandPoor
	default:
		return BandIneligible
	}
}

func (b Band) String() string {
	switch b {
	case BandGood:
		return "good"
	case BandFair:
		return "fair"
	case BandPoor:
		return "poor"
	default:
		return "ineligible"
	}
}

// RateFloor is the minimum rate charged in the band. The ok result is false
// for bands without a floor.
func (b Band) RateFloor() (decimal.Decimal, bool) {
	switch b {
	case BandFair:
		return FairRateFloor, true
	case BandPoor:
		return PoorRateFloor, true
	default:
		return decimal.Zero, false
	}
}

// CorrectRate raises the requested rate to the band's floor. Ineligible
// scores keep the requested rate since the loan is rejected anyway.
func CorrectRate(score int, requested decimal.Decimal) decimal.Decimal {
	floor, ok := BandFor(score).RateFloor()
	if !ok {
		return requested
	}
	return decimal.Max(requested, floor)
}
