package fees

import (
	"math"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// MonthlyFromBasis converts amount at basis into a monthly dollar figure.
// Headcounts are clamped at zero and floored. Unknown bases yield zero.
func MonthlyFromBasis(amount float64, basis RateBasis, employees, members float64) float64 {
	a := decimal.NewFromFloat(amount)
	switch basis {
	case BasisPMPM:
		return a.Mul(headcount(members)).InexactFloat64()
	case BasisPEPM:
		return a.Mul(headcount(employees)).InexactFloat64()
	case BasisMonthly:
		return a.InexactFloat64()
	case BasisAnnual:
		return a.Div(twelve).InexactFloat64()
	}
	return 0
}

func headcount(n float64) decimal.Decimal {
	if math.IsNaN(n) || n < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Floor(n))
}

// FixedTotal sums the monthly amount of every fee for one month. A nil
// enrollment counts as zero headcount.
func FixedTotal(fees []FeeItem, e *MonthlyEnrollment) float64 {
	var employees, members float64
	if e != nil {
		employees, members = float64(e.EmployeeCount), float64(e.MemberCount)
	}
	total := decimal.Zero
	for _, f := range fees {
		total = total.Add(decimal.NewFromFloat(MonthlyFromBasis(f.Amount, f.Basis, employees, members)))
	}
	return total.InexactFloat64()
}
