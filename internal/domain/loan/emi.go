package loan

import (
	"github.com/shopspring/decimal"
)

// MaxTenureMonths caps the tenure at 50 years.
const MaxTenureMonths = 600

// growthPrecision bounds the digits kept while raising (1+r) to the tenure.
const growthPrecision = 24

var (
	one         = decimal.NewFromInt(1)
	monthlyBase = decimal.NewFromInt(1200) // 12 months * 100 percent
)

type EMI struct {
	Amount decimal.Decimal `json:"emi"`
	Total  decimal.Decimal `json:"total"`
}

// ComputeEMI returns the equated monthly installment for the given terms,
// rounded to 2 decimals, and total = EMI * tenure.
//
//	r   = annualRatePercent / 12 / 100
//	EMI = P * r * (1+r)^N / ((1+r)^N - 1)
//
// Zero or negative inputs are rejected rather than special-cased.
func ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) (EMI, error) {
	if !principal.IsPositive() || !annualRatePercent.IsPositive() ||
		tenureMonths <= 0 || tenureMonths > MaxTenureMonths {
		return EMI{}, ErrInvalidTerms
	}
	r := monthlyRate(annualRatePercent)
	g := growth(r, tenureMonths)

	emi := principal.Mul(r).Mul(g).Div(g.Sub(one)).Round(2)
	return EMI{
		Amount: emi,
		Total:  emi.Mul(decimal.NewFromInt(int64(tenureMonths))),
	}, nil
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(monthlyBase)
}

// growth computes (1+r)^n by squaring, truncating every step so the result
// is identical across calls and platforms.
func growth(r decimal.Decimal, n int) decimal.Decimal {
	base := one.Add(r)
	out := one
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			out = out.Mul(base).Truncate(growthPrecision)
		}
		base = base.Mul(base).Truncate(growthPrecision)
	}
	return out
}
