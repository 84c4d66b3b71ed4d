package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// LoanTotals is the output of the amortization calculator.
type LoanTotals struct {
	MonthlyPayment decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ComputeTotals derives the monthly payment and total payable for a loan.
// It is a pure function with no I/O.
//
// Simple interest:
//
//	total   = principal * (1 + rate/100 * termMonths/12)
//	monthly = total / termMonths
//
// Compound interest (the default) uses standard amortization with monthly
// rate r = rate/100/12:
//
//	monthly = P * r * (1+r)^n / ((1+r)^n - 1)
//	total   = monthly * n
//
// termMonths is floored to 1. A non-positive principal or a non-finite rate
// yields zero totals rather than an error; malformed numeric input is
// substituted, not rejected. Results are rounded to 2 decimal places.
func ComputeTotals(
	principal decimal.Decimal,
	annualRatePercent float64,
	termMonths int,
	interestType valueobject.InterestType,
) LoanTotals {
	if termMonths < 1 {
		termMonths = 1
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return LoanTotals{MonthlyPayment: decimal.Zero, TotalAmount: decimal.Zero}
	}
	if math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) || annualRatePercent < 0 {
		annualRatePercent = 0
	}

	term := decimal.NewFromInt(int64(termMonths))

	if interestType.IsSimple() {
		// total = P * (1 + rate/100 * term/12)
		rate := decimal.NewFromFloat(annualRatePercent).Div(decimal.NewFromInt(100))
		years := term.Div(decimal.NewFromInt(12))
		total := principal.Mul(decimal.NewFromInt(1).Add(rate.Mul(years))).Round(2)
		monthly := total.Div(term).Round(2)
		return LoanTotals{MonthlyPayment: monthly, TotalAmount: total}
	}

	monthlyRate := annualRatePercent / 100.0 / 12.0
	if monthlyRate == 0 {
		monthly := principal.Div(term).Round(2)
		return LoanTotals{MonthlyPayment: monthly, TotalAmount: principal.Round(2)}
	}

	// The power term needs float64; everything monetary stays decimal.
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	paymentFloat := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	monthly := decimal.NewFromFloat(paymentFloat).Round(2)
	total := monthly.Mul(term)

	return LoanTotals{MonthlyPayment: monthly, TotalAmount: total}
}
