package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LateFeeResult is the output of the late-fee calculator.
type LateFeeResult struct {
	LateFee  decimal.Decimal
	DaysLate int
}

// ComputeLateFee determines how late a payment is relative to its due date
// plus grace period, and the penalty owed. Pure function.
//
//	effectiveDue = dueDate + gracePeriodDays
//	daysLate     = max(0, ceil((paymentDate - effectiveDue) / 24h))
//	lateFee      = max(0, baseAmount * penaltyRatePercent/100 * daysLate + penaltyFlat)
//
// A payment on or before the effective due date carries no fee. The fee is
// rounded to 2 decimal places.
func ComputeLateFee(
	paymentDate, dueDate time.Time,
	gracePeriodDays int,
	penaltyRatePercent, penaltyFlat decimal.Decimal,
	baseAmount decimal.Decimal,
) LateFeeResult {
	effectiveDue := dueDate.AddDate(0, 0, gracePeriodDays)

	delta := paymentDate.Sub(effectiveDue)
	daysLate := int(math.Ceil(delta.Hours() / 24))
	if daysLate < 0 {
		daysLate = 0
	}
	if daysLate == 0 {
		return LateFeeResult{LateFee: decimal.Zero, DaysLate: 0}
	}

	fee := baseAmount.
		Mul(penaltyRatePercent).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(daysLate))).
		Add(penaltyFlat)
	if fee.LessThan(decimal.Zero) {
		fee = decimal.Zero
	}

	return LateFeeResult{LateFee: fee.Round(2), DaysLate: daysLate}
}
