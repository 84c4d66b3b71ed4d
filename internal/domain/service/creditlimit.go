package service

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CreditLimitCalculator – tiered available-credit ceiling
// ---------------------------------------------------------------------------

// CreditLimitResult reports the borrower's ceiling and remaining headroom.
type CreditLimitResult struct {
	MaxCredit        decimal.Decimal `json:"max_credit"`
	AvailableCredit  decimal.Decimal `json:"available_credit"`
	IncomeMultiplier decimal.Decimal `json:"income_multiplier"`
}

// CreditLimitCalculator computes the credit ceiling from income, expenses
// and repayment tenure. Each fully repaid loan raises the income multiplier
// one step, capped at MaxMultiplier.
type CreditLimitCalculator struct {
	BaseMultiplier       decimal.Decimal
	StepMultiplier       decimal.Decimal
	MaxMultiplier        decimal.Decimal
	DisposableMultiplier decimal.Decimal
}

// NewCreditLimitCalculator returns a calculator with the platform defaults:
// 3x monthly income base, +0.5x per completed loan up to 6x, and 12x
// disposable income.
func NewCreditLimitCalculator() *CreditLimitCalculator {
	return &CreditLimitCalculator{
		BaseMultiplier:       decimal.NewFromInt(3),
		StepMultiplier:       decimal.NewFromFloat(0.5),
		MaxMultiplier:        decimal.NewFromInt(6),
		DisposableMultiplier: decimal.NewFromInt(12),
	}
}

// Compute derives the available credit:
//
//	disposable = max(0, monthlyIncome - monthlyExpenses)
//	multiplier = clamp(base + completedLoans*step, base, max)
//	maxCredit  = min(monthlyIncome*multiplier, disposable*disposableMultiplier)
//	available  = max(0, maxCredit - totalOutstanding)
func (c *CreditLimitCalculator) Compute(
	monthlyIncome, monthlyExpenses decimal.Decimal,
	completedLoanCount int,
	totalOutstanding decimal.Decimal,
) CreditLimitResult {
	if monthlyIncome.LessThan(decimal.Zero) {
		monthlyIncome = decimal.Zero
	}
	if monthlyExpenses.LessThan(decimal.Zero) {
		monthlyExpenses = decimal.Zero
	}

	disposable := monthlyIncome.Sub(monthlyExpenses)
	if disposable.LessThan(decimal.Zero) {
		disposable = decimal.Zero
	}

	multiplier := c.BaseMultiplier.Add(
		c.StepMultiplier.Mul(decimal.NewFromInt(int64(completedLoanCount))),
	)
	if multiplier.LessThan(c.BaseMultiplier) {
		multiplier = c.BaseMultiplier
	}
	if multiplier.GreaterThan(c.MaxMultiplier) {
		multiplier = c.MaxMultiplier
	}

	capByIncome := monthlyIncome.Mul(multiplier)
	capByDisposable := disposable.Mul(c.DisposableMultiplier)

	maxCredit := capByIncome
	if capByDisposable.LessThan(maxCredit) {
		maxCredit = capByDisposable
	}

	available := maxCredit.Sub(totalOutstanding)
	if available.LessThan(decimal.Zero) {
		available = decimal.Zero
	}

	return CreditLimitResult{
		MaxCredit:        maxCredit.Round(2),
		AvailableCredit:  available.Round(2),
		IncomeMultiplier: multiplier,
	}
}
