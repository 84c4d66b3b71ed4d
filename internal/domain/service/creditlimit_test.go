package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/credit-engine/internal/domain/service"
)

func TestCreditLimitCalculator_BaseMultiplier(t *testing.T) {
	calc := service.NewCreditLimitCalculator()

	result := calc.Compute(
		decimal.NewFromInt(10000), decimal.NewFromInt(4000), 0, decimal.Zero,
	)

	assert.True(t, result.MaxCredit.Equal(decimal.NewFromInt(30000)),
		"max credit = %s", result.MaxCredit)
	assert.True(t, result.AvailableCredit.Equal(decimal.NewFromInt(30000)))
	assert.True(t, result.IncomeMultiplier.Equal(decimal.NewFromInt(3)))
}

func TestCreditLimitCalculator_CompletedLoansRaiseMultiplier(t *testing.T) {
	calc := service.NewCreditLimitCalculator()

	result := calc.Compute(
		decimal.NewFromInt(10000), decimal.NewFromInt(4000), 2, decimal.NewFromInt(5000),
	)

	// 3 + 2*0.5 = 4x income, minus 5000 outstanding.
	assert.True(t, result.IncomeMultiplier.Equal(decimal.NewFromInt(4)))
	assert.True(t, result.MaxCredit.Equal(decimal.NewFromInt(40000)))
	assert.True(t, result.AvailableCredit.Equal(decimal.NewFromInt(35000)))
}

func TestCreditLimitCalculator_MultiplierCapped(t *testing.T) {
	calc := service.NewCreditLimitCalculator()

	result := calc.Compute(
		decimal.NewFromInt(10000), decimal.NewFromInt(4000), 10, decimal.Zero,
	)

	assert.True(t, result.IncomeMultiplier.Equal(decimal.NewFromInt(6)))
	assert.True(t, result.MaxCredit.Equal(decimal.NewFromInt(60000)))
}

func TestCreditLimitCalculator_DisposableIncomeBinds(t *testing.T) {
	// Disposable income of 500 caps the limit at 6000, well under the
	// 30000 income cap.
	calc := service.NewCreditLimitCalculator()

	result := calc.Compute(
		decimal.NewFromInt(10000), decimal.NewFromInt(9500), 0, decimal.Zero,
	)

	assert.True(t, result.MaxCredit.Equal(decimal.NewFromInt(6000)),
		"max credit = %s", result.MaxCredit)
}

func TestCreditLimitCalculator_AvailableFlooredAtZero(t *testing.T) {
	calc := service.NewCreditLimitCalculator()

	result := calc.Compute(
		decimal.NewFromInt(10000), decimal.NewFromInt(4000), 0, decimal.NewFromInt(50000),
	)

	assert.True(t, result.AvailableCredit.IsZero())
}

func TestCreditLimitCalculator_NegativeInputsClamped(t *testing.T) {
	calc := service.NewCreditLimitCalculator()

	result := calc.Compute(
		decimal.NewFromInt(-1000), decimal.NewFromInt(-500), 0, decimal.Zero,
	)

	assert.True(t, result.MaxCredit.IsZero())
	assert.True(t, result.AvailableCredit.IsZero())
}
