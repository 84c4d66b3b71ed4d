package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/credit-engine/internal/domain/service"
)

func TestComputeLateFee_OnTime(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	result := service.ComputeLateFee(
		due, due, 0,
		decimal.NewFromInt(2), decimal.NewFromInt(50),
		decimal.NewFromInt(5000),
	)

	assert.Equal(t, 0, result.DaysLate)
	assert.True(t, result.LateFee.IsZero())
}

func TestComputeLateFee_WithinGracePeriod(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := due.AddDate(0, 0, 3)

	result := service.ComputeLateFee(
		paid, due, 5,
		decimal.NewFromInt(2), decimal.NewFromInt(50),
		decimal.NewFromInt(5000),
	)

	assert.Equal(t, 0, result.DaysLate)
	assert.True(t, result.LateFee.IsZero())
}

func TestComputeLateFee_PastGrace(t *testing.T) {
	// 9 days past due with 5 grace days leaves 4 billable days:
	// 5000 * 2% * 4 + 50 = 450.00
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := due.AddDate(0, 0, 9)

	result := service.ComputeLateFee(
		paid, due, 5,
		decimal.NewFromInt(2), decimal.NewFromInt(50),
		decimal.NewFromInt(5000),
	)

	assert.Equal(t, 4, result.DaysLate)
	assert.True(t, result.LateFee.Equal(decimal.NewFromInt(450)),
		"late fee = %s", result.LateFee)
}

func TestComputeLateFee_PartialDayRoundsUp(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := due.AddDate(0, 0, 5).Add(time.Hour)

	result := service.ComputeLateFee(
		paid, due, 5,
		decimal.NewFromInt(1), decimal.Zero,
		decimal.NewFromInt(1000),
	)

	assert.Equal(t, 1, result.DaysLate)
	assert.True(t, result.LateFee.Equal(decimal.NewFromInt(10)))
}

func TestComputeLateFee_FlatOnly(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := due.AddDate(0, 0, 10)

	result := service.ComputeLateFee(
		paid, due, 0,
		decimal.Zero, decimal.NewFromInt(25),
		decimal.NewFromInt(5000),
	)

	assert.Equal(t, 10, result.DaysLate)
	assert.True(t, result.LateFee.Equal(decimal.NewFromInt(25)))
}

func TestComputeLateFee_ZeroRatesDaysLateOnly(t *testing.T) {
	// The delinquency sweep calls this with zero rates purely for DaysLate.
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 0, 186)

	result := service.ComputeLateFee(now, due, 5, decimal.Zero, decimal.Zero, decimal.Zero)

	assert.Equal(t, 181, result.DaysLate)
	assert.True(t, result.LateFee.IsZero())
}
