package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

func TestEligibilityEngine_Eligible(t *testing.T) {
	engine := service.NewEligibilityEngine()

	result := engine.Evaluate(service.EligibilityInput{
		MonthlyIncome:    decimal.NewFromInt(5000),
		CreditScore:      720,
		KYCVerified:      true,
		TotalOutstanding: decimal.Zero,
		RequestedAmount:  decimal.NewFromInt(20000),
	})

	assert.True(t, result.Status.Equal(valueobject.EligibilityStatusEligible))
	assert.Equal(t, 74, result.Score)
	assert.True(t, result.RiskTier.Equal(valueobject.RiskTierMedium))
	assert.Equal(t, service.DocumentStatusComplete, result.DocumentStatus)
	assert.True(t, result.IncomeRatio.Equal(decimal.NewFromFloat(0.3333)),
		"income ratio = %s", result.IncomeRatio)
	assert.True(t, result.DebtToIncome.IsZero())
	assert.NotEmpty(t, result.Recommendation)
}

func TestEligibilityEngine_IneligibleLowCreditScore(t *testing.T) {
	engine := service.NewEligibilityEngine()

	result := engine.Evaluate(service.EligibilityInput{
		MonthlyIncome:   decimal.NewFromInt(5000),
		CreditScore:     560,
		KYCVerified:     true,
		RequestedAmount: decimal.NewFromInt(20000),
	})

	assert.True(t, result.Status.Equal(valueobject.EligibilityStatusIneligible))
}

func TestEligibilityEngine_HighDTIOverridesGoodScore(t *testing.T) {
	// Credit score clears the eligible bar but DTI 0.75 crosses the
	// ineligible bar; the later check must win.
	engine := service.NewEligibilityEngine()

	result := engine.Evaluate(service.EligibilityInput{
		MonthlyIncome:    decimal.NewFromInt(5000),
		CreditScore:      700,
		KYCVerified:      true,
		TotalOutstanding: decimal.NewFromInt(45000),
		RequestedAmount:  decimal.NewFromInt(10000),
	})

	assert.True(t, result.DebtToIncome.Equal(decimal.NewFromFloat(0.75)))
	assert.True(t, result.Status.Equal(valueobject.EligibilityStatusIneligible))
}

func TestEligibilityEngine_ManualReviewBetweenThresholds(t *testing.T) {
	// Score 600 is below the eligible bar but above the ineligible bar,
	// DTI 0.6 likewise: neither rule fires.
	engine := service.NewEligibilityEngine()

	result := engine.Evaluate(service.EligibilityInput{
		MonthlyIncome:    decimal.NewFromInt(5000),
		CreditScore:      600,
		KYCVerified:      false,
		TotalOutstanding: decimal.NewFromInt(36000),
		RequestedAmount:  decimal.NewFromInt(10000),
	})

	assert.True(t, result.Status.Equal(valueobject.EligibilityStatusManualReview))
	assert.Equal(t, service.DocumentStatusMissing, result.DocumentStatus)
}

func TestEligibilityEngine_CollateralRaisesScore(t *testing.T) {
	engine := service.NewEligibilityEngine()
	base := service.EligibilityInput{
		MonthlyIncome:   decimal.NewFromInt(5000),
		CreditScore:     680,
		KYCVerified:     true,
		RequestedAmount: decimal.NewFromInt(20000),
	}

	without := engine.Evaluate(base)

	withCollateral := base
	withCollateral.HasCollateral = true
	withCollateral.CollateralValue = decimal.NewFromInt(20000)
	with := engine.Evaluate(withCollateral)

	assert.Greater(t, with.Score, without.Score)
}

func TestEligibilityEngine_ZeroIncome(t *testing.T) {
	engine := service.NewEligibilityEngine()

	result := engine.Evaluate(service.EligibilityInput{
		MonthlyIncome:   decimal.Zero,
		CreditScore:     720,
		RequestedAmount: decimal.NewFromInt(10000),
	})

	// No income means both ratios default to the worst case.
	assert.True(t, result.IncomeRatio.Equal(decimal.NewFromInt(1)))
	assert.True(t, result.DebtToIncome.Equal(decimal.NewFromInt(1)))
	assert.True(t, result.Status.Equal(valueobject.EligibilityStatusIneligible))
}

func TestEligibilityEngine_HighRiskTier(t *testing.T) {
	engine := service.NewEligibilityEngine()

	result := engine.Evaluate(service.EligibilityInput{
		MonthlyIncome:    decimal.NewFromInt(1000),
		CreditScore:      560,
		TotalOutstanding: decimal.NewFromInt(10000),
		RequestedAmount:  decimal.NewFromInt(50000),
	})

	assert.True(t, result.RiskTier.Equal(valueobject.RiskTierHigh))
	assert.True(t, result.Status.Equal(valueobject.EligibilityStatusIneligible))
}
