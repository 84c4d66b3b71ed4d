package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// EligibilityEngine – domain service for application eligibility scoring
// ---------------------------------------------------------------------------

// Sub-score weights. Credit history dominates, collateral softens the rest.
const (
	weightCredit     = 0.5
	weightIncome     = 0.2
	weightDTI        = 0.2
	weightCollateral = 0.1

	// defaultCollateralScore applies when no collateral is supplied.
	defaultCollateralScore = 0.2
)

// Document status values stored on the application.
const (
	DocumentStatusComplete = "complete"
	DocumentStatusMissing  = "missing"
)

// EligibilityInput aggregates everything the scorer reads: borrower state,
// the outstanding balance across the borrower's active and defaulted loans,
// and the application under evaluation.
type EligibilityInput struct {
	MonthlyIncome    decimal.Decimal
	CreditScore      int
	KYCVerified      bool
	TotalOutstanding decimal.Decimal
	RequestedAmount  decimal.Decimal
	CollateralValue  decimal.Decimal
	HasCollateral    bool
}

// EligibilityResult is the full decision record.
type EligibilityResult struct {
	Status         valueobject.EligibilityStatus
	Score          int
	IncomeRatio    decimal.Decimal
	DebtToIncome   decimal.Decimal
	RiskTier       valueobject.RiskTier
	DocumentStatus string
	Recommendation string
}

var recommendations = map[string]string{
	"eligible":      "Applicant meets all automatic approval criteria. Proceed to approval.",
	"ineligible":    "Applicant does not meet minimum credit criteria. Recommend rejection.",
	"manual_review": "Applicant falls between automatic thresholds. Route to a loan officer for manual review.",
}

// EligibilityEngine scores loan applications against borrower aggregates.
type EligibilityEngine struct{}

// NewEligibilityEngine returns a new engine instance.
func NewEligibilityEngine() *EligibilityEngine {
	return &EligibilityEngine{}
}

// Evaluate computes the eligibility decision for an application.
//
// Four sub-scores are normalized to [0,1] and combined:
// credit (creditScore-300)/550, income 1-incomeRatio, DTI 1-debtToIncome,
// collateral collateralValue/requestedAmount (0.2 when absent). The weighted
// sum is scaled to 0-100 and rounded.
//
// Status is determined by two sequential checks with no early return: the
// eligible check runs first and the ineligible check can overwrite it, so
// ineligible wins when both conditions hold. This ordering is relied upon by
// downstream approval flows; keep it.
func (e *EligibilityEngine) Evaluate(in EligibilityInput) EligibilityResult {
	annualIncome := in.MonthlyIncome.InexactFloat64() * 12
	requested := in.RequestedAmount.InexactFloat64()
	outstanding := in.TotalOutstanding.InexactFloat64()

	incomeRatio := 1.0
	debtToIncome := 1.0
	if annualIncome > 0 {
		incomeRatio = finiteOrZero(requested / annualIncome)
		debtToIncome = finiteOrZero(outstanding / annualIncome)
	}

	creditScore := clampFloat((float64(in.CreditScore)-300)/550, 0, 1)
	incomeScore := clampFloat(1-incomeRatio, 0, 1)
	dtiScore := clampFloat(1-debtToIncome, 0, 1)

	collateralScore := defaultCollateralScore
	if in.HasCollateral && requested > 0 {
		collateralScore = clampFloat(finiteOrZero(in.CollateralValue.InexactFloat64()/requested), 0, 1)
	}

	weighted := 100 * (weightCredit*creditScore +
		weightIncome*incomeScore +
		weightDTI*dtiScore +
		weightCollateral*collateralScore)
	score := int(math.Round(clampFloat(weighted, 0, 100)))

	var tier valueobject.RiskTier
	switch {
	case score >= 75 && debtToIncome <= 0.5:
		tier = valueobject.RiskTierLow
	case score >= 55:
		tier = valueobject.RiskTierMedium
	default:
		tier = valueobject.RiskTierHigh
	}

	// Ordered assignment: eligible first, ineligible may overwrite.
	status := valueobject.EligibilityStatusManualReview
	if in.CreditScore >= 650 && debtToIncome <= 0.5 {
		status = valueobject.EligibilityStatusEligible
	}
	if in.CreditScore < 580 || debtToIncome > 0.7 {
		status = valueobject.EligibilityStatusIneligible
	}

	docStatus := DocumentStatusMissing
	if in.KYCVerified {
		docStatus = DocumentStatusComplete
	}

	return EligibilityResult{
		Status:         status,
		Score:          score,
		IncomeRatio:    decimal.NewFromFloat(incomeRatio).Round(4),
		DebtToIncome:   decimal.NewFromFloat(debtToIncome).Round(4),
		RiskTier:       tier,
		DocumentStatus: docStatus,
		Recommendation: recommendations[status.String()],
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
