package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// InterestType – immutable value object
// ---------------------------------------------------------------------------

// InterestType selects the interest model used for amortization.
type InterestType struct {
	value string
}

const (
	interestTypeSimple   = "simple"
	interestTypeCompound = "compound"
)

var (
	InterestTypeSimple   = InterestType{value: interestTypeSimple}
	InterestTypeCompound = InterestType{value: interestTypeCompound}
)

// NewInterestType creates an InterestType from a raw string. An empty or
// unknown string falls back to compound, the platform default.
func NewInterestType(s string) InterestType {
	if s == interestTypeSimple {
		return InterestTypeSimple
	}
	return InterestTypeCompound
}

// String returns the string representation.
func (t InterestType) String() string {
	if t.value == "" {
		return interestTypeCompound
	}
	return t.value
}

// IsSimple reports whether simple interest applies.
func (t InterestType) IsSimple() bool { return t.value == interestTypeSimple }

// Equal returns true when both types match.
func (t InterestType) Equal(other InterestType) bool { return t.String() == other.String() }

// ---------------------------------------------------------------------------
// RiskTier – immutable value object
// ---------------------------------------------------------------------------

// RiskTier is the coarse risk bucket derived from the eligibility score.
type RiskTier struct {
	value string
}

const (
	riskTierLow    = "low"
	riskTierMedium = "medium"
	riskTierHigh   = "high"
)

var (
	RiskTierLow    = RiskTier{value: riskTierLow}
	RiskTierMedium = RiskTier{value: riskTierMedium}
	RiskTierHigh   = RiskTier{value: riskTierHigh}
)

var validRiskTiers = map[string]RiskTier{
	riskTierLow:    RiskTierLow,
	riskTierMedium: RiskTierMedium,
	riskTierHigh:   RiskTierHigh,
}

// NewRiskTier creates a RiskTier from a raw string.
func NewRiskTier(s string) (RiskTier, error) {
	v, ok := validRiskTiers[s]
	if !ok {
		return RiskTier{}, fmt.Errorf("invalid risk tier: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (t RiskTier) String() string { return t.value }

// IsZero returns true when not initialised.
func (t RiskTier) IsZero() bool { return t.value == "" }

// Equal returns true when both tiers match.
func (t RiskTier) Equal(other RiskTier) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// EligibilityStatus – immutable value object
// ---------------------------------------------------------------------------

// EligibilityStatus is the outcome of the eligibility evaluation.
type EligibilityStatus struct {
	value string
}

const (
	eligibilityEligible     = "eligible"
	eligibilityIneligible   = "ineligible"
	eligibilityManualReview = "manual_review"
)

var (
	EligibilityStatusEligible     = EligibilityStatus{value: eligibilityEligible}
	EligibilityStatusIneligible   = EligibilityStatus{value: eligibilityIneligible}
	EligibilityStatusManualReview = EligibilityStatus{value: eligibilityManualReview}
)

var validEligibilityStatuses = map[string]EligibilityStatus{
	eligibilityEligible:     EligibilityStatusEligible,
	eligibilityIneligible:   EligibilityStatusIneligible,
	eligibilityManualReview: EligibilityStatusManualReview,
}

// NewEligibilityStatus creates an EligibilityStatus from a raw string.
func NewEligibilityStatus(s string) (EligibilityStatus, error) {
	v, ok := validEligibilityStatuses[s]
	if !ok {
		return EligibilityStatus{}, fmt.Errorf("invalid eligibility status: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (s EligibilityStatus) String() string { return s.value }

// IsZero returns true when not initialised.
func (s EligibilityStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses match.
func (s EligibilityStatus) Equal(other EligibilityStatus) bool { return s.value == other.value }
