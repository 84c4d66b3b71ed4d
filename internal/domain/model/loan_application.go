package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/event"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root (Loan Origination)
// ---------------------------------------------------------------------------

// EligibilityOutcome captures the result of an eligibility evaluation as
// stored on the application.
type EligibilityOutcome struct {
	Status         valueobject.EligibilityStatus
	Score          int
	IncomeRatio    decimal.Decimal
	DebtToIncome   decimal.Decimal
	RiskTier       valueobject.RiskTier
	DocumentStatus string
	Recommendation string
}

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
type LoanApplication struct {
	id                  string
	borrowerID          string
	requestedAmount     decimal.Decimal
	collateralValue     decimal.Decimal
	hasCollateral       bool
	purpose             string
	creditScore         int
	eligibility         EligibilityOutcome
	interestRatePercent decimal.Decimal
	interestType        valueobject.InterestType
	termMonths          int
	gracePeriodDays     int
	penaltyRatePercent  decimal.Decimal
	penaltyFlat         decimal.Decimal
	status              valueobject.ApplicationStatus
	version             int
	createdAt           time.Time
	updatedAt           time.Time
	domainEvents        []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanApplication creates a brand-new application in pending status with
// the borrower's credit score snapshotted at submission time.
func NewLoanApplication(
	borrowerID string,
	requestedAmount decimal.Decimal,
	collateralValue decimal.Decimal,
	hasCollateral bool,
	purpose string,
	creditScoreSnapshot int,
	terms LoanTerms,
	now time.Time,
) (LoanApplication, error) {
	if borrowerID == "" {
		return LoanApplication{}, errors.New("borrower ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, errors.New("requested amount must be positive")
	}
	if terms.TermMonths <= 0 {
		return LoanApplication{}, errors.New("term months must be positive")
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:                  id,
		borrowerID:          borrowerID,
		requestedAmount:     requestedAmount,
		collateralValue:     collateralValue,
		hasCollateral:       hasCollateral,
		purpose:             purpose,
		creditScore:         creditScoreSnapshot,
		interestRatePercent: terms.InterestRatePercent,
		interestType:        terms.InterestType,
		termMonths:          terms.TermMonths,
		gracePeriodDays:     terms.GracePeriodDays,
		penaltyRatePercent:  terms.PenaltyRatePercent,
		penaltyFlat:         terms.PenaltyFlat,
		status:              valueobject.ApplicationStatusPending,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}

	app.domainEvents = append(app.domainEvents, event.NewApplicationSubmitted(
		id, borrowerID, requestedAmount, terms.TermMonths, purpose,
	))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without
// side effects.
func ReconstructLoanApplication(
	id, borrowerID string,
	requestedAmount, collateralValue decimal.Decimal,
	hasCollateral bool,
	purpose string,
	creditScore int,
	eligibility EligibilityOutcome,
	terms LoanTerms,
	status valueobject.ApplicationStatus,
	version int,
	createdAt, updatedAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:                  id,
		borrowerID:          borrowerID,
		requestedAmount:     requestedAmount,
		collateralValue:     collateralValue,
		hasCollateral:       hasCollateral,
		purpose:             purpose,
		creditScore:         creditScore,
		eligibility:         eligibility,
		interestRatePercent: terms.InterestRatePercent,
		interestType:        terms.InterestType,
		termMonths:          terms.TermMonths,
		gracePeriodDays:     terms.GracePeriodDays,
		penaltyRatePercent:  terms.PenaltyRatePercent,
		penaltyFlat:         terms.PenaltyFlat,
		status:              status,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// ApplyEvaluation records an eligibility outcome on an open application.
// Terminal applications (disbursed, rejected) keep their stored outcome.
func (a LoanApplication) ApplyEvaluation(outcome EligibilityOutcome, creditScore int, now time.Time) (LoanApplication, error) {
	if a.status.IsTerminal() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.eligibility = outcome
	next.creditScore = creditScore
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewApplicationEvaluated(
		a.id, a.borrowerID, outcome.Status.String(), outcome.Score, outcome.RiskTier.String(),
	))
	return next, nil
}

// SubmitForReview transitions pending -> under_review.
func (a LoanApplication) SubmitForReview(now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusPending) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusUnderReview
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// Approve transitions pending or under_review -> approved.
func (a LoanApplication) Approve(now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusPending) && !a.status.Equal(valueobject.ApplicationStatusUnderReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusApproved
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// Reject transitions any non-terminal status -> rejected.
func (a LoanApplication) Reject(now time.Time) (LoanApplication, error) {
	if a.status.IsTerminal() {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusRejected
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// MarkDisbursed transitions approved -> disbursed.
func (a LoanApplication) MarkDisbursed(now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusApproved) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusDisbursed
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                            { return a.id }
func (a LoanApplication) BorrowerID() string                    { return a.borrowerID }
func (a LoanApplication) RequestedAmount() decimal.Decimal      { return a.requestedAmount }
func (a LoanApplication) CollateralValue() decimal.Decimal      { return a.collateralValue }
func (a LoanApplication) HasCollateral() bool                   { return a.hasCollateral }
func (a LoanApplication) Purpose() string                       { return a.purpose }
func (a LoanApplication) CreditScore() int                      { return a.creditScore }
func (a LoanApplication) Eligibility() EligibilityOutcome       { return a.eligibility }
func (a LoanApplication) TermMonths() int                       { return a.termMonths }
func (a LoanApplication) Status() valueobject.ApplicationStatus { return a.status }
func (a LoanApplication) Version() int                          { return a.version }
func (a LoanApplication) CreatedAt() time.Time                  { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                  { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent     { return a.domainEvents }

// Terms returns the interest and penalty terms attached to the application.
func (a LoanApplication) Terms() LoanTerms {
	return LoanTerms{
		InterestRatePercent: a.interestRatePercent,
		InterestType:        a.interestType,
		TermMonths:          a.termMonths,
		GracePeriodDays:     a.gracePeriodDays,
		PenaltyRatePercent:  a.penaltyRatePercent,
		PenaltyFlat:         a.penaltyFlat,
	}
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}
