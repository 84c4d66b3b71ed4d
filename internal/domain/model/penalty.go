package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// LoanPenalty entity
// ---------------------------------------------------------------------------

// LoanPenalty is one penalty accrual found by the delinquency sweep. The
// natural key (loanID, penaltyDate) is unique: it is both the sweep's
// idempotency guard and the first-occurrence marker for the flat fee.
type LoanPenalty struct {
	id          string
	loanID      string
	penaltyDate time.Time
	daysLate    int
	amount      decimal.Decimal
	createdAt   time.Time
}

// NewLoanPenalty creates a penalty accrual for the given calendar day.
// penaltyDate is truncated to midnight UTC so one row covers one day.
func NewLoanPenalty(loanID string, penaltyDate time.Time, daysLate int, amount decimal.Decimal, now time.Time) (LoanPenalty, error) {
	if loanID == "" {
		return LoanPenalty{}, errors.New("loan ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return LoanPenalty{}, errors.New("penalty amount must be positive")
	}
	return LoanPenalty{
		id:          uuid.New().String(),
		loanID:      loanID,
		penaltyDate: truncateToDay(penaltyDate),
		daysLate:    daysLate,
		amount:      amount,
		createdAt:   now,
	}, nil
}

// ReconstructLoanPenalty rebuilds a LoanPenalty from persistence.
func ReconstructLoanPenalty(id, loanID string, penaltyDate time.Time, daysLate int, amount decimal.Decimal, createdAt time.Time) LoanPenalty {
	return LoanPenalty{
		id:          id,
		loanID:      loanID,
		penaltyDate: penaltyDate,
		daysLate:    daysLate,
		amount:      amount,
		createdAt:   createdAt,
	}
}

func (p LoanPenalty) ID() string              { return p.id }
func (p LoanPenalty) LoanID() string          { return p.loanID }
func (p LoanPenalty) PenaltyDate() time.Time  { return p.penaltyDate }
func (p LoanPenalty) DaysLate() int           { return p.daysLate }
func (p LoanPenalty) Amount() decimal.Decimal { return p.amount }
func (p LoanPenalty) CreatedAt() time.Time    { return p.createdAt }

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
