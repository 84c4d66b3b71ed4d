package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Borrower aggregate
// ---------------------------------------------------------------------------

// Borrower is owned by the onboarding subsystem; the engine reads it for
// risk computations and writes back only the credit score, which is a
// materialized view over the borrower's ledger history.
type Borrower struct {
	id               string
	fullName         string
	monthlyIncome    decimal.Decimal
	monthlyExpenses  decimal.Decimal
	creditScore      int
	kycStatus        valueobject.KYCStatus
	registrationDate time.Time
	version          int
	updatedAt        time.Time
}

// ReconstructBorrower rebuilds a Borrower from persistence.
func ReconstructBorrower(
	id, fullName string,
	monthlyIncome, monthlyExpenses decimal.Decimal,
	creditScore int,
	kycStatus valueobject.KYCStatus,
	registrationDate time.Time,
	version int,
	updatedAt time.Time,
) Borrower {
	return Borrower{
		id:               id,
		fullName:         fullName,
		monthlyIncome:    monthlyIncome,
		monthlyExpenses:  monthlyExpenses,
		creditScore:      creditScore,
		kycStatus:        kycStatus,
		registrationDate: registrationDate,
		version:          version,
		updatedAt:        updatedAt,
	}
}

// WithCreditScore returns a copy carrying a freshly computed credit score.
func (b Borrower) WithCreditScore(score int, now time.Time) Borrower {
	next := b
	next.creditScore = score
	next.updatedAt = now
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (b Borrower) ID() string                       { return b.id }
func (b Borrower) FullName() string                 { return b.fullName }
func (b Borrower) MonthlyIncome() decimal.Decimal   { return b.monthlyIncome }
func (b Borrower) MonthlyExpenses() decimal.Decimal { return b.monthlyExpenses }
func (b Borrower) CreditScore() int                 { return b.creditScore }
func (b Borrower) KYCStatus() valueobject.KYCStatus { return b.kycStatus }
func (b Borrower) RegistrationDate() time.Time      { return b.registrationDate }
func (b Borrower) Version() int                     { return b.version }
func (b Borrower) UpdatedAt() time.Time             { return b.updatedAt }
