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
// Loan aggregate root (Loan Servicing)
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
//
// monthlyPayment and totalAmount are derived once at disbursement time and
// never recomputed retroactively. outstandingBalance only decreases, except
// for penalty additions made by the delinquency sweep.
type Loan struct {
	id                  string
	applicationID       string
	borrowerID          string
	principal           decimal.Decimal
	interestRatePercent decimal.Decimal
	interestType        valueobject.InterestType
	termMonths          int
	monthlyPayment      decimal.Decimal
	totalAmount         decimal.Decimal
	outstandingBalance  decimal.Decimal
	nextDueDate         time.Time
	status              valueobject.LoanStatus
	gracePeriodDays     int
	penaltyRatePercent  decimal.Decimal
	penaltyFlat         decimal.Decimal
	disbursementMethod  string
	receiptNumber       string
	version             int
	createdAt           time.Time
	updatedAt           time.Time
	domainEvents        []event.DomainEvent
}

// LoanTerms bundles the penalty and interest terms carried from the
// application onto the loan.
type LoanTerms struct {
	InterestRatePercent decimal.Decimal
	InterestType        valueobject.InterestType
	TermMonths          int
	GracePeriodDays     int
	PenaltyRatePercent  decimal.Decimal
	PenaltyFlat         decimal.Decimal
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoan creates a loan from an approved application. The caller supplies
// the derived monthly payment and total amount (see service.ComputeTotals).
// The loan starts ACTIVE with the first due date one month after disbursement.
func NewLoan(
	applicationID, borrowerID string,
	principal decimal.Decimal,
	terms LoanTerms,
	monthlyPayment, totalAmount decimal.Decimal,
	disbursementMethod, receiptNumber string,
	now time.Time,
) (Loan, error) {
	if applicationID == "" {
		return Loan{}, errors.New("application ID is required")
	}
	if borrowerID == "" {
		return Loan{}, errors.New("borrower ID is required")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("principal must be positive")
	}
	if terms.TermMonths <= 0 {
		return Loan{}, errors.New("term months must be positive")
	}

	id := uuid.New().String()
	loan := Loan{
		id:                  id,
		applicationID:       applicationID,
		borrowerID:          borrowerID,
		principal:           principal,
		interestRatePercent: terms.InterestRatePercent,
		interestType:        terms.InterestType,
		termMonths:          terms.TermMonths,
		monthlyPayment:      monthlyPayment,
		totalAmount:         totalAmount,
		outstandingBalance:  totalAmount,
		nextDueDate:         now.AddDate(0, 1, 0),
		status:              valueobject.LoanStatusActive,
		gracePeriodDays:     terms.GracePeriodDays,
		penaltyRatePercent:  terms.PenaltyRatePercent,
		penaltyFlat:         terms.PenaltyFlat,
		disbursementMethod:  disbursementMethod,
		receiptNumber:       receiptNumber,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanDisbursed(
		id, applicationID, borrowerID, principal, totalAmount, monthlyPayment,
		terms.TermMonths, loan.nextDueDate,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, applicationID, borrowerID string,
	principal decimal.Decimal,
	terms LoanTerms,
	monthlyPayment, totalAmount, outstandingBalance decimal.Decimal,
	nextDueDate time.Time,
	status valueobject.LoanStatus,
	disbursementMethod, receiptNumber string,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                  id,
		applicationID:       applicationID,
		borrowerID:          borrowerID,
		principal:           principal,
		interestRatePercent: terms.InterestRatePercent,
		interestType:        terms.InterestType,
		termMonths:          terms.TermMonths,
		monthlyPayment:      monthlyPayment,
		totalAmount:         totalAmount,
		outstandingBalance:  outstandingBalance,
		nextDueDate:         nextDueDate,
		status:              status,
		gracePeriodDays:     terms.GracePeriodDays,
		penaltyRatePercent:  terms.PenaltyRatePercent,
		penaltyFlat:         terms.PenaltyFlat,
		disbursementMethod:  disbursementMethod,
		receiptNumber:       receiptNumber,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// ApplyPayment reduces the outstanding balance, floored at zero, and advances
// the next due date by one month. When the balance reaches zero the loan
// transitions to completed and the due date stops advancing.
func (l Loan) ApplyPayment(amount decimal.Decimal, now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) && !l.status.Equal(valueobject.LoanStatusDefaulted) {
		return l, errors.New("payments can only be applied to active or defaulted loans")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return l, errors.New("payment amount must be positive")
	}

	next := l
	next.outstandingBalance = l.outstandingBalance.Sub(amount)
	if next.outstandingBalance.LessThan(decimal.Zero) {
		next.outstandingBalance = decimal.Zero
	}
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentReceived(
		l.id, l.borrowerID, amount, next.outstandingBalance,
	))

	if next.outstandingBalance.IsZero() {
		next.status = valueobject.LoanStatusCompleted
		next.domainEvents = append(next.domainEvents, event.NewLoanCompleted(l.id, l.borrowerID))
	} else {
		next.nextDueDate = l.nextDueDate.AddDate(0, 1, 0)
	}

	return next, nil
}

// AddPenalty increases the outstanding balance by an accrued late penalty.
func (l Loan) AddPenalty(amount decimal.Decimal, daysLate int, now time.Time) (Loan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return l, errors.New("penalty amount must be positive")
	}
	next := l
	next.outstandingBalance = l.outstandingBalance.Add(amount)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPenaltyApplied(
		l.id, l.borrowerID, amount, daysLate,
	))
	return next, nil
}

// MarkDefaulted transitions an active loan to defaulted. Marking an already
// defaulted loan is a no-op so the sweep can re-run safely.
func (l Loan) MarkDefaulted(daysLate int, now time.Time) (Loan, error) {
	if l.status.Equal(valueobject.LoanStatusDefaulted) {
		return l, nil
	}
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusDefaulted
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDefaulted(
		l.id, l.borrowerID, l.outstandingBalance, daysLate,
	))
	return next, nil
}

// WriteOff transitions a defaulted loan to written off.
func (l Loan) WriteOff(now time.Time) (Loan, error) {
	if !l.status.Equal(valueobject.LoanStatusDefaulted) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusWrittenOff
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                           { return l.id }
func (l Loan) ApplicationID() string                { return l.applicationID }
func (l Loan) BorrowerID() string                   { return l.borrowerID }
func (l Loan) Principal() decimal.Decimal           { return l.principal }
func (l Loan) InterestRatePercent() decimal.Decimal { return l.interestRatePercent }
func (l Loan) InterestType() valueobject.InterestType {
	return l.interestType
}
func (l Loan) TermMonths() int                     { return l.termMonths }
func (l Loan) MonthlyPayment() decimal.Decimal     { return l.monthlyPayment }
func (l Loan) TotalAmount() decimal.Decimal        { return l.totalAmount }
func (l Loan) OutstandingBalance() decimal.Decimal { return l.outstandingBalance }
func (l Loan) NextDueDate() time.Time              { return l.nextDueDate }
func (l Loan) Status() valueobject.LoanStatus      { return l.status }
func (l Loan) GracePeriodDays() int                { return l.gracePeriodDays }
func (l Loan) PenaltyRatePercent() decimal.Decimal { return l.penaltyRatePercent }
func (l Loan) PenaltyFlat() decimal.Decimal        { return l.penaltyFlat }
func (l Loan) DisbursementMethod() string          { return l.disbursementMethod }
func (l Loan) ReceiptNumber() string               { return l.receiptNumber }
func (l Loan) Version() int                        { return l.version }
func (l Loan) CreatedAt() time.Time                { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent   { return l.domainEvents }

// Terms returns the penalty and interest terms of the loan.
func (l Loan) Terms() LoanTerms {
	return LoanTerms{
		InterestRatePercent: l.interestRatePercent,
		InterestType:        l.interestType,
		TermMonths:          l.termMonths,
		GracePeriodDays:     l.gracePeriodDays,
		PenaltyRatePercent:  l.penaltyRatePercent,
		PenaltyFlat:         l.penaltyFlat,
	}
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
