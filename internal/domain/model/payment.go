package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Payment entity
// ---------------------------------------------------------------------------

// Payment is an append-only record of money received against a loan. Each
// insertion is paired atomically with the loan balance decrement.
type Payment struct {
	id            string
	loanID        string
	amount        decimal.Decimal
	lateFee       decimal.Decimal
	paymentDate   time.Time
	dueDate       time.Time
	daysLate      int
	status        valueobject.PaymentStatus
	receiptNumber string
	createdAt     time.Time
}

// NewPayment creates a payment record with a generated receipt number.
func NewPayment(
	loanID string,
	amount, lateFee decimal.Decimal,
	paymentDate, dueDate time.Time,
	daysLate int,
	status valueobject.PaymentStatus,
	now time.Time,
) (Payment, error) {
	if loanID == "" {
		return Payment{}, errors.New("loan ID is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Payment{}, errors.New("payment amount must be positive")
	}

	id := uuid.New().String()
	return Payment{
		id:            id,
		loanID:        loanID,
		amount:        amount,
		lateFee:       lateFee,
		paymentDate:   paymentDate,
		dueDate:       dueDate,
		daysLate:      daysLate,
		status:        status,
		receiptNumber: "PAY-" + strings.ToUpper(id[:8]),
		createdAt:     now,
	}, nil
}

// ReconstructPayment rebuilds a Payment from persistence.
func ReconstructPayment(
	id, loanID string,
	amount, lateFee decimal.Decimal,
	paymentDate, dueDate time.Time,
	daysLate int,
	status valueobject.PaymentStatus,
	receiptNumber string,
	createdAt time.Time,
) Payment {
	return Payment{
		id:            id,
		loanID:        loanID,
		amount:        amount,
		lateFee:       lateFee,
		paymentDate:   paymentDate,
		dueDate:       dueDate,
		daysLate:      daysLate,
		status:        status,
		receiptNumber: receiptNumber,
		createdAt:     createdAt,
	}
}

func (p Payment) ID() string                        { return p.id }
func (p Payment) LoanID() string                    { return p.loanID }
func (p Payment) Amount() decimal.Decimal           { return p.amount }
func (p Payment) LateFee() decimal.Decimal          { return p.lateFee }
func (p Payment) PaymentDate() time.Time            { return p.paymentDate }
func (p Payment) DueDate() time.Time                { return p.dueDate }
func (p Payment) DaysLate() int                     { return p.daysLate }
func (p Payment) Status() valueobject.PaymentStatus { return p.status }
func (p Payment) ReceiptNumber() string             { return p.receiptNumber }
func (p Payment) CreatedAt() time.Time              { return p.createdAt }
