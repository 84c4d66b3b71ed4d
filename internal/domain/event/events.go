package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Application events
// ---------------------------------------------------------------------------

// ApplicationSubmitted is raised when a new application enters the system.
type ApplicationSubmitted struct {
	events.BaseEvent
	BorrowerID      string          `json:"borrower_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	TermMonths      int             `json:"term_months"`
	Purpose         string          `json:"purpose"`
}

func NewApplicationSubmitted(applicationID, borrowerID string, amount decimal.Decimal, termMonths int, purpose string) ApplicationSubmitted {
	return ApplicationSubmitted{
		BaseEvent:       events.NewBaseEvent("credit.application.submitted", applicationID, "LoanApplication"),
		BorrowerID:      borrowerID,
		RequestedAmount: amount,
		TermMonths:      termMonths,
		Purpose:         purpose,
	}
}

// ApplicationEvaluated is raised when the eligibility scorer produces or
// refreshes a decision for an application.
type ApplicationEvaluated struct {
	events.BaseEvent
	BorrowerID        string `json:"borrower_id"`
	EligibilityStatus string `json:"eligibility_status"`
	EligibilityScore  int    `json:"eligibility_score"`
	RiskTier          string `json:"risk_tier"`
}

func NewApplicationEvaluated(applicationID, borrowerID, status string, score int, riskTier string) ApplicationEvaluated {
	return ApplicationEvaluated{
		BaseEvent:         events.NewBaseEvent("credit.application.evaluated", applicationID, "LoanApplication"),
		BorrowerID:        borrowerID,
		EligibilityStatus: status,
		EligibilityScore:  score,
		RiskTier:          riskTier,
	}
}

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanDisbursed is raised when funds are disbursed to the borrower.
type LoanDisbursed struct {
	events.BaseEvent
	ApplicationID  string          `json:"application_id"`
	BorrowerID     string          `json:"borrower_id"`
	Principal      decimal.Decimal `json:"principal"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TermMonths     int             `json:"term_months"`
	NextDueDate    time.Time       `json:"next_due_date"`
}

func NewLoanDisbursed(
	loanID, applicationID, borrowerID string,
	principal, totalAmount, monthlyPayment decimal.Decimal,
	termMonths int, nextDueDate time.Time,
) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:      events.NewBaseEvent("credit.loan.disbursed", loanID, "Loan"),
		ApplicationID:  applicationID,
		BorrowerID:     borrowerID,
		Principal:      principal,
		TotalAmount:    totalAmount,
		MonthlyPayment: monthlyPayment,
		TermMonths:     termMonths,
		NextDueDate:    nextDueDate,
	}
}

// PaymentReceived is raised when a payment is applied to a loan.
type PaymentReceived struct {
	events.BaseEvent
	BorrowerID         string          `json:"borrower_id"`
	Amount             decimal.Decimal `json:"amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewPaymentReceived(loanID, borrowerID string, amount, outstanding decimal.Decimal) PaymentReceived {
	return PaymentReceived{
		BaseEvent:          events.NewBaseEvent("credit.loan.payment_received", loanID, "Loan"),
		BorrowerID:         borrowerID,
		Amount:             amount,
		OutstandingBalance: outstanding,
	}
}

// LoanCompleted is raised when a loan's balance reaches zero.
type LoanCompleted struct {
	events.BaseEvent
	BorrowerID string `json:"borrower_id"`
}

func NewLoanCompleted(loanID, borrowerID string) LoanCompleted {
	return LoanCompleted{
		BaseEvent:  events.NewBaseEvent("credit.loan.completed", loanID, "Loan"),
		BorrowerID: borrowerID,
	}
}

// PenaltyApplied is raised when the delinquency sweep accrues a late penalty.
type PenaltyApplied struct {
	events.BaseEvent
	BorrowerID string          `json:"borrower_id"`
	Amount     decimal.Decimal `json:"amount"`
	DaysLate   int             `json:"days_late"`
}

func NewPenaltyApplied(loanID, borrowerID string, amount decimal.Decimal, daysLate int) PenaltyApplied {
	return PenaltyApplied{
		BaseEvent:  events.NewBaseEvent("credit.loan.penalty_applied", loanID, "Loan"),
		BorrowerID: borrowerID,
		Amount:     amount,
		DaysLate:   daysLate,
	}
}

// LoanDefaulted is raised when a loan crosses the terminal delinquency
// threshold and is forwarded to collections.
type LoanDefaulted struct {
	events.BaseEvent
	BorrowerID         string          `json:"borrower_id"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	DaysLate           int             `json:"days_late"`
}

func NewLoanDefaulted(loanID, borrowerID string, outstanding decimal.Decimal, daysLate int) LoanDefaulted {
	return LoanDefaulted{
		BaseEvent:          events.NewBaseEvent("credit.loan.defaulted", loanID, "Loan"),
		BorrowerID:         borrowerID,
		OutstandingBalance: outstanding,
		DaysLate:           daysLate,
	}
}

// ---------------------------------------------------------------------------
// Borrower events
// ---------------------------------------------------------------------------

// CreditScoreRefreshed is raised after the score engine recomputes a
// borrower's credit score.
type CreditScoreRefreshed struct {
	events.BaseEvent
	Score         int `json:"score"`
	PreviousScore int `json:"previous_score"`
}

func NewCreditScoreRefreshed(borrowerID string, score, previousScore int) CreditScoreRefreshed {
	return CreditScoreRefreshed{
		BaseEvent:     events.NewBaseEvent("credit.borrower.score_refreshed", borrowerID, "Borrower"),
		Score:         score,
		PreviousScore: previousScore,
	}
}
