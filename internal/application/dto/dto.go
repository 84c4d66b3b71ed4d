package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SubmitApplicationRequest carries the data for a new loan application.
type SubmitApplicationRequest struct {
	BorrowerID          string          `json:"borrower_id"`
	RequestedAmount     decimal.Decimal `json:"requested_amount"`
	CollateralValue     decimal.Decimal `json:"collateral_value"`
	HasCollateral       bool            `json:"has_collateral"`
	Purpose             string          `json:"purpose"`
	TermMonths          int             `json:"term_months"`
	InterestRatePercent decimal.Decimal `json:"interest_rate_percent"`
	InterestType        string          `json:"interest_type"`
	GracePeriodDays     int             `json:"grace_period_days"`
	PenaltyRatePercent  decimal.Decimal `json:"penalty_rate_percent"`
	PenaltyFlat         decimal.Decimal `json:"penalty_flat"`
}

// ComputeEligibilityRequest identifies an application to (re)evaluate.
type ComputeEligibilityRequest struct {
	ApplicationID string `json:"application_id"`
}

// DisburseLoanRequest carries the data needed to disburse an approved
// application. MonthlyPayment and TotalAmount are optional; when absent they
// are derived by the amortization calculator.
type DisburseLoanRequest struct {
	ApplicationID      string          `json:"application_id"`
	DisbursementMethod string          `json:"disbursement_method"`
	Reference          string          `json:"reference"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
}

// RecordPaymentRequest carries the data for a payment receipt.
// StatusOverride, when set, replaces the computed paid/late status.
type RecordPaymentRequest struct {
	LoanID         string          `json:"loan_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"payment_date"`
	StatusOverride string          `json:"status_override,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ApplicationResponse is the external representation of a loan application.
type ApplicationResponse struct {
	ID                string          `json:"id"`
	BorrowerID        string          `json:"borrower_id"`
	RequestedAmount   decimal.Decimal `json:"requested_amount"`
	TermMonths        int             `json:"term_months"`
	Purpose           string          `json:"purpose"`
	Status            string          `json:"status"`
	CreditScore       int             `json:"credit_score"`
	EligibilityStatus string          `json:"eligibility_status,omitempty"`
	EligibilityScore  int             `json:"eligibility_score"`
	IncomeRatio       decimal.Decimal `json:"income_ratio"`
	DebtToIncome      decimal.Decimal `json:"debt_to_income"`
	RiskTier          string          `json:"risk_tier,omitempty"`
	DocumentStatus    string          `json:"document_status,omitempty"`
	Recommendation    string          `json:"recommendation,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID                 string          `json:"id"`
	ApplicationID      string          `json:"application_id"`
	BorrowerID         string          `json:"borrower_id"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate_percent"`
	InterestType       string          `json:"interest_type"`
	TermMonths         int             `json:"term_months"`
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	NextDueDate        time.Time       `json:"next_due_date"`
	Status             string          `json:"status"`
	ReceiptNumber      string          `json:"receipt_number"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// PaymentResponse is the external representation of a recorded payment.
type PaymentResponse struct {
	PaymentID          string          `json:"payment_id"`
	LoanID             string          `json:"loan_id"`
	Amount             decimal.Decimal `json:"amount"`
	LateFee            decimal.Decimal `json:"late_fee"`
	DaysLate           int             `json:"days_late"`
	Status             string          `json:"status"`
	ReceiptNumber      string          `json:"receipt_number"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	LoanStatus         string          `json:"loan_status"`
}

// CreditScoreResponse reports a refreshed borrower score.
type CreditScoreResponse struct {
	BorrowerID string               `json:"borrower_id"`
	Score      int                  `json:"score"`
	Factors    service.FactorScores `json:"factors"`
}

// CreditLimitResponse reports the borrower's credit ceiling.
type CreditLimitResponse struct {
	BorrowerID       string          `json:"borrower_id"`
	MaxCredit        decimal.Decimal `json:"max_credit"`
	AvailableCredit  decimal.Decimal `json:"available_credit"`
	IncomeMultiplier decimal.Decimal `json:"income_multiplier"`
}

// SweepSummary reports what one delinquency sweep run did.
type SweepSummary struct {
	RunDate           time.Time `json:"run_date"`
	LoansScanned      int       `json:"loans_scanned"`
	PenaltiesApplied  int       `json:"penalties_applied"`
	NotificationsSent int       `json:"notifications_sent"`
	CasesOpened       int       `json:"cases_opened"`
	LoansDefaulted    int       `json:"loans_defaulted"`
	Errors            int       `json:"errors"`
}
