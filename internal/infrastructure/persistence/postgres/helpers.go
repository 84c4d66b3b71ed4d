package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// scannable covers pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func mapNoRows(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, port.ErrNotFound)
	}
	return fmt.Errorf("scan %s: %w", what, err)
}

// ---------------------------------------------------------------------------
// Loan row mapping, shared by LoanRepo and LedgerStore
// ---------------------------------------------------------------------------

const loanColumns = `
	id, application_id, borrower_id,
	principal, interest_rate_percent, interest_type, term_months,
	monthly_payment, total_amount, outstanding_balance, next_due_date,
	status, grace_period_days, penalty_rate_percent, penalty_flat,
	disbursement_method, receipt_number,
	version, created_at, updated_at`

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, applicationID, borrowerID                   string
		principal, interestRate                         decimal.Decimal
		interestTypeStr                                 string
		termMonths                                      int
		monthlyPayment, totalAmount, outstandingBalance decimal.Decimal
		nextDueDate                                     time.Time
		statusStr                                       string
		gracePeriodDays                                 int
		penaltyRate, penaltyFlat                        decimal.Decimal
		disbursementMethod, receiptNumber               string
		version                                         int
		createdAt, updatedAt                            time.Time
	)

	err := s.Scan(
		&id, &applicationID, &borrowerID,
		&principal, &interestRate, &interestTypeStr, &termMonths,
		&monthlyPayment, &totalAmount, &outstandingBalance, &nextDueDate,
		&statusStr, &gracePeriodDays, &penaltyRate, &penaltyFlat,
		&disbursementMethod, &receiptNumber,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, err
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, applicationID, borrowerID,
		principal,
		model.LoanTerms{
			InterestRatePercent: interestRate,
			InterestType:        valueobject.NewInterestType(interestTypeStr),
			TermMonths:          termMonths,
			GracePeriodDays:     gracePeriodDays,
			PenaltyRatePercent:  penaltyRate,
			PenaltyFlat:         penaltyFlat,
		},
		monthlyPayment, totalAmount, outstandingBalance,
		nextDueDate, status,
		disbursementMethod, receiptNumber,
		version, createdAt, updatedAt,
	), nil
}

// ---------------------------------------------------------------------------
// Application row mapping, shared by LoanApplicationRepo and LedgerStore
// ---------------------------------------------------------------------------

const applicationColumns = `
	id, borrower_id, requested_amount, collateral_value, has_collateral,
	purpose, credit_score,
	eligibility_status, eligibility_score, income_ratio, debt_to_income,
	risk_tier, document_status, recommendation,
	interest_rate_percent, interest_type, term_months,
	grace_period_days, penalty_rate_percent, penalty_flat,
	status, version, created_at, updated_at`

func scanApplicationRow(s scannable) (model.LoanApplication, error) {
	var (
		id, borrowerID                         string
		requestedAmount, collateralValue       decimal.Decimal
		hasCollateral                          bool
		purpose                                string
		creditScore                            int
		eligStatusStr                          string
		eligScore                              int
		incomeRatio, debtToIncome              decimal.Decimal
		riskTierStr, docStatus, recommendation string
		interestRate                           decimal.Decimal
		interestTypeStr                        string
		termMonths, gracePeriodDays            int
		penaltyRate, penaltyFlat               decimal.Decimal
		statusStr                              string
		version                                int
		createdAt, updatedAt                   time.Time
	)

	err := s.Scan(
		&id, &borrowerID, &requestedAmount, &collateralValue, &hasCollateral,
		&purpose, &creditScore,
		&eligStatusStr, &eligScore, &incomeRatio, &debtToIncome,
		&riskTierStr, &docStatus, &recommendation,
		&interestRate, &interestTypeStr, &termMonths,
		&gracePeriodDays, &penaltyRate, &penaltyFlat,
		&statusStr, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.LoanApplication{}, err
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse application status: %w", err)
	}

	// Unevaluated applications store empty eligibility strings.
	var eligibility model.EligibilityOutcome
	if eligStatusStr != "" {
		eligStatus, err := valueobject.NewEligibilityStatus(eligStatusStr)
		if err != nil {
			return model.LoanApplication{}, fmt.Errorf("parse eligibility status: %w", err)
		}
		var riskTier valueobject.RiskTier
		if riskTierStr != "" {
			riskTier, err = valueobject.NewRiskTier(riskTierStr)
			if err != nil {
				return model.LoanApplication{}, fmt.Errorf("parse risk tier: %w", err)
			}
		}
		eligibility = model.EligibilityOutcome{
			Status:         eligStatus,
			Score:          eligScore,
			IncomeRatio:    incomeRatio,
			DebtToIncome:   debtToIncome,
			RiskTier:       riskTier,
			DocumentStatus: docStatus,
			Recommendation: recommendation,
		}
	}

	return model.ReconstructLoanApplication(
		id, borrowerID,
		requestedAmount, collateralValue, hasCollateral,
		purpose, creditScore, eligibility,
		model.LoanTerms{
			InterestRatePercent: interestRate,
			InterestType:        valueobject.NewInterestType(interestTypeStr),
			TermMonths:          termMonths,
			GracePeriodDays:     gracePeriodDays,
			PenaltyRatePercent:  penaltyRate,
			PenaltyFlat:         penaltyFlat,
		},
		status, version, createdAt, updatedAt,
	), nil
}

// ---------------------------------------------------------------------------
// Payment row mapping, shared by PaymentRepo and LedgerStore
// ---------------------------------------------------------------------------

const paymentColumns = `
	id, loan_id, amount, late_fee, payment_date, due_date,
	days_late, status, receipt_number, created_at`

func scanPaymentRow(s scannable) (model.Payment, error) {
	var (
		id, loanID           string
		amount, lateFee      decimal.Decimal
		paymentDate, dueDate time.Time
		daysLate             int
		statusStr            string
		receiptNumber        string
		createdAt            time.Time
	)

	err := s.Scan(
		&id, &loanID, &amount, &lateFee, &paymentDate, &dueDate,
		&daysLate, &statusStr, &receiptNumber, &createdAt,
	)
	if err != nil {
		return model.Payment{}, err
	}

	status, err := valueobject.NewPaymentStatus(statusStr)
	if err != nil {
		return model.Payment{}, fmt.Errorf("parse payment status: %w", err)
	}

	return model.ReconstructPayment(
		id, loanID, amount, lateFee, paymentDate, dueDate,
		daysLate, status, receiptNumber, createdAt,
	), nil
}
