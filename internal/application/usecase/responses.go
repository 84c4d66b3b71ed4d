package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

func toApplicationResponse(app model.LoanApplication) dto.ApplicationResponse {
	elig := app.Eligibility()
	return dto.ApplicationResponse{
		ID:                app.ID(),
		BorrowerID:        app.BorrowerID(),
		RequestedAmount:   app.RequestedAmount(),
		TermMonths:        app.TermMonths(),
		Purpose:           app.Purpose(),
		Status:            app.Status().String(),
		CreditScore:       app.CreditScore(),
		EligibilityStatus: elig.Status.String(),
		EligibilityScore:  elig.Score,
		IncomeRatio:       elig.IncomeRatio,
		DebtToIncome:      elig.DebtToIncome,
		RiskTier:          elig.RiskTier.String(),
		DocumentStatus:    elig.DocumentStatus,
		Recommendation:    elig.Recommendation,
		CreatedAt:         app.CreatedAt(),
		UpdatedAt:         app.UpdatedAt(),
	}
}

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:                 loan.ID(),
		ApplicationID:      loan.ApplicationID(),
		BorrowerID:         loan.BorrowerID(),
		Principal:          loan.Principal(),
		InterestRate:       loan.InterestRatePercent(),
		InterestType:       loan.InterestType().String(),
		TermMonths:         loan.TermMonths(),
		MonthlyPayment:     loan.MonthlyPayment(),
		TotalAmount:        loan.TotalAmount(),
		OutstandingBalance: loan.OutstandingBalance(),
		NextDueDate:        loan.NextDueDate(),
		Status:             loan.Status().String(),
		ReceiptNumber:      loan.ReceiptNumber(),
		CreatedAt:          loan.CreatedAt(),
		UpdatedAt:          loan.UpdatedAt(),
	}
}

// totalOutstanding sums the balances still owed across a borrower's live
// loans. Only active and defaulted loans count: a written-off loan keeps its
// residual balance on the books but it no longer weighs on new credit.
func totalOutstanding(loans []model.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if !l.Status().Equal(valueobject.LoanStatusActive) &&
			!l.Status().Equal(valueobject.LoanStatusDefaulted) {
			continue
		}
		total = total.Add(l.OutstandingBalance())
	}
	return total
}

// loadCreditHistory assembles the score engine's input from the ledger.
func loadCreditHistory(
	ctx context.Context,
	borrower model.Borrower,
	loanRepo port.LoanRepository,
	appRepo port.LoanApplicationRepository,
	paymentRepo port.PaymentRepository,
) (service.CreditHistory, error) {
	loans, err := loanRepo.FindByBorrowerID(ctx, borrower.ID())
	if err != nil {
		return service.CreditHistory{}, err
	}
	payments, err := paymentRepo.ListByBorrowerID(ctx, borrower.ID())
	if err != nil {
		return service.CreditHistory{}, err
	}
	apps, err := appRepo.FindByBorrowerID(ctx, borrower.ID())
	if err != nil {
		return service.CreditHistory{}, err
	}

	history := service.CreditHistory{
		MonthlyIncome: borrower.MonthlyIncome(),
		RegisteredAt:  borrower.RegistrationDate(),
	}
	for _, l := range loans {
		history.Loans = append(history.Loans, service.LoanSummary{
			Principal:   l.Principal(),
			Outstanding: l.OutstandingBalance(),
			Status:      l.Status(),
		})
	}
	for _, p := range payments {
		history.Payments = append(history.Payments, service.PaymentRecord{
			PaymentDate: p.PaymentDate(),
			DueDate:     p.DueDate(),
			Status:      p.Status(),
		})
	}
	for _, a := range apps {
		history.ApplicationDates = append(history.ApplicationDates, a.CreatedAt())
	}
	return history, nil
}
