package rest

import (
	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/model"
)

func applicationView(app model.LoanApplication) dto.ApplicationResponse {
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

func loanView(loan model.Loan) dto.LoanResponse {
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
