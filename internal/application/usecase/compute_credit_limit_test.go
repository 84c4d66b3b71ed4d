package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/credit-engine/internal/application/usecase"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

func TestComputeCreditLimit_CountsCompletedLoans(t *testing.T) {
	borrowerRepo := newMockBorrowerRepository()
	loanRepo := newMockLoanRepository()
	uc := usecase.NewComputeCreditLimitUseCase(borrowerRepo, loanRepo, service.NewCreditLimitCalculator())

	borrowerRepo.borrowers["borrower-1"] = verifiedBorrower(
		"borrower-1", decimal.NewFromInt(10000), decimal.NewFromInt(4000), 700,
	)
	due := time.Now().UTC().AddDate(0, 0, 10)
	loanRepo.loans["loan-done"] = reconstructedLoan(
		"loan-done", "borrower-1", valueobject.LoanStatusCompleted, decimal.Zero, due,
	)
	loanRepo.loans["loan-live"] = reconstructedLoan(
		"loan-live", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(5000), due,
	)

	resp, err := uc.Execute(context.Background(), "borrower-1")

	require.NoError(t, err)
	// One completed loan: 3.5x income = 35000, minus 5000 outstanding.
	assert.True(t, resp.IncomeMultiplier.Equal(decimal.NewFromFloat(3.5)),
		"multiplier = %s", resp.IncomeMultiplier)
	assert.True(t, resp.MaxCredit.Equal(decimal.NewFromInt(35000)))
	assert.True(t, resp.AvailableCredit.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, "borrower-1", resp.BorrowerID)
}

func TestComputeCreditLimit_WrittenOffDebtIgnored(t *testing.T) {
	borrowerRepo := newMockBorrowerRepository()
	loanRepo := newMockLoanRepository()
	uc := usecase.NewComputeCreditLimitUseCase(borrowerRepo, loanRepo, service.NewCreditLimitCalculator())

	borrowerRepo.borrowers["borrower-1"] = verifiedBorrower(
		"borrower-1", decimal.NewFromInt(10000), decimal.NewFromInt(4000), 700,
	)
	due := time.Now().UTC().AddDate(0, 0, 10)
	loanRepo.loans["loan-old"] = reconstructedLoan(
		"loan-old", "borrower-1", valueobject.LoanStatusWrittenOff, decimal.NewFromInt(240000), due,
	)

	resp, err := uc.Execute(context.Background(), "borrower-1")

	require.NoError(t, err)
	assert.True(t, resp.MaxCredit.Equal(decimal.NewFromInt(30000)))
	assert.True(t, resp.AvailableCredit.Equal(decimal.NewFromInt(30000)),
		"written-off residual debt must not shrink the headroom, got %s", resp.AvailableCredit)
}

func TestComputeCreditLimit_Validation(t *testing.T) {
	borrowerRepo := newMockBorrowerRepository()
	loanRepo := newMockLoanRepository()
	uc := usecase.NewComputeCreditLimitUseCase(borrowerRepo, loanRepo, service.NewCreditLimitCalculator())

	_, err := uc.Execute(context.Background(), "")
	assert.True(t, errors.Is(err, port.ErrInvalidInput))

	_, err = uc.Execute(context.Background(), "missing")
	assert.True(t, errors.Is(err, port.ErrNotFound))
}
