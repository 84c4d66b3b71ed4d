package usecase

import (
	"context"
	"fmt"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// ComputeCreditLimitUseCase reports a borrower's credit ceiling and how much
// of it is still available.
type ComputeCreditLimitUseCase struct {
	borrowerRepo port.BorrowerRepository
	loanRepo     port.LoanRepository
	limits       *service.CreditLimitCalculator
}

// NewComputeCreditLimitUseCase wires dependencies.
func NewComputeCreditLimitUseCase(
	borrowerRepo port.BorrowerRepository,
	loanRepo port.LoanRepository,
	limits *service.CreditLimitCalculator,
) *ComputeCreditLimitUseCase {
	return &ComputeCreditLimitUseCase{
		borrowerRepo: borrowerRepo,
		loanRepo:     loanRepo,
		limits:       limits,
	}
}

// Execute computes the borrower's limit from income and repayment tenure.
func (uc *ComputeCreditLimitUseCase) Execute(
	ctx context.Context,
	borrowerID string,
) (dto.CreditLimitResponse, error) {
	if borrowerID == "" {
		return dto.CreditLimitResponse{}, fmt.Errorf("%w: borrower ID is required", port.ErrInvalidInput)
	}

	// 1. Retrieve the borrower and their loans.
	borrower, err := uc.borrowerRepo.FindByID(ctx, borrowerID)
	if err != nil {
		return dto.CreditLimitResponse{}, fmt.Errorf("find borrower: %w", err)
	}
	loans, err := uc.loanRepo.FindByBorrowerID(ctx, borrowerID)
	if err != nil {
		return dto.CreditLimitResponse{}, fmt.Errorf("list loans: %w", err)
	}

	// 2. Compute.
	completed := 0
	for _, l := range loans {
		if l.Status().Equal(valueobject.LoanStatusCompleted) {
			completed++
		}
	}
	result := uc.limits.Compute(
		borrower.MonthlyIncome(),
		borrower.MonthlyExpenses(),
		completed,
		totalOutstanding(loans),
	)

	return dto.CreditLimitResponse{
		BorrowerID:       borrowerID,
		MaxCredit:        result.MaxCredit,
		AvailableCredit:  result.AvailableCredit,
		IncomeMultiplier: result.IncomeMultiplier,
	}, nil
}
