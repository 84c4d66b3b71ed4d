package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
)

// ComputeEligibilityUseCase evaluates (or re-evaluates) a loan application
// against the borrower's current state and stores the decision record.
type ComputeEligibilityUseCase struct {
	appRepo      port.LoanApplicationRepository
	borrowerRepo port.BorrowerRepository
	loanRepo     port.LoanRepository
	engine       *service.EligibilityEngine
	publisher    port.EventPublisher
	logger       *slog.Logger
}

// NewComputeEligibilityUseCase wires dependencies.
func NewComputeEligibilityUseCase(
	appRepo port.LoanApplicationRepository,
	borrowerRepo port.BorrowerRepository,
	loanRepo port.LoanRepository,
	engine *service.EligibilityEngine,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *ComputeEligibilityUseCase {
	return &ComputeEligibilityUseCase{
		appRepo:      appRepo,
		borrowerRepo: borrowerRepo,
		loanRepo:     loanRepo,
		engine:       engine,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute scores the application and persists the outcome.
func (uc *ComputeEligibilityUseCase) Execute(
	ctx context.Context,
	req dto.ComputeEligibilityRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	if req.ApplicationID == "" {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: application ID is required", port.ErrInvalidInput)
	}

	// 1. Retrieve the application and its borrower.
	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	borrower, err := uc.borrowerRepo.FindByID(ctx, app.BorrowerID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find borrower: %w", err)
	}

	// 2. Sum the borrower's live debt.
	loans, err := uc.loanRepo.FindByBorrowerID(ctx, borrower.ID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("list loans: %w", err)
	}

	// 3. Evaluate.
	result := uc.engine.Evaluate(service.EligibilityInput{
		MonthlyIncome:    borrower.MonthlyIncome(),
		CreditScore:      borrower.CreditScore(),
		KYCVerified:      borrower.KYCStatus().IsVerified(),
		TotalOutstanding: totalOutstanding(loans),
		RequestedAmount:  app.RequestedAmount(),
		CollateralValue:  app.CollateralValue(),
		HasCollateral:    app.HasCollateral(),
	})

	// 4. Record the decision on the application.
	app, err = app.ApplyEvaluation(model.EligibilityOutcome{
		Status:         result.Status,
		Score:          result.Score,
		IncomeRatio:    result.IncomeRatio,
		DebtToIncome:   result.DebtToIncome,
		RiskTier:       result.RiskTier,
		DocumentStatus: result.DocumentStatus,
		Recommendation: result.Recommendation,
	}, borrower.CreditScore(), now)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("apply evaluation: %w", err)
	}
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 5. Publish events. The decision is saved; publishing is best effort.
	if perr := uc.publisher.Publish(ctx, app.DomainEvents()...); perr != nil {
		uc.logger.Warn("evaluation event publish failed",
			slog.String("application_id", app.ID()),
			slog.String("error", perr.Error()))
	}

	return toApplicationResponse(app), nil
}
