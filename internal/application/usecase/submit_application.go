package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// SubmitApplicationUseCase registers a new loan application. The request is
// gated against the borrower's available credit before anything is persisted,
// and the initial eligibility evaluation runs inline so the stored application
// always carries a decision record.
type SubmitApplicationUseCase struct {
	appRepo      port.LoanApplicationRepository
	borrowerRepo port.BorrowerRepository
	loanRepo     port.LoanRepository
	eligibility  *service.EligibilityEngine
	limits       *service.CreditLimitCalculator
	publisher    port.EventPublisher
	audit        port.AuditSink
	logger       *slog.Logger
}

// NewSubmitApplicationUseCase wires dependencies.
func NewSubmitApplicationUseCase(
	appRepo port.LoanApplicationRepository,
	borrowerRepo port.BorrowerRepository,
	loanRepo port.LoanRepository,
	eligibility *service.EligibilityEngine,
	limits *service.CreditLimitCalculator,
	publisher port.EventPublisher,
	audit port.AuditSink,
	logger *slog.Logger,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		appRepo:      appRepo,
		borrowerRepo: borrowerRepo,
		loanRepo:     loanRepo,
		eligibility:  eligibility,
		limits:       limits,
		publisher:    publisher,
		audit:        audit,
		logger:       logger,
	}
}

// Execute validates, gates, evaluates, and persists a new application.
func (uc *SubmitApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	if req.BorrowerID == "" {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: borrower ID is required", port.ErrInvalidInput)
	}
	if req.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: requested amount must be positive", port.ErrInvalidInput)
	}
	if req.TermMonths <= 0 {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: term months must be positive", port.ErrInvalidInput)
	}

	// 1. Retrieve the borrower and their open debt.
	borrower, err := uc.borrowerRepo.FindByID(ctx, req.BorrowerID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find borrower: %w", err)
	}
	loans, err := uc.loanRepo.FindByBorrowerID(ctx, borrower.ID())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("list loans: %w", err)
	}
	outstanding := totalOutstanding(loans)

	// 2. Gate against available credit. Nothing is persisted on refusal.
	completed := 0
	for _, l := range loans {
		if l.Status().Equal(valueobject.LoanStatusCompleted) {
			completed++
		}
	}
	limit := uc.limits.Compute(borrower.MonthlyIncome(), borrower.MonthlyExpenses(), completed, outstanding)
	if req.RequestedAmount.GreaterThan(limit.AvailableCredit) {
		return dto.ApplicationResponse{}, fmt.Errorf(
			"%w: requested amount %s exceeds available credit %s",
			port.ErrInvalidInput, req.RequestedAmount.String(), limit.AvailableCredit.String(),
		)
	}

	// 3. Create the aggregate with the credit score snapshotted now.
	app, err := model.NewLoanApplication(
		req.BorrowerID,
		req.RequestedAmount,
		req.CollateralValue,
		req.HasCollateral,
		req.Purpose,
		borrower.CreditScore(),
		model.LoanTerms{
			InterestRatePercent: req.InterestRatePercent,
			InterestType:        valueobject.NewInterestType(req.InterestType),
			TermMonths:          req.TermMonths,
			GracePeriodDays:     req.GracePeriodDays,
			PenaltyRatePercent:  req.PenaltyRatePercent,
			PenaltyFlat:         req.PenaltyFlat,
		},
		now,
	)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: %s", port.ErrInvalidInput, err)
	}

	// 4. Run the initial eligibility evaluation inline.
	result := uc.eligibility.Evaluate(service.EligibilityInput{
		MonthlyIncome:    borrower.MonthlyIncome(),
		CreditScore:      borrower.CreditScore(),
		KYCVerified:      borrower.KYCStatus().IsVerified(),
		TotalOutstanding: outstanding,
		RequestedAmount:  req.RequestedAmount,
		CollateralValue:  req.CollateralValue,
		HasCollateral:    req.HasCollateral,
	})
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

	// 5. Persist and publish.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	// The application is saved; publishing is best effort.
	if perr := uc.publisher.Publish(ctx, app.DomainEvents()...); perr != nil {
		uc.logger.Warn("application event publish failed",
			slog.String("application_id", app.ID()),
			slog.String("error", perr.Error()))
	}

	uc.audit.Record(ctx, req.BorrowerID, "application.submitted", "loan_application", app.ID(),
		fmt.Sprintf("requested=%s term=%d eligibility=%s", req.RequestedAmount.String(), req.TermMonths, result.Status.String()))

	return toApplicationResponse(app), nil
}
