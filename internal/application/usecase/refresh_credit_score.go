package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/event"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
)

// ScoreRefresher is the slice of RefreshCreditScoreUseCase that the ledger
// use cases invoke best-effort after disbursements and payments.
type ScoreRefresher interface {
	Execute(ctx context.Context, borrowerID string) (dto.CreditScoreResponse, error)
}

// RefreshCreditScoreUseCase recomputes a borrower's credit score from their
// full ledger history, persists it, caches the factor breakdown, and re-runs
// eligibility on the borrower's open applications so stored decisions track
// the new score.
type RefreshCreditScoreUseCase struct {
	borrowerRepo port.BorrowerRepository
	loanRepo     port.LoanRepository
	appRepo      port.LoanApplicationRepository
	paymentRepo  port.PaymentRepository
	scoreEngine  *service.CreditScoreEngine
	eligibility  *service.EligibilityEngine
	cache        port.ScoreCache
	publisher    port.EventPublisher
	logger       *slog.Logger
}

// NewRefreshCreditScoreUseCase wires dependencies.
func NewRefreshCreditScoreUseCase(
	borrowerRepo port.BorrowerRepository,
	loanRepo port.LoanRepository,
	appRepo port.LoanApplicationRepository,
	paymentRepo port.PaymentRepository,
	scoreEngine *service.CreditScoreEngine,
	eligibility *service.EligibilityEngine,
	cache port.ScoreCache,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RefreshCreditScoreUseCase {
	return &RefreshCreditScoreUseCase{
		borrowerRepo: borrowerRepo,
		loanRepo:     loanRepo,
		appRepo:      appRepo,
		paymentRepo:  paymentRepo,
		scoreEngine:  scoreEngine,
		eligibility:  eligibility,
		cache:        cache,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute recomputes and persists the borrower's score.
func (uc *RefreshCreditScoreUseCase) Execute(
	ctx context.Context,
	borrowerID string,
) (dto.CreditScoreResponse, error) {
	now := time.Now().UTC()

	if borrowerID == "" {
		return dto.CreditScoreResponse{}, fmt.Errorf("%w: borrower ID is required", port.ErrInvalidInput)
	}

	// 1. Retrieve the borrower and assemble their history.
	borrower, err := uc.borrowerRepo.FindByID(ctx, borrowerID)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("find borrower: %w", err)
	}
	history, err := loadCreditHistory(ctx, borrower, uc.loanRepo, uc.appRepo, uc.paymentRepo)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("load history: %w", err)
	}

	// 2. Compute and persist the score.
	result := uc.scoreEngine.Compute(history, now)
	previous := borrower.CreditScore()
	borrower = borrower.WithCreditScore(result.Score, now)
	if err := uc.borrowerRepo.SaveCreditScore(ctx, borrower); err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("save credit score: %w", err)
	}

	// 3. Cache the breakdown. Cache failures never fail the refresh.
	if err := uc.cache.Put(ctx, borrowerID, result); err != nil {
		uc.logger.Warn("score cache put failed",
			slog.String("borrower_id", borrowerID),
			slog.String("error", err.Error()))
	}

	// 4. Re-run eligibility on open applications against the new score.
	if err := uc.reevaluateOpenApplications(ctx, borrower, now); err != nil {
		uc.logger.Warn("re-evaluation of open applications failed",
			slog.String("borrower_id", borrowerID),
			slog.String("error", err.Error()))
	}

	// 5. Publish the refresh event. The score is persisted; best effort.
	if err := uc.publisher.Publish(ctx, event.NewCreditScoreRefreshed(borrowerID, result.Score, previous)); err != nil {
		uc.logger.Warn("score refresh event publish failed",
			slog.String("borrower_id", borrowerID),
			slog.String("error", err.Error()))
	}

	return dto.CreditScoreResponse{
		BorrowerID: borrowerID,
		Score:      result.Score,
		Factors:    result.Factors,
	}, nil
}

func (uc *RefreshCreditScoreUseCase) reevaluateOpenApplications(
	ctx context.Context,
	borrower model.Borrower,
	now time.Time,
) error {
	apps, err := uc.appRepo.FindOpenByBorrowerID(ctx, borrower.ID())
	if err != nil {
		return fmt.Errorf("list open applications: %w", err)
	}
	if len(apps) == 0 {
		return nil
	}

	loans, err := uc.loanRepo.FindByBorrowerID(ctx, borrower.ID())
	if err != nil {
		return fmt.Errorf("list loans: %w", err)
	}
	outstanding := totalOutstanding(loans)

	for _, app := range apps {
		result := uc.eligibility.Evaluate(service.EligibilityInput{
			MonthlyIncome:    borrower.MonthlyIncome(),
			CreditScore:      borrower.CreditScore(),
			KYCVerified:      borrower.KYCStatus().IsVerified(),
			TotalOutstanding: outstanding,
			RequestedAmount:  app.RequestedAmount(),
			CollateralValue:  app.CollateralValue(),
			HasCollateral:    app.HasCollateral(),
		})
		updated, err := app.ApplyEvaluation(model.EligibilityOutcome{
			Status:         result.Status,
			Score:          result.Score,
			IncomeRatio:    result.IncomeRatio,
			DebtToIncome:   result.DebtToIncome,
			RiskTier:       result.RiskTier,
			DocumentStatus: result.DocumentStatus,
			Recommendation: result.Recommendation,
		}, borrower.CreditScore(), now)
		if err != nil {
			continue
		}
		if err := uc.appRepo.Save(ctx, updated); err != nil {
			return fmt.Errorf("save application %s: %w", app.ID(), err)
		}
	}
	return nil
}
