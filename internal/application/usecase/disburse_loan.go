package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
)

// DisburseLoanUseCase converts an approved application into an active loan.
// The loan row, its disbursement receipt, and the application status flip are
// written in one transaction through the ledger store; either all three land
// or none do.
type DisburseLoanUseCase struct {
	appRepo   port.LoanApplicationRepository
	ledger    port.LedgerStore
	publisher port.EventPublisher
	audit     port.AuditSink
	refresher ScoreRefresher
	logger    *slog.Logger
}

// NewDisburseLoanUseCase wires dependencies.
func NewDisburseLoanUseCase(
	appRepo port.LoanApplicationRepository,
	ledger port.LedgerStore,
	publisher port.EventPublisher,
	audit port.AuditSink,
	refresher ScoreRefresher,
	logger *slog.Logger,
) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{
		appRepo:   appRepo,
		ledger:    ledger,
		publisher: publisher,
		audit:     audit,
		refresher: refresher,
		logger:    logger,
	}
}

// Execute disburses a loan for an approved application.
func (uc *DisburseLoanUseCase) Execute(
	ctx context.Context,
	req dto.DisburseLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	if req.ApplicationID == "" {
		return dto.LoanResponse{}, fmt.Errorf("%w: application ID is required", port.ErrInvalidInput)
	}
	if req.DisbursementMethod == "" {
		return dto.LoanResponse{}, fmt.Errorf("%w: disbursement method is required", port.ErrInvalidInput)
	}

	// 1. Retrieve the approved application.
	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find application: %w", err)
	}

	// 2. Derive totals when the caller did not supply them.
	terms := app.Terms()
	monthly, total := req.MonthlyPayment, req.TotalAmount
	if monthly.LessThanOrEqual(decimal.Zero) || total.LessThanOrEqual(decimal.Zero) {
		totals := service.ComputeTotals(
			app.RequestedAmount(),
			terms.InterestRatePercent.InexactFloat64(),
			terms.TermMonths,
			terms.InterestType,
		)
		monthly, total = totals.MonthlyPayment, totals.TotalAmount
	}

	// 3. Build the loan and its receipt.
	receiptNumber := "RCPT-" + strings.ToUpper(uuid.New().String()[:8])
	loan, err := model.NewLoan(
		app.ID(), app.BorrowerID(),
		app.RequestedAmount(), terms,
		monthly, total,
		req.DisbursementMethod, receiptNumber,
		now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: %s", port.ErrInvalidInput, err)
	}
	receipt := model.DisbursementReceipt{
		ID:            uuid.New().String(),
		LoanID:        loan.ID(),
		ApplicationID: app.ID(),
		Method:        req.DisbursementMethod,
		Reference:     req.Reference,
		ReceiptNumber: receiptNumber,
		DisbursedAt:   now,
	}

	// 4. Flip the application; the transition guards against double disbursal.
	app, err = app.MarkDisbursed(now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("%w: application is not approved", port.ErrInvalidInput)
	}

	// 5. Commit loan, receipt, and application flip atomically.
	if err := uc.ledger.Disburse(ctx, loan, receipt, app); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("disburse: %w", err)
	}
	loansDisbursed.Inc()

	// 6. Publish events. The disbursal is committed; publishing is best effort.
	if perr := uc.publisher.Publish(ctx, loan.DomainEvents()...); perr != nil {
		uc.logger.Warn("disbursal event publish failed",
			slog.String("loan_id", loan.ID()),
			slog.String("error", perr.Error()))
	}

	uc.audit.Record(ctx, "system", "loan.disbursed", "loan", loan.ID(),
		fmt.Sprintf("application=%s method=%s receipt=%s total=%s",
			app.ID(), req.DisbursementMethod, receiptNumber, total.String()))

	// 7. Refresh the borrower's score. Best effort: disbursal already stands.
	if _, err := uc.refresher.Execute(ctx, loan.BorrowerID()); err != nil {
		uc.logger.Warn("post-disbursal score refresh failed",
			slog.String("borrower_id", loan.BorrowerID()),
			slog.String("error", err.Error()))
	}

	return toLoanResponse(loan), nil
}
