package usecase

import (
	"context"
	"errors"
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

// RecordPaymentUseCase applies a payment to a loan: it computes the late fee
// against the loan's due date, writes the payment row and the balance update
// in one transaction, and refreshes the borrower's score.
type RecordPaymentUseCase struct {
	loanRepo  port.LoanRepository
	ledger    port.LedgerStore
	publisher port.EventPublisher
	audit     port.AuditSink
	refresher ScoreRefresher
	logger    *slog.Logger
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	loanRepo port.LoanRepository,
	ledger port.LedgerStore,
	publisher port.EventPublisher,
	audit port.AuditSink,
	refresher ScoreRefresher,
	logger *slog.Logger,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		loanRepo:  loanRepo,
		ledger:    ledger,
		publisher: publisher,
		audit:     audit,
		refresher: refresher,
		logger:    logger,
	}
}

// Execute records a payment against a loan. A version conflict on the loan
// row means a concurrent writer got there first; the use case reloads and
// retries once before giving up.
func (uc *RecordPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordPaymentRequest,
) (dto.PaymentResponse, error) {
	now := time.Now().UTC()

	if req.LoanID == "" {
		return dto.PaymentResponse{}, fmt.Errorf("%w: loan ID is required", port.ErrInvalidInput)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return dto.PaymentResponse{}, fmt.Errorf("%w: payment amount must be positive", port.ErrInvalidInput)
	}
	paymentDate := req.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = now
	}

	resp, err := uc.applyOnce(ctx, req, paymentDate, now)
	if errors.Is(err, port.ErrVersionConflict) {
		resp, err = uc.applyOnce(ctx, req, paymentDate, now)
	}
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	paymentsRecorded.Inc()

	// Refresh the borrower's score. Best effort: the payment already stands.
	if _, rerr := uc.refresher.Execute(ctx, resp.borrowerID); rerr != nil {
		uc.logger.Warn("post-payment score refresh failed",
			slog.String("borrower_id", resp.borrowerID),
			slog.String("error", rerr.Error()))
	}

	return resp.PaymentResponse, nil
}

type paymentOutcome struct {
	dto.PaymentResponse
	borrowerID string
}

func (uc *RecordPaymentUseCase) applyOnce(
	ctx context.Context,
	req dto.RecordPaymentRequest,
	paymentDate, now time.Time,
) (paymentOutcome, error) {
	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return paymentOutcome{}, fmt.Errorf("find loan: %w", err)
	}
	dueDate := loan.NextDueDate()

	// 2. Compute lateness against the due date plus grace.
	fee := service.ComputeLateFee(
		paymentDate, dueDate,
		loan.GracePeriodDays(),
		loan.PenaltyRatePercent(), loan.PenaltyFlat(),
		loan.MonthlyPayment(),
	)
	status := valueobject.PaymentStatusPaid
	if fee.DaysLate > 0 {
		status = valueobject.PaymentStatusLate
	}
	if req.StatusOverride != "" {
		status, err = valueobject.NewPaymentStatus(req.StatusOverride)
		if err != nil {
			return paymentOutcome{}, fmt.Errorf("%w: %s", port.ErrInvalidInput, err)
		}
	}

	// 3. Build the payment record.
	payment, err := model.NewPayment(
		loan.ID(), req.Amount, fee.LateFee,
		paymentDate, dueDate, fee.DaysLate, status, now,
	)
	if err != nil {
		return paymentOutcome{}, fmt.Errorf("%w: %s", port.ErrInvalidInput, err)
	}

	// 4. Apply to the aggregate.
	loan, err = loan.ApplyPayment(req.Amount, now)
	if err != nil {
		return paymentOutcome{}, fmt.Errorf("%w: %s", port.ErrInvalidInput, err)
	}

	// 5. Commit payment row and balance update atomically.
	if err := uc.ledger.ApplyPayment(ctx, loan, payment); err != nil {
		return paymentOutcome{}, fmt.Errorf("apply payment: %w", err)
	}

	// 6. Publish events. The payment is committed at this point; a broker
	//    outage must not make it look failed to the caller.
	if perr := uc.publisher.Publish(ctx, loan.DomainEvents()...); perr != nil {
		uc.logger.Warn("payment event publish failed",
			slog.String("loan_id", loan.ID()),
			slog.String("error", perr.Error()))
	}

	uc.audit.Record(ctx, loan.BorrowerID(), "payment.recorded", "loan", loan.ID(),
		fmt.Sprintf("amount=%s late_fee=%s days_late=%d receipt=%s",
			req.Amount.String(), fee.LateFee.String(), fee.DaysLate, payment.ReceiptNumber()))

	return paymentOutcome{
		PaymentResponse: dto.PaymentResponse{
			PaymentID:          payment.ID(),
			LoanID:             loan.ID(),
			Amount:             req.Amount,
			LateFee:            fee.LateFee,
			DaysLate:           fee.DaysLate,
			Status:             status.String(),
			ReceiptNumber:      payment.ReceiptNumber(),
			OutstandingBalance: loan.OutstandingBalance(),
			LoanStatus:         loan.Status().String(),
		},
		borrowerID: loan.BorrowerID(),
	}, nil
}
