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
)

// Delinquency thresholds in days late. Crossing each one fans a notification
// out to the borrower and both back-office roles; the last one escalates the
// loan to collections and marks it defaulted.
var delinquencyThresholds = []int{60, 90, 180}

const defaultThresholdDays = 180

var notificationRoles = []string{"borrower", "loan_manager", "admin"}

// RunDelinquencySweepUseCase walks all active loans once per run, accrues
// penalties for the current day, notifies on threshold crossings, and
// escalates chronic delinquency to collections.
//
// Every external write is idempotent on a natural key, so re-running the
// sweep for the same day is safe: penalties key on (loan, day), notifications
// on their reference key, and collection cases on the loan.
type RunDelinquencySweepUseCase struct {
	loanRepo      port.LoanRepository
	paymentRepo   port.PaymentRepository
	penaltyRepo   port.PenaltyRepository
	caseRepo      port.CollectionCaseRepository
	notifications port.NotificationSink
	audit         port.AuditSink
	publisher     port.EventPublisher
	logger        *slog.Logger
}

// NewRunDelinquencySweepUseCase wires dependencies.
func NewRunDelinquencySweepUseCase(
	loanRepo port.LoanRepository,
	paymentRepo port.PaymentRepository,
	penaltyRepo port.PenaltyRepository,
	caseRepo port.CollectionCaseRepository,
	notifications port.NotificationSink,
	audit port.AuditSink,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RunDelinquencySweepUseCase {
	return &RunDelinquencySweepUseCase{
		loanRepo:      loanRepo,
		paymentRepo:   paymentRepo,
		penaltyRepo:   penaltyRepo,
		caseRepo:      caseRepo,
		notifications: notifications,
		audit:         audit,
		publisher:     publisher,
		logger:        logger,
	}
}

// Execute runs one sweep pass. A failure on one loan is logged and counted;
// the sweep always continues to the next loan.
func (uc *RunDelinquencySweepUseCase) Execute(ctx context.Context) (dto.SweepSummary, error) {
	now := time.Now().UTC()
	summary := dto.SweepSummary{RunDate: now}

	loans, err := uc.loanRepo.FindActive(ctx)
	if err != nil {
		return summary, fmt.Errorf("list active loans: %w", err)
	}

	for _, loan := range loans {
		summary.LoansScanned++
		sweepLoansScanned.Inc()

		if err := uc.sweepLoan(ctx, loan, now, &summary); err != nil {
			summary.Errors++
			uc.logger.Error("sweep failed for loan",
				slog.String("loan_id", loan.ID()),
				slog.String("error", err.Error()))
		}
	}

	uc.logger.Info("delinquency sweep finished",
		slog.Int("loans_scanned", summary.LoansScanned),
		slog.Int("penalties_applied", summary.PenaltiesApplied),
		slog.Int("notifications_sent", summary.NotificationsSent),
		slog.Int("cases_opened", summary.CasesOpened),
		slog.Int("loans_defaulted", summary.LoansDefaulted),
		slog.Int("errors", summary.Errors))

	return summary, nil
}

func (uc *RunDelinquencySweepUseCase) sweepLoan(
	ctx context.Context,
	loan model.Loan,
	now time.Time,
	summary *dto.SweepSummary,
) error {
	// Lateness relative to the due date plus the loan's grace period. The fee
	// itself is recomputed below per day; only DaysLate matters here.
	lateness := service.ComputeLateFee(
		now, loan.NextDueDate(),
		loan.GracePeriodDays(),
		decimal.Zero, decimal.Zero,
		decimal.Zero,
	)
	if lateness.DaysLate == 0 {
		return nil
	}
	daysLate := lateness.DaysLate

	// 1. Accrue today's penalty: rate applied to the outstanding balance,
	//    plus the flat fee on the loan's first-ever accrual.
	penaltyAmount := loan.OutstandingBalance().
		Mul(loan.PenaltyRatePercent()).
		Div(decimal.NewFromInt(100)).
		Round(2)
	priorAccruals, err := uc.penaltyRepo.CountByLoanID(ctx, loan.ID())
	if err != nil {
		return fmt.Errorf("count penalties: %w", err)
	}
	if priorAccruals == 0 {
		penaltyAmount = penaltyAmount.Add(loan.PenaltyFlat())
	}

	if penaltyAmount.GreaterThan(decimal.Zero) {
		penalty, err := model.NewLoanPenalty(loan.ID(), now, daysLate, penaltyAmount, now)
		if err != nil {
			return fmt.Errorf("build penalty: %w", err)
		}
		inserted, err := uc.penaltyRepo.InsertIfAbsent(ctx, penalty)
		if err != nil {
			return fmt.Errorf("insert penalty: %w", err)
		}
		// The balance bump pairs with the penalty row; an already-present row
		// means a previous run of today's sweep did both.
		if inserted {
			loan, err = uc.addPenaltyToLoan(ctx, loan, penaltyAmount, daysLate, now)
			if err != nil {
				return fmt.Errorf("apply penalty: %w", err)
			}
			summary.PenaltiesApplied++
			sweepPenaltiesApplied.Inc()
		}
	}

	// 2. Threshold notifications.
	for _, threshold := range delinquencyThresholds {
		if daysLate < threshold {
			continue
		}
		severity := model.SeverityWarning
		if threshold >= defaultThresholdDays {
			severity = model.SeverityCritical
		}
		for _, role := range notificationRoles {
			n := model.Notification{
				ReferenceKey: fmt.Sprintf("delinquency:%s:%d:%s", loan.ID(), threshold, role),
				TargetRole:   role,
				BorrowerID:   loan.BorrowerID(),
				Type:         "loan_delinquency",
				Title:        fmt.Sprintf("Loan %d days past due", threshold),
				Message: fmt.Sprintf("Loan %s is %d days past due with %s outstanding.",
					loan.ID(), daysLate, loan.OutstandingBalance().String()),
				Severity:  severity,
				CreatedAt: now,
			}
			// A sink failure never blocks the rest of the fan-out or the
			// escalation below; the idempotency key covers the next run.
			sent, err := uc.notifications.Notify(ctx, n)
			if err != nil {
				uc.logger.Warn("delinquency notification failed",
					slog.String("loan_id", loan.ID()),
					slog.String("role", role),
					slog.Int("threshold_days", threshold),
					slog.String("error", err.Error()))
				continue
			}
			if sent {
				summary.NotificationsSent++
				sweepNotificationsSent.Inc()
			}
		}
	}

	// 3. Terminal escalation: collections case and default.
	if daysLate >= defaultThresholdDays {
		if err := uc.escalate(ctx, loan, daysLate, now, summary); err != nil {
			return fmt.Errorf("escalate: %w", err)
		}
	}

	return nil
}

// addPenaltyToLoan bumps the outstanding balance. One reload-and-retry on a
// version conflict covers a concurrent payment landing mid-sweep.
func (uc *RunDelinquencySweepUseCase) addPenaltyToLoan(
	ctx context.Context,
	loan model.Loan,
	amount decimal.Decimal,
	daysLate int,
	now time.Time,
) (model.Loan, error) {
	updated, err := loan.AddPenalty(amount, daysLate, now)
	if err != nil {
		return loan, err
	}
	err = uc.loanRepo.Save(ctx, updated)
	if errors.Is(err, port.ErrVersionConflict) {
		loan, err = uc.loanRepo.FindByID(ctx, loan.ID())
		if err != nil {
			return loan, err
		}
		updated, err = loan.AddPenalty(amount, daysLate, now)
		if err != nil {
			return loan, err
		}
		err = uc.loanRepo.Save(ctx, updated)
	}
	if err != nil {
		return loan, err
	}
	if perr := uc.publisher.Publish(ctx, updated.DomainEvents()...); perr != nil {
		uc.logger.Warn("penalty event publish failed",
			slog.String("loan_id", updated.ID()),
			slog.String("error", perr.Error()))
	}
	return updated.ClearEvents(), nil
}

func (uc *RunDelinquencySweepUseCase) escalate(
	ctx context.Context,
	loan model.Loan,
	daysLate int,
	now time.Time,
	summary *dto.SweepSummary,
) error {
	reason := fmt.Sprintf("%d days delinquent", daysLate)
	c, err := model.NewCollectionCase(loan.ID(), reason, daysLate, now)
	if err != nil {
		return fmt.Errorf("build case: %w", err)
	}
	opened, err := uc.caseRepo.InsertIfAbsent(ctx, c)
	if err != nil {
		return fmt.Errorf("open case: %w", err)
	}
	if opened {
		summary.CasesOpened++
		sweepCasesOpened.Inc()
	}

	defaulted, err := loan.MarkDefaulted(daysLate, now)
	if err != nil {
		return fmt.Errorf("mark defaulted: %w", err)
	}
	// No events means the loan was already defaulted by a previous run.
	if len(defaulted.DomainEvents()) == 0 {
		return nil
	}
	if err := uc.loanRepo.Save(ctx, defaulted); err != nil {
		return fmt.Errorf("save defaulted loan: %w", err)
	}
	summary.LoansDefaulted++

	if perr := uc.publisher.Publish(ctx, defaulted.DomainEvents()...); perr != nil {
		uc.logger.Warn("default event publish failed",
			slog.String("loan_id", loan.ID()),
			slog.String("error", perr.Error()))
	}

	lastPaid := "none"
	if when, ok, err := uc.paymentRepo.LastPaymentDate(ctx, loan.ID()); err == nil && ok {
		lastPaid = when.Format(time.RFC3339)
	}
	uc.audit.Record(ctx, "system", "loan.defaulted", "loan", loan.ID(),
		fmt.Sprintf("days_late=%d outstanding=%s last_payment=%s",
			daysLate, loan.OutstandingBalance().String(), lastPaid))

	return nil
}
