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
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

type sweepFixture struct {
	loanRepo      *mockLoanRepository
	paymentRepo   *mockPaymentRepository
	penaltyRepo   *mockPenaltyRepository
	caseRepo      *mockCollectionCaseRepository
	notifications *mockNotificationSink
	audit         *mockAuditSink
	publisher     *mockEventPublisher
	uc            *usecase.RunDelinquencySweepUseCase
}

func newSweepFixture() *sweepFixture {
	f := &sweepFixture{
		loanRepo:      newMockLoanRepository(),
		paymentRepo:   newMockPaymentRepository(),
		penaltyRepo:   newMockPenaltyRepository(),
		caseRepo:      newMockCollectionCaseRepository(),
		notifications: newMockNotificationSink(),
		audit:         &mockAuditSink{},
		publisher:     &mockEventPublisher{},
	}
	f.uc = usecase.NewRunDelinquencySweepUseCase(
		f.loanRepo, f.paymentRepo, f.penaltyRepo, f.caseRepo,
		f.notifications, f.audit, f.publisher, testLogger(),
	)
	return f
}

func TestRunDelinquencySweep_CurrentLoanUntouched(t *testing.T) {
	f := newSweepFixture()
	due := time.Now().UTC().AddDate(0, 0, 10)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.LoansScanned)
	assert.Equal(t, 0, summary.PenaltiesApplied)
	assert.Equal(t, 0, summary.NotificationsSent)
	assert.Equal(t, 0, summary.CasesOpened)
	assert.Equal(t, 0, summary.LoansDefaulted)
}

func TestRunDelinquencySweep_AppliesPenaltyAndNotifies(t *testing.T) {
	f := newSweepFixture()
	// Roughly 65 days past the grace window: crosses the 60-day threshold
	// but stays short of escalation.
	due := time.Now().UTC().AddDate(0, 0, -70)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.LoansScanned)
	assert.Equal(t, 1, summary.PenaltiesApplied)
	assert.Equal(t, 3, summary.NotificationsSent, "borrower, loan_manager and admin at the 60-day threshold")
	assert.Equal(t, 0, summary.CasesOpened)
	assert.Equal(t, 0, summary.LoansDefaulted)
	assert.Equal(t, 0, summary.Errors)

	// 2% of 10000 plus the first-accrual flat fee of 50.
	loan := f.loanRepo.loans["loan-1"]
	assert.True(t, loan.OutstandingBalance().Equal(decimal.NewFromInt(10250)),
		"outstanding = %s", loan.OutstandingBalance())
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusActive))
}

func TestRunDelinquencySweep_SecondRunIsNoOp(t *testing.T) {
	f := newSweepFixture()
	due := time.Now().UTC().AddDate(0, 0, -70)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	_, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.LoansScanned)
	assert.Equal(t, 0, summary.PenaltiesApplied, "today's penalty row already exists")
	assert.Equal(t, 0, summary.NotificationsSent, "threshold notifications already delivered")
	assert.Equal(t, 0, summary.Errors)

	loan := f.loanRepo.loans["loan-1"]
	assert.True(t, loan.OutstandingBalance().Equal(decimal.NewFromInt(10250)),
		"balance must not be bumped twice, got %s", loan.OutstandingBalance())
}

func TestRunDelinquencySweep_FlatFeeOnlyOnFirstAccrual(t *testing.T) {
	f := newSweepFixture()
	now := time.Now().UTC()
	due := now.AddDate(0, 0, -70)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	// A penalty from yesterday's run already exists.
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	prior := model.ReconstructLoanPenalty("pen-0", "loan-1", yesterday, 64, decimal.NewFromInt(250), yesterday)
	_, err := f.penaltyRepo.InsertIfAbsent(context.Background(), prior)
	require.NoError(t, err)

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.PenaltiesApplied)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	row, ok := f.penaltyRepo.rows[penaltyKey{loanID: "loan-1", day: today}]
	require.True(t, ok, "today's penalty row must exist")
	assert.True(t, row.Amount().Equal(decimal.NewFromInt(200)),
		"no flat fee on repeat accruals, got %s", row.Amount())
}

func TestRunDelinquencySweep_EscalatesChronicDelinquency(t *testing.T) {
	f := newSweepFixture()
	due := time.Now().UTC().AddDate(0, 0, -186)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.PenaltiesApplied)
	assert.Equal(t, 9, summary.NotificationsSent, "three roles at each of the 60, 90 and 180 day thresholds")
	assert.Equal(t, 1, summary.CasesOpened)
	assert.Equal(t, 1, summary.LoansDefaulted)

	loan := f.loanRepo.loans["loan-1"]
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusDefaulted))
	assert.True(t, loan.OutstandingBalance().Equal(decimal.NewFromInt(10250)))

	_, ok := f.caseRepo.cases["loan-1"]
	assert.True(t, ok, "collection case must be opened")
	assert.Len(t, f.publisher.publishedEvents, 2, "penalty applied and loan defaulted")
	require.Len(t, f.audit.entries, 1)
	assert.Contains(t, f.audit.entries[0], "loan.defaulted")

	// The defaulted loan drops out of the active set; a re-run sees nothing.
	again, err := f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.LoansScanned)
}

func TestRunDelinquencySweep_CriticalSeverityAtDefaultThreshold(t *testing.T) {
	f := newSweepFixture()
	due := time.Now().UTC().AddDate(0, 0, -186)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	_, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	warnings, criticals := 0, 0
	for _, n := range f.notifications.delivered {
		switch n.Severity {
		case model.SeverityWarning:
			warnings++
		case model.SeverityCritical:
			criticals++
		}
	}
	assert.Equal(t, 6, warnings, "60 and 90 day thresholds")
	assert.Equal(t, 3, criticals, "180 day threshold")
}

func TestRunDelinquencySweep_NotifyFailureDoesNotBlockEscalation(t *testing.T) {
	f := newSweepFixture()
	due := time.Now().UTC().AddDate(0, 0, -186)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	f.notifications.notifyFunc = func(context.Context, model.Notification) (bool, error) {
		return false, errors.New("sink unavailable")
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Errors, "a sink outage is logged, never counted as a loan failure")
	assert.Equal(t, 0, summary.NotificationsSent)
	assert.Equal(t, 1, summary.CasesOpened, "collections must still escalate")
	assert.Equal(t, 1, summary.LoansDefaulted)
	assert.True(t, f.loanRepo.loans["loan-1"].Status().Equal(valueobject.LoanStatusDefaulted))
}

func TestRunDelinquencySweep_FailedLoanDoesNotStopSweep(t *testing.T) {
	f := newSweepFixture()
	due := time.Now().UTC().AddDate(0, 0, -70)
	f.loanRepo.loans["loan-bad"] = reconstructedLoan("loan-bad", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)
	f.loanRepo.loans["loan-good"] = reconstructedLoan("loan-good", "borrower-2", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	f.loanRepo.saveFunc = func(_ context.Context, loan model.Loan) error {
		if loan.ID() == "loan-bad" {
			return errors.New("storage unavailable")
		}
		f.loanRepo.loans[loan.ID()] = loan.ClearEvents()
		return nil
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.LoansScanned)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.PenaltiesApplied, "the healthy loan still accrues")
	assert.Equal(t, 3, summary.NotificationsSent)
}

func TestRunDelinquencySweep_RetriesBalanceUpdateOnVersionConflict(t *testing.T) {
	f := newSweepFixture()
	due := time.Now().UTC().AddDate(0, 0, -70)
	f.loanRepo.loans["loan-1"] = reconstructedLoan("loan-1", "borrower-1", valueobject.LoanStatusActive, decimal.NewFromInt(10000), due)

	conflicted := false
	f.loanRepo.saveFunc = func(_ context.Context, loan model.Loan) error {
		if !conflicted {
			conflicted = true
			return port.ErrVersionConflict
		}
		f.loanRepo.loans[loan.ID()] = loan.ClearEvents()
		return nil
	}

	summary, err := f.uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.PenaltiesApplied)
	assert.Equal(t, 0, summary.Errors)
	assert.Equal(t, 2, f.loanRepo.saves, "one failed save plus the retry")

	loan := f.loanRepo.loans["loan-1"]
	assert.True(t, loan.OutstandingBalance().Equal(decimal.NewFromInt(10250)))
}
