package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/application/usecase"
	"github.com/ledgerline/credit-engine/internal/domain/event"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
)

type disburseFixture struct {
	appRepo   *mockApplicationRepository
	ledger    *mockLedgerStore
	publisher *mockEventPublisher
	audit     *mockAuditSink
	refresher *mockScoreRefresher
	uc        *usecase.DisburseLoanUseCase
}

func newDisburseFixture() *disburseFixture {
	f := &disburseFixture{
		appRepo:   newMockApplicationRepository(),
		ledger:    &mockLedgerStore{},
		publisher: &mockEventPublisher{},
		audit:     &mockAuditSink{},
		refresher: &mockScoreRefresher{},
	}
	f.uc = usecase.NewDisburseLoanUseCase(
		f.appRepo, f.ledger, f.publisher, f.audit, f.refresher, testLogger(),
	)
	return f
}

func approvedApplication(t *testing.T, amount decimal.Decimal) model.LoanApplication {
	t.Helper()
	now := time.Now().UTC()
	app, err := model.NewLoanApplication(
		"borrower-1", amount, decimal.Zero, false, "working capital", 700, testTerms(), now,
	)
	require.NoError(t, err)
	app, err = app.Approve(now)
	require.NoError(t, err)
	return app.ClearEvents()
}

func TestDisburseLoan_DerivesTotals(t *testing.T) {
	f := newDisburseFixture()
	app := approvedApplication(t, decimal.NewFromInt(100000))
	f.appRepo.apps[app.ID()] = app

	resp, err := f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		ApplicationID:      app.ID(),
		DisbursementMethod: "bank_transfer",
		Reference:          "TXN-42",
	})

	require.NoError(t, err)
	// 100000 at 12% over 12 months, standard amortization.
	assert.True(t, resp.MonthlyPayment.Equal(decimal.NewFromFloat(8884.88)),
		"monthly payment = %s", resp.MonthlyPayment)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(106618.56)))
	assert.True(t, resp.OutstandingBalance.Equal(resp.TotalAmount))
	assert.Equal(t, "active", resp.Status)
	assert.True(t, strings.HasPrefix(resp.ReceiptNumber, "RCPT-"))

	require.Len(t, f.ledger.disbursedLoans, 1)
	require.Len(t, f.ledger.receipts, 1)
	assert.Equal(t, resp.ReceiptNumber, f.ledger.receipts[0].ReceiptNumber)
	require.Len(t, f.ledger.disbursedApps, 1)
	assert.Equal(t, "disbursed", f.ledger.disbursedApps[0].Status().String())

	assert.Equal(t, []string{"borrower-1"}, f.refresher.calls)
	assert.NotEmpty(t, f.publisher.publishedEvents)
	require.Len(t, f.audit.entries, 1)
	assert.Contains(t, f.audit.entries[0], "loan.disbursed")
}

func TestDisburseLoan_CallerSuppliedTotals(t *testing.T) {
	f := newDisburseFixture()
	app := approvedApplication(t, decimal.NewFromInt(100000))
	f.appRepo.apps[app.ID()] = app

	resp, err := f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		ApplicationID:      app.ID(),
		DisbursementMethod: "bank_transfer",
		MonthlyPayment:     decimal.NewFromInt(9000),
		TotalAmount:        decimal.NewFromInt(108000),
	})

	require.NoError(t, err)
	assert.True(t, resp.MonthlyPayment.Equal(decimal.NewFromInt(9000)))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(108000)))
}

func TestDisburseLoan_RejectsUnapprovedApplication(t *testing.T) {
	f := newDisburseFixture()
	now := time.Now().UTC()
	app, err := model.NewLoanApplication(
		"borrower-1", decimal.NewFromInt(50000), decimal.Zero, false, "", 700, testTerms(), now,
	)
	require.NoError(t, err)
	f.appRepo.apps[app.ID()] = app.ClearEvents()

	_, err = f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		ApplicationID:      app.ID(),
		DisbursementMethod: "bank_transfer",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrInvalidInput))
	assert.Empty(t, f.ledger.disbursedLoans, "nothing may be written for a pending application")
}

func TestDisburseLoan_LedgerFailureAborts(t *testing.T) {
	f := newDisburseFixture()
	app := approvedApplication(t, decimal.NewFromInt(100000))
	f.appRepo.apps[app.ID()] = app

	f.ledger.disburseFunc = func(context.Context, model.Loan, model.DisbursementReceipt, model.LoanApplication) error {
		return errors.New("transaction rolled back")
	}

	_, err := f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		ApplicationID:      app.ID(),
		DisbursementMethod: "bank_transfer",
	})

	require.Error(t, err)
	assert.Empty(t, f.publisher.publishedEvents)
	assert.Empty(t, f.refresher.calls)
	assert.Empty(t, f.audit.entries)
}

func TestDisburseLoan_PublishFailureDoesNotFailDisbursal(t *testing.T) {
	f := newDisburseFixture()
	app := approvedApplication(t, decimal.NewFromInt(100000))
	f.appRepo.apps[app.ID()] = app

	f.publisher.publishFunc = func(context.Context, ...event.DomainEvent) error {
		return errors.New("broker unavailable")
	}

	resp, err := f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		ApplicationID:      app.ID(),
		DisbursementMethod: "bank_transfer",
	})

	require.NoError(t, err, "the disbursal is committed; a broker outage must not surface")
	assert.Equal(t, "active", resp.Status)
	require.Len(t, f.ledger.disbursedLoans, 1)
	require.Len(t, f.audit.entries, 1)
}

func TestDisburseLoan_Validation(t *testing.T) {
	f := newDisburseFixture()

	_, err := f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		DisbursementMethod: "bank_transfer",
	})
	assert.True(t, errors.Is(err, port.ErrInvalidInput))

	_, err = f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		ApplicationID: "app-1",
	})
	assert.True(t, errors.Is(err, port.ErrInvalidInput))
}

func TestDisburseLoan_ApplicationNotFound(t *testing.T) {
	f := newDisburseFixture()

	_, err := f.uc.Execute(context.Background(), dto.DisburseLoanRequest{
		ApplicationID:      "missing",
		DisbursementMethod: "bank_transfer",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrNotFound))
}
