package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/application/dto"
	"github.com/ledgerline/credit-engine/internal/domain/event"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/service"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockBorrowerRepository struct {
	borrowers     map[string]model.Borrower
	savedScores   []model.Borrower
	saveScoreFunc func(ctx context.Context, b model.Borrower) error
}

func newMockBorrowerRepository() *mockBorrowerRepository {
	return &mockBorrowerRepository{borrowers: make(map[string]model.Borrower)}
}

func (m *mockBorrowerRepository) FindByID(_ context.Context, id string) (model.Borrower, error) {
	b, ok := m.borrowers[id]
	if !ok {
		return model.Borrower{}, fmt.Errorf("borrower %s: %w", id, port.ErrNotFound)
	}
	return b, nil
}

func (m *mockBorrowerRepository) SaveCreditScore(ctx context.Context, b model.Borrower) error {
	if m.saveScoreFunc != nil {
		return m.saveScoreFunc(ctx, b)
	}
	m.savedScores = append(m.savedScores, b)
	m.borrowers[b.ID()] = b
	return nil
}

type mockLoanRepository struct {
	loans    map[string]model.Loan
	saveFunc func(ctx context.Context, loan model.Loan) error
	saves    int
}

func newMockLoanRepository() *mockLoanRepository {
	return &mockLoanRepository{loans: make(map[string]model.Loan)}
}

func (m *mockLoanRepository) FindByID(_ context.Context, id string) (model.Loan, error) {
	l, ok := m.loans[id]
	if !ok {
		return model.Loan{}, fmt.Errorf("loan %s: %w", id, port.ErrNotFound)
	}
	return l, nil
}

func (m *mockLoanRepository) FindByBorrowerID(_ context.Context, borrowerID string) ([]model.Loan, error) {
	var out []model.Loan
	for _, l := range m.loans {
		if l.BorrowerID() == borrowerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLoanRepository) FindActive(_ context.Context) ([]model.Loan, error) {
	var out []model.Loan
	for _, l := range m.loans {
		if l.Status().String() == "active" {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	m.saves++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.loans[loan.ID()] = loan.ClearEvents()
	return nil
}

type mockApplicationRepository struct {
	apps     map[string]model.LoanApplication
	saveFunc func(ctx context.Context, app model.LoanApplication) error
	saves    int
}

func newMockApplicationRepository() *mockApplicationRepository {
	return &mockApplicationRepository{apps: make(map[string]model.LoanApplication)}
}

func (m *mockApplicationRepository) FindByID(_ context.Context, id string) (model.LoanApplication, error) {
	a, ok := m.apps[id]
	if !ok {
		return model.LoanApplication{}, fmt.Errorf("application %s: %w", id, port.ErrNotFound)
	}
	return a, nil
}

func (m *mockApplicationRepository) FindByBorrowerID(_ context.Context, borrowerID string) ([]model.LoanApplication, error) {
	var out []model.LoanApplication
	for _, a := range m.apps {
		if a.BorrowerID() == borrowerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepository) FindOpenByBorrowerID(_ context.Context, borrowerID string) ([]model.LoanApplication, error) {
	var out []model.LoanApplication
	for _, a := range m.apps {
		if a.BorrowerID() == borrowerID && !a.Status().IsTerminal() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	m.saves++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.apps[app.ID()] = app.ClearEvents()
	return nil
}

type mockPaymentRepository struct {
	payments map[string][]model.Payment
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{payments: make(map[string][]model.Payment)}
}

func (m *mockPaymentRepository) ListByLoanID(_ context.Context, loanID string) ([]model.Payment, error) {
	return m.payments[loanID], nil
}

func (m *mockPaymentRepository) ListByBorrowerID(_ context.Context, _ string) ([]model.Payment, error) {
	var out []model.Payment
	for _, ps := range m.payments {
		out = append(out, ps...)
	}
	return out, nil
}

func (m *mockPaymentRepository) LastPaymentDate(_ context.Context, loanID string) (time.Time, bool, error) {
	ps := m.payments[loanID]
	if len(ps) == 0 {
		return time.Time{}, false, nil
	}
	last := ps[0].PaymentDate()
	for _, p := range ps[1:] {
		if p.PaymentDate().After(last) {
			last = p.PaymentDate()
		}
	}
	return last, true, nil
}

type penaltyKey struct {
	loanID string
	day    time.Time
}

type mockPenaltyRepository struct {
	rows map[penaltyKey]model.LoanPenalty
}

func newMockPenaltyRepository() *mockPenaltyRepository {
	return &mockPenaltyRepository{rows: make(map[penaltyKey]model.LoanPenalty)}
}

func (m *mockPenaltyRepository) CountByLoanID(_ context.Context, loanID string) (int, error) {
	count := 0
	for k := range m.rows {
		if k.loanID == loanID {
			count++
		}
	}
	return count, nil
}

func (m *mockPenaltyRepository) InsertIfAbsent(_ context.Context, p model.LoanPenalty) (bool, error) {
	key := penaltyKey{loanID: p.LoanID(), day: p.PenaltyDate()}
	if _, exists := m.rows[key]; exists {
		return false, nil
	}
	m.rows[key] = p
	return true, nil
}

type mockCollectionCaseRepository struct {
	cases map[string]model.CollectionCase
}

func newMockCollectionCaseRepository() *mockCollectionCaseRepository {
	return &mockCollectionCaseRepository{cases: make(map[string]model.CollectionCase)}
}

func (m *mockCollectionCaseRepository) InsertIfAbsent(_ context.Context, c model.CollectionCase) (bool, error) {
	if _, exists := m.cases[c.LoanID()]; exists {
		return false, nil
	}
	m.cases[c.LoanID()] = c
	return true, nil
}

func (m *mockCollectionCaseRepository) FindByLoanID(_ context.Context, loanID string) (model.CollectionCase, error) {
	c, ok := m.cases[loanID]
	if !ok {
		return model.CollectionCase{}, fmt.Errorf("case for %s: %w", loanID, port.ErrNotFound)
	}
	return c, nil
}

type mockNotificationSink struct {
	notifyFunc func(ctx context.Context, n model.Notification) (bool, error)
	delivered  map[string]model.Notification
}

func newMockNotificationSink() *mockNotificationSink {
	return &mockNotificationSink{delivered: make(map[string]model.Notification)}
}

func (m *mockNotificationSink) Notify(ctx context.Context, n model.Notification) (bool, error) {
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, n)
	}
	if err := n.Validate(); err != nil {
		return false, err
	}
	if _, exists := m.delivered[n.ReferenceKey]; exists {
		return false, nil
	}
	m.delivered[n.ReferenceKey] = n
	return true, nil
}

type mockAuditSink struct {
	entries []string
}

func (m *mockAuditSink) Record(_ context.Context, _, action, entity, entityID, details string) {
	m.entries = append(m.entries, fmt.Sprintf("%s %s/%s %s", action, entity, entityID, details))
}

type mockScoreCache struct {
	putFunc func(ctx context.Context, borrowerID string, result service.CreditScoreResult) error
	stored  map[string]service.CreditScoreResult
}

func newMockScoreCache() *mockScoreCache {
	return &mockScoreCache{stored: make(map[string]service.CreditScoreResult)}
}

func (m *mockScoreCache) Put(ctx context.Context, borrowerID string, result service.CreditScoreResult) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, borrowerID, result)
	}
	m.stored[borrowerID] = result
	return nil
}

func (m *mockScoreCache) Get(_ context.Context, borrowerID string) (service.CreditScoreResult, bool, error) {
	r, ok := m.stored[borrowerID]
	return r, ok, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockLedgerStore struct {
	disburseFunc     func(ctx context.Context, loan model.Loan, receipt model.DisbursementReceipt, app model.LoanApplication) error
	applyPaymentFunc func(ctx context.Context, loan model.Loan, payment model.Payment) error

	disbursedLoans  []model.Loan
	receipts        []model.DisbursementReceipt
	disbursedApps   []model.LoanApplication
	appliedLoans    []model.Loan
	appliedPayments []model.Payment
	applyCalls      int
}

func (m *mockLedgerStore) Disburse(ctx context.Context, loan model.Loan, receipt model.DisbursementReceipt, app model.LoanApplication) error {
	if m.disburseFunc != nil {
		return m.disburseFunc(ctx, loan, receipt, app)
	}
	m.disbursedLoans = append(m.disbursedLoans, loan)
	m.receipts = append(m.receipts, receipt)
	m.disbursedApps = append(m.disbursedApps, app)
	return nil
}

func (m *mockLedgerStore) ApplyPayment(ctx context.Context, loan model.Loan, payment model.Payment) error {
	m.applyCalls++
	if m.applyPaymentFunc != nil {
		return m.applyPaymentFunc(ctx, loan, payment)
	}
	m.appliedLoans = append(m.appliedLoans, loan)
	m.appliedPayments = append(m.appliedPayments, payment)
	return nil
}

type mockScoreRefresher struct {
	calls       []string
	refreshFunc func(ctx context.Context, borrowerID string) (dto.CreditScoreResponse, error)
}

func (m *mockScoreRefresher) Execute(ctx context.Context, borrowerID string) (dto.CreditScoreResponse, error) {
	m.calls = append(m.calls, borrowerID)
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, borrowerID)
	}
	return dto.CreditScoreResponse{BorrowerID: borrowerID, Score: 700}, nil
}

// --- Test fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTerms() model.LoanTerms {
	return model.LoanTerms{
		InterestRatePercent: decimal.NewFromInt(12),
		InterestType:        valueobject.InterestTypeCompound,
		TermMonths:          12,
		GracePeriodDays:     5,
		PenaltyRatePercent:  decimal.NewFromInt(2),
		PenaltyFlat:         decimal.NewFromInt(50),
	}
}

// reconstructedLoan builds a loan with a 5000 monthly payment, 2% daily
// penalty rate, 50 flat fee and 5 grace days.
func reconstructedLoan(
	id, borrowerID string,
	status valueobject.LoanStatus,
	outstanding decimal.Decimal,
	nextDue time.Time,
) model.Loan {
	created := nextDue.AddDate(0, -1, 0)
	return model.ReconstructLoan(
		id, "app-"+id, borrowerID,
		decimal.NewFromInt(10000), testTerms(),
		decimal.NewFromInt(5000), decimal.NewFromInt(10662), outstanding,
		nextDue, status,
		"bank_transfer", "RCPT-TEST01", 1,
		created, created,
	)
}

func verifiedBorrower(id string, income, expenses decimal.Decimal, creditScore int) model.Borrower {
	registered := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return model.ReconstructBorrower(
		id, "Jane Doe", income, expenses, creditScore,
		valueobject.KYCStatusVerified, registered, 1, registered,
	)
}
