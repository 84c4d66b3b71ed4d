package port

import (
	"context"
	"time"

	"github.com/ledgerline/credit-engine/internal/domain/event"
	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// BorrowerRepository reads borrowers and writes back their credit score.
type BorrowerRepository interface {
	FindByID(ctx context.Context, id string) (model.Borrower, error)
	// SaveCreditScore persists the recomputed score with a version CAS.
	SaveCreditScore(ctx context.Context, b model.Borrower) error
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error)
	// FindActive returns all active loans with a due date set, for the sweep.
	FindActive(ctx context.Context) ([]model.Loan, error)
	// Save updates a loan guarded by its version column; a stale version
	// returns ErrVersionConflict.
	Save(ctx context.Context, loan model.Loan) error
}

// LoanApplicationRepository persists and retrieves loan applications.
type LoanApplicationRepository interface {
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.LoanApplication, error)
	// FindOpenByBorrowerID returns non-terminal applications, used to re-run
	// eligibility after a credit-score refresh.
	FindOpenByBorrowerID(ctx context.Context, borrowerID string) ([]model.LoanApplication, error)
	Save(ctx context.Context, app model.LoanApplication) error
}

// PaymentRepository reads the append-only payment history.
type PaymentRepository interface {
	ListByLoanID(ctx context.Context, loanID string) ([]model.Payment, error)
	// ListByBorrowerID joins through loans to return a borrower's full
	// payment history.
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]model.Payment, error)
	// LastPaymentDate returns the most recent payment date for a loan and
	// whether any payment exists.
	LastPaymentDate(ctx context.Context, loanID string) (time.Time, bool, error)
}

// PenaltyRepository persists sweep penalty accruals.
type PenaltyRepository interface {
	// CountByLoanID counts all penalty rows ever recorded for a loan.
	CountByLoanID(ctx context.Context, loanID string) (int, error)
	// InsertIfAbsent inserts keyed on (loanID, penaltyDate) and reports
	// whether a row was actually added.
	InsertIfAbsent(ctx context.Context, p model.LoanPenalty) (bool, error)
}

// CollectionCaseRepository persists collections escalations.
type CollectionCaseRepository interface {
	// InsertIfAbsent inserts keyed on loanID and reports whether a row was
	// actually added.
	InsertIfAbsent(ctx context.Context, c model.CollectionCase) (bool, error)
	FindByLoanID(ctx context.Context, loanID string) (model.CollectionCase, error)
}

// ---------------------------------------------------------------------------
// Sink ports
// ---------------------------------------------------------------------------

// NotificationSink accepts alerts, idempotent on Notification.ReferenceKey.
// Notify reports whether the notification was newly recorded.
type NotificationSink interface {
	Notify(ctx context.Context, n model.Notification) (bool, error)
}

// AuditSink records audit entries. Implementations must never fail the
// caller; errors are swallowed and logged inside the sink.
type AuditSink interface {
	Record(ctx context.Context, actor, action, entity, entityID, details string)
}

// ScoreCache caches the latest credit-score breakdown per borrower.
// Cache failures are ignorable.
type ScoreCache interface {
	Put(ctx context.Context, borrowerID string, result service.CreditScoreResult) error
	Get(ctx context.Context, borrowerID string) (service.CreditScoreResult, bool, error)
}

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Ledger port
// ---------------------------------------------------------------------------

// LedgerStore executes the two multi-row ledger mutations inside a single
// database transaction each. Partial writes are never observable.
type LedgerStore interface {
	// Disburse inserts the loan and its disbursement receipt and marks the
	// application disbursed, atomically.
	Disburse(ctx context.Context, loan model.Loan, receipt model.DisbursementReceipt, app model.LoanApplication) error
	// ApplyPayment inserts the payment row and updates the loan balance,
	// atomically, guarded by the loan's version CAS.
	ApplyPayment(ctx context.Context, loan model.Loan, payment model.Payment) error
}
