package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	pg "github.com/ledgerline/credit-engine/pkg/postgres"
)

// LedgerStore implements port.LedgerStore. Each operation runs inside one
// database transaction so a crash mid-write leaves no partial state.
type LedgerStore struct {
	pool *pgxpool.Pool
}

// NewLedgerStore creates a new PostgreSQL-backed ledger store.
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// Disburse inserts the loan and its receipt and flips the application to
// disbursed atomically. The application save carries the version CAS, so two
// concurrent disbursals of the same application cannot both commit.
func (s *LedgerStore) Disburse(
	ctx context.Context,
	loan model.Loan,
	receipt model.DisbursementReceipt,
	app model.LoanApplication,
) error {
	return pg.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if err := insertLoan(ctx, tx, loan); err != nil {
			return err
		}
		if err := insertReceipt(ctx, tx, receipt); err != nil {
			return err
		}
		return saveApplication(ctx, tx, app)
	})
}

// ApplyPayment inserts the payment row and updates the loan's balance and
// status atomically, guarded by the loan's version CAS.
func (s *LedgerStore) ApplyPayment(ctx context.Context, loan model.Loan, payment model.Payment) error {
	return pg.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		if err := insertPayment(ctx, tx, payment); err != nil {
			return err
		}
		return saveLoan(ctx, tx, loan)
	})
}

func insertReceipt(ctx context.Context, q pg.Querier, r model.DisbursementReceipt) error {
	query := `
		INSERT INTO disbursement_receipts (
			id, loan_id, application_id, method, reference, receipt_number, disbursed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		r.ID, r.LoanID, r.ApplicationID, r.Method, r.Reference, r.ReceiptNumber, r.DisbursedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}
