package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	pg "github.com/ledgerline/credit-engine/pkg/postgres"
)

// PaymentRepo implements port.PaymentRepository over the append-only
// payments table. Inserts go through the ledger store only.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

// NewPaymentRepo creates a new PostgreSQL-backed payment repository.
func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// ListByLoanID retrieves all payments for a loan, oldest first.
func (r *PaymentRepo) ListByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE loan_id = $1 ORDER BY payment_date`
	return r.queryPayments(ctx, query, loanID)
}

// ListByBorrowerID retrieves a borrower's full payment history across loans.
func (r *PaymentRepo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]model.Payment, error) {
	query := `
		SELECT p.id, p.loan_id, p.amount, p.late_fee, p.payment_date, p.due_date,
		       p.days_late, p.status, p.receipt_number, p.created_at
		FROM payments p
		JOIN loans l ON l.id = p.loan_id
		WHERE l.borrower_id = $1
		ORDER BY p.payment_date
	`
	return r.queryPayments(ctx, query, borrowerID)
}

// LastPaymentDate returns the most recent payment date for a loan, and false
// when the loan has never received a payment.
func (r *PaymentRepo) LastPaymentDate(ctx context.Context, loanID string) (time.Time, bool, error) {
	query := `SELECT MAX(payment_date) FROM payments WHERE loan_id = $1`
	var last *time.Time
	err := r.pool.QueryRow(ctx, query, loanID).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("query last payment: %w", err)
	}
	if last == nil {
		return time.Time{}, false, nil
	}
	return *last, true, nil
}

func (r *PaymentRepo) queryPayments(ctx context.Context, query string, args ...any) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		p, err := scanPaymentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// insertPayment writes a payment row, used inside the ledger transaction.
func insertPayment(ctx context.Context, q pg.Querier, p model.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err := q.Exec(ctx, query,
		p.ID(), p.LoanID(), p.Amount(), p.LateFee(), p.PaymentDate(), p.DueDate(),
		p.DaysLate(), p.Status().String(), p.ReceiptNumber(), p.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}
