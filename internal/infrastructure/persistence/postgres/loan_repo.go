package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	pg "github.com/ledgerline/credit-engine/pkg/postgres"
)

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := `SELECT` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.Loan{}, mapNoRows(err, "loan")
	}
	return loan, nil
}

// FindByBorrowerID retrieves all loans for a borrower, newest first.
func (r *LoanRepo) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.Loan, error) {
	query := `SELECT` + loanColumns + ` FROM loans WHERE borrower_id = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, borrowerID)
}

// FindActive retrieves all active loans, the delinquency sweep's working set.
func (r *LoanRepo) FindActive(ctx context.Context) ([]model.Loan, error) {
	query := `SELECT` + loanColumns + ` FROM loans WHERE status = 'active' ORDER BY next_due_date`
	return r.queryLoans(ctx, query)
}

// Save updates a mutable loan row guarded by its version column.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	return saveLoan(ctx, r.pool, loan)
}

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// ---------------------------------------------------------------------------
// Write helpers, shared with LedgerStore
// ---------------------------------------------------------------------------

// insertLoan writes a brand-new loan row.
func insertLoan(ctx context.Context, q pg.Querier, loan model.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`
	_, err := q.Exec(ctx, query,
		loan.ID(), loan.ApplicationID(), loan.BorrowerID(),
		loan.Principal(), loan.InterestRatePercent(), loan.InterestType().String(), loan.TermMonths(),
		loan.MonthlyPayment(), loan.TotalAmount(), loan.OutstandingBalance(), loan.NextDueDate(),
		loan.Status().String(), loan.GracePeriodDays(), loan.PenaltyRatePercent(), loan.PenaltyFlat(),
		loan.DisbursementMethod(), loan.ReceiptNumber(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// saveLoan updates the mutable columns of an existing loan. The WHERE clause
// on version makes concurrent writers lose visibly instead of silently.
func saveLoan(ctx context.Context, q pg.Querier, loan model.Loan) error {
	query := `
		UPDATE loans SET
			status              = $2,
			outstanding_balance = $3,
			next_due_date       = $4,
			version             = loans.version + 1,
			updated_at          = $5
		WHERE id = $1 AND loans.version = $6
	`
	tag, err := q.Exec(ctx, query,
		loan.ID(),
		loan.Status().String(), loan.OutstandingBalance(), loan.NextDueDate(),
		loan.UpdatedAt(), loan.Version(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save loan %s: %w", loan.ID(), port.ErrVersionConflict)
	}
	return nil
}
