package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/credit-engine/internal/domain/model"
)

// PenaltyRepo implements port.PenaltyRepository. The unique key on
// (loan_id, penalty_date) is the sweep's idempotency guard.
type PenaltyRepo struct {
	pool *pgxpool.Pool
}

// NewPenaltyRepo creates a new PostgreSQL-backed penalty repository.
func NewPenaltyRepo(pool *pgxpool.Pool) *PenaltyRepo {
	return &PenaltyRepo{pool: pool}
}

// CountByLoanID counts all penalty accruals ever recorded for a loan.
func (r *PenaltyRepo) CountByLoanID(ctx context.Context, loanID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM loan_penalties WHERE loan_id = $1`, loanID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count penalties: %w", err)
	}
	return count, nil
}

// InsertIfAbsent inserts a penalty keyed on (loan_id, penalty_date) and
// reports whether a row was actually added.
func (r *PenaltyRepo) InsertIfAbsent(ctx context.Context, p model.LoanPenalty) (bool, error) {
	query := `
		INSERT INTO loan_penalties (id, loan_id, penalty_date, days_late, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (loan_id, penalty_date) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query,
		p.ID(), p.LoanID(), p.PenaltyDate(), p.DaysLate(), p.Amount(), p.CreatedAt(),
	)
	if err != nil {
		return false, fmt.Errorf("insert penalty: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
