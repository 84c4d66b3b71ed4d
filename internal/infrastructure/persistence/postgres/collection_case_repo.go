package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// CollectionCaseRepo implements port.CollectionCaseRepository. The unique key
// on loan_id guarantees at most one case per loan.
type CollectionCaseRepo struct {
	pool *pgxpool.Pool
}

// NewCollectionCaseRepo creates a new PostgreSQL-backed case repository.
func NewCollectionCaseRepo(pool *pgxpool.Pool) *CollectionCaseRepo {
	return &CollectionCaseRepo{pool: pool}
}

// InsertIfAbsent inserts a case keyed on loan_id and reports whether a row
// was actually added.
func (r *CollectionCaseRepo) InsertIfAbsent(ctx context.Context, c model.CollectionCase) (bool, error) {
	query := `
		INSERT INTO collection_cases (
			id, loan_id, reason, days_delinquent, status, assigned_to, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (loan_id) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query,
		c.ID(), c.LoanID(), c.Reason(), c.DaysDelinquent(),
		c.Status().String(), c.AssignedTo(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return false, fmt.Errorf("insert collection case: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FindByLoanID retrieves the case opened for a loan.
func (r *CollectionCaseRepo) FindByLoanID(ctx context.Context, loanID string) (model.CollectionCase, error) {
	query := `
		SELECT id, loan_id, reason, days_delinquent, status, assigned_to, created_at, updated_at
		FROM collection_cases
		WHERE loan_id = $1
	`
	var (
		id, lid, reason      string
		daysDelinquent       int
		statusStr            string
		assignedTo           string
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, query, loanID).Scan(
		&id, &lid, &reason, &daysDelinquent, &statusStr, &assignedTo, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.CollectionCase{}, mapNoRows(err, "collection case")
	}

	status, err := valueobject.NewCollectionCaseStatus(statusStr)
	if err != nil {
		return model.CollectionCase{}, fmt.Errorf("parse case status: %w", err)
	}

	return model.ReconstructCollectionCase(
		id, lid, reason, daysDelinquent, status, assignedTo, createdAt, updatedAt,
	), nil
}
