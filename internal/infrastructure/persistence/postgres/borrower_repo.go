package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	"github.com/ledgerline/credit-engine/internal/domain/valueobject"
)

// BorrowerRepo implements port.BorrowerRepository. Borrower rows are owned by
// the onboarding subsystem; this repo reads them and writes back only the
// credit score column.
type BorrowerRepo struct {
	pool *pgxpool.Pool
}

// NewBorrowerRepo creates a new PostgreSQL-backed borrower repository.
func NewBorrowerRepo(pool *pgxpool.Pool) *BorrowerRepo {
	return &BorrowerRepo{pool: pool}
}

// FindByID retrieves a borrower by ID.
func (r *BorrowerRepo) FindByID(ctx context.Context, id string) (model.Borrower, error) {
	query := `
		SELECT id, full_name, monthly_income, monthly_expenses,
		       credit_score, kyc_status, registration_date, version, updated_at
		FROM borrowers
		WHERE id = $1
	`
	var (
		bid, fullName                  string
		monthlyIncome, monthlyExpenses decimal.Decimal
		creditScore                    int
		kycStatusStr                   string
		registrationDate               time.Time
		version                        int
		updatedAt                      time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&bid, &fullName, &monthlyIncome, &monthlyExpenses,
		&creditScore, &kycStatusStr, &registrationDate, &version, &updatedAt,
	)
	if err != nil {
		return model.Borrower{}, mapNoRows(err, "borrower")
	}

	kycStatus, err := valueobject.NewKYCStatus(kycStatusStr)
	if err != nil {
		return model.Borrower{}, fmt.Errorf("parse kyc status: %w", err)
	}

	return model.ReconstructBorrower(
		bid, fullName, monthlyIncome, monthlyExpenses,
		creditScore, kycStatus, registrationDate, version, updatedAt,
	), nil
}

// SaveCreditScore persists a recomputed score guarded by the version column.
func (r *BorrowerRepo) SaveCreditScore(ctx context.Context, b model.Borrower) error {
	query := `
		UPDATE borrowers SET
			credit_score = $2,
			version      = borrowers.version + 1,
			updated_at   = $3
		WHERE id = $1 AND borrowers.version = $4
	`
	tag, err := r.pool.Exec(ctx, query, b.ID(), b.CreditScore(), b.UpdatedAt(), b.Version())
	if err != nil {
		return fmt.Errorf("save credit score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save credit score for %s: %w", b.ID(), port.ErrVersionConflict)
	}
	return nil
}
