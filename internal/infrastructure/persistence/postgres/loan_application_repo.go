package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
	pg "github.com/ledgerline/credit-engine/pkg/postgres"
)

// LoanApplicationRepo implements port.LoanApplicationRepository.
type LoanApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewLoanApplicationRepo creates a new PostgreSQL-backed application repository.
func NewLoanApplicationRepo(pool *pgxpool.Pool) *LoanApplicationRepo {
	return &LoanApplicationRepo{pool: pool}
}

// FindByID retrieves an application by ID.
func (r *LoanApplicationRepo) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + ` FROM loan_applications WHERE id = $1`
	app, err := scanApplicationRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return model.LoanApplication{}, mapNoRows(err, "loan application")
	}
	return app, nil
}

// FindByBorrowerID retrieves all applications for a borrower, newest first.
func (r *LoanApplicationRepo) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + ` FROM loan_applications WHERE borrower_id = $1 ORDER BY created_at DESC`
	return r.queryApplications(ctx, query, borrowerID)
}

// FindOpenByBorrowerID retrieves the borrower's non-terminal applications.
func (r *LoanApplicationRepo) FindOpenByBorrowerID(ctx context.Context, borrowerID string) ([]model.LoanApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM loan_applications
		WHERE borrower_id = $1 AND status NOT IN ('disbursed', 'rejected')
		ORDER BY created_at DESC`
	return r.queryApplications(ctx, query, borrowerID)
}

// Save upserts an application guarded by its version column.
func (r *LoanApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	return saveApplication(ctx, r.pool, app)
}

func (r *LoanApplicationRepo) queryApplications(ctx context.Context, query string, args ...any) ([]model.LoanApplication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var apps []model.LoanApplication
	for rows.Next() {
		app, err := scanApplicationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// saveApplication upserts an application row. New rows insert at version 1;
// updates require the caller's version to match the stored one.
func saveApplication(ctx context.Context, q pg.Querier, app model.LoanApplication) error {
	elig := app.Eligibility()
	terms := app.Terms()
	query := `
		INSERT INTO loan_applications (` + applicationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
		ON CONFLICT (id) DO UPDATE SET
			credit_score       = EXCLUDED.credit_score,
			eligibility_status = EXCLUDED.eligibility_status,
			eligibility_score  = EXCLUDED.eligibility_score,
			income_ratio       = EXCLUDED.income_ratio,
			debt_to_income     = EXCLUDED.debt_to_income,
			risk_tier          = EXCLUDED.risk_tier,
			document_status    = EXCLUDED.document_status,
			recommendation     = EXCLUDED.recommendation,
			status             = EXCLUDED.status,
			version            = loan_applications.version + 1,
			updated_at         = EXCLUDED.updated_at
		WHERE loan_applications.version = $22
	`
	tag, err := q.Exec(ctx, query,
		app.ID(), app.BorrowerID(), app.RequestedAmount(), app.CollateralValue(), app.HasCollateral(),
		app.Purpose(), app.CreditScore(),
		elig.Status.String(), elig.Score, elig.IncomeRatio, elig.DebtToIncome,
		elig.RiskTier.String(), elig.DocumentStatus, elig.Recommendation,
		terms.InterestRatePercent, terms.InterestType.String(), terms.TermMonths,
		terms.GracePeriodDays, terms.PenaltyRatePercent, terms.PenaltyFlat,
		app.Status().String(), app.Version(), app.CreatedAt(), app.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save application %s: %w", app.ID(), port.ErrVersionConflict)
	}
	return nil
}
