package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog implements port.AuditSink. Audit writes never fail the caller:
// an insert error is logged and dropped.
type AuditLog struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewAuditLog creates a new PostgreSQL-backed audit sink.
func NewAuditLog(pool *pgxpool.Pool, logger *slog.Logger) *AuditLog {
	return &AuditLog{pool: pool, logger: logger}
}

// Record appends an audit entry.
func (a *AuditLog) Record(ctx context.Context, actor, action, entity, entityID, details string) {
	query := `
		INSERT INTO audit_log (id, actor, action, entity, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := a.pool.Exec(ctx, query,
		uuid.New().String(), actor, action, entity, entityID, details, time.Now().UTC(),
	)
	if err != nil {
		a.logger.Error("audit write failed",
			slog.String("action", action),
			slog.String("entity", entity),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()))
	}
}
