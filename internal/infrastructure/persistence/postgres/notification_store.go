package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/credit-engine/internal/domain/model"
	"github.com/ledgerline/credit-engine/internal/domain/port"
)

// NotificationStore implements port.NotificationSink by recording alerts in
// the notifications table. The unique reference_key column deduplicates
// re-deliveries, so the sweep can retry freely.
type NotificationStore struct {
	pool *pgxpool.Pool
}

// NewNotificationStore creates a new PostgreSQL-backed notification sink.
func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

// Notify records the notification and reports whether it was newly inserted.
func (s *NotificationStore) Notify(ctx context.Context, n model.Notification) (bool, error) {
	if err := n.Validate(); err != nil {
		return false, fmt.Errorf("%w: %s", port.ErrInvalidInput, err)
	}
	query := `
		INSERT INTO notifications (
			id, reference_key, target_role, borrower_id, type, title, message, severity, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (reference_key) DO NOTHING
	`
	tag, err := s.pool.Exec(ctx, query,
		uuid.New().String(), n.ReferenceKey, n.TargetRole, n.BorrowerID,
		n.Type, n.Title, n.Message, n.Severity, n.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert notification: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
