package postgres

import (
	"context"
	"database/sql"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

// NotificationPostgres writes notification records. Reading and marking them read
// belongs to the notification subsystem.
type NotificationPostgres struct {
	db *sql.DB
}

// NewNotificationPostgres creates a new NotificationPostgres repository.
func NewNotificationPostgres(db *sql.DB) *NotificationPostgres {
	return &NotificationPostgres{db: db}
}

var _ repository.NotificationRepository = (*NotificationPostgres)(nil)

// Create inserts a notification row.
func (r *NotificationPostgres) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const q = `
		INSERT INTO notifications (id, recipient_id, message, type, related_item, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		n.ID,
		n.RecipientID,
		n.Message,
		string(n.Type),
		nullString(n.RelatedItem),
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return nil, apperr.Persistence("failed to create notification", err)
	}
	out := *n
	return &out, nil
}
