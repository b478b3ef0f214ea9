package notification

import (
	"context"
	"errors"

	"marketplace-orders/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Notification, error) {
	const q = `
INSERT INTO notifications (type, title, body, recipient_role, recipient_id, related_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, type, title, body, recipient_role, recipient_id::text, related_id::text, is_read, created_at
`
	return scanNotification(r.pool.QueryRow(ctx, q, in.Type, in.Title, in.Body, in.RecipientRole, in.RecipientID, in.RelatedID))
}

func (r *postgresRepo) ListFor(ctx context.Context, rcpt Recipient) ([]domain.Notification, error) {
	const q = `
SELECT id::text, type, title, body, recipient_role, recipient_id::text, related_id::text, is_read, created_at
FROM notifications
WHERE recipient_role = $1 AND (recipient_id IS NULL OR recipient_id::text = COALESCE($2, recipient_id::text))
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, rcpt.Role, rcpt.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) MarkRead(ctx context.Context, id string, rcpt Recipient) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE notifications
SET is_read = TRUE
WHERE id = $1
  AND recipient_role = $2
  AND (recipient_id IS NULL OR recipient_id::text = COALESCE($3, recipient_id::text))
`, id, rcpt.Role, rcpt.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	var typ, role string
	err := row.Scan(
		&n.ID,
		&typ,
		&n.Title,
		&n.Body,
		&role,
		&n.RecipientID,
		&n.RelatedID,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	n.Type = domain.NotificationType(typ)
	n.RecipientRole = domain.Role(role)
	return &n, nil
}
