package vendorrequest

import (
	"context"
	"errors"

	"marketplace-orders/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const requestColumns = `id::text, user_id::text, shop_name, COALESCE(message, ''), status, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.VendorRequest, error) {
	const q = `
INSERT INTO vendor_requests (user_id, shop_name, message, status)
VALUES ($1, $2, NULLIF($3, ''), 'pending')
RETURNING ` + requestColumns + `
`
	req, err := scanRequest(r.pool.QueryRow(ctx, q, in.UserID, in.ShopName, in.Message))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return req, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.VendorRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM vendor_requests WHERE id = $1`, id))
}

func (r *postgresRepo) List(ctx context.Context, status *domain.VendorRequestStatus) ([]domain.VendorRequest, error) {
	const q = `
SELECT ` + requestColumns + `
FROM vendor_requests
WHERE status = COALESCE($1, status)
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.VendorRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Decide(ctx context.Context, id string, approve bool) (*domain.VendorRequest, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	status := domain.VendorRequestRejected
	if approve {
		status = domain.VendorRequestApproved
	}

	req, err := scanRequest(tx.QueryRow(ctx, `
UPDATE vendor_requests
SET status = $2, updated_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING `+requestColumns+`
`, id, status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Distinguish a missing request from an already-decided one.
			var exists bool
			if scanErr := tx.QueryRow(ctx, `SELECT TRUE FROM vendor_requests WHERE id = $1`, id).Scan(&exists); scanErr == nil {
				return nil, domain.ErrInvalidTransition
			}
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	title := "Vendor application rejected"
	body := "Your application to open a vendor shop was rejected."
	if approve {
		// Role flip and request decision commit together so the new role is
		// visible the moment the decision is.
		if _, err := tx.Exec(ctx, `UPDATE users SET role = 'vendor' WHERE id = $1`, req.UserID); err != nil {
			return nil, err
		}
		title = "Vendor application approved"
		body = "Your shop " + req.ShopName + " is approved. You can now list products."
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO notifications (type, title, body, recipient_role, recipient_id, related_id)
VALUES ($1, $2, $3, $4, $5, $6)
`, domain.NotificationVendorRequest, title, body, roleAfter(approve), req.UserID, req.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return req, nil
}

func roleAfter(approved bool) domain.Role {
	if approved {
		return domain.RoleVendor
	}
	return domain.RoleBuyer
}

func scanRequest(row pgx.Row) (*domain.VendorRequest, error) {
	var req domain.VendorRequest
	var status string
	err := row.Scan(&req.ID, &req.UserID, &req.ShopName, &req.Message, &status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	req.Status = domain.VendorRequestStatus(status)
	return &req, nil
}
