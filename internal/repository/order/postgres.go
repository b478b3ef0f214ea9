package order

import (
	"context"
	"errors"
	"io"
	"log"

	"marketplace-orders/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, buyer_id::text, vendor_id::text, total_cents, shipping_address, payment_method,
       status, payment_status, gateway_payment_id, paid_amount_cents, paid_at, created_at, updated_at`

func (r *postgresRepo) CreateGroup(ctx context.Context, orders []CreateOrderInput) ([]string, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]string, 0, len(orders))
	for _, in := range orders {
		var orderID string
		err := tx.QueryRow(ctx, `
INSERT INTO orders (buyer_id, vendor_id, total_cents, shipping_address, payment_method, status, payment_status)
VALUES ($1, $2, $3, $4, $5, 'pending', 'pending')
RETURNING id::text
`, in.BuyerID, in.VendorID, in.TotalCents, in.ShippingAddress, in.PaymentMethod).Scan(&orderID)
		if err != nil {
			return nil, err
		}

		for _, line := range in.Lines {
			if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, product_id, vendor_id, name, unit_price_cents, quantity, total_cents)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, orderID, line.ProductID, line.VendorID, line.Name, line.UnitPriceCents, line.Quantity, line.UnitPriceCents*int64(line.Quantity)); err != nil {
				return nil, err
			}
		}

		if err := insertNotification(ctx, tx, in.Notify, orderID); err != nil {
			return nil, err
		}
		ids = append(ids, orderID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created group buyer=%s orders=%d", orders[0].BuyerID, len(ids))
	return ids, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	lines, err := r.fetchLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *postgresRepo) ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`, buyerID)
}

func (r *postgresRepo) ListForVendor(ctx context.Context, vendorID string) ([]domain.Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE vendor_id = $1 ORDER BY created_at DESC`, vendorID)
}

// UpdateStatus is a single conditional UPDATE so a racing vendor update and
// gateway callback can never cause a lost write. The COD settlement rule is
// evaluated inside the same statement: a delivered COD order becomes paid
// with no observable intermediate state.
func (r *postgresRepo) UpdateStatus(ctx context.Context, in StatusUpdateInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE orders
SET status = $2,
    updated_at = now(),
    payment_status = CASE
        WHEN $2 = 'delivered' AND payment_method = 'cod' AND payment_status <> 'paid' THEN 'paid'
        ELSE payment_status
    END,
    paid_at = CASE
        WHEN $2 = 'delivered' AND payment_method = 'cod' AND payment_status <> 'paid' THEN now()
        ELSE paid_at
    END
WHERE id = $1 AND status = $3
`, in.OrderID, in.To, in.From)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		// Either the order is gone or its status moved under us.
		return nil, domain.ErrInvalidTransition
	}

	if in.Notify != nil {
		if err := insertNotification(ctx, tx, *in.Notify, in.OrderID); err != nil {
			return nil, err
		}
	}

	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, in.OrderID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) UpdatePaymentStatus(ctx context.Context, orderID string, to domain.PaymentStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET payment_status = $2,
    paid_at = CASE WHEN $2 = 'paid' THEN now() ELSE paid_at END,
    updated_at = now()
WHERE id = $1 AND payment_status = 'pending'
`, orderID, to)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *postgresRepo) ApplyGatewayPayment(ctx context.Context, in GatewayPaymentInput) (GatewayPaymentResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return GatewayPaymentResult{}, err
	}
	defer tx.Rollback(ctx)

	kind := "failed"
	if in.Succeeded {
		kind = "succeeded"
	}

	// The audit row doubles as the idempotency record: a redelivered event
	// hits the unique gateway_payment_id and is acknowledged without any
	// second application.
	cmd, err := tx.Exec(ctx, `
INSERT INTO payment_events (gateway_payment_id, order_id, amount_cents, kind)
VALUES ($1, $2, $3, $4)
ON CONFLICT (gateway_payment_id) DO NOTHING
`, in.GatewayPaymentID, in.OrderID, in.AmountCents, kind)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return GatewayPaymentResult{}, domain.ErrNotFound
		}
		return GatewayPaymentResult{}, err
	}
	if cmd.RowsAffected() == 0 {
		return GatewayPaymentResult{Duplicate: true}, nil
	}

	var applied bool
	if in.Succeeded {
		cmd, err = tx.Exec(ctx, `
UPDATE orders
SET payment_status = 'paid',
    paid_at = now(),
    gateway_payment_id = $2,
    paid_amount_cents = $3,
    updated_at = now()
WHERE id = $1 AND payment_status = 'pending'
`, in.OrderID, in.GatewayPaymentID, in.AmountCents)
	} else {
		cmd, err = tx.Exec(ctx, `
UPDATE orders
SET payment_status = 'failed',
    gateway_payment_id = $2,
    updated_at = now()
WHERE id = $1 AND payment_status = 'pending'
`, in.OrderID, in.GatewayPaymentID)
	}
	if err != nil {
		return GatewayPaymentResult{}, err
	}
	applied = cmd.RowsAffected() > 0

	if err := tx.Commit(ctx); err != nil {
		return GatewayPaymentResult{}, err
	}
	return GatewayPaymentResult{Applied: applied}, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id::text, order_id::text, product_id::text, vendor_id::text, name, unit_price_cents, quantity, total_cents
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.VendorID,
			&line.Name,
			&line.UnitPriceCents,
			&line.Quantity,
			&line.TotalCents,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var method, status, payStatus string
	err := row.Scan(
		&o.ID,
		&o.BuyerID,
		&o.VendorID,
		&o.TotalCents,
		&o.ShippingAddress,
		&method,
		&status,
		&payStatus,
		&o.GatewayPaymentID,
		&o.PaidAmountCents,
		&o.PaidAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.PaymentMethod = domain.PaymentMethod(method)
	o.Status = domain.OrderStatus(status)
	o.PaymentStatus = domain.PaymentStatus(payStatus)
	return &o, nil
}

func insertNotification(ctx context.Context, tx pgx.Tx, in NotificationInput, relatedID string) error {
	_, err := tx.Exec(ctx, `
INSERT INTO notifications (type, title, body, recipient_role, recipient_id, related_id)
VALUES ($1, $2, $3, $4, $5, $6)
`, in.Type, in.Title, in.Body, in.RecipientRole, in.RecipientID, relatedID)
	return err
}
