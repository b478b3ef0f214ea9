package cart

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

func (r *postgresRepo) GetByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, buyer_id::text, created_at, updated_at
FROM carts
WHERE buyer_id = $1
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, buyerID).Scan(&cart.ID, &cart.BuyerID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.Cart{BuyerID: buyerID}, nil
		}
		return nil, err
	}

	const linesQuery = `
SELECT id::text, cart_id::text, product_id::text, quantity, unit_price_cents, name, COALESCE(image_url, ''), created_at
FROM cart_lines
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.ProductID,
			&line.Quantity,
			&line.UnitPriceCents,
			&line.Name,
			&line.ImageURL,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Lines = append(cart.Lines, line)
		cart.TotalCents += line.UnitPriceCents * int64(line.Quantity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) UpsertItem(ctx context.Context, buyerID, productID string, quantity int, snap LineSnapshot) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, buyerID, productID)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cartID, err := ensureCart(ctx, tx, buyerID)
	if err != nil {
		return err
	}

	var lineID string
	err = tx.QueryRow(ctx, `
SELECT id::text
FROM cart_lines
WHERE cart_id = $1 AND product_id = $2
`, cartID, productID).Scan(&lineID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		// Absolute quantity, not an increment. Repeated calls converge.
		if _, err := tx.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1, unit_price_cents = $2, name = $3, image_url = NULLIF($4, '')
WHERE id = $5
`, quantity, snap.UnitPriceCents, snap.Name, snap.ImageURL, lineID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (cart_id, product_id, quantity, unit_price_cents, name, image_url)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
`, cartID, productID, quantity, snap.UnitPriceCents, snap.Name, snap.ImageURL); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, buyerID, productID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
USING carts
WHERE cart_lines.cart_id = carts.id AND carts.buyer_id = $1 AND cart_lines.product_id = $2
`, buyerID, productID)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, buyerID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE buyer_id = $1`, buyerID)
	return err
}

func ensureCart(ctx context.Context, tx pgx.Tx, buyerID string) (string, error) {
	var cartID string
	err := tx.QueryRow(ctx, `
INSERT INTO carts (buyer_id)
VALUES ($1)
ON CONFLICT (buyer_id) DO UPDATE SET updated_at = now()
RETURNING id::text
`, buyerID).Scan(&cartID)
	return cartID, err
}
