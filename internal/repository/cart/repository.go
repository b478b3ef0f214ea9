package cart

import (
	"context"

	"marketplace-orders/internal/domain"
)

// LineSnapshot carries the caller-supplied pricing snapshot for a cart line.
// The store does not validate it against the catalog; checkout re-resolves
// prices before any order is created.
type LineSnapshot struct {
	UnitPriceCents int64
	Name           string
	ImageURL       string
}

type Repository interface {
	// GetByBuyer returns the buyer's cart with a derived total. A buyer
	// without a cart gets an empty cart, not an error.
	GetByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error)
	// UpsertItem sets the absolute quantity for a product, creating the cart
	// on first add. A quantity <= 0 removes the line. Idempotent.
	UpsertItem(ctx context.Context, buyerID, productID string, quantity int, snap LineSnapshot) error
	// RemoveItem deletes the line if present; absent lines are not an error.
	RemoveItem(ctx context.Context, buyerID, productID string) error
	// Clear deletes the cart and all its lines.
	Clear(ctx context.Context, buyerID string) error
}
