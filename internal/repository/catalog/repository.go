package catalog

import (
	"context"

	"marketplace-orders/internal/domain"
)

type CreateProductInput struct {
	VendorID    string
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
}

// Reader supplies authoritative price and vendor attribution at order time.
// Checkout consults it per cart line and never trusts client-supplied values.
type Reader interface {
	Resolve(ctx context.Context, productID string) (*domain.Product, error)
}

type Repository interface {
	Reader
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
}
