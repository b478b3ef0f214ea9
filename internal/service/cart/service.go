package cart

import (
	"context"
	"errors"
	"fmt"

	"marketplace-orders/internal/domain"
	cartrepo "marketplace-orders/internal/repository/cart"
	catalogrepo "marketplace-orders/internal/repository/catalog"
)

// Service owns the buyer's pending selections. Prices on cart lines are
// snapshots taken when the item is added; checkout re-resolves them, so a
// stale cart price is expected and harmless.
type Service struct {
	repo    cartRepo
	catalog catalogrepo.Reader
}

type cartRepo interface {
	GetByBuyer(ctx context.Context, buyerID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, buyerID, productID string, quantity int, snap cartrepo.LineSnapshot) error
	RemoveItem(ctx context.Context, buyerID, productID string) error
	Clear(ctx context.Context, buyerID string) error
}

func New(repo cartrepo.Repository, catalog catalogrepo.Reader) *Service {
	return &Service{repo: repo, catalog: catalog}
}

func (s *Service) Get(ctx context.Context, buyerID string) (*domain.Cart, error) {
	return s.repo.GetByBuyer(ctx, buyerID)
}

// UpsertItem sets the absolute quantity of a product in the buyer's cart,
// snapshotting the current catalog price and name onto the line. A quantity
// of zero or less removes the line.
func (s *Service) UpsertItem(ctx context.Context, buyerID, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrInvalidRequest)
	}
	if quantity <= 0 {
		if err := s.repo.RemoveItem(ctx, buyerID, productID); err != nil {
			return nil, err
		}
		return s.repo.GetByBuyer(ctx, buyerID)
	}

	product, err := s.catalog.Resolve(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: product not found", domain.ErrInvalidRequest)
		}
		return nil, err
	}

	err = s.repo.UpsertItem(ctx, buyerID, productID, quantity, cartrepo.LineSnapshot{
		UnitPriceCents: product.PriceCents,
		Name:           product.Name,
		ImageURL:       product.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetByBuyer(ctx, buyerID)
}

func (s *Service) RemoveItem(ctx context.Context, buyerID, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: productId required", domain.ErrInvalidRequest)
	}
	if err := s.repo.RemoveItem(ctx, buyerID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetByBuyer(ctx, buyerID)
}

func (s *Service) Clear(ctx context.Context, buyerID string) error {
	return s.repo.Clear(ctx, buyerID)
}
