package catalog

import (
	"context"
	"fmt"
	"strings"

	"marketplace-orders/internal/domain"
	catalogrepo "marketplace-orders/internal/repository/catalog"
)

// Service is the thin vendor-facing product surface. It exists so orders
// have a real catalog to resolve against; it is not a full catalog system.
type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	ImageURL    string `json:"imageUrl"`
}

// Create lists a product under the acting vendor. Vendor attribution always
// comes from the actor, never the payload.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (*domain.Product, error) {
	if actor.Role != domain.RoleVendor && !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidRequest)
	}
	if in.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidRequest)
	}
	return s.repo.Create(ctx, catalogrepo.CreateProductInput{
		VendorID:    actor.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
	})
}

func (s *Service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.Resolve(ctx, productID)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}
