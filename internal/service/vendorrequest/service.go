package vendorrequest

import (
	"context"
	"fmt"
	"strings"

	"marketplace-orders/internal/domain"
	vrrepo "marketplace-orders/internal/repository/vendorrequest"
)

// Service drives the buyer-to-vendor promotion flow. Because checkout and
// status changes re-resolve the actor's role per request, an approval here
// takes effect on the very next call the user makes.
type Service struct {
	repo vrrepo.Repository
}

func New(repo vrrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Apply(ctx context.Context, actor domain.Actor, shopName, message string) (*domain.VendorRequest, error) {
	if actor.Role != domain.RoleBuyer {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(shopName) == "" {
		return nil, fmt.Errorf("%w: shopName required", domain.ErrInvalidRequest)
	}
	return s.repo.Create(ctx, vrrepo.CreateInput{
		UserID:   actor.UserID,
		ShopName: strings.TrimSpace(shopName),
		Message:  message,
	})
}

func (s *Service) List(ctx context.Context, actor domain.Actor, status *domain.VendorRequestStatus) ([]domain.VendorRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.List(ctx, status)
}

func (s *Service) Decide(ctx context.Context, actor domain.Actor, requestID string, approve bool) (*domain.VendorRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.Decide(ctx, requestID, approve)
}
