package vendorrequest

import (
	"context"

	"marketplace-orders/internal/domain"
)

type CreateInput struct {
	UserID   string
	ShopName string
	Message  string
}

type Repository interface {
	// Create opens a pending request. A user with a pending request cannot
	// open another one.
	Create(ctx context.Context, in CreateInput) (*domain.VendorRequest, error)
	Get(ctx context.Context, id string) (*domain.VendorRequest, error)
	List(ctx context.Context, status *domain.VendorRequestStatus) ([]domain.VendorRequest, error)
	// Decide approves or rejects a pending request. Approval promotes the
	// requesting user to vendor and notifies them, all in one transaction;
	// deciding a non-pending request is domain.ErrInvalidTransition.
	Decide(ctx context.Context, id string, approve bool) (*domain.VendorRequest, error)
}
