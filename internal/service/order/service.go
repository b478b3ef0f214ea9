package order

import (
	"context"
	"fmt"

	"marketplace-orders/internal/domain"
	orderrepo "marketplace-orders/internal/repository/order"
)

// Service enforces who may move an order through its lifecycle and which
// moves are legal. The store applies the change conditionally, so a racing
// mutation on the same order surfaces as domain.ErrInvalidTransition rather
// than a lost update.
type Service struct {
	repo orderRepo
}

type orderRepo interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListForVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, in orderrepo.StatusUpdateInput) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID string, to domain.PaymentStatus) error
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns an order visible to the actor: its buyer, its vendor, or an
// admin. Anyone else gets not-found rather than confirmation it exists.
func (s *Service) Get(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && o.BuyerID != actor.UserID && o.VendorID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (s *Service) ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	return s.repo.ListForBuyer(ctx, buyerID)
}

func (s *Service) ListForVendor(ctx context.Context, vendorID string) ([]domain.Order, error) {
	return s.repo.ListForVendor(ctx, vendorID)
}

// SetStatus moves an order along the fulfillment lifecycle. Only the owning
// vendor or an admin may call it; the actor's role comes from the current
// user row, not a cached claim. Delivering a COD order settles its payment
// in the same store update.
func (s *Service) SetStatus(ctx context.Context, actor domain.Actor, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	if _, ok := domain.ParseOrderStatus(string(to)); !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidRequest, to)
	}

	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !(actor.Role == domain.RoleVendor && o.VendorID == actor.UserID) {
		return nil, domain.ErrUnauthorized
	}
	if !domain.CanTransition(o.Status, to) {
		return nil, domain.ErrInvalidTransition
	}

	buyer := o.BuyerID
	return s.repo.UpdateStatus(ctx, orderrepo.StatusUpdateInput{
		OrderID: orderID,
		From:    o.Status,
		To:      to,
		Notify: &orderrepo.NotificationInput{
			Type:          domain.NotificationStatusChange,
			Title:         "Order status updated",
			Body:          fmt.Sprintf("Your order is now %s.", statusLabel(to)),
			RecipientRole: domain.RoleBuyer,
			RecipientID:   &buyer,
		},
	})
}

// MarkPaymentFailed lets an admin close out a payment that will never
// arrive. Gateway confirmations come through the reconciliation listener,
// never through here.
func (s *Service) MarkPaymentFailed(ctx context.Context, actor domain.Actor, orderID string) error {
	if !actor.IsAdmin() {
		return domain.ErrUnauthorized
	}
	if _, err := s.repo.Get(ctx, orderID); err != nil {
		return err
	}
	return s.repo.UpdatePaymentStatus(ctx, orderID, domain.PaymentFailed)
}

func statusLabel(st domain.OrderStatus) string {
	if st == domain.OrderOutForDelivery {
		return "out for delivery"
	}
	return string(st)
}
