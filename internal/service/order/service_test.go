package order

import (
	"context"
	"errors"
	"testing"

	"marketplace-orders/internal/domain"
	orderrepo "marketplace-orders/internal/repository/order"
)

type stubRepo struct {
	order            *domain.Order
	getErr           error
	updated          *domain.Order
	updateErr        error
	lastUpdate       *orderrepo.StatusUpdateInput
	paymentErr       error
	lastPaymentOrder string
	lastPaymentTo    domain.PaymentStatus
}

func (s *stubRepo) Get(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubRepo) ListForBuyer(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) ListForVendor(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, in orderrepo.StatusUpdateInput) (*domain.Order, error) {
	s.lastUpdate = &in
	return s.updated, s.updateErr
}

func (s *stubRepo) UpdatePaymentStatus(_ context.Context, orderID string, to domain.PaymentStatus) error {
	s.lastPaymentOrder = orderID
	s.lastPaymentTo = to
	return s.paymentErr
}

func vendorActor(id string) domain.Actor {
	return domain.Actor{UserID: id, Role: domain.RoleVendor}
}

func TestGetHidesOrdersFromStrangers(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", BuyerID: "b1", VendorID: "v1"}}
	svc := &Service{repo: repo}

	if _, err := svc.Get(context.Background(), domain.Actor{UserID: "b1", Role: domain.RoleBuyer}, "o1"); err != nil {
		t.Fatalf("buyer should see own order: %v", err)
	}
	if _, err := svc.Get(context.Background(), vendorActor("v1"), "o1"); err != nil {
		t.Fatalf("vendor should see own order: %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.Actor{UserID: "root", Role: domain.RoleAdmin}, "o1"); err != nil {
		t.Fatalf("admin should see any order: %v", err)
	}
	_, err := svc.Get(context.Background(), domain.Actor{UserID: "b2", Role: domain.RoleBuyer}, "o1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("stranger should get not found, got %v", err)
	}
}

func TestSetStatusHappyPath(t *testing.T) {
	repo := &stubRepo{
		order:   &domain.Order{ID: "o1", BuyerID: "b1", VendorID: "v1", Status: domain.OrderPending},
		updated: &domain.Order{ID: "o1", Status: domain.OrderProcessing},
	}
	svc := &Service{repo: repo}

	got, err := svc.SetStatus(context.Background(), vendorActor("v1"), "o1", domain.OrderProcessing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.OrderProcessing {
		t.Fatalf("unexpected order: %+v", got)
	}
	if repo.lastUpdate == nil || repo.lastUpdate.From != domain.OrderPending || repo.lastUpdate.To != domain.OrderProcessing {
		t.Fatalf("unexpected update input: %+v", repo.lastUpdate)
	}
	n := repo.lastUpdate.Notify
	if n == nil || n.Type != domain.NotificationStatusChange || n.RecipientRole != domain.RoleBuyer {
		t.Fatalf("expected buyer notification, got %+v", n)
	}
	if n.RecipientID == nil || *n.RecipientID != "b1" {
		t.Fatalf("notification not addressed to buyer: %+v", n)
	}
}

func TestSetStatusUnknownStatus(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	_, err := svc.SetStatus(context.Background(), vendorActor("v1"), "o1", "lost")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestSetStatusForeignVendor(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", VendorID: "v1", Status: domain.OrderPending}}
	svc := &Service{repo: repo}
	_, err := svc.SetStatus(context.Background(), vendorActor("v2"), "o1", domain.OrderProcessing)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if repo.lastUpdate != nil {
		t.Fatalf("expected no write, got %+v", repo.lastUpdate)
	}
}

func TestSetStatusBuyerForbidden(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", BuyerID: "b1", VendorID: "v1", Status: domain.OrderPending}}
	svc := &Service{repo: repo}
	_, err := svc.SetStatus(context.Background(), domain.Actor{UserID: "b1", Role: domain.RoleBuyer}, "o1", domain.OrderCancelled)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSetStatusIllegalTransition(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", VendorID: "v1", Status: domain.OrderShipped}}
	svc := &Service{repo: repo}

	for _, to := range []domain.OrderStatus{domain.OrderPending, domain.OrderProcessing, domain.OrderCancelled, domain.OrderDelivered} {
		_, err := svc.SetStatus(context.Background(), vendorActor("v1"), "o1", to)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("shipped -> %s: expected invalid transition, got %v", to, err)
		}
	}
	if repo.lastUpdate != nil {
		t.Fatalf("expected no write, got %+v", repo.lastUpdate)
	}
}

func TestSetStatusConcurrentLoser(t *testing.T) {
	// Another writer moved the order between our read and write; the store's
	// conditional update reports it as an invalid transition.
	repo := &stubRepo{
		order:     &domain.Order{ID: "o1", VendorID: "v1", Status: domain.OrderPending},
		updateErr: domain.ErrInvalidTransition,
	}
	svc := &Service{repo: repo}
	_, err := svc.SetStatus(context.Background(), vendorActor("v1"), "o1", domain.OrderProcessing)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestMarkPaymentFailedAdminOnly(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: "o1", VendorID: "v1"}}
	svc := &Service{repo: repo}

	if err := svc.MarkPaymentFailed(context.Background(), vendorActor("v1"), "o1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for vendor, got %v", err)
	}
	if err := svc.MarkPaymentFailed(context.Background(), domain.Actor{UserID: "root", Role: domain.RoleAdmin}, "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastPaymentOrder != "o1" || repo.lastPaymentTo != domain.PaymentFailed {
		t.Fatalf("unexpected payment update: %s %s", repo.lastPaymentOrder, repo.lastPaymentTo)
	}
}

func TestMarkPaymentFailedMissingOrder(t *testing.T) {
	repo := &stubRepo{getErr: domain.ErrNotFound}
	svc := &Service{repo: repo}
	err := svc.MarkPaymentFailed(context.Background(), domain.Actor{UserID: "root", Role: domain.RoleAdmin}, "o1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
