package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"marketplace-orders/internal/domain"
	orderrepo "marketplace-orders/internal/repository/order"
)

type stubOrders struct {
	ids        []string
	err        error
	lastGroups []orderrepo.CreateOrderInput
}

func (s *stubOrders) CreateGroup(_ context.Context, orders []orderrepo.CreateOrderInput) ([]string, error) {
	s.lastGroups = orders
	if s.err != nil {
		return nil, s.err
	}
	if s.ids != nil {
		return s.ids, nil
	}
	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = string(rune('a' + i))
	}
	return ids, nil
}

type stubCatalog struct {
	products map[string]*domain.Product
	err      error
}

func (s *stubCatalog) Resolve(_ context.Context, productID string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func newTestService(orders *stubOrders, catalog *stubCatalog) *Service {
	return &Service{orders: orders, catalog: catalog, logger: log.New(io.Discard, "", 0)}
}

func TestCheckoutSplitsByVendor(t *testing.T) {
	orders := &stubOrders{}
	catalog := &stubCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", VendorID: "v1", Name: "Mug", PriceCents: 1000},
		"p2": {ID: "p2", VendorID: "v2", Name: "Board", PriceCents: 2500},
		"p3": {ID: "p3", VendorID: "v1", Name: "Towel", PriceCents: 500},
	}}
	svc := newTestService(orders, catalog)

	ids, err := svc.Checkout(context.Background(), "buyer", []Item{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p3", Quantity: 2},
	}, "1 Main St", domain.PaymentMethodCOD)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 orders, got %v", ids)
	}
	if len(orders.lastGroups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(orders.lastGroups))
	}

	first := orders.lastGroups[0]
	if first.VendorID != "v1" {
		t.Fatalf("expected first-seen vendor v1 first, got %s", first.VendorID)
	}
	if len(first.Lines) != 2 || first.TotalCents != 1000+2*500 {
		t.Fatalf("unexpected v1 group: lines=%d total=%d", len(first.Lines), first.TotalCents)
	}
	second := orders.lastGroups[1]
	if second.VendorID != "v2" || len(second.Lines) != 1 || second.TotalCents != 5000 {
		t.Fatalf("unexpected v2 group: %+v", second)
	}

	for _, g := range orders.lastGroups {
		if g.BuyerID != "buyer" || g.PaymentMethod != domain.PaymentMethodCOD {
			t.Fatalf("group lost buyer or method: %+v", g)
		}
		for _, line := range g.Lines {
			if line.VendorID != g.VendorID {
				t.Fatalf("line %s attributed to wrong vendor %s (group %s)", line.ProductID, line.VendorID, g.VendorID)
			}
		}
		if g.Notify.Type != domain.NotificationNewOrder || g.Notify.RecipientRole != domain.RoleVendor {
			t.Fatalf("unexpected notification: %+v", g.Notify)
		}
		if g.Notify.RecipientID == nil || *g.Notify.RecipientID != g.VendorID {
			t.Fatalf("notification not addressed to vendor: %+v", g.Notify)
		}
	}
}

func TestCheckoutUsesResolvedPrices(t *testing.T) {
	orders := &stubOrders{}
	catalog := &stubCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", VendorID: "v1", Name: "Mug", PriceCents: 1250},
	}}
	svc := newTestService(orders, catalog)

	// Quantity comes from the submitted line; price always comes from the
	// catalog at checkout time.
	_, err := svc.Checkout(context.Background(), "buyer", []Item{{ProductID: "p1", Quantity: 3}}, "1 Main St", domain.PaymentMethodGateway)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g := orders.lastGroups[0]
	if g.Lines[0].UnitPriceCents != 1250 || g.TotalCents != 3750 {
		t.Fatalf("expected resolved price 1250 and total 3750, got %d / %d", g.Lines[0].UnitPriceCents, g.TotalCents)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := newTestService(&stubOrders{}, &stubCatalog{})
	_, err := svc.Checkout(context.Background(), "buyer", nil, "1 Main St", domain.PaymentMethodCOD)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestCheckoutMissingAddress(t *testing.T) {
	svc := newTestService(&stubOrders{}, &stubCatalog{})
	_, err := svc.Checkout(context.Background(), "buyer", []Item{{ProductID: "p1", Quantity: 1}}, "   ", domain.PaymentMethodCOD)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestCheckoutUnknownMethod(t *testing.T) {
	svc := newTestService(&stubOrders{}, &stubCatalog{})
	_, err := svc.Checkout(context.Background(), "buyer", []Item{{ProductID: "p1", Quantity: 1}}, "1 Main St", "card")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestCheckoutUnresolvableProductRejectsAll(t *testing.T) {
	orders := &stubOrders{}
	catalog := &stubCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", VendorID: "v1", Name: "Mug", PriceCents: 1000},
	}}
	svc := newTestService(orders, catalog)

	_, err := svc.Checkout(context.Background(), "buyer", []Item{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "gone", Quantity: 1},
	}, "1 Main St", domain.PaymentMethodCOD)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if orders.lastGroups != nil {
		t.Fatalf("expected no write, repo saw %+v", orders.lastGroups)
	}
}

func TestCheckoutBadQuantity(t *testing.T) {
	svc := newTestService(&stubOrders{}, &stubCatalog{})
	_, err := svc.Checkout(context.Background(), "buyer", []Item{{ProductID: "p1", Quantity: 0}}, "1 Main St", domain.PaymentMethodCOD)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestCheckoutRepoError(t *testing.T) {
	boom := errors.New("boom")
	orders := &stubOrders{err: boom}
	catalog := &stubCatalog{products: map[string]*domain.Product{
		"p1": {ID: "p1", VendorID: "v1", Name: "Mug", PriceCents: 1000},
	}}
	svc := newTestService(orders, catalog)

	_, err := svc.Checkout(context.Background(), "buyer", []Item{{ProductID: "p1", Quantity: 1}}, "1 Main St", domain.PaymentMethodCOD)
	if !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}
