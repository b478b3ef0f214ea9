package cart

import (
	"context"
	"errors"
	"testing"

	"marketplace-orders/internal/domain"
	cartrepo "marketplace-orders/internal/repository/cart"
)

type stubRepo struct {
	cart           *domain.Cart
	getErr         error
	upsertErr      error
	removeErr      error
	clearErr       error
	lastBuyer      string
	lastProduct    string
	lastQty        int
	lastSnap       cartrepo.LineSnapshot
	removedProduct string
	cleared        bool
}

func (s *stubRepo) GetByBuyer(_ context.Context, buyerID string) (*domain.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.cart != nil {
		return s.cart, nil
	}
	return &domain.Cart{BuyerID: buyerID}, nil
}

func (s *stubRepo) UpsertItem(_ context.Context, buyerID, productID string, quantity int, snap cartrepo.LineSnapshot) error {
	s.lastBuyer = buyerID
	s.lastProduct = productID
	s.lastQty = quantity
	s.lastSnap = snap
	return s.upsertErr
}

func (s *stubRepo) RemoveItem(_ context.Context, _, productID string) error {
	s.removedProduct = productID
	return s.removeErr
}

func (s *stubRepo) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return s.clearErr
}

type stubCatalog struct {
	product *domain.Product
	err     error
}

func (s *stubCatalog) Resolve(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func TestUpsertItemSnapshotsCatalogPrice(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{
		product: &domain.Product{ID: "p1", VendorID: "v1", Name: "Mug", PriceCents: 1250, ImageURL: "http://img/mug"},
	}}

	_, err := svc.UpsertItem(context.Background(), "buyer", "p1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastProduct != "p1" || repo.lastQty != 2 {
		t.Fatalf("unexpected upsert: product=%s qty=%d", repo.lastProduct, repo.lastQty)
	}
	if repo.lastSnap.UnitPriceCents != 1250 || repo.lastSnap.Name != "Mug" || repo.lastSnap.ImageURL != "http://img/mug" {
		t.Fatalf("unexpected snapshot: %+v", repo.lastSnap)
	}
}

func TestUpsertItemZeroQuantityRemoves(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{err: errors.New("catalog must not be consulted")}}

	_, err := svc.UpsertItem(context.Background(), "buyer", "p1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.removedProduct != "p1" {
		t.Fatalf("expected removal of p1, got %q", repo.removedProduct)
	}
	if repo.lastProduct != "" {
		t.Fatalf("expected no upsert, got %q", repo.lastProduct)
	}
}

func TestUpsertItemMissingProductID(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, catalog: &stubCatalog{}}
	_, err := svc.UpsertItem(context.Background(), "buyer", "", 1)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestUpsertItemUnknownProduct(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, catalog: &stubCatalog{err: domain.ErrNotFound}}
	_, err := svc.UpsertItem(context.Background(), "buyer", "gone", 1)
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestUpsertItemCatalogError(t *testing.T) {
	boom := errors.New("boom")
	svc := &Service{repo: &stubRepo{}, catalog: &stubCatalog{err: boom}}
	_, err := svc.UpsertItem(context.Background(), "buyer", "p1", 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}
	if _, err := svc.RemoveItem(context.Background(), "buyer", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.removedProduct != "p1" {
		t.Fatalf("expected removal of p1, got %q", repo.removedProduct)
	}
	if _, err := svc.RemoveItem(context.Background(), "buyer", ""); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestGetReturnsEmptyCartForNewBuyer(t *testing.T) {
	svc := &Service{repo: &stubRepo{}, catalog: &stubCatalog{}}
	cart, err := svc.Get(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.BuyerID != "fresh" || len(cart.Lines) != 0 || cart.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
}

func TestClear(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo, catalog: &stubCatalog{}}
	if err := svc.Clear(context.Background(), "buyer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.cleared {
		t.Fatalf("expected clear to reach the repo")
	}
}
