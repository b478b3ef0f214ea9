package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"marketplace-orders/internal/domain"
	catalogrepo "marketplace-orders/internal/repository/catalog"
	orderrepo "marketplace-orders/internal/repository/order"
)

// Service turns a multi-vendor cart into one order per vendor. All orders of
// a checkout and their vendor notifications commit as one unit; a reader can
// never observe a partially placed checkout.
type Service struct {
	orders  ordersRepo
	catalog catalogrepo.Reader
	logger  *log.Logger
}

type ordersRepo interface {
	CreateGroup(ctx context.Context, orders []orderrepo.CreateOrderInput) ([]string, error)
}

func New(orders orderrepo.Repository, catalog catalogrepo.Reader, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, catalog: catalog, logger: logger}
}

// Item is one cart line as submitted by the buyer. Only the product id and
// quantity are trusted; price and vendor attribution are resolved fresh.
type Item struct {
	ProductID string
	Quantity  int
}

func (s *Service) Checkout(ctx context.Context, buyerID string, items []Item, shippingAddress string, method domain.PaymentMethod) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping address required", domain.ErrInvalidRequest)
	}
	if _, ok := domain.ParsePaymentMethod(string(method)); !ok {
		return nil, fmt.Errorf("%w: unsupported payment method %q", domain.ErrInvalidRequest, method)
	}

	// Resolve every line against the catalog before writing anything. The
	// buyer cannot spoof prices or vendor attribution, and one unresolvable
	// product rejects the whole checkout.
	type resolvedLine struct {
		product  domain.Product
		quantity int
	}
	resolved := make([]resolvedLine, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: invalid quantity for product %s", domain.ErrInvalidRequest, item.ProductID)
		}
		product, err := s.catalog.Resolve(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: product %s not found", domain.ErrInvalidRequest, item.ProductID)
			}
			return nil, err
		}
		resolved = append(resolved, resolvedLine{product: *product, quantity: item.Quantity})
	}

	// Partition by vendor, keeping first-seen vendor order and per-vendor
	// line order.
	groupIdx := make(map[string]int)
	var groups []orderrepo.CreateOrderInput
	for _, line := range resolved {
		vendorID := line.product.VendorID
		idx, ok := groupIdx[vendorID]
		if !ok {
			idx = len(groups)
			groupIdx[vendorID] = idx
			recipient := vendorID
			groups = append(groups, orderrepo.CreateOrderInput{
				BuyerID:         buyerID,
				VendorID:        vendorID,
				ShippingAddress: strings.TrimSpace(shippingAddress),
				PaymentMethod:   method,
				Notify: orderrepo.NotificationInput{
					Type:          domain.NotificationNewOrder,
					Title:         "New order received",
					RecipientRole: domain.RoleVendor,
					RecipientID:   &recipient,
				},
			})
		}
		groups[idx].Lines = append(groups[idx].Lines, orderrepo.CreateLineInput{
			ProductID:      line.product.ID,
			VendorID:       vendorID,
			Name:           line.product.Name,
			UnitPriceCents: line.product.PriceCents,
			Quantity:       line.quantity,
		})
		groups[idx].TotalCents += line.product.PriceCents * int64(line.quantity)
	}

	for i := range groups {
		groups[i].Notify.Body = fmt.Sprintf("You received a new order with %d item(s), total %d cents.",
			len(groups[i].Lines), groups[i].TotalCents)
	}

	ids, err := s.orders.CreateGroup(ctx, groups)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("checkout: buyer=%s vendors=%d orders=%v", buyerID, len(groups), ids)
	return ids, nil
}
