package order

import (
	"context"

	"marketplace-orders/internal/domain"
)

type CreateLineInput struct {
	ProductID      string
	VendorID       string
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// NotificationInput is a mailbox entry written in the same transaction as
// the order mutation that caused it.
type NotificationInput struct {
	Type          domain.NotificationType
	Title         string
	Body          string
	RecipientRole domain.Role
	RecipientID   *string
}

type CreateOrderInput struct {
	BuyerID         string
	VendorID        string
	TotalCents      int64
	ShippingAddress string
	PaymentMethod   domain.PaymentMethod
	Lines           []CreateLineInput
	Notify          NotificationInput
}

// StatusUpdateInput is a conditional status change. From is the status the
// caller last observed; the update applies only while it still holds.
type StatusUpdateInput struct {
	OrderID string
	From    domain.OrderStatus
	To      domain.OrderStatus
	Notify  *NotificationInput
}

type GatewayPaymentInput struct {
	OrderID          string
	GatewayPaymentID string
	AmountCents      int64
	Succeeded        bool
}

// GatewayPaymentResult reports what a reconciliation event actually did.
type GatewayPaymentResult struct {
	// Applied is true when the order's payment status changed.
	Applied bool
	// Duplicate is true when the gateway payment id was seen before; the
	// event is acknowledged without side effects.
	Duplicate bool
}

type Repository interface {
	// CreateGroup persists all orders, their lines, and one notification per
	// order as a single atomic unit. Either everything commits or nothing
	// does. Returned ids follow the input order.
	CreateGroup(ctx context.Context, orders []CreateOrderInput) ([]string, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListForBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListForVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	// UpdateStatus applies a compare-and-set status change, the COD
	// delivered-implies-paid rule, and the notification in one transaction.
	// A stale From yields domain.ErrInvalidTransition and no mutation.
	UpdateStatus(ctx context.Context, in StatusUpdateInput) (*domain.Order, error)
	// UpdatePaymentStatus moves payment status out of pending; it never
	// touches the delivery status.
	UpdatePaymentStatus(ctx context.Context, orderID string, to domain.PaymentStatus) error
	// ApplyGatewayPayment records the gateway event for audit and applies
	// the payment status change, idempotent on the gateway payment id.
	ApplyGatewayPayment(ctx context.Context, in GatewayPaymentInput) (GatewayPaymentResult, error)
}
