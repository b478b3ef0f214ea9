package domain

import "time"

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderProcessing     OrderStatus = "processing"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodGateway PaymentMethod = "gateway"
)

// orderEdges is the allowed directed edge set for order status. Delivered
// and cancelled are terminal; nothing moves backward.
var orderEdges = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderProcessing, OrderCancelled},
	OrderProcessing:     {OrderShipped, OrderCancelled},
	OrderShipped:        {OrderOutForDelivery},
	OrderOutForDelivery: {OrderDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderShipped, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCOD, PaymentMethodGateway:
		return PaymentMethod(s), true
	}
	return "", false
}

// Order is one vendor's share of a checkout. Line items are denormalized at
// creation time so later catalog changes never alter a placed order. Every
// line belongs to the order's vendor.
type Order struct {
	ID               string        `json:"id"`
	BuyerID          string        `json:"buyerId"`
	VendorID         string        `json:"vendorId"`
	TotalCents       int64         `json:"totalCents"`
	ShippingAddress  string        `json:"shippingAddress"`
	PaymentMethod    PaymentMethod `json:"paymentMethod"`
	Status           OrderStatus   `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	GatewayPaymentID *string       `json:"gatewayPaymentId,omitempty"`
	PaidAmountCents  *int64        `json:"paidAmountCents,omitempty"`
	PaidAt           *time.Time    `json:"paidAt,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
	Lines            []OrderLine   `json:"lineItems,omitempty"`
}

type OrderLine struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	ProductID      string `json:"productId"`
	VendorID       string `json:"vendorId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	TotalCents     int64  `json:"totalCents"`
}
