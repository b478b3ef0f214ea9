package domain

import "time"

type NotificationType string

const (
	NotificationNewOrder      NotificationType = "new-order"
	NotificationStatusChange  NotificationType = "order-status-change"
	NotificationVendorRequest NotificationType = "vendor-request"
	NotificationOther         NotificationType = "other"
)

// Notification is a durable mailbox entry. RecipientID narrows a role-wide
// notice to a single account (vendor or buyer); RelatedID is a non-owning
// back-reference to the order or request that caused it.
type Notification struct {
	ID            string           `json:"id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Body          string           `json:"body"`
	RecipientRole Role             `json:"recipientRole"`
	RecipientID   *string          `json:"recipientId,omitempty"`
	RelatedID     *string          `json:"relatedId,omitempty"`
	IsRead        bool             `json:"isRead"`
	CreatedAt     time.Time        `json:"createdAt"`
}
