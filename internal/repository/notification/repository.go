package notification

import (
	"context"

	"marketplace-orders/internal/domain"
)

type CreateInput struct {
	Type          domain.NotificationType
	Title         string
	Body          string
	RecipientRole domain.Role
	RecipientID   *string
	RelatedID     *string
}

// Recipient scopes reads and read-marking to one mailbox. A nil UserID
// addresses the role-wide mailbox (admin notices).
type Recipient struct {
	Role   domain.Role
	UserID *string
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.Notification, error)
	// ListFor returns the recipient's notifications, newest first. Role-wide
	// notices (no recipient id) are included for everyone holding the role.
	ListFor(ctx context.Context, rcpt Recipient) ([]domain.Notification, error)
	// MarkRead flips is_read for a notification the recipient can see.
	MarkRead(ctx context.Context, id string, rcpt Recipient) error
}
