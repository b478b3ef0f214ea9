package notification

import (
	"context"

	"marketplace-orders/internal/domain"
	notifrepo "marketplace-orders/internal/repository/notification"
)

// Service reads and marks the per-recipient mailbox. Entries are written by
// checkout, status changes, and vendor request decisions inside their own
// transactions; this service never creates order notifications itself.
type Service struct {
	repo notifrepo.Repository
}

func New(repo notifrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListFor(ctx context.Context, actor domain.Actor) ([]domain.Notification, error) {
	return s.repo.ListFor(ctx, recipientFor(actor))
}

func (s *Service) MarkRead(ctx context.Context, actor domain.Actor, notificationID string) error {
	return s.repo.MarkRead(ctx, notificationID, recipientFor(actor))
}

// Announce writes a free-form notice; used for role-wide admin notices.
func (s *Service) Announce(ctx context.Context, in notifrepo.CreateInput) (*domain.Notification, error) {
	return s.repo.Create(ctx, in)
}

func recipientFor(actor domain.Actor) notifrepo.Recipient {
	if actor.IsAdmin() {
		// Admin notices are role-wide.
		return notifrepo.Recipient{Role: domain.RoleAdmin}
	}
	userID := actor.UserID
	return notifrepo.Recipient{Role: actor.Role, UserID: &userID}
}
