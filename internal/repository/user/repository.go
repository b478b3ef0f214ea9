package user

import (
	"context"

	"marketplace-orders/internal/domain"
)

type CreateUserInput struct {
	Email        string
	Name         string
	PasswordHash string
	Role         domain.Role
}

type Repository interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
