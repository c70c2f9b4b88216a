package repository

import (
	"context"

	"blog-dashboard/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUsername(ctx context.Context, id, username string) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
