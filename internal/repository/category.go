package repository

import (
	"context"

	"blog-dashboard/internal/domain"
)

// CategoryRepository defines persistence operations for Category entities.
// UpdateTitle and Delete only match a category owned by userID.
type CategoryRepository interface {
	Init(ctx context.Context) error
	ListByUser(ctx context.Context, userID string) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	UpdateTitle(ctx context.Context, id, userID, title string) (*domain.Category, error)
	Delete(ctx context.Context, id, userID string) (*domain.Category, error)
}
