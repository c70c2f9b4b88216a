package repository

import (
	"context"

	"blog-dashboard/internal/domain"
)

// BlogPatch carries the mutable blog fields. Nil fields are left untouched.
type BlogPatch struct {
	Title       *string
	Description *string
}

// BlogRepository defines persistence operations for Blog entities.
type BlogRepository interface {
	Init(ctx context.Context) error
	Find(ctx context.Context, filter BlogFilter) ([]domain.Blog, error)
	FindOne(ctx context.Context, filter BlogFilter) (*domain.Blog, error)
	Create(ctx context.Context, blog *domain.Blog) error
	// Update applies patch to the first blog matching filter and returns the updated record.
	Update(ctx context.Context, filter BlogFilter, patch BlogPatch) (*domain.Blog, error)
	// Delete removes the first blog matching filter and returns it as it was before removal.
	Delete(ctx context.Context, filter BlogFilter) (*domain.Blog, error)
}
