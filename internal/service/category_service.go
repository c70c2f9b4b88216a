package service

import (
	"context"
	"strings"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

// CategoryService runs the category workflows for a single owning user.
type CategoryService interface {
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID, title string) (*domain.Category, error)
	RenameCategory(ctx context.Context, userID, categoryID, title string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error)
}

type categoryService struct {
	gate       existenceGate
	categories repository.CategoryRepository
	archiver   Archiver
}

func NewCategoryService(users repository.UserRepository, categories repository.CategoryRepository, archiver Archiver) CategoryService {
	return &categoryService{
		gate:       existenceGate{users: users, categories: categories},
		categories: categories,
		archiver:   archiverOrNop(archiver),
	}
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	req, err := s.gate.check(ctx, gateRequest{UserID: userID})
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, domain.Unexpected(err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID, title string) (*domain.Category, error) {
	req, err := s.gate.validate(gateRequest{UserID: userID})
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.InvalidArgument("Title is required")
	}
	if err := s.gate.lookup(ctx, req); err != nil {
		return nil, err
	}

	category := &domain.Category{Title: title, UserID: req.UserID}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, domain.Unexpected(err)
	}
	return category, nil
}

func (s *categoryService) RenameCategory(ctx context.Context, userID, categoryID, title string) (*domain.Category, error) {
	req, err := s.gate.validate(gateRequest{UserID: userID, Extra: []IDParam{{Name: "categoryId", Value: categoryID}}})
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.InvalidArgument("Title is required")
	}
	if err := s.gate.lookup(ctx, req); err != nil {
		return nil, err
	}

	category, err := s.categories.UpdateTitle(ctx, req.extra("categoryId"), req.UserID, title)
	if err != nil {
		return nil, storeError(err, "category")
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	req, err := s.gate.check(ctx, gateRequest{UserID: userID, Extra: []IDParam{{Name: "categoryId", Value: categoryID}}})
	if err != nil {
		return nil, err
	}

	category, err := s.categories.Delete(ctx, req.extra("categoryId"), req.UserID)
	if err != nil {
		return nil, storeError(err, "category")
	}
	s.archiver.Archive("category", category.ID, category)
	return category, nil
}
