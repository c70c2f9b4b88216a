package service

import (
	"context"
	"strings"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

// BlogInput carries the fields of a new blog.
type BlogInput struct {
	Title       string
	Description string
}

// BlogService runs the blog workflows. Every operation validates identifiers and checks that
// the referenced user (and category, where relevant) exists before touching blogs.
type BlogService interface {
	ListBlogs(ctx context.Context, q BlogQuery) ([]domain.Blog, error)
	CreateBlog(ctx context.Context, userID, categoryID string, in BlogInput) (*domain.Blog, error)
	GetBlog(ctx context.Context, userID, categoryID, blogID string) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, userID, blogID string, patch repository.BlogPatch) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, userID, blogID string) (*domain.Blog, error)
}

type blogService struct {
	gate     existenceGate
	blogs    repository.BlogRepository
	archiver Archiver
}

func NewBlogService(users repository.UserRepository, categories repository.CategoryRepository, blogs repository.BlogRepository, archiver Archiver) BlogService {
	return &blogService{
		gate:     existenceGate{users: users, categories: categories},
		blogs:    blogs,
		archiver: archiverOrNop(archiver),
	}
}

func (s *blogService) ListBlogs(ctx context.Context, q BlogQuery) ([]domain.Blog, error) {
	req, err := s.gate.validate(gateRequest{UserID: q.UserID, CategoryID: q.CategoryID, NeedCategory: true})
	if err != nil {
		return nil, err
	}
	q.UserID, q.CategoryID = req.UserID, req.CategoryID
	filter, err := BuildBlogFilter(q)
	if err != nil {
		return nil, err
	}
	if err := s.gate.lookup(ctx, req); err != nil {
		return nil, err
	}

	blogs, err := s.blogs.Find(ctx, filter)
	if err != nil {
		return nil, domain.Unexpected(err)
	}
	if blogs == nil {
		blogs = []domain.Blog{}
	}
	return blogs, nil
}

func (s *blogService) CreateBlog(ctx context.Context, userID, categoryID string, in BlogInput) (*domain.Blog, error) {
	req, err := s.gate.validate(gateRequest{UserID: userID, CategoryID: categoryID, NeedCategory: true})
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.InvalidArgument("Title is required")
	}
	if err := s.gate.lookup(ctx, req); err != nil {
		return nil, err
	}

	blog := &domain.Blog{
		Title:       title,
		Description: in.Description,
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, domain.Unexpected(err)
	}
	return blog, nil
}

func (s *blogService) GetBlog(ctx context.Context, userID, categoryID, blogID string) (*domain.Blog, error) {
	req, err := s.gate.check(ctx, gateRequest{
		UserID:       userID,
		CategoryID:   categoryID,
		NeedCategory: true,
		Extra:        []IDParam{{Name: "blogId", Value: blogID}},
	})
	if err != nil {
		return nil, err
	}

	blog, err := s.blogs.FindOne(ctx, repository.BlogFilter{ID: req.extra("blogId"), UserID: req.UserID, CategoryID: req.CategoryID})
	if err != nil {
		return nil, storeError(err, "blog")
	}
	return blog, nil
}

// UpdateBlog replaces title and/or description of a blog owned by userID. The category is not
// re-checked. Ownership is enforced by the store in the same operation as the write.
func (s *blogService) UpdateBlog(ctx context.Context, userID, blogID string, patch repository.BlogPatch) (*domain.Blog, error) {
	req, err := s.gate.validate(gateRequest{UserID: userID, Extra: []IDParam{{Name: "blogId", Value: blogID}}})
	if err != nil {
		return nil, err
	}
	if patch.Title == nil && patch.Description == nil {
		return nil, domain.InvalidArgument("Title or description is required")
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.InvalidArgument("Title must not be empty")
		}
		patch.Title = &title
	}
	if err := s.gate.lookup(ctx, req); err != nil {
		return nil, err
	}

	blog, err := s.blogs.Update(ctx, repository.BlogFilter{ID: req.extra("blogId"), UserID: req.UserID}, patch)
	if err != nil {
		return nil, storeError(err, "blog")
	}
	return blog, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, userID, blogID string) (*domain.Blog, error) {
	req, err := s.gate.check(ctx, gateRequest{UserID: userID, Extra: []IDParam{{Name: "blogId", Value: blogID}}})
	if err != nil {
		return nil, err
	}

	blog, err := s.blogs.Delete(ctx, repository.BlogFilter{ID: req.extra("blogId"), UserID: req.UserID})
	if err != nil {
		return nil, storeError(err, "blog")
	}
	s.archiver.Archive("blog", blog.ID, blog)
	return blog, nil
}
