package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

const createBlogsTable = `
CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	user_id TEXT NOT NULL,
	category_id TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_blogs_user_category ON blogs(user_id, category_id);
`

const blogColumns = `id, title, description, user_id, category_id, created_at, updated_at`

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBlogsTable); err != nil {
		return fmt.Errorf("create blogs table: %w", err)
	}
	return nil
}

func (r *BlogRepository) Find(ctx context.Context, filter repository.BlogFilter) ([]domain.Blog, error) {
	where, args, err := blogWhere(filter)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+blogColumns+`
FROM blogs
WHERE `+where+`
ORDER BY rowid ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	return blogs, rows.Err()
}

func (r *BlogRepository) FindOne(ctx context.Context, filter repository.BlogFilter) (*domain.Blog, error) {
	where, args, err := blogWhere(filter)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+blogColumns+`
FROM blogs
WHERE `+where+`
ORDER BY rowid ASC
LIMIT 1`, args...)
	return scanBlog(row)
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	now := domain.Now()
	if blog.ID == "" {
		blog.ID = domain.NewID()
	}
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	blog.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO blogs (id, title, description, user_id, category_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Description,
		blog.UserID,
		blog.CategoryID,
		toMillis(blog.CreatedAt),
		toMillis(blog.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, filter repository.BlogFilter, patch repository.BlogPatch) (*domain.Blog, error) {
	where, args, err := blogWhere(filter)
	if err != nil {
		return nil, err
	}
	params := append([]any{patch.Title, patch.Description, toMillis(domain.Now())}, args...)
	row := r.db.QueryRowContext(ctx, `
UPDATE blogs
SET title=COALESCE(?, title), description=COALESCE(?, description), updated_at=?
WHERE rowid = (SELECT rowid FROM blogs WHERE `+where+` ORDER BY rowid ASC LIMIT 1)
RETURNING `+blogColumns, params...)
	return scanBlog(row)
}

func (r *BlogRepository) Delete(ctx context.Context, filter repository.BlogFilter) (*domain.Blog, error) {
	where, args, err := blogWhere(filter)
	if err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx, `
DELETE FROM blogs
WHERE rowid = (SELECT rowid FROM blogs WHERE `+where+` ORDER BY rowid ASC LIMIT 1)
RETURNING `+blogColumns, args...)
	return scanBlog(row)
}

func scanBlog(row interface {
	Scan(dest ...any) error
}) (*domain.Blog, error) {
	var (
		blog      domain.Blog
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Description,
		&blog.UserID,
		&blog.CategoryID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	blog.CreatedAt = fromMillis(createdAt)
	blog.UpdatedAt = fromMillis(updatedAt)
	return &blog, nil
}
