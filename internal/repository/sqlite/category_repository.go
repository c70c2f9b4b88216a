package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

const createCategoriesTable = `
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	user_id TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories(user_id);
`

const categoryColumns = `id, title, user_id, created_at, updated_at`

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCategoriesTable); err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+categoryColumns+`
FROM categories
WHERE user_id = ?
ORDER BY rowid ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	now := domain.Now()
	if category.ID == "" {
		category.ID = domain.NewID()
	}
	category.CreatedAt = now
	category.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO categories (id, title, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		category.ID,
		category.Title,
		category.UserID,
		toMillis(category.CreatedAt),
		toMillis(category.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

func (r *CategoryRepository) UpdateTitle(ctx context.Context, id, userID, title string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE categories
SET title=?, updated_at=?
WHERE id=? AND user_id=?
RETURNING `+categoryColumns,
		title,
		toMillis(domain.Now()),
		id,
		userID,
	)
	return scanCategory(row)
}

func (r *CategoryRepository) Delete(ctx context.Context, id, userID string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
DELETE FROM categories
WHERE id=? AND user_id=?
RETURNING `+categoryColumns, id, userID)
	return scanCategory(row)
}

func scanCategory(row interface {
	Scan(dest ...any) error
}) (*domain.Category, error) {
	var (
		category  domain.Category
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&category.ID, &category.Title, &category.UserID, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	category.CreatedAt = fromMillis(createdAt)
	category.UpdatedAt = fromMillis(updatedAt)
	return &category, nil
}
