package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-dashboard/internal/domain"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email,omitempty"`
	Password  string             `bson:"password,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type categoryDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d categoryDocument) toDomain() domain.Category {
	return domain.Category{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		UserID:    d.User.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type blogDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	User        primitive.ObjectID `bson:"user"`
	Category    primitive.ObjectID `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d blogDocument) toDomain() domain.Blog {
	return domain.Blog{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		UserID:      d.User.Hex(),
		CategoryID:  d.Category.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func blogToDocument(b *domain.Blog) (blogDocument, error) {
	id, err := objectIDOrNew(b.ID)
	if err != nil {
		return blogDocument{}, err
	}
	user, err := objectID(b.UserID)
	if err != nil {
		return blogDocument{}, err
	}
	category, err := objectID(b.CategoryID)
	if err != nil {
		return blogDocument{}, err
	}
	return blogDocument{
		ID:          id,
		Title:       b.Title,
		Description: b.Description,
		User:        user,
		Category:    category,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}, nil
}
