package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

func (r *CategoryRepository) Init(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}})
	if err != nil {
		return fmt.Errorf("create category indexes: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	user, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, bson.M{"user": user})
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	categories := make([]domain.Category, len(docs))
	for i := range docs {
		categories[i] = docs[i].toDomain()
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	id, err := objectIDOrNew(category.ID)
	if err != nil {
		return err
	}
	user, err := objectID(category.UserID)
	if err != nil {
		return err
	}
	now := domain.Now()
	doc := categoryDocument{
		ID:        id,
		Title:     category.Title,
		User:      user,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	*category = doc.toDomain()
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return decodeCategory(r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *CategoryRepository) UpdateTitle(ctx context.Context, id, userID, title string) (*domain.Category, error) {
	filter, err := ownedFilter(id, userID)
	if err != nil {
		return nil, err
	}
	return decodeCategory(r.coll.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$set": bson.M{"title": title, "updatedAt": domain.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	))
}

func (r *CategoryRepository) Delete(ctx context.Context, id, userID string) (*domain.Category, error) {
	filter, err := ownedFilter(id, userID)
	if err != nil {
		return nil, err
	}
	return decodeCategory(r.coll.FindOneAndDelete(ctx, filter))
}

func ownedFilter(id, userID string) (bson.M, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	user, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "user": user}, nil
}

func decodeCategory(res *mongo.SingleResult) (*domain.Category, error) {
	var doc categoryDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("decode category: %w", err)
	}
	category := doc.toDomain()
	return &category, nil
}
