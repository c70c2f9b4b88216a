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

type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) repository.BlogRepository {
	return &BlogRepository{coll: db.Collection(blogsCollection)}
}

func (r *BlogRepository) Init(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "category", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create blog indexes: %w", err)
	}
	return nil
}

func (r *BlogRepository) Find(ctx context.Context, filter repository.BlogFilter) ([]domain.Blog, error) {
	doc, err := blogFilterDoc(filter)
	if err != nil {
		return nil, err
	}
	cursor, err := r.coll.Find(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	blogs := make([]domain.Blog, len(docs))
	for i := range docs {
		blogs[i] = docs[i].toDomain()
	}
	return blogs, nil
}

func (r *BlogRepository) FindOne(ctx context.Context, filter repository.BlogFilter) (*domain.Blog, error) {
	doc, err := blogFilterDoc(filter)
	if err != nil {
		return nil, err
	}
	return decodeBlog(r.coll.FindOne(ctx, doc))
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	now := domain.Now()
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	blog.UpdatedAt = now

	doc, err := blogToDocument(blog)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	*blog = doc.toDomain()
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, filter repository.BlogFilter, patch repository.BlogPatch) (*domain.Blog, error) {
	doc, err := blogFilterDoc(filter)
	if err != nil {
		return nil, err
	}
	return decodeBlog(r.coll.FindOneAndUpdate(ctx,
		doc,
		bson.M{"$set": blogPatchDoc(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	))
}

func (r *BlogRepository) Delete(ctx context.Context, filter repository.BlogFilter) (*domain.Blog, error) {
	doc, err := blogFilterDoc(filter)
	if err != nil {
		return nil, err
	}
	return decodeBlog(r.coll.FindOneAndDelete(ctx, doc))
}

func blogPatchDoc(patch repository.BlogPatch) bson.M {
	set := bson.M{"updatedAt": domain.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	return set
}

func decodeBlog(res *mongo.SingleResult) (*domain.Blog, error) {
	var doc blogDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("decode blog: %w", err)
	}
	blog := doc.toDomain()
	return &blog, nil
}
