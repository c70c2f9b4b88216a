package mongodb

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

// openTestDatabase connects to BLOGDASH_TEST_MONGO_URI, skipping when it is unset.
func openTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("BLOGDASH_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BLOGDASH_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := Open(ctx, uri, "blogdash_test_"+domain.NewID())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestBlogRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t)

	users := NewUserRepository(db)
	blogs := NewBlogRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, blogs.Init(ctx))

	user := &domain.User{Username: "alice"}
	require.NoError(t, users.Create(ctx, user))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{Username: "alice"}), repository.ErrDuplicate)

	category := domain.NewID()
	blog := &domain.Blog{Title: "T", Description: "D", UserID: user.ID, CategoryID: category}
	require.NoError(t, blogs.Create(ctx, blog))

	got, err := blogs.FindOne(ctx, repository.BlogFilter{ID: blog.ID, UserID: user.ID, CategoryID: category})
	require.NoError(t, err)
	assert.Equal(t, *blog, *got)

	_, err = blogs.Delete(ctx, repository.BlogFilter{ID: blog.ID, UserID: domain.NewID()})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := blogs.Delete(ctx, repository.BlogFilter{ID: blog.ID, UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "T", deleted.Title)

	_, err = blogs.FindOne(ctx, repository.BlogFilter{ID: blog.ID})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
