package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	alice := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, alice))
	assert.True(t, domain.IsValidID(alice.ID))
	require.NoError(t, repo.Create(ctx, &domain.User{Username: "bob"}))
	require.NoError(t, repo.Create(ctx, &domain.User{Username: "carol"}))

	err := repo.Create(ctx, &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, alice.CreatedAt, got.CreatedAt)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{users[0].Username, users[1].Username, users[2].Username})

	renamed, err := repo.UpdateUsername(ctx, alice.ID, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "alicia", renamed.Username)

	_, err = repo.UpdateUsername(ctx, alice.ID, "bob")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.UpdateUsername(ctx, domain.NewID(), "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := repo.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alicia", deleted.Username)

	_, err = repo.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Delete(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCategoryRepositoryScopesByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	owner, other := domain.NewID(), domain.NewID()
	category := &domain.Category{Title: "golang", UserID: owner}
	require.NoError(t, repo.Create(ctx, category))
	require.NoError(t, repo.Create(ctx, &domain.Category{Title: "rust", UserID: other}))

	list, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "golang", list[0].Title)

	_, err = repo.UpdateTitle(ctx, category.ID, other, "stolen")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	updated, err := repo.UpdateTitle(ctx, category.ID, owner, "go")
	require.NoError(t, err)
	assert.Equal(t, "go", updated.Title)

	_, err = repo.Delete(ctx, category.ID, other)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := repo.Delete(ctx, category.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "go", deleted.Title)

	empty, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBlogRepositoryFind(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	user, category := domain.NewID(), domain.NewID()
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	seed := []domain.Blog{
		{Title: "Go basics", Description: "types", CreatedAt: day(1)},
		{Title: "Advanced GO", Description: "generics", CreatedAt: day(5)},
		{Title: "Rust", Description: "go away", CreatedAt: day(10)},
		{Title: "C++ (intro)", Description: "pointers", CreatedAt: day(15)},
	}
	for i := range seed {
		seed[i].UserID = user
		seed[i].CategoryID = category
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}
	require.NoError(t, repo.Create(ctx, &domain.Blog{Title: "Go elsewhere", UserID: domain.NewID(), CategoryID: category}))

	titles := func(blogs []domain.Blog) []string {
		out := make([]string, len(blogs))
		for i := range blogs {
			out[i] = blogs[i].Title
		}
		return out
	}
	search := func(kw string) []repository.MatchGroup {
		p := regexp.QuoteMeta(kw)
		return []repository.MatchGroup{
			{{Field: repository.FieldTitle, Pattern: p}},
			{{Field: repository.FieldTitle, Pattern: p}, {Field: repository.FieldDescription, Pattern: p}},
		}
	}
	from, to := day(5), day(10)

	tests := []struct {
		name   string
		filter repository.BlogFilter
		want   []string
	}{
		{"owner scope", repository.BlogFilter{UserID: user, CategoryID: category},
			[]string{"Go basics", "Advanced GO", "Rust", "C++ (intro)"}},
		{"keyword needs title", repository.BlogFilter{UserID: user, CategoryID: category, AnyOf: search("go")},
			[]string{"Go basics", "Advanced GO"}},
		{"metacharacters literal", repository.BlogFilter{UserID: user, AnyOf: search("c++ (")},
			[]string{"C++ (intro)"}},
		{"inclusive range", repository.BlogFilter{UserID: user, CreatedAt: repository.TimeRange{From: &from, To: &to}},
			[]string{"Advanced GO", "Rust"}},
		{"lower bound", repository.BlogFilter{UserID: user, CreatedAt: repository.TimeRange{From: &to}},
			[]string{"Rust", "C++ (intro)"}},
		{"upper bound", repository.BlogFilter{UserID: user, CreatedAt: repository.TimeRange{To: &from}},
			[]string{"Go basics", "Advanced GO"}},
		{"combined", repository.BlogFilter{UserID: user, CategoryID: category, AnyOf: search("go"),
			CreatedAt: repository.TimeRange{From: &from, To: &to}},
			[]string{"Advanced GO"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blogs, err := repo.Find(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(blogs))
		})
	}

	none, err := repo.Find(ctx, repository.BlogFilter{UserID: domain.NewID()})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBlogRepositoryScopedMutations(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(openTestDB(t))
	require.NoError(t, repo.Init(ctx))

	owner, other, category := domain.NewID(), domain.NewID(), domain.NewID()
	blog := &domain.Blog{Title: "T", Description: "D", UserID: owner, CategoryID: category}
	require.NoError(t, repo.Create(ctx, blog))

	got, err := repo.FindOne(ctx, repository.BlogFilter{ID: blog.ID, UserID: owner, CategoryID: category})
	require.NoError(t, err)
	assert.Equal(t, *blog, *got)

	title := "stolen"
	_, err = repo.Update(ctx, repository.BlogFilter{ID: blog.ID, UserID: other}, repository.BlogPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	description := "D2"
	updated, err := repo.Update(ctx, repository.BlogFilter{ID: blog.ID, UserID: owner}, repository.BlogPatch{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, "T", updated.Title)
	assert.Equal(t, "D2", updated.Description)
	assert.Equal(t, blog.CreatedAt, updated.CreatedAt)

	_, err = repo.Delete(ctx, repository.BlogFilter{ID: blog.ID, UserID: other})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := repo.Delete(ctx, repository.BlogFilter{ID: blog.ID, UserID: owner})
	require.NoError(t, err)
	assert.Equal(t, "D2", deleted.Description)

	_, err = repo.FindOne(ctx, repository.BlogFilter{ID: blog.ID})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
