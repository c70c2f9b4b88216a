package service

import (
	"context"
	"errors"
	"sync"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

// memStore is an in-memory implementation of the three repositories. calls counts every
// repository method invocation so tests can assert that no store access happened.
type memStore struct {
	mu         sync.Mutex
	calls      int
	failWith   error
	users      []domain.User
	categories []domain.Category
	blogs      []domain.Blog
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) enter() error {
	m.calls++
	return m.failWith
}

func (m *memStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *memStore) userRepo() repository.UserRepository         { return memUsers{m} }
func (m *memStore) categoryRepo() repository.CategoryRepository { return memCategories{m} }
func (m *memStore) blogRepo() repository.BlogRepository         { return memBlogs{m} }

func (m *memStore) addUser(username string) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := domain.User{ID: domain.NewID(), Username: username, CreatedAt: domain.Now(), UpdatedAt: domain.Now()}
	m.users = append(m.users, u)
	return u
}

func (m *memStore) addCategory(userID, title string) domain.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.Category{ID: domain.NewID(), Title: title, UserID: userID, CreatedAt: domain.Now(), UpdatedAt: domain.Now()}
	m.categories = append(m.categories, c)
	return c
}

func (m *memStore) addBlog(b domain.Blog) domain.Blog {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == "" {
		b.ID = domain.NewID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = domain.Now()
	}
	b.UpdatedAt = b.CreatedAt
	m.blogs = append(m.blogs, b)
	return b
}

type memUsers struct{ m *memStore }

func (r memUsers) Init(context.Context) error { return nil }

func (r memUsers) List(context.Context) ([]domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	return append([]domain.User(nil), r.m.users...), nil
}

func (r memUsers) Create(_ context.Context, user *domain.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return err
	}
	for _, u := range r.m.users {
		if u.Username == user.Username || (user.Email != "" && u.Email == user.Email) {
			return repository.ErrDuplicate
		}
	}
	user.ID = domain.NewID()
	user.CreatedAt = domain.Now()
	user.UpdatedAt = user.CreatedAt
	r.m.users = append(r.m.users, *user)
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			u := r.m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) UpdateUsername(_ context.Context, id, username string) (*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			r.m.users[i].Username = username
			u := r.m.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) Delete(_ context.Context, id string) (*domain.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	for i := range r.m.users {
		if r.m.users[i].ID == id {
			u := r.m.users[i]
			r.m.users = append(r.m.users[:i], r.m.users[i+1:]...)
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memCategories struct{ m *memStore }

func (r memCategories) Init(context.Context) error { return nil }

func (r memCategories) ListByUser(_ context.Context, userID string) ([]domain.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	var out []domain.Category
	for _, c := range r.m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r memCategories) Create(_ context.Context, category *domain.Category) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return err
	}
	category.ID = domain.NewID()
	category.CreatedAt = domain.Now()
	category.UpdatedAt = category.CreatedAt
	r.m.categories = append(r.m.categories, *category)
	return nil
}

func (r memCategories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	for i := range r.m.categories {
		if r.m.categories[i].ID == id {
			c := r.m.categories[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memCategories) UpdateTitle(_ context.Context, id, userID, title string) (*domain.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	for i := range r.m.categories {
		if r.m.categories[i].ID == id && r.m.categories[i].UserID == userID {
			r.m.categories[i].Title = title
			c := r.m.categories[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memCategories) Delete(_ context.Context, id, userID string) (*domain.Category, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	for i := range r.m.categories {
		if r.m.categories[i].ID == id && r.m.categories[i].UserID == userID {
			c := r.m.categories[i]
			r.m.categories = append(r.m.categories[:i], r.m.categories[i+1:]...)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memBlogs struct{ m *memStore }

func (r memBlogs) Init(context.Context) error { return nil }

func (r memBlogs) Find(_ context.Context, filter repository.BlogFilter) ([]domain.Blog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	var out []domain.Blog
	for _, b := range r.m.blogs {
		if filter.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r memBlogs) FindOne(_ context.Context, filter repository.BlogFilter) (*domain.Blog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	if i := r.index(filter); i >= 0 {
		b := r.m.blogs[i]
		return &b, nil
	}
	return nil, repository.ErrNotFound
}

func (r memBlogs) Create(_ context.Context, blog *domain.Blog) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return err
	}
	blog.ID = domain.NewID()
	blog.CreatedAt = domain.Now()
	blog.UpdatedAt = blog.CreatedAt
	r.m.blogs = append(r.m.blogs, *blog)
	return nil
}

func (r memBlogs) Update(_ context.Context, filter repository.BlogFilter, patch repository.BlogPatch) (*domain.Blog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	i := r.index(filter)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		r.m.blogs[i].Title = *patch.Title
	}
	if patch.Description != nil {
		r.m.blogs[i].Description = *patch.Description
	}
	b := r.m.blogs[i]
	return &b, nil
}

func (r memBlogs) Delete(_ context.Context, filter repository.BlogFilter) (*domain.Blog, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.enter(); err != nil {
		return nil, err
	}
	i := r.index(filter)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	b := r.m.blogs[i]
	r.m.blogs = append(r.m.blogs[:i], r.m.blogs[i+1:]...)
	return &b, nil
}

func (r memBlogs) index(filter repository.BlogFilter) int {
	for i := range r.m.blogs {
		if filter.Matches(r.m.blogs[i]) {
			return i
		}
	}
	return -1
}

// recordingArchiver remembers archived records.
type recordingArchiver struct {
	mu      sync.Mutex
	records []archivedRecord
}

type archivedRecord struct {
	kind   string
	id     string
	record any
}

func (a *recordingArchiver) Archive(kind, id string, record any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, archivedRecord{kind: kind, id: id, record: record})
}

var errStoreDown = errors.New("store unavailable")
