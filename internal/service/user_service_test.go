package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-dashboard/internal/domain"
)

func TestUserServiceCreateHashesPassword(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.userRepo(), nil)

	user, err := svc.CreateUser(context.Background(), UserInput{Username: " alice ", Email: "alice@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	require.Len(t, store.users, 1)
	stored := store.users[0]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestUserServiceCreateValidation(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.userRepo(), nil)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, UserInput{})
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	_, err = svc.CreateUser(ctx, UserInput{Username: "bob", Password: "short"})
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	_, err = svc.CreateUser(ctx, UserInput{Username: "bob", Email: "not an email"})
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	assert.Zero(t, store.Calls())

	_, err = svc.CreateUser(ctx, UserInput{Username: "bob"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, UserInput{Username: "bob"})
	assert.EqualError(t, err, "User already exists")
}

func TestUserServiceRename(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.userRepo(), nil)
	ctx := context.Background()
	alice := store.addUser("alice")

	_, err := svc.RenameUser(ctx, "", "x")
	assert.EqualError(t, err, "Id or new Username not found")
	_, err = svc.RenameUser(ctx, alice.ID, " ")
	assert.EqualError(t, err, "Id or new Username not found")
	_, err = svc.RenameUser(ctx, "abc", "x")
	assert.EqualError(t, err, "Invalid User Id")
	assert.Zero(t, store.Calls())

	_, err = svc.RenameUser(ctx, domain.NewID(), "x")
	assert.True(t, domain.IsNotFound(err, "user"))

	renamed, err := svc.RenameUser(ctx, alice.ID, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "alicia", renamed.Username)
}

func TestUserServiceDeleteArchivesWithoutHash(t *testing.T) {
	store := newMemStore()
	archiver := &recordingArchiver{}
	svc := NewUserService(store.userRepo(), archiver)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, UserInput{Username: "alice", Password: "long enough"})
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Empty(t, store.users)

	require.Len(t, archiver.records, 1)
	archived, ok := archiver.records[0].record.(*domain.User)
	require.True(t, ok)
	assert.Empty(t, archived.PasswordHash)

	_, err = svc.DeleteUser(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err, "user"))
	_, err = svc.DeleteUser(ctx, "")
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
}

func TestUserServiceList(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store.userRepo(), nil)
	store.addUser("alice")
	store.addUser("bob")

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}
