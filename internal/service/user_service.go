package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"blog-dashboard/internal/domain"
	"blog-dashboard/internal/repository"
)

const minPasswordLength = 8

// UserInput carries the fields of a new user. Email and Password are optional.
type UserInput struct {
	Username string
	Email    string
	Password string
}

// UserService describes user lifecycle operations. Returned users never carry a password hash.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, in UserInput) (*domain.User, error)
	RenameUser(ctx context.Context, userID, newUsername string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) (*domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	archiver Archiver
}

func NewUserService(users repository.UserRepository, archiver Archiver) UserService {
	return &userService{
		users:    users,
		archiver: archiverOrNop(archiver),
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, domain.Unexpected(err)
	}
	out := make([]domain.User, len(users))
	for i := range users {
		out[i] = *sanitizeUser(&users[i])
	}
	return out, nil
}

func (s *userService) CreateUser(ctx context.Context, in UserInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)

	if username == "" {
		return nil, domain.InvalidArgument("Username is required")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.InvalidArgument("Invalid email")
		}
	}

	user := &domain.User{Username: username, Email: email}
	if password != "" {
		if len(password) < minPasswordLength {
			return nil, domain.InvalidArgument("Password must be at least %d characters", minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.Unexpected(fmt.Errorf("hash password: %w", err))
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.InvalidArgument("User already exists")
		}
		return nil, domain.Unexpected(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) RenameUser(ctx context.Context, userID, newUsername string) (*domain.User, error) {
	newUsername = strings.TrimSpace(newUsername)
	if userID == "" || newUsername == "" {
		return nil, domain.InvalidArgument("Id or new Username not found")
	}
	if !domain.IsValidID(userID) {
		return nil, domain.InvalidArgument("Invalid User Id")
	}
	userID = domain.NormalizeID(userID)

	user, err := s.users.UpdateUsername(ctx, userID, newUsername)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.InvalidArgument("User already exists")
		}
		return nil, storeError(err, "user")
	}
	return sanitizeUser(user), nil
}

// DeleteUser removes the user only. Categories and blogs owned by the user are left in place.
func (s *userService) DeleteUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.InvalidArgument("User Id is required")
	}
	if !domain.IsValidID(userID) {
		return nil, domain.InvalidArgument("Invalid User Id")
	}
	userID = domain.NormalizeID(userID)

	user, err := s.users.Delete(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	user = sanitizeUser(user)
	s.archiver.Archive("user", user.ID, user)
	return user, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
