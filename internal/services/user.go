package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/seyaul/hana-auth/internal/auth"
	"github.com/seyaul/hana-auth/internal/events"
	"github.com/seyaul/hana-auth/internal/store"
	"github.com/seyaul/hana-auth/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	SetRole(ctx context.Context, username string, role types.Role) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) ([]types.User, error)
}

// UserService encapsulates user lifecycle use-cases.
type UserService struct {
	repo     UserRepository
	notifier *events.Notifier
}

func NewUserService(repo UserRepository, notifier *events.Notifier) *UserService {
	return &UserService{repo: repo, notifier: notifier}
}

// Create registers a new user. The password is hashed before it reaches the
// repository; duplicate usernames surface as store.ErrConflict.
func (s *UserService) Create(ctx context.Context, username, password string, role types.Role) (types.User, error) {
	if !role.Valid() {
		role = types.RoleUser
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		ID:           uuid.NewString(),
		Username:     username,
		Role:         role,
		PasswordHash: hashed,
	})
	if err != nil {
		return types.User{}, err
	}

	s.notifier.UserCreated(ctx, user.Username)
	return user, nil
}

// VerifyCredentials reports whether the username/password pair is valid.
// It never returns an error: a missing user, an oversized password, a
// malformed hash, and a storage fault all read as false, so callers cannot
// distinguish "no such user" from "wrong password".
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) bool {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return false
	}
	return auth.VerifyPassword(password, user.PasswordHash)
}

// Exists reports whether a live record exists for the username.
func (s *UserService) Exists(ctx context.Context, username string) (bool, error) {
	return s.repo.Exists(ctx, username)
}

// Role returns the user's role, or store.ErrNotFound if the user is absent.
func (s *UserService) Role(ctx context.Context, username string) (types.Role, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// Promote raises the user to admin. A missing user is a no-op.
func (s *UserService) Promote(ctx context.Context, username string) error {
	return s.repo.SetRole(ctx, username, types.RoleAdmin)
}

// Delete removes the user. Deletion immediately revokes every outstanding
// token issued to that username, because token verification re-checks the
// subject against the store. Absence is not an error.
func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.repo.Delete(ctx, username); err != nil {
		return err
	}
	s.notifier.UserDeleted(ctx, username)
	return nil
}

// List returns all users ordered by username. Password hashes are cleared
// so the administrative listing never carries credential material.
func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// IsNotFound reports whether err means the user record is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// IsConflict reports whether err means a unique key was violated.
func IsConflict(err error) bool {
	return errors.Is(err, store.ErrConflict)
}
