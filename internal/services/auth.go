package services

import (
	"context"

	"github.com/seyaul/hana-auth/internal/auth"
	"github.com/seyaul/hana-auth/types"
)

// UserDirectory is the slice of user operations the auth flow needs.
// *UserService satisfies it.
type UserDirectory interface {
	VerifyCredentials(ctx context.Context, username, password string) bool
	Exists(ctx context.Context, username string) (bool, error)
	Role(ctx context.Context, username string) (types.Role, error)
}

// AuthService issues and verifies bearer tokens and gates privileged
// operations by role. Tokens are stateless; revocation happens by
// re-checking the subject against live user records on every use.
type AuthService struct {
	users  UserDirectory
	secret []byte
}

func NewAuthService(users UserDirectory, jwtSecret string) *AuthService {
	return &AuthService{users: users, secret: []byte(jwtSecret)}
}

// Login exchanges credentials for a signed token. Bad credentials of any
// kind yield ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if !s.users.VerifyCredentials(ctx, username, password) {
		return "", ErrUnauthorized
	}
	return auth.IssueToken(username, s.secret)
}

// Authenticate verifies the token and confirms its subject still names a
// live user. A deleted user's tokens fail here even before they expire.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	subject, err := auth.ParseSubject(token, s.secret)
	if err != nil {
		return "", err
	}

	exists, err := s.users.Exists(ctx, subject)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrUnauthorized
	}
	return subject, nil
}

// RequireRole fails with ErrForbidden unless the subject's stored role
// equals the required role.
func (s *AuthService) RequireRole(ctx context.Context, subject string, role types.Role) error {
	current, err := s.users.Role(ctx, subject)
	if err != nil {
		if IsNotFound(err) {
			return ErrForbidden
		}
		return err
	}
	if current != role {
		return ErrForbidden
	}
	return nil
}
