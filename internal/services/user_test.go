package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/seyaul/hana-auth/internal/auth"
	"github.com/seyaul/hana-auth/internal/events"
	"github.com/seyaul/hana-auth/internal/store"
	"github.com/seyaul/hana-auth/types"
)

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]types.User

	getErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]types.User)}
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	if m.getErr != nil {
		return types.User{}, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[username]
	return ok, nil
}

func (m *memUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return types.User{}, store.ErrConflict
	}
	m.users[user.Username] = user
	return user, nil
}

func (m *memUserRepo) SetRole(ctx context.Context, username string, role types.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[username]; ok {
		user.Role = role
		m.users[username] = user
	}
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, username)
	return nil
}

func (m *memUserRepo) List(ctx context.Context) ([]types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]types.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func newTestUserService(repo UserRepository) *UserService {
	return NewUserService(repo, events.NewNotifier(nil))
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Create(context.Background(), "bob", "hunter22", types.RoleUser)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !auth.VerifyPassword("hunter22", user.PasswordHash) {
		t.Fatalf("stored hash must verify the original password")
	}
}

func TestUserService_CreateDefaultsInvalidRole(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newMemUserRepo())

	user, err := svc.Create(context.Background(), "bob", "pw", types.Role("superuser"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.Role != types.RoleUser {
		t.Fatalf("expected invalid role to default to user, got %q", user.Role)
	}
}

func TestUserService_CreateDuplicate(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newMemUserRepo())

	if _, err := svc.Create(context.Background(), "bob", "pw", types.RoleUser); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	_, err := svc.Create(context.Background(), "bob", "other", types.RoleUser)
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserService_CreatePasswordTooLong(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := newTestUserService(repo)

	long := strings.Repeat("a", auth.MaxPasswordBytes+1)
	if _, err := svc.Create(context.Background(), "bob", long, types.RoleUser); !errors.Is(err, auth.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no user should be persisted on rejection")
	}
}

func TestUserService_VerifyCredentials(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := newTestUserService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "bob", "hunter22", types.RoleUser); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if !svc.VerifyCredentials(ctx, "bob", "hunter22") {
		t.Fatalf("valid credentials must verify")
	}
	if svc.VerifyCredentials(ctx, "bob", "wrong") {
		t.Fatalf("wrong password must fail")
	}
	if svc.VerifyCredentials(ctx, "ghost", "hunter22") {
		t.Fatalf("missing user must fail")
	}
	if svc.VerifyCredentials(ctx, "bob", strings.Repeat("a", auth.MaxPasswordBytes+1)) {
		t.Fatalf("oversized password must fail")
	}

	// Storage faults read as verification failure, never an error.
	repo.getErr = errors.New("connection refused")
	if svc.VerifyCredentials(ctx, "bob", "hunter22") {
		t.Fatalf("storage fault must fail closed")
	}
}

func TestUserService_ListOmitsHashes(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newMemUserRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "bob", "pw", types.RoleUser); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	users, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("listing must not carry credential material")
	}
}

func TestUserService_PromoteAndRole(t *testing.T) {
	t.Parallel()

	svc := newTestUserService(newMemUserRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "bob", "pw", types.RoleUser); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := svc.Promote(ctx, "bob"); err != nil {
		t.Fatalf("Promote error: %v", err)
	}
	role, err := svc.Role(ctx, "bob")
	if err != nil {
		t.Fatalf("Role error: %v", err)
	}
	if role != types.RoleAdmin {
		t.Fatalf("expected admin, got %q", role)
	}

	// Promoting an absent user is a no-op, not an error.
	if err := svc.Promote(ctx, "ghost"); err != nil {
		t.Fatalf("Promote missing user error: %v", err)
	}
}
