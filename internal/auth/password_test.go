package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
)

type memoryUsers struct {
	byEmail map[string]*models.User
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = "id-" + user.Email
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	users := &memoryUsers{byEmail: map[string]*models.User{}}
	a := NewPasswordAuthenticator(users).WithCost(bcrypt.MinCost)

	t.Run("Register hashes and normalizes email", func(t *testing.T) {
		user, err := a.Register(ctx, "  Alice@Example.com ", "Alice", "correct horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Errorf("email: got %q", user.Email)
		}
		if user.PasswordHash == "correct horse" {
			t.Error("password stored in clear text")
		}
		if user.Role != models.RoleUser {
			t.Errorf("role: got %q, want user", user.Role)
		}
	})

	t.Run("Register rejects duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "alice@example.com", "Alice 2", "another password")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("Register rejects weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "bob@example.com", "Bob", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "ALICE@example.com", "correct horse"); err != nil {
			t.Errorf("Authenticate failed: %v", err)
		}
		if _, err := a.Authenticate(ctx, "alice@example.com", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := a.Authenticate(ctx, "nobody@example.com", "whatever1"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
