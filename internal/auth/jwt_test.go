package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
)

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "u1", Email: "alice@example.com", Role: models.RoleUser}

	t.Run("Generate then Verify returns the uid", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		uid, err := m.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if uid != "u1" {
			t.Errorf("uid: got %q, want u1", uid)
		}
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		token, _ := NewJWTManager("secret-a", time.Hour).Generate(user)
		_, err := NewJWTManager("secret-b", time.Hour).Verify(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		m := NewJWTManager("test-secret", -time.Minute)
		token, _ := m.Generate(user)
		if _, err := m.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)
		if _, err := m.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
