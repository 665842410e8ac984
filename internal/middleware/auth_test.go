package middleware

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/auth"
)

type staticProvider map[string]string

func (p staticProvider) Verify(token string) (string, error) {
	uid, ok := p[token]
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return uid, nil
}

type empty struct{}

// capture runs the interceptor and returns the user ID the handler saw.
func capture(t *testing.T, interceptor connect.UnaryInterceptorFunc, header string) (string, error) {
	t.Helper()
	var seen string
	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetUserID(ctx)
		return connect.NewResponse(&empty{}), nil
	}
	req := connect.NewRequest(&empty{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	_, err := interceptor(next)(context.Background(), req)
	return seen, err
}

func TestRequireAuth(t *testing.T) {
	interceptor := RequireAuth(staticProvider{"good": "u1"})

	tests := []struct {
		name   string
		header string
		want   string
		code   connect.Code
	}{
		{"valid token", "Bearer good", "u1", 0},
		{"lowercase scheme", "bearer good", "u1", 0},
		{"missing header", "", "", connect.CodeUnauthenticated},
		{"wrong scheme", "Basic good", "", connect.CodeUnauthenticated},
		{"empty token", "Bearer ", "", connect.CodeUnauthenticated},
		{"unknown token", "Bearer bad", "", connect.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uid, err := capture(t, interceptor, tt.header)
			if tt.code != 0 {
				if connect.CodeOf(err) != tt.code {
					t.Fatalf("expected %v, got %v", tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if uid != tt.want {
				t.Errorf("user ID: got %q, want %q", uid, tt.want)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	interceptor := OptionalAuth(staticProvider{"good": "u1"})

	uid, err := capture(t, interceptor, "Bearer good")
	if err != nil || uid != "u1" {
		t.Errorf("valid token: uid=%q err=%v", uid, err)
	}

	for _, header := range []string{"", "Bearer bad", "garbage"} {
		uid, err := capture(t, interceptor, header)
		if err != nil {
			t.Errorf("header %q: unexpected error %v", header, err)
		}
		if uid != "" {
			t.Errorf("header %q: expected anonymous call, got %q", header, uid)
		}
	}
}
