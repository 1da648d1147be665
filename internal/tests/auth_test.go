package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campease/internal/domain"
	"campease/internal/service"
)

// ──────────────────────────────────────────────
// 5. AUTHENTICATION
// ──────────────────────────────────────────────

const testJWTSecret = "test-secret"

func newAuthFixture() (*MockUserRepository, *service.AuthService) {
	userRepo := NewMockUserRepository()
	return userRepo, service.NewAuthService(userRepo, testJWTSecret, time.Hour)
}

func TestRegister_IssuesCustomerToken(t *testing.T) {
	t.Parallel()

	_, svc := newAuthFixture()

	user, token, err := svc.Register(context.Background(), service.RegisterRequest{
		Name:     "Alice Trekker",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Role != domain.RoleCustomer {
		t.Errorf("expected role %s, got %s", domain.RoleCustomer, user.Role)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password must not be stored in plaintext")
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["user_id"] != user.ID {
		t.Errorf("expected user_id claim %s, got %v", user.ID, claims["user_id"])
	}
	if claims["role"] != string(domain.RoleCustomer) {
		t.Errorf("expected role claim %s, got %v", domain.RoleCustomer, claims["role"])
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	_, svc := newAuthFixture()

	ctx := context.Background()
	if _, _, err := svc.Register(ctx, service.RegisterRequest{
		Name:     "Alice Trekker",
		Email:    "alice@example.com",
		Password: "hunter22",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Register(ctx, service.RegisterRequest{
		Name:     "Another Alice",
		Email:    "alice@example.com",
		Password: "different",
	})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	_, svc := newAuthFixture()

	_, _, err := svc.Register(context.Background(), service.RegisterRequest{
		Email: "alice@example.com",
	})
	if !errors.Is(err, service.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLogin_Succeeds(t *testing.T) {
	t.Parallel()

	_, svc := newAuthFixture()

	ctx := context.Background()
	registered, _, err := svc.Register(ctx, service.RegisterRequest{
		Name:     "Alice Trekker",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, token, err := svc.Login(ctx, "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}
	if token == "" {
		t.Error("expected a token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	_, svc := newAuthFixture()

	ctx := context.Background()
	if _, _, err := svc.Register(ctx, service.RegisterRequest{
		Name:     "Alice Trekker",
		Email:    "alice@example.com",
		Password: "hunter22",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()

	_, svc := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
