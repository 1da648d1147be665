package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"campease/internal/checkout"
	"campease/internal/domain"
	"campease/internal/service"
)

// ──────────────────────────────────────────────
// 3. CHECKOUT SESSION CREATION
// ──────────────────────────────────────────────

func newCheckoutService(cartRepo *MockCartRepository, provider *MockCheckoutProvider) *service.CheckoutService {
	return service.NewCheckoutService(cartRepo, provider, service.CheckoutConfig{
		Currency:   "usd",
		SuccessURL: "https://campease.test/success",
		CancelURL:  "https://campease.test/cancel",
		Timeout:    5 * time.Second,
	})
}

func TestCreateCheckoutSession_BuildsLineItemsInMinorUnits(t *testing.T) {
	t.Parallel()

	cartRepo := NewMockCartRepository()
	provider := NewMockCheckoutProvider()
	provider.NextSessionID = "sess-42"

	cartRepo.AddItem(&domain.CartItem{
		ID:        "line-1",
		UserID:    "user-1",
		ProductID: "prod-tent",
		Name:      "4-Person Tent",
		UnitPrice: 12.50,
		Quantity:  2,
	})
	cartRepo.AddItem(&domain.CartItem{
		ID:        "line-2",
		UserID:    "user-1",
		ProductID: "prod-stove",
		Name:      "Camp Stove",
		UnitPrice: 500.00,
		Quantity:  1,
	})

	svc := newCheckoutService(cartRepo, provider)

	sessionID, err := svc.CreateCheckoutSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessionID != "sess-42" {
		t.Errorf("expected session id sess-42, got %s", sessionID)
	}

	params := provider.LastCreateParams
	if params.CustomerID != "user-1" {
		t.Errorf("expected customer user-1 on the session, got %s", params.CustomerID)
	}
	if params.Currency != "usd" {
		t.Errorf("expected currency usd, got %s", params.Currency)
	}
	if len(params.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(params.LineItems))
	}

	// Prices go to the provider in integer cents.
	byName := make(map[string]checkout.LineItem)
	for _, item := range params.LineItems {
		byName[item.Name] = item
	}
	if tent := byName["4-Person Tent"]; tent.UnitAmount != 1250 || tent.Quantity != 2 {
		t.Errorf("expected tent at 1250 cents x2, got %d x%d", tent.UnitAmount, tent.Quantity)
	}
	if stove := byName["Camp Stove"]; stove.UnitAmount != 50000 || stove.Quantity != 1 {
		t.Errorf("expected stove at 50000 cents x1, got %d x%d", stove.UnitAmount, stove.Quantity)
	}
}

func TestCreateCheckoutSession_RejectsEmptyCart(t *testing.T) {
	t.Parallel()

	cartRepo := NewMockCartRepository()
	provider := NewMockCheckoutProvider()
	svc := newCheckoutService(cartRepo, provider)

	_, err := svc.CreateCheckoutSession(context.Background(), "user-1")
	if !errors.Is(err, service.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if provider.CreateSessionCallCount != 0 {
		t.Errorf("provider must not be called for an empty cart, got %d calls", provider.CreateSessionCallCount)
	}
}

func TestCreateCheckoutSession_RejectsMissingUser(t *testing.T) {
	t.Parallel()

	svc := newCheckoutService(NewMockCartRepository(), NewMockCheckoutProvider())

	_, err := svc.CreateCheckoutSession(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestCreateCheckoutSession_ProviderErrorSurfaces(t *testing.T) {
	t.Parallel()

	cartRepo := NewMockCartRepository()
	cartRepo.AddItem(&domain.CartItem{
		ID:        "line-1",
		UserID:    "user-1",
		ProductID: "prod-tent",
		Name:      "4-Person Tent",
		UnitPrice: 100.00,
		Quantity:  1,
	})

	provider := NewMockCheckoutProvider()
	provider.CreateSessionError = checkout.ErrProviderUnavailable

	svc := newCheckoutService(cartRepo, provider)

	_, err := svc.CreateCheckoutSession(context.Background(), "user-1")
	if !errors.Is(err, checkout.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
