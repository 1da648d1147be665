package tests

import (
	"context"
	"errors"
	"testing"

	"campease/internal/domain"
	"campease/internal/repository"
	"campease/internal/service"
)

// ──────────────────────────────────────────────
// 4. CART MUTATIONS
// ──────────────────────────────────────────────

func newCartFixture() (*MockCartRepository, *MockProductRepository, *service.CartService) {
	cartRepo := NewMockCartRepository()
	productRepo := NewMockProductRepository()
	productRepo.AddProduct(&domain.Product{
		ID:       "prod-tent",
		Name:     "4-Person Tent",
		Price:    1000.00,
		ImageURL: "https://cdn.campease.test/tent.jpg",
		Stock:    5,
	})
	return cartRepo, productRepo, service.NewCartService(cartRepo, productRepo, nil)
}

func TestAddItem_CapturesProductSnapshot(t *testing.T) {
	t.Parallel()

	cartRepo, _, svc := newCartFixture()

	ctx := context.Background()
	if err := svc.AddItem(ctx, "user-1", "prod-tent", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := cartRepo.GetByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(items))
	}

	line := items[0]
	if line.Name != "4-Person Tent" {
		t.Errorf("expected captured product name, got %q", line.Name)
	}
	if line.UnitPrice != 1000.00 {
		t.Errorf("expected captured price 1000.00, got %.2f", line.UnitPrice)
	}
	if line.ImageURL != "https://cdn.campease.test/tent.jpg" {
		t.Errorf("expected captured image url, got %q", line.ImageURL)
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
}

func TestAddItem_SumsQuantitiesForSameProduct(t *testing.T) {
	t.Parallel()

	cartRepo, _, svc := newCartFixture()

	ctx := context.Background()
	if err := svc.AddItem(ctx, "user-1", "prod-tent", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddItem(ctx, "user-1", "prod-tent", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _ := cartRepo.GetByUserID(ctx, "user-1")
	if len(items) != 1 {
		t.Fatalf("expected 1 cart line after re-adding, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("expected summed quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	t.Parallel()

	_, _, svc := newCartFixture()

	err := svc.AddItem(context.Background(), "user-1", "prod-missing", 1)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	cartRepo, _, svc := newCartFixture()

	err := svc.AddItem(context.Background(), "user-1", "prod-tent", 0)
	if !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	if cartRepo.UpsertCallCount != 0 {
		t.Errorf("expected no upsert for invalid quantity, got %d calls", cartRepo.UpsertCallCount)
	}
}

func TestUpdateQuantity_SetsNewValue(t *testing.T) {
	t.Parallel()

	cartRepo, _, svc := newCartFixture()

	ctx := context.Background()
	if err := svc.AddItem(ctx, "user-1", "prod-tent", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, "user-1", "prod-tent", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _ := cartRepo.GetByUserID(ctx, "user-1")
	if items[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestUpdateQuantity_MissingLine(t *testing.T) {
	t.Parallel()

	_, _, svc := newCartFixture()

	err := svc.UpdateQuantity(context.Background(), "user-1", "prod-tent", 4)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveItem_DeletesLine(t *testing.T) {
	t.Parallel()

	cartRepo, _, svc := newCartFixture()

	ctx := context.Background()
	if err := svc.AddItem(ctx, "user-1", "prod-tent", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.RemoveItem(ctx, "user-1", "prod-tent"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, _ := cartRepo.GetByUserID(ctx, "user-1")
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %d lines", len(items))
	}
}

func TestCartTotal_SumsLines(t *testing.T) {
	t.Parallel()

	items := []*domain.CartItem{
		{UnitPrice: 1000.00, Quantity: 2},
		{UnitPrice: 500.00, Quantity: 1},
		{UnitPrice: 12.50, Quantity: 4},
	}

	if got := domain.CartTotal(items); got != 2550.00 {
		t.Errorf("expected total 2550.00, got %.2f", got)
	}
}
