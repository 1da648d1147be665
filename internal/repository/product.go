package repository

import (
	"context"

	"campease/internal/domain"
)

// ProductRepository defines the persistence operations for the gear catalog.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *domain.Product) error

	// Update overwrites a product's catalog fields. Returns ErrNotFound if
	// the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetAll retrieves the full catalog.
	GetAll(ctx context.Context) ([]*domain.Product, error)
}
