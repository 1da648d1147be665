package repository

import (
	"context"

	"campease/internal/domain"
)

// CartRepository defines the persistence operations for cart lines.
type CartRepository interface {
	// GetByUserID retrieves all cart lines for a user, oldest first.
	GetByUserID(ctx context.Context, userID string) ([]*domain.CartItem, error)

	// GetByUserIDForUpdate retrieves the user's cart lines with a row lock.
	// Only meaningful inside a transaction.
	GetByUserIDForUpdate(ctx context.Context, userID string) ([]*domain.CartItem, error)

	// Upsert inserts a cart line, or adds its quantity to an existing line
	// for the same product.
	Upsert(ctx context.Context, item *domain.CartItem) error

	// UpdateQuantity sets the quantity of a user's line for a product.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error

	// Remove deletes a user's line for a product.
	Remove(ctx context.Context, userID, productID string) error

	// Clear empties the user's cart.
	Clear(ctx context.Context, userID string) error

	// CountByUserID returns the number of lines in the user's cart.
	CountByUserID(ctx context.Context, userID string) (int, error)
}
