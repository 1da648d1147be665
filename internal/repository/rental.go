package repository

import (
	"context"

	"campease/internal/domain"
)

// RentalRepository defines the persistence operations for rented products.
type RentalRepository interface {
	// CreateBatch appends rented product entries for one settlement.
	CreateBatch(ctx context.Context, rentals []*domain.RentedProduct) error

	// ListByUserID retrieves a user's rented products, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*domain.RentedProduct, error)
}
