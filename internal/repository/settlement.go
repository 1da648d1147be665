package repository

import (
	"context"

	"campease/internal/domain"
)

// SettlementRepository defines the persistence operations for the
// tagged-state settlement records.
type SettlementRepository interface {
	// Create persists a new settlement record.
	Create(ctx context.Context, settlement *domain.Settlement) error

	// GetByID retrieves a settlement by ID.
	GetByID(ctx context.Context, id string) (*domain.Settlement, error)

	// UpdateStatus updates the status of a settlement.
	UpdateStatus(ctx context.Context, id string, status domain.SettlementStatus) error

	// Commit marks a settlement COMMITTED and records the settled total.
	Commit(ctx context.Context, id string, totalAmount float64) error
}
