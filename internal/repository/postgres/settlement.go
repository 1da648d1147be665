package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campease/internal/domain"
	"campease/internal/repository"
)

// SettlementRepository implements repository.SettlementRepository using
// PostgreSQL.
type SettlementRepository struct {
	q Querier
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{q: db}
}

// NewSettlementRepositoryWithTx creates a settlement repository using a
// transaction.
func NewSettlementRepositoryWithTx(tx *sql.Tx) *SettlementRepository {
	return &SettlementRepository{q: tx}
}

// Create persists a new settlement record.
func (r *SettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	query := `
		INSERT INTO settlements (id, user_id, status, total_amount)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.ExecContext(ctx, query,
		settlement.ID,
		settlement.UserID,
		settlement.Status,
		settlement.TotalAmount,
	)

	return err
}

// GetByID retrieves a settlement by ID.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	query := `
		SELECT id, user_id, status, total_amount, created_at, updated_at
		FROM settlements WHERE id = $1
	`

	var settlement domain.Settlement
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&settlement.ID,
		&settlement.UserID,
		&settlement.Status,
		&settlement.TotalAmount,
		&settlement.CreatedAt,
		&settlement.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &settlement, nil
}

// UpdateStatus updates the status of a settlement.
func (r *SettlementRepository) UpdateStatus(ctx context.Context, id string, status domain.SettlementStatus) error {
	query := `UPDATE settlements SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	return requireRows(result)
}

// Commit marks a settlement COMMITTED and records the settled total.
func (r *SettlementRepository) Commit(ctx context.Context, id string, totalAmount float64) error {
	query := `UPDATE settlements SET status = $1, total_amount = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, domain.SettlementStatusCommitted, totalAmount, id)
	if err != nil {
		return err
	}

	return requireRows(result)
}
