package postgres

import (
	"context"
	"database/sql"

	"campease/internal/domain"
)

// RentalRepository implements repository.RentalRepository using PostgreSQL.
type RentalRepository struct {
	q Querier
}

// NewRentalRepository creates a new RentalRepository.
func NewRentalRepository(db *sql.DB) *RentalRepository {
	return &RentalRepository{q: db}
}

// NewRentalRepositoryWithTx creates a rental repository using a transaction.
func NewRentalRepositoryWithTx(tx *sql.Tx) *RentalRepository {
	return &RentalRepository{q: tx}
}

// CreateBatch appends rented product entries for one settlement.
func (r *RentalRepository) CreateBatch(ctx context.Context, rentals []*domain.RentedProduct) error {
	query := `
		INSERT INTO rented_products (id, user_id, settlement_id, product_id, name, unit_price, quantity, image_url, rented_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, rental := range rentals {
		_, err := r.q.ExecContext(ctx, query,
			rental.ID,
			rental.UserID,
			rental.SettlementID,
			rental.ProductID,
			rental.Name,
			rental.UnitPrice,
			rental.Quantity,
			rental.ImageURL,
			rental.RentedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// ListByUserID retrieves a user's rented products, newest first.
func (r *RentalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.RentedProduct, error) {
	query := `
		SELECT id, user_id, settlement_id, product_id, name, unit_price, quantity, image_url, rented_at
		FROM rented_products WHERE user_id = $1 ORDER BY rented_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []*domain.RentedProduct
	for rows.Next() {
		var rental domain.RentedProduct
		if err := rows.Scan(
			&rental.ID,
			&rental.UserID,
			&rental.SettlementID,
			&rental.ProductID,
			&rental.Name,
			&rental.UnitPrice,
			&rental.Quantity,
			&rental.ImageURL,
			&rental.RentedAt,
		); err != nil {
			return nil, err
		}
		rentals = append(rentals, &rental)
	}

	return rentals, rows.Err()
}
