package postgres

import (
	"context"
	"database/sql"

	"campease/internal/domain"
	"campease/internal/repository"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
type CartRepository struct {
	q Querier
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{q: db}
}

// NewCartRepositoryWithTx creates a cart repository using a transaction.
func NewCartRepositoryWithTx(tx *sql.Tx) *CartRepository {
	return &CartRepository{q: tx}
}

const cartColumns = `id, user_id, product_id, name, unit_price, quantity, image_url, created_at`

// GetByUserID retrieves all cart lines for a user, oldest first.
func (r *CartRepository) GetByUserID(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items WHERE user_id = $1 ORDER BY created_at
	`

	return r.queryItems(ctx, query, userID)
}

// GetByUserIDForUpdate retrieves the user's cart lines with a row lock.
func (r *CartRepository) GetByUserIDForUpdate(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	query := `
		SELECT ` + cartColumns + `
		FROM cart_items WHERE user_id = $1 ORDER BY created_at
		FOR UPDATE
	`

	return r.queryItems(ctx, query, userID)
}

// Upsert inserts a cart line, or adds its quantity to an existing line for
// the same product.
func (r *CartRepository) Upsert(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, name, unit_price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	_, err := r.q.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Name,
		item.UnitPrice,
		item.Quantity,
		item.ImageURL,
	)

	return err
}

// UpdateQuantity sets the quantity of a user's line for a product.
func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $1 WHERE user_id = $2 AND product_id = $3`

	result, err := r.q.ExecContext(ctx, query, quantity, userID, productID)
	if err != nil {
		return err
	}

	return requireRows(result)
}

// Remove deletes a user's line for a product.
func (r *CartRepository) Remove(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.q.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return err
	}

	return requireRows(result)
}

// Clear empties the user's cart.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	_, err := r.q.ExecContext(ctx, query, userID)
	return err
}

// CountByUserID returns the number of lines in the user's cart.
func (r *CartRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM cart_items WHERE user_id = $1`

	var count int
	if err := r.q.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *CartRepository) queryItems(ctx context.Context, query string, args ...any) ([]*domain.CartItem, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.ImageURL,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func requireRows(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
