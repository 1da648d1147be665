package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campease/internal/domain"
	"campease/internal/repository"
)

// TransactionRepository implements repository.TransactionRepository using
// PostgreSQL.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// NewTransactionRepositoryWithTx creates a transaction repository using a
// database transaction.
func NewTransactionRepositoryWithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

const transactionColumns = `id, settlement_id, customer_id, customer_name, customer_email,
		total_amount, payment_date, refunded, refund_reason, refund_date`

// Create persists a new transaction with its items.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, settlement_id, customer_id, customer_name, customer_email, total_amount, payment_date, refunded, refund_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		transaction.ID,
		transaction.SettlementID,
		transaction.CustomerID,
		transaction.CustomerName,
		transaction.CustomerEmail,
		transaction.TotalAmount,
		transaction.PaymentDate,
		transaction.Refunded,
		transaction.RefundReason,
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO transaction_items (transaction_id, product_id, name, unit_price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range transaction.Items {
		_, err := r.q.ExecContext(ctx, itemQuery,
			transaction.ID,
			item.ProductID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
			item.ImageURL,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a transaction by ID, including its items.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var transaction domain.Transaction
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&transaction.ID,
		&transaction.SettlementID,
		&transaction.CustomerID,
		&transaction.CustomerName,
		&transaction.CustomerEmail,
		&transaction.TotalAmount,
		&transaction.PaymentDate,
		&transaction.Refunded,
		&transaction.RefundReason,
		&transaction.RefundDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, transaction.ID)
	if err != nil {
		return nil, err
	}
	transaction.Items = items

	return &transaction, nil
}

// GetAll retrieves all transactions, newest first.
func (r *TransactionRepository) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY payment_date DESC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.SettlementID,
			&transaction.CustomerID,
			&transaction.CustomerName,
			&transaction.CustomerEmail,
			&transaction.TotalAmount,
			&transaction.PaymentDate,
			&transaction.Refunded,
			&transaction.RefundReason,
			&transaction.RefundDate,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, rows.Err()
}

// MarkRefunded flips the refund flags on a transaction.
func (r *TransactionRepository) MarkRefunded(ctx context.Context, id, reason string, refundDate time.Time) error {
	query := `
		UPDATE transactions
		SET refunded = TRUE, refund_reason = $1, refund_date = $2
		WHERE id = $3 AND refunded = FALSE
	`

	result, err := r.q.ExecContext(ctx, query, reason, refundDate, id)
	if err != nil {
		return err
	}

	return requireRows(result)
}

func (r *TransactionRepository) listItems(ctx context.Context, transactionID string) ([]domain.PaymentItem, error) {
	query := `
		SELECT product_id, name, unit_price, quantity, image_url
		FROM transaction_items WHERE transaction_id = $1
	`

	rows, err := r.q.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PaymentItem
	for rows.Next() {
		var item domain.PaymentItem
		if err := rows.Scan(
			&item.ProductID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.ImageURL,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
