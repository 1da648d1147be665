package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campease/internal/domain"
	"campease/internal/repository"
)

// PaymentRecordRepository implements repository.PaymentRecordRepository
// using PostgreSQL.
type PaymentRecordRepository struct {
	q Querier
}

// NewPaymentRecordRepository creates a new PaymentRecordRepository.
func NewPaymentRecordRepository(db *sql.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{q: db}
}

// NewPaymentRecordRepositoryWithTx creates a payment record repository using
// a transaction.
func NewPaymentRecordRepositoryWithTx(tx *sql.Tx) *PaymentRecordRepository {
	return &PaymentRecordRepository{q: tx}
}

// Create persists a new payment record with its items.
func (r *PaymentRecordRepository) Create(ctx context.Context, record *domain.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (id, settlement_id, user_id, total_amount, payment_date, refunded, refund_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		record.ID,
		record.SettlementID,
		record.UserID,
		record.TotalAmount,
		record.PaymentDate,
		record.Refunded,
		record.RefundReason,
	)
	if err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO payment_record_items (payment_record_id, product_id, name, unit_price, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range record.Items {
		_, err := r.q.ExecContext(ctx, itemQuery,
			record.ID,
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

// ListByUserID retrieves a user's payment history, newest first.
func (r *PaymentRecordRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.PaymentRecord, error) {
	query := `
		SELECT id, settlement_id, user_id, total_amount, payment_date, refunded, refund_reason, refund_date
		FROM payment_records WHERE user_id = $1 ORDER BY payment_date DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.PaymentRecord
	for rows.Next() {
		var record domain.PaymentRecord
		if err := rows.Scan(
			&record.ID,
			&record.SettlementID,
			&record.UserID,
			&record.TotalAmount,
			&record.PaymentDate,
			&record.Refunded,
			&record.RefundReason,
			&record.RefundDate,
		); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, record := range records {
		items, err := r.listItems(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		record.Items = items
	}

	return records, nil
}

// GetBySettlementID retrieves the payment record created by a settlement.
func (r *PaymentRecordRepository) GetBySettlementID(ctx context.Context, settlementID string) (*domain.PaymentRecord, error) {
	query := `
		SELECT id, settlement_id, user_id, total_amount, payment_date, refunded, refund_reason, refund_date
		FROM payment_records WHERE settlement_id = $1
	`

	var record domain.PaymentRecord
	err := r.q.QueryRowContext(ctx, query, settlementID).Scan(
		&record.ID,
		&record.SettlementID,
		&record.UserID,
		&record.TotalAmount,
		&record.PaymentDate,
		&record.Refunded,
		&record.RefundReason,
		&record.RefundDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Items = items

	return &record, nil
}

// MarkRefunded flips the refund flags on the payment record created by the
// given settlement.
func (r *PaymentRecordRepository) MarkRefunded(ctx context.Context, settlementID, reason string, refundDate time.Time) error {
	query := `
		UPDATE payment_records
		SET refunded = TRUE, refund_reason = $1, refund_date = $2
		WHERE settlement_id = $3 AND refunded = FALSE
	`

	result, err := r.q.ExecContext(ctx, query, reason, refundDate, settlementID)
	if err != nil {
		return err
	}

	return requireRows(result)
}

func (r *PaymentRecordRepository) listItems(ctx context.Context, recordID string) ([]domain.PaymentItem, error) {
	query := `
		SELECT product_id, name, unit_price, quantity, image_url
		FROM payment_record_items WHERE payment_record_id = $1
	`

	rows, err := r.q.QueryContext(ctx, query, recordID)
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
