package repository

import (
	"context"
	"time"

	"campease/internal/domain"
)

// PaymentRecordRepository defines the persistence operations for entries in
// a customer's payment history.
type PaymentRecordRepository interface {
	// Create persists a new payment record with its items.
	Create(ctx context.Context, record *domain.PaymentRecord) error

	// ListByUserID retrieves a user's payment history, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*domain.PaymentRecord, error)

	// GetBySettlementID retrieves the payment record created by a
	// settlement. Returns ErrNotFound if no such record exists.
	GetBySettlementID(ctx context.Context, settlementID string) (*domain.PaymentRecord, error)

	// MarkRefunded flips the refund flags on the payment record created by
	// the given settlement. Returns ErrNotFound if no such record exists.
	MarkRefunded(ctx context.Context, settlementID, reason string, refundDate time.Time) error
}

// TransactionRepository defines the persistence operations for the durable
// transaction ledger.
type TransactionRepository interface {
	// Create persists a new transaction with its items.
	Create(ctx context.Context, transaction *domain.Transaction) error

	// GetByID retrieves a transaction by ID, including its items.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)

	// GetAll retrieves all transactions, newest first.
	GetAll(ctx context.Context) ([]*domain.Transaction, error)

	// MarkRefunded flips the refund flags on a transaction. Returns
	// ErrNotFound if the transaction does not exist.
	MarkRefunded(ctx context.Context, id, reason string, refundDate time.Time) error
}
