package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"campease/internal/repository"
)

// Store implements repository.Store over a PostgreSQL connection pool.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ExecTx begins a transaction, calls fn with transaction-scoped
// repositories, and commits.
func (s *Store) ExecTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&storeTx{tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// storeTx exposes transaction-scoped repositories over one *sql.Tx.
type storeTx struct {
	tx *sql.Tx
}

func (t *storeTx) Carts() repository.CartRepository {
	return NewCartRepositoryWithTx(t.tx)
}

func (t *storeTx) Settlements() repository.SettlementRepository {
	return NewSettlementRepositoryWithTx(t.tx)
}

func (t *storeTx) PaymentRecords() repository.PaymentRecordRepository {
	return NewPaymentRecordRepositoryWithTx(t.tx)
}

func (t *storeTx) Transactions() repository.TransactionRepository {
	return NewTransactionRepositoryWithTx(t.tx)
}

func (t *storeTx) Rentals() repository.RentalRepository {
	return NewRentalRepositoryWithTx(t.tx)
}
