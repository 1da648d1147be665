package repository

import "context"

// Tx exposes transaction-scoped repositories. Everything accessed through a
// Tx shares one database transaction and commits or rolls back together.
type Tx interface {
	Carts() CartRepository
	Settlements() SettlementRepository
	PaymentRecords() PaymentRecordRepository
	Transactions() TransactionRepository
	Rentals() RentalRepository
}

// Store runs multi-repository units of work atomically.
type Store interface {
	// ExecTx begins a transaction, calls fn with transaction-scoped
	// repositories, and commits. Any error from fn rolls the transaction
	// back and is returned unchanged.
	ExecTx(ctx context.Context, fn func(tx Tx) error) error
}
