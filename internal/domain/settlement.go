package domain

import "time"

// SettlementStatus represents the current status of a settlement.
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "PENDING"
	SettlementStatusCommitted SettlementStatus = "COMMITTED"
	SettlementStatusFailed    SettlementStatus = "FAILED"
)

// Settlement is the tagged-state record correlating everything written when
// a paid cart is converted into durable payment, transaction and rental
// records. Its id is stored on each of those records so they can be matched
// without relying on timestamps or amounts.
type Settlement struct {
	ID          string
	UserID      string
	Status      SettlementStatus
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
