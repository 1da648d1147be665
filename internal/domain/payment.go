package domain

import "time"

// PaymentItem is a line item snapshot carried by payment and transaction
// records. Prices are the unit prices the cart held at settlement time.
type PaymentItem struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
	ImageURL  string
}

// PaymentRecord is an entry in a customer's own payment history. It mirrors
// the standalone Transaction created by the same settlement; the two share a
// settlement id and must carry the same refund state.
type PaymentRecord struct {
	ID           string
	SettlementID string
	UserID       string
	TotalAmount  float64
	PaymentDate  time.Time
	Refunded     bool
	RefundReason string
	RefundDate   *time.Time
	Items        []PaymentItem
}

// Transaction is the durable, queryable record of one settlement, carrying
// denormalized customer details for the finance dashboard.
type Transaction struct {
	ID            string
	SettlementID  string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	TotalAmount   float64
	PaymentDate   time.Time
	Refunded      bool
	RefundReason  string
	RefundDate    *time.Time
	Items         []PaymentItem
}
