package domain

import "time"

// RentedProduct represents gear currently checked out by a customer.
// Entries are appended at settlement time and never removed by this service.
type RentedProduct struct {
	ID           string
	UserID       string
	SettlementID string
	ProductID    string
	Name         string
	UnitPrice    float64
	Quantity     int
	ImageURL     string
	RentedAt     time.Time
}

// Receipt summarizes a settlement for the customer-facing confirmation.
type Receipt struct {
	ID            string
	SettlementID  string
	TransactionID string
	CustomerID    string
	CustomerName  string
	TotalAmount   float64
	ItemCount     int
	PaymentDate   time.Time
	CreatedAt     time.Time
}
